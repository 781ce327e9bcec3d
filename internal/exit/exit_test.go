package exit

import (
	"strings"
	"testing"
)

func TestResultPrint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "terminates_line", message: "done", want: "done\n"},
		{name: "keeps_existing_newline", message: "done\n", want: "done\n"},
		{name: "empty_prints_nothing", message: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf strings.Builder
			r := &Result{Output: &buf, Message: tt.message}
			r.Print()

			if got := buf.String(); got != tt.want {
				t.Errorf("Print() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructorCodes(t *testing.T) {
	t.Parallel()

	if got := Success("ok").ExitCode; got != CodeOK {
		t.Errorf("Success exit code = %d, want %d", got, CodeOK)
	}
	if got := Error("bad").ExitCode; got != CodeError {
		t.Errorf("Error exit code = %d, want %d", got, CodeError)
	}
	if got := Errorf("bad %d", 1).Message; got != "bad 1" {
		t.Errorf("Errorf message = %q", got)
	}
	if got := Usage("flags").ExitCode; got != CodeUsage {
		t.Errorf("Usage exit code = %d, want %d", got, CodeUsage)
	}
	if got := Usagef("flag %q", "x").Message; got != `flag "x"` {
		t.Errorf("Usagef message = %q", got)
	}
}
