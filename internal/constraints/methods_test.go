package constraints

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/tenglei/jsoncol/internal/cli"
	"github.com/tenglei/jsoncol/internal/exit"
)

func TestParserAndRunnerShareOperationSet(t *testing.T) {
	t.Parallel()

	for _, operation := range cli.Operations() {
		t.Run(operation, func(t *testing.T) {
			t.Parallel()

			cfg, result := cli.Parse([]string{"jsonquery", "--path", "$.k1", operation})
			if result != nil {
				t.Fatalf("cli.Parse(%q) exit result: code %d, message %q", operation, result.ExitCode, result.Message)
			}

			r, result := cli.New(cfg)
			if result != nil {
				t.Fatalf("cli.New(%q) exit result: code %d, message %q", operation, result.ExitCode, result.Message)
			}
			r.SetInput(strings.NewReader("{\"k1\": 1}\n"))
			r.SetOutput(io.Discard)
			r.SetErrorOutput(io.Discard)

			if code := r.Run(context.Background()); code != exit.CodeOK {
				t.Fatalf("Run(%q) = %d, want %d", operation, code, exit.CodeOK)
			}
		})
	}
}

func TestUnknownOperationRejectedAcrossBoundaries(t *testing.T) {
	t.Parallel()

	const operation = "frobnicate"

	_, result := cli.Parse([]string{"jsonquery", "--path", "$.k1", operation})
	if result == nil {
		t.Fatalf("cli.Parse(%q) expected an exit result", operation)
	}
	if result.ExitCode != exit.CodeUsage {
		t.Fatalf("cli.Parse(%q) exit code = %d, want %d", operation, result.ExitCode, exit.CodeUsage)
	}

	// A config built around Parse must still be rejected at run time.
	r, res := cli.New(&cli.Config{Operation: operation, Path: "$.k1"})
	if res != nil {
		t.Fatalf("cli.New(%q) exit result: code %d, message %q", operation, res.ExitCode, res.Message)
	}
	r.SetInput(strings.NewReader("{\"k1\": 1}\n"))
	r.SetOutput(io.Discard)
	r.SetErrorOutput(io.Discard)

	if code := r.Run(context.Background()); code != exit.CodeError {
		t.Fatalf("Run(%q) = %d, want %d", operation, code, exit.CodeError)
	}
}
