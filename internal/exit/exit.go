package exit

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Exit codes: 0 success, 1 runtime failure, 2 command-line misuse.
const (
	CodeOK    = 0
	CodeError = 1
	CodeUsage = 2
)

// Result carries a program outcome to main: where to print, what to
// print, and the process exit code.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message, newline-terminated, to the
// configured destination.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
	if !strings.HasSuffix(r.Message, "\n") {
		fmt.Fprintln(r.Output)
	}
}

// Success prints to stdout and exits 0.
func Success(message string) *Result {
	return &Result{
		Output:   os.Stdout,
		ExitCode: CodeOK,
		Message:  message,
	}
}

// Error prints to stderr and exits 1.
func Error(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeError,
		Message:  message,
	}
}

// Errorf is Error with formatting.
func Errorf(format string, a ...any) *Result {
	return Error(fmt.Sprintf(format, a...))
}

// Usage prints to stderr and exits 2, the conventional code for flag
// misuse.
func Usage(message string) *Result {
	return &Result{
		Output:   os.Stderr,
		ExitCode: CodeUsage,
		Message:  message,
	}
}

// Usagef is Usage with formatting.
func Usagef(format string, a ...any) *Result {
	return Usage(fmt.Sprintf(format, a...))
}
