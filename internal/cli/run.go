package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/config"
	"github.com/tenglei/jsoncol/internal/exit"
	"github.com/tenglei/jsoncol/internal/jsonfunc"
)

// nullCell marks a null result row in the output, distinct from the
// JSON null value which prints as "null".
const nullCell = "NULL"

// maxLineBytes bounds a single input document line.
const maxLineBytes = 4 << 20

// Runner executes one operation over line-delimited JSON documents.
type Runner struct {
	config    *Config
	opts      config.Options
	input     io.Reader
	output    io.Writer
	errOutput io.Writer
}

// New builds a runner from a parsed command line, loading the engine
// options file when one is configured.
func New(cfg *Config) (*Runner, *exit.Result) {
	opts := config.Default()
	if cfg.ConfigFile != "" {
		loaded, err := config.Load(cfg.ConfigFile)
		if err != nil {
			return nil, exit.Errorf("Error loading config: %v", err)
		}
		opts = loaded
	}

	return &Runner{
		config:    cfg,
		opts:      opts,
		input:     os.Stdin,
		output:    os.Stdout,
		errOutput: os.Stderr,
	}, nil
}

func (r *Runner) SetInput(in io.Reader) {
	r.input = in
}

func (r *Runner) SetOutput(w io.Writer) {
	r.output = w
}

func (r *Runner) SetErrorOutput(w io.Writer) {
	r.errOutput = w
}

func (r *Runner) payloadWriter() io.Writer {
	if r.output == nil {
		return io.Discard
	}
	return r.output
}

func (r *Runner) errorWriter() io.Writer {
	if r.errOutput == nil {
		return io.Discard
	}
	return r.errOutput
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errorWriter(), format, args...)
}

// Run reads the documents, evaluates the configured operation against
// them and prints one result per row. It returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	level := slog.LevelInfo
	if r.config.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(r.errorWriter(), &slog.HandlerOptions{Level: level}))

	texts, err := r.readDocuments(ctx)
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	var paths *column.Texts
	if r.config.Path != "" {
		paths = column.ConstText(r.config.Path, texts.Len())
	}

	scope, err := jsonfunc.Prepare(r.opts, logger, paths)
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}
	defer scope.Close()

	render, err := r.evaluate(scope, texts, paths)
	if err != nil {
		r.logf("Error: %v\n", err)
		return exit.CodeError
	}

	var rfcRender func(int) string
	if r.config.RFC {
		rfcRender, err = rfcRows(r.config.Path, texts)
		if err != nil {
			r.logf("Error: %v\n", err)
			return exit.CodeError
		}
	}

	w := r.payloadWriter()
	for i := 0; i < texts.Len(); i++ {
		if ctx.Err() != nil {
			r.logf("Interrupted after %d rows\n", i)
			return exit.CodeError
		}
		if rfcRender != nil {
			fmt.Fprintf(w, "%s\t%s\n", render(i), rfcRender(i))
			continue
		}
		fmt.Fprintln(w, render(i))
	}
	return exit.CodeOK
}

func (r *Runner) readDocuments(ctx context.Context) (*column.Texts, error) {
	in := r.input
	if r.config.InputFile != "" && r.config.InputFile != "-" {
		f, err := os.Open(r.config.InputFile)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	return ReadDocuments(ctx, in)
}

// evaluate dispatches the operation and returns a per-row renderer over
// its output column.
func (r *Runner) evaluate(scope *jsonfunc.Scope, texts, paths *column.Texts) (func(int) string, error) {
	switch r.config.Operation {
	case "exists":
		out, err := scope.ExistsText(texts, paths)
		if err != nil {
			return nil, err
		}
		return boolRows(out), nil
	case "query":
		out, err := scope.QueryText(texts, paths)
		if err != nil {
			return nil, err
		}
		return jsonRows(out), nil
	case "get-string":
		out, err := scope.GetStringText(texts, paths)
		if err != nil {
			return nil, err
		}
		return textRows(out), nil
	case "get-int":
		out, err := scope.GetIntText(texts, paths)
		if err != nil {
			return nil, err
		}
		return intRows(out), nil
	case "get-double":
		out, err := scope.GetDoubleText(texts, paths)
		if err != nil {
			return nil, err
		}
		return doubleRows(out), nil
	case "get-bool":
		out, err := scope.GetBoolText(texts, paths)
		if err != nil {
			return nil, err
		}
		return boolRows(out), nil
	case "length":
		out, err := scope.Length(scope.ParseJSON(texts), paths)
		if err != nil {
			return nil, err
		}
		return intRows(out), nil
	case "keys":
		out, err := scope.Keys(scope.ParseJSON(texts), paths)
		if err != nil {
			return nil, err
		}
		return jsonRows(out), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, r.config.Operation)
	}
}

func boolRows(out *column.Bools) func(int) string {
	return func(i int) string {
		if out.IsNull(i) {
			return nullCell
		}
		return strconv.FormatBool(out.Value(i))
	}
}

func intRows(out *column.Int64s) func(int) string {
	return func(i int) string {
		if out.IsNull(i) {
			return nullCell
		}
		return strconv.FormatInt(out.Value(i), 10)
	}
}

func doubleRows(out *column.Float64s) func(int) string {
	return func(i int) string {
		if out.IsNull(i) {
			return nullCell
		}
		return strconv.FormatFloat(out.Value(i), 'g', -1, 64)
	}
}

func textRows(out *column.Texts) func(int) string {
	return func(i int) string {
		if out.IsNull(i) {
			return nullCell
		}
		return out.Value(i)
	}
}

func jsonRows(out *column.JSONs) func(int) string {
	return func(i int) string {
		if out.IsNull(i) {
			return nullCell
		}
		return out.Value(i).String()
	}
}
