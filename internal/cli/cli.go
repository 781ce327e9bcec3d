package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/tenglei/jsoncol/internal/exit"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrNoOperation      = errors.New("no operation specified")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrPathRequired     = errors.New("operation requires --path")
	ErrRFCNeedsPath     = errors.New("--rfc requires --path")
	ErrTooManyArguments = errors.New("too many arguments")
)

// operations maps each operation to whether it requires a path.
var operations = map[string]bool{
	"exists":     true,
	"query":      true,
	"get-string": true,
	"get-int":    true,
	"get-double": true,
	"get-bool":   true,
	"length":     false,
	"keys":       false,
}

// Operations lists the supported operation names in sorted order.
func Operations() []string {
	return slices.Sorted(maps.Keys(operations))
}

// Config is the parsed command line of jsonquery.
type Config struct {
	Operation  string
	Path       string
	InputFile  string // empty or "-" reads stdin
	ConfigFile string
	RFC        bool
	Debug      bool
}

// Validate checks the operation against the path requirements.
func (c *Config) Validate() error {
	if c.Operation == "" {
		return ErrNoOperation
	}
	needsPath, ok := operations[c.Operation]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, c.Operation)
	}
	if needsPath && c.Path == "" {
		return fmt.Errorf("%w: %q", ErrPathRequired, c.Operation)
	}
	if c.RFC && c.Path == "" {
		return ErrRFCNeedsPath
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and an exit
// result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Usage and errors print through the exit result instead.
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		path       = fs.String("path", "", "Path expression to evaluate (optional for length and keys)")
		configFile = fs.String("config", "", "Path to YAML file with engine options")
		rfc        = fs.Bool("rfc", false, "Also evaluate the path as RFC 9535 JSONPath and print both results")
		debug      = fs.Bool("debug", false, "Enable debug logging")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	rest := fs.Args()
	if len(rest) > 2 {
		return nil, exit.Usagef("Error: %v: %q\n\n%s", ErrTooManyArguments, rest[2:], Usage())
	}

	config := &Config{
		Path:       *path,
		ConfigFile: *configFile,
		RFC:        *rfc,
		Debug:      *debug,
	}
	if len(rest) > 0 {
		config.Operation = rest[0]
	}
	if len(rest) > 1 {
		config.InputFile = rest[1]
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsonquery - run one JSON engine operation over documents

Usage: jsonquery [options] <operation> [file]

Reads one JSON document per input line (from file, or stdin when the
file is omitted or "-") and prints one result per row. Null result
cells print as NULL; a found JSON null prints as null.

Operations:
  exists      true when the path resolves (--path required)
  query       extract the path's target as JSON (--path required)
  get-string  extract as text, string payloads unquoted (--path required)
  get-int     extract as integer, doubles truncate (--path required)
  get-double  extract as double, ints widen (--path required)
  get-bool    extract as boolean, numbers map to "not zero" (--path required)
  length      element count of the target (whole document without --path)
  keys        object keys of the target (whole document without --path)

Options:
  --path EXPR      Path expression, e.g. '$.k1[0].k2' (simple form 'k1.k2' also works)
  --config FILE    YAML file with engine options (reuse_parse, lazy_dynamic_flattening, ...)
  --rfc            Also evaluate --path as RFC 9535 JSONPath and print both results
  --debug          Enable debug logging
  -h, --help       Show this help message

Examples:
  echo '{"k1": [1, 2]}' | jsonquery --path '$.k1[*]' query
  jsonquery --path '$.user.id' get-int events.jsonl
  jsonquery length events.jsonl
  jsonquery --path '$.k1' --rfc query events.jsonl`
}
