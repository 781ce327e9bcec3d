package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tenglei/jsoncol/internal/cli"
	"github.com/tenglei/jsoncol/internal/flatjson"
)

// CLI defines the command-line interface.
var CLI struct {
	Input    string  `help:"Path to a file with one JSON document per line. If not specified, reads from stdin." short:"i" type:"path"`
	Sample   int     `help:"Maximum number of rows to sample." short:"n" default:"1024"`
	MinShare float64 `help:"Minimum share of sampled object rows a key needs before it is flattened." short:"m" default:"0.8"`
	Stats    bool    `help:"Print per-key fill counts alongside the schema." short:"s"`
}

func main() {
	parser := kong.Must(&CLI,
		kong.Name("flatschema"),
		kong.Description("Derive a flattening schema from sample JSON documents"),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "flatschema: %v\n", err)
		os.Exit(1)
	}
}

func run(out io.Writer) error {
	in := os.Stdin
	if CLI.Input != "" {
		f, err := os.Open(CLI.Input)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	docs, badRows, err := cli.LoadDocuments(context.Background(), in)
	if err != nil {
		return err
	}

	schema, err := flatjson.Derive(docs, CLI.Sample, CLI.MinShare)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, schema)

	if !CLI.Stats {
		return nil
	}

	flat, err := flatjson.Flatten(docs, schema)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "rows: %d (unparseable: %d)\n", docs.Len(), badRows)
	for j, f := range schema.Fields() {
		sub := flat.Sub(j)
		filled := 0
		for i := 0; i < sub.Len(); i++ {
			if !sub.IsNull(i) {
				filled++
			}
		}
		fmt.Fprintf(out, "  %s(%s): %d/%d rows\n", f.Key, f.Kind, filled, sub.Len())
	}
	return nil
}
