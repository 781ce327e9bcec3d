package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/config"
	"github.com/tenglei/jsoncol/internal/jsonfunc"
)

// ReadDocuments collects one document per line of in. Blank lines
// become null rows.
func ReadDocuments(ctx context.Context, in io.Reader) (*column.Texts, error) {
	texts := column.NewTexts()
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			texts.AppendNull()
			continue
		}
		texts.Append(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return texts, nil
}

// LoadDocuments reads one JSON document per line of in and parses each
// into a binary JSON row. Blank lines and malformed documents become
// null rows; the count of malformed ones is returned alongside.
func LoadDocuments(ctx context.Context, in io.Reader) (*column.JSONs, int, error) {
	texts, err := ReadDocuments(ctx, in)
	if err != nil {
		return nil, 0, err
	}

	scope, err := jsonfunc.Prepare(config.Default(), nil, nil)
	if err != nil {
		return nil, 0, err
	}
	defer scope.Close()

	docs := scope.ParseJSON(texts)
	return docs, scope.RowErrors(), nil
}
