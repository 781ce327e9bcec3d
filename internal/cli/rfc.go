package cli

import (
	"encoding/json"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/tenglei/jsoncol/internal/column"
)

// rfcRows evaluates the path with an RFC 9535 implementation so the
// engine's dialect can be compared row by row. Each row renders the
// full RFC match list as a JSON array.
func rfcRows(pathExpr string, texts *column.Texts) (func(int) string, error) {
	path, err := jsonpath.Parse(pathExpr)
	if err != nil {
		return nil, fmt.Errorf("rfc path: %w", err)
	}

	return func(i int) string {
		if texts.IsNull(i) {
			return nullCell
		}
		var data any
		if err := json.Unmarshal([]byte(texts.Value(i)), &data); err != nil {
			return "error: not valid JSON"
		}
		results := path.Select(data)
		if len(results) == 0 {
			return "[]"
		}
		rendered, err := json.Marshal(results)
		if err != nil {
			return "error: not renderable"
		}
		return string(rendered)
	}, nil
}
