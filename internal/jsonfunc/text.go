package jsonfunc

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic/ast"
	"github.com/tidwall/gjson"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonpath"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// ExistsText is Exists over raw document text.
func (s *Scope) ExistsText(docs, paths *column.Texts) (*column.Bools, error) {
	out := column.NewBools()
	if err := s.evalTextRows(docs, paths, existsInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryText is Query over raw document text.
func (s *Scope) QueryText(docs, paths *column.Texts) (*column.JSONs, error) {
	out := column.NewJSONs()
	if err := s.evalTextRows(docs, paths, queryInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIntText is GetInt over raw document text.
func (s *Scope) GetIntText(docs, paths *column.Texts) (*column.Int64s, error) {
	out := column.NewInt64s()
	if err := s.evalTextRows(docs, paths, getIntInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDoubleText is GetDouble over raw document text.
func (s *Scope) GetDoubleText(docs, paths *column.Texts) (*column.Float64s, error) {
	out := column.NewFloat64s()
	if err := s.evalTextRows(docs, paths, getDoubleInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBoolText is GetBool over raw document text.
func (s *Scope) GetBoolText(docs, paths *column.Texts) (*column.Bools, error) {
	out := column.NewBools()
	if err := s.evalTextRows(docs, paths, getBoolInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStringText is GetString over raw document text.
func (s *Scope) GetStringText(docs, paths *column.Texts) (*column.Texts, error) {
	out := column.NewTexts()
	if err := s.evalTextRows(docs, paths, getStringInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// evalTextRows drives one operation over raw document text. Malformed
// text degrades the row.
func (s *Scope) evalTextRows(docs, paths *column.Texts, emit emitFunc) error {
	if paths == nil {
		return fmt.Errorf("%w: operation needs a path column", ErrInvalidArgument)
	}
	if docs.Len() != paths.Len() {
		return fmt.Errorf("%w: %d documents against %d paths", ErrInvalidArgument, docs.Len(), paths.Len())
	}

	resolve, err := s.resolver(paths)
	if err != nil {
		return err
	}

	for row := 0; row < docs.Len(); row++ {
		if docs.IsNull(row) {
			emit(row, jsonval.Value{}, false, true)
			continue
		}
		pr, rerr := resolve(row)
		if rerr != nil {
			s.degrade(row, rerr)
			emit(row, jsonval.Value{}, false, true)
			continue
		}
		switch {
		case pr.null:
			emit(row, jsonval.Value{}, false, true)
		case pr.empty:
			emit(row, jsonval.Value{}, false, false)
		default:
			v, found, lerr := s.lookupText(docs.Value(row), pr.path)
			if lerr != nil {
				s.degrade(row, lerr)
				emit(row, jsonval.Value{}, false, true)
				continue
			}
			emit(row, v, found, false)
		}
	}
	return nil
}

// lookupText resolves a path against raw text. With reuse_parse on, the
// scope cache parses each distinct text once and the uniform evaluator
// runs over the tree. Otherwise key/index-only paths stream over the
// raw bytes without materializing, and everything else parses per
// access through the disabled cache, which still counts the work. All
// three routes agree on every input.
func (s *Scope) lookupText(text string, p *jsonpath.Path) (jsonval.Value, bool, error) {
	if !s.opts.ReuseParse {
		if steps := p.Steps(); len(steps) > 0 && anchored(text) && streamable(steps) {
			return searchText(text, steps)
		}
	}

	doc, err := s.cache.Load(text)
	if err != nil {
		return jsonval.Value{}, false, fmt.Errorf("%w: %w", ErrDataQuality, err)
	}
	v, found := p.Eval(doc)
	return v, found, nil
}

// searchText streams key and index steps over raw text. The validity
// pre-check matches Parse's strictness for anchored text, so a search
// miss on valid text is exactly the evaluator's not-found.
func searchText(text string, steps []jsonpath.Step) (jsonval.Value, bool, error) {
	if !gjson.Valid(strings.TrimSpace(text)) {
		return jsonval.Value{}, false, fmt.Errorf("%w: invalid document text", ErrDataQuality)
	}

	node, err := ast.NewSearcher(text).GetByPath(searchArgs(steps)...)
	if err != nil {
		return jsonval.Value{}, false, nil
	}
	raw, err := node.Raw()
	if err != nil {
		return jsonval.Value{}, false, nil
	}

	v, err := jsonval.ParseString(raw)
	if err != nil {
		return jsonval.Value{}, false, fmt.Errorf("%w: %w", ErrDataQuality, err)
	}
	return v, true, nil
}

func searchArgs(steps []jsonpath.Step) []any {
	args := make([]any, len(steps))
	for i, st := range steps {
		if st.Kind == jsonpath.StepKey {
			args[i] = st.Key
		} else {
			args[i] = st.Index
		}
	}
	return args
}

// streamable reports whether every step addresses one child, which is
// what the searcher can follow. Wildcards, slices, invalid tails and
// negative indexes fall back to the uniform evaluator.
func streamable(steps []jsonpath.Step) bool {
	for _, st := range steps {
		switch st.Kind {
		case jsonpath.StepKey:
		case jsonpath.StepIndex:
			if st.Index < 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// anchored reports whether text must be strict JSON: bare scalar tokens
// have their own parse rules the searcher cannot reproduce.
func anchored(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	switch t[0] {
	case '{', '[', '"':
		return true
	default:
		return false
	}
}
