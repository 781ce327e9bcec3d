package jsonfunc

import (
	"fmt"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/flatjson"
	"github.com/tenglei/jsoncol/internal/jsonpath"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// emitFunc receives one row's lookup outcome. null means the output row
// is null regardless of the operation; otherwise found/v carry the
// evaluation result and each operation maps not-found to its own zero.
type emitFunc func(row int, v jsonval.Value, found, null bool)

// pathRow is a resolved path argument. null nulls the output row, empty
// is the uniform not-found of the empty path text.
type pathRow struct {
	path  *jsonpath.Path
	null  bool
	empty bool
}

// evalRows drives one operation over a document column and its path
// column. Flattened sources route through their sub-columns; everything
// else evaluates against the row's document value.
func (s *Scope) evalRows(docs column.Cell, paths *column.Texts, emit emitFunc) error {
	if paths == nil {
		return fmt.Errorf("%w: operation needs a path column", ErrInvalidArgument)
	}
	if fc, ok := docs.(*flatjson.Column); ok {
		return s.evalFlattenedRows(fc, paths, emit)
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
		switch {
		case rerr != nil:
			s.degrade(row, rerr)
			emit(row, jsonval.Value{}, false, true)
		case pr.null:
			emit(row, jsonval.Value{}, false, true)
		case pr.empty:
			emit(row, jsonval.Value{}, false, false)
		default:
			v, found := pr.path.Eval(docs.JSONAt(row))
			emit(row, v, found, false)
		}
	}
	return nil
}

// resolver returns the per-row path lookup. A constant column resolves
// once, and a malformed constant fails the batch rather than the row.
func (s *Scope) resolver(paths *column.Texts) (func(row int) (pathRow, error), error) {
	if paths.IsConst() {
		pr, err := s.compileAt(paths, 0)
		if err != nil {
			return nil, err
		}
		return func(int) (pathRow, error) { return pr, nil }, nil
	}
	return func(row int) (pathRow, error) { return s.compileAt(paths, row) }, nil
}

func (s *Scope) compileAt(paths *column.Texts, row int) (pathRow, error) {
	if paths.IsNull(row) {
		return pathRow{null: true}, nil
	}
	text := paths.Value(row)
	if text == "" {
		return pathRow{empty: true}, nil
	}
	if s.constPath != nil && paths.IsConst() {
		return pathRow{path: s.constPath}, nil
	}
	p, err := jsonpath.Compile(text)
	if err != nil {
		return pathRow{}, fmt.Errorf("%w: path %q: %w", ErrDataQuality, text, err)
	}
	return pathRow{path: p}, nil
}

// evalFlattenedRows queries a flattened column. The whole batch shares
// one path so every row routes to the same sub-column; per-row or null
// path arguments cannot be served without reconstructing and are
// rejected.
func (s *Scope) evalFlattenedRows(fc *flatjson.Column, paths *column.Texts, emit emitFunc) error {
	if fc.Len() == 0 {
		return nil
	}

	pr, err := s.flatPath(fc, paths)
	if err != nil {
		return err
	}

	for row := 0; row < fc.Len(); row++ {
		switch {
		case fc.IsNull(row):
			emit(row, jsonval.Value{}, false, true)
		case pr.empty:
			emit(row, jsonval.Value{}, false, false)
		default:
			v, found, ferr := fc.Eval(row, pr.path, s.opts.LazyDynamicFlattening)
			if ferr != nil {
				// Strict-schema violations abort the batch.
				return fmt.Errorf("%w: %w", ErrInvalidArgument, ferr)
			}
			emit(row, v, found, false)
		}
	}
	return nil
}

func (s *Scope) flatPath(fc *flatjson.Column, paths *column.Texts) (pathRow, error) {
	if paths == nil {
		return pathRow{}, fmt.Errorf("%w: flattened source needs a path column", ErrInvalidArgument)
	}
	if !paths.IsConst() {
		if paths.Len() != fc.Len() {
			return pathRow{}, fmt.Errorf("%w: %d rows against %d paths", ErrInvalidArgument, fc.Len(), paths.Len())
		}
		for row := 0; row < paths.Len(); row++ {
			if paths.IsNull(row) {
				return pathRow{}, fmt.Errorf("%w: flattened source needs a non-null path", ErrInvalidArgument)
			}
			if paths.Value(row) != paths.Value(0) {
				return pathRow{}, fmt.Errorf("%w: flattened source needs one path for the whole batch", ErrInvalidArgument)
			}
		}
	} else if paths.IsNull(0) {
		return pathRow{}, fmt.Errorf("%w: flattened source needs a non-null path", ErrInvalidArgument)
	}

	text := paths.Value(0)
	if text == "" {
		return pathRow{empty: true}, nil
	}
	if s.constPath != nil && paths.IsConst() {
		return pathRow{path: s.constPath}, nil
	}
	p, err := jsonpath.Compile(text)
	if err != nil {
		return pathRow{}, fmt.Errorf("%w: path %q: %w", ErrDataQuality, text, err)
	}
	return pathRow{path: p}, nil
}
