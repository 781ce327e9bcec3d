package jsonfunc

import (
	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// Exists reports per row whether the path resolves against the
// document. A stored JSON null is a value and exists; a null document
// or null path nulls the row; the empty path text exists nowhere.
func (s *Scope) Exists(docs column.Cell, paths *column.Texts) (*column.Bools, error) {
	out := column.NewBools()
	if err := s.evalRows(docs, paths, existsInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// Query extracts the path's target per row. Not-found is a null cell; a
// found JSON null stays a JSON null value, not a null cell.
func (s *Scope) Query(docs column.Cell, paths *column.Texts) (*column.JSONs, error) {
	out := column.NewJSONs()
	if err := s.evalRows(docs, paths, queryInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// Length counts the target's members: element count for arrays, entry
// count for objects, 1 for any scalar including JSON null. A nil paths
// column measures the whole document; with a path, not-found counts 0.
func (s *Scope) Length(docs column.Cell, paths *column.Texts) (*column.Int64s, error) {
	out := column.NewInt64s()
	if paths == nil {
		for row := 0; row < docs.Len(); row++ {
			if docs.IsNull(row) {
				out.AppendNull()
				continue
			}
			out.Append(lengthOf(docs.JSONAt(row)))
		}
		return out, nil
	}

	err := s.evalRows(docs, paths, func(_ int, v jsonval.Value, found, null bool) {
		switch {
		case null:
			out.AppendNull()
		case !found:
			out.Append(0)
		default:
			out.Append(lengthOf(v))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Keys lists an object's keys in document order, duplicates included;
// any non-object target is a null cell. A nil paths column reads the
// whole document.
func (s *Scope) Keys(docs column.Cell, paths *column.Texts) (*column.JSONs, error) {
	out := column.NewJSONs()
	if paths == nil {
		for row := 0; row < docs.Len(); row++ {
			if docs.IsNull(row) {
				out.AppendNull()
				continue
			}
			appendKeys(out, docs.JSONAt(row))
		}
		return out, nil
	}

	err := s.evalRows(docs, paths, func(_ int, v jsonval.Value, found, null bool) {
		if null || !found {
			out.AppendNull()
			return
		}
		appendKeys(out, v)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func existsInto(out *column.Bools) emitFunc {
	return func(_ int, _ jsonval.Value, found, null bool) {
		if null {
			out.AppendNull()
			return
		}
		out.Append(found)
	}
}

func queryInto(out *column.JSONs) emitFunc {
	return func(_ int, v jsonval.Value, found, null bool) {
		if null || !found {
			out.AppendNull()
			return
		}
		out.Append(v)
	}
}

func lengthOf(v jsonval.Value) int64 {
	switch v.Type() {
	case jsonval.TypeObject, jsonval.TypeArray:
		return int64(v.Count())
	default:
		return 1
	}
}

func appendKeys(out *column.JSONs, v jsonval.Value) {
	if v.Type() != jsonval.TypeObject {
		out.AppendNull()
		return
	}
	keys := make([]jsonval.Value, v.Count())
	for i := range keys {
		key, _ := v.Entry(i)
		keys[i] = jsonval.FromString(key)
	}
	out.Append(jsonval.NewArray(keys))
}
