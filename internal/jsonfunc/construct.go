package jsonfunc

import (
	"fmt"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// ParseJSON decodes raw text into a JSON column; malformed rows degrade
// to null.
func (s *Scope) ParseJSON(texts *column.Texts) *column.JSONs {
	out := column.NewJSONs()
	for row := 0; row < texts.Len(); row++ {
		if texts.IsNull(row) {
			out.AppendNull()
			continue
		}
		v, err := jsonval.ParseString(texts.Value(row))
		if err != nil {
			s.degrade(row, fmt.Errorf("%w: %w", ErrDataQuality, err))
			out.AppendNull()
			continue
		}
		out.Append(v)
	}
	return out
}

// BuildArray assembles one array per row from the argument cells, in
// argument order. Null argument cells become JSON null elements; no
// arguments build empty arrays.
func (s *Scope) BuildArray(rows int, args ...column.Cell) (*column.JSONs, error) {
	if err := checkShape(rows, args); err != nil {
		return nil, err
	}

	out := column.NewJSONs()
	for row := 0; row < rows; row++ {
		elems := make([]jsonval.Value, len(args))
		for i, arg := range args {
			elems[i] = arg.JSONAt(row)
		}
		out.Append(jsonval.NewArray(elems))
	}
	return out, nil
}

// BuildObject assembles one object per row from alternating key and
// value cells, preserving argument order and duplicate keys. An odd
// argument list pairs the trailing key with JSON null. A null key cell
// nulls the row; an empty key text degrades it.
func (s *Scope) BuildObject(rows int, args ...column.Cell) (*column.JSONs, error) {
	if err := checkShape(rows, args); err != nil {
		return nil, err
	}

	out := column.NewJSONs()
	for row := 0; row < rows; row++ {
		pairs := make([]jsonval.Pair, 0, (len(args)+1)/2)
		null := false
		for i := 0; i < len(args) && !null; i += 2 {
			if args[i].IsNull(row) {
				null = true
				continue
			}
			key := objectKey(args[i].JSONAt(row))
			if key == "" {
				s.degrade(row, fmt.Errorf("%w: empty object key", ErrDataQuality))
				null = true
				continue
			}
			v := jsonval.Null()
			if i+1 < len(args) {
				v = args[i+1].JSONAt(row)
			}
			pairs = append(pairs, jsonval.Pair{Key: key, Value: v})
		}
		if null {
			out.AppendNull()
			continue
		}
		out.Append(jsonval.NewObject(pairs))
	}
	return out, nil
}

// ScalarToJSON lifts any cell into a JSON column. Null cells stay null
// rows.
func (s *Scope) ScalarToJSON(cell column.Cell) *column.JSONs {
	out := column.NewJSONs()
	for row := 0; row < cell.Len(); row++ {
		if cell.IsNull(row) {
			out.AppendNull()
			continue
		}
		out.Append(cell.JSONAt(row))
	}
	return out
}

// StructToJSON casts a struct column into objects keyed by field name
// in declaration order. Null field cells become JSON null members.
func (s *Scope) StructToJSON(st *column.Structs) *column.JSONs {
	out := column.NewJSONs()
	names := st.Names()
	for row := 0; row < st.Len(); row++ {
		if st.IsNull(row) {
			out.AppendNull()
			continue
		}
		pairs := make([]jsonval.Pair, len(names))
		for j, name := range names {
			pairs[j] = jsonval.Pair{Key: name, Value: st.Field(j).JSONAt(row)}
		}
		out.Append(jsonval.NewObject(pairs))
	}
	return out
}

// MapToJSON casts a map column into objects keyed by the stringified
// key: string keys verbatim, anything else rendered canonically.
// Entries whose key is null or stringifies empty are dropped.
func (s *Scope) MapToJSON(m *column.Maps) *column.JSONs {
	out := column.NewJSONs()
	keys, values := m.Keys(), m.Values()
	for row := 0; row < m.Len(); row++ {
		if m.IsNull(row) {
			out.AppendNull()
			continue
		}
		start, end := m.Entries(row)
		pairs := make([]jsonval.Pair, 0, end-start)
		for k := start; k < end; k++ {
			if keys.IsNull(k) {
				continue
			}
			key := objectKey(keys.JSONAt(k))
			if key == "" {
				continue
			}
			pairs = append(pairs, jsonval.Pair{Key: key, Value: values.JSONAt(k)})
		}
		out.Append(jsonval.NewObject(pairs))
	}
	return out
}

func checkShape(rows int, args []column.Cell) error {
	if rows < 0 {
		return fmt.Errorf("%w: negative row count %d", ErrInvalidArgument, rows)
	}
	for i, arg := range args {
		if arg.Len() != rows {
			return fmt.Errorf("%w: argument %d has %d rows, want %d", ErrInvalidArgument, i, arg.Len(), rows)
		}
	}
	return nil
}

// objectKey stringifies a constructed object's key: string payloads
// verbatim, everything else in canonical text form.
func objectKey(v jsonval.Value) string {
	if v.Type() == jsonval.TypeString {
		return v.Str()
	}
	return v.String()
}
