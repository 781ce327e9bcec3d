package jsonfunc

import (
	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// GetInt extracts the path's target as int64 per row. Doubles truncate;
// any other node, not-found and a found JSON null are null cells.
func (s *Scope) GetInt(docs column.Cell, paths *column.Texts) (*column.Int64s, error) {
	out := column.NewInt64s()
	if err := s.evalRows(docs, paths, getIntInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDouble extracts the path's target as float64 per row. Ints widen.
func (s *Scope) GetDouble(docs column.Cell, paths *column.Texts) (*column.Float64s, error) {
	out := column.NewFloat64s()
	if err := s.evalRows(docs, paths, getDoubleInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBool extracts the path's target as bool per row. Numbers map to
// "not zero".
func (s *Scope) GetBool(docs column.Cell, paths *column.Texts) (*column.Bools, error) {
	out := column.NewBools()
	if err := s.evalRows(docs, paths, getBoolInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetString extracts the path's target as text per row: string payloads
// unquoted, every other node rendered canonically, JSON null a null
// cell.
func (s *Scope) GetString(docs column.Cell, paths *column.Texts) (*column.Texts, error) {
	out := column.NewTexts()
	if err := s.evalRows(docs, paths, getStringInto(out)); err != nil {
		return nil, err
	}
	return out, nil
}

func getIntInto(out *column.Int64s) emitFunc {
	return func(_ int, v jsonval.Value, found, null bool) {
		if i, ok := asInt64(v); !null && found && ok {
			out.Append(i)
			return
		}
		out.AppendNull()
	}
}

func getDoubleInto(out *column.Float64s) emitFunc {
	return func(_ int, v jsonval.Value, found, null bool) {
		if f, ok := asFloat64(v); !null && found && ok {
			out.Append(f)
			return
		}
		out.AppendNull()
	}
}

func getBoolInto(out *column.Bools) emitFunc {
	return func(_ int, v jsonval.Value, found, null bool) {
		if b, ok := asBool(v); !null && found && ok {
			out.Append(b)
			return
		}
		out.AppendNull()
	}
}

func getStringInto(out *column.Texts) emitFunc {
	return func(_ int, v jsonval.Value, found, null bool) {
		if t, ok := asText(v); !null && found && ok {
			out.Append(t)
			return
		}
		out.AppendNull()
	}
}
