package flatjson

import (
	"fmt"

	"github.com/tenglei/jsoncol/internal/column"
	"github.com/tenglei/jsoncol/internal/jsonpath"
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// subColumn is one flattened key's storage: a typed column plus the
// conversion applied when a top-level value is moved into it.
type subColumn interface {
	column.Cell
	appendValue(v jsonval.Value)
	appendNull()
}

// Column is a flattened JSON column: one sub-column per schema field
// plus a remainder holding everything the schema does not address.
//
// Object rows store their non-flattened pairs in the remainder as a
// fresh object, so a key query can skip reconstruction. Rows that are
// not objects at the top level keep the whole document in the remainder
// and null out every sub-column, which keeps reconstruction lossless.
// A null remainder cell marks a null row.
type Column struct {
	schema    *Schema
	subs      []subColumn
	remainder *column.JSONs
}

// Flatten decomposes docs along schema. Constant columns cannot be
// flattened; batches fixed to one document are evaluated in plain form.
func Flatten(docs *column.JSONs, schema *Schema) (*Column, error) {
	if schema == nil || len(schema.fields) == 0 {
		return nil, fmt.Errorf("%w: no target keys", ErrSchema)
	}
	if docs.IsConst() {
		return nil, ErrConstColumn
	}

	c := &Column{
		schema:    schema,
		subs:      make([]subColumn, len(schema.fields)),
		remainder: column.NewJSONs(),
	}
	for i, f := range schema.fields {
		c.subs[i] = newSubColumn(f.Kind)
	}

	for row := 0; row < docs.Len(); row++ {
		if docs.IsNull(row) {
			c.appendNullRow()
			continue
		}
		c.appendRow(docs.Value(row))
	}
	return c, nil
}

func newSubColumn(kind column.Kind) subColumn {
	switch kind {
	case column.KindBool:
		return &boolSub{column.NewBools()}
	case column.KindInt:
		return &intSub{column.NewInt64s()}
	case column.KindDouble:
		return &doubleSub{column.NewFloat64s()}
	case column.KindString:
		return &stringSub{column.NewTexts()}
	default:
		return &jsonSub{column.NewJSONs()}
	}
}

func (c *Column) appendNullRow() {
	for _, s := range c.subs {
		s.appendNull()
	}
	c.remainder.AppendNull()
}

func (c *Column) appendRow(doc jsonval.Value) {
	if doc.Type() != jsonval.TypeObject {
		for _, s := range c.subs {
			s.appendNull()
		}
		c.remainder.Append(doc)
		return
	}

	taken := make([]bool, len(c.subs))
	var rest []jsonval.Pair
	for i := 0; i < doc.Count(); i++ {
		key, v := doc.Entry(i)
		if j, ok := c.schema.Index(key); ok && !taken[j] {
			c.subs[j].appendValue(v)
			taken[j] = true
			continue
		}
		// Non-schema keys and duplicate occurrences past the first stay
		// in the remainder so reconstruction loses nothing.
		rest = append(rest, jsonval.Pair{Key: key, Value: v})
	}
	for j, got := range taken {
		if !got {
			c.subs[j].appendNull()
		}
	}
	c.remainder.Append(jsonval.NewObject(rest))
}

// Len returns the row count.
func (c *Column) Len() int { return c.remainder.Len() }

// IsNull reports whether row i held a null document.
func (c *Column) IsNull(i int) bool { return c.remainder.IsNull(i) }

// Schema returns the flattening schema.
func (c *Column) Schema() *Schema { return c.schema }

// Sub returns the sub-column for schema field j.
func (c *Column) Sub(j int) column.Cell { return c.subs[j] }

// Remainder returns the remainder column.
func (c *Column) Remainder() *column.JSONs { return c.remainder }

// Value reconstructs row i into one document: flattened keys first in
// schema order, then the remainder pairs in original order. Queries
// against the reconstruction agree with queries against the original
// document, modulo top-level key order between the two groups.
func (c *Column) Value(i int) jsonval.Value {
	if c.remainder.IsNull(i) {
		return jsonval.Null()
	}
	rem := c.remainder.Value(i)
	if rem.Type() != jsonval.TypeObject {
		return rem
	}

	pairs := make([]jsonval.Pair, 0, len(c.subs)+rem.Count())
	for j, s := range c.subs {
		if s.IsNull(i) {
			continue
		}
		pairs = append(pairs, jsonval.Pair{Key: c.schema.fields[j].Key, Value: s.JSONAt(i)})
	}
	for k := 0; k < rem.Count(); k++ {
		key, v := rem.Entry(k)
		pairs = append(pairs, jsonval.Pair{Key: key, Value: v})
	}
	return jsonval.NewObject(pairs)
}

// JSONAt implements column.Cell over the reconstruction.
func (c *Column) JSONAt(i int) jsonval.Value { return c.Value(i) }

// Eval resolves path against row i without reconstructing when the
// path's first step names a schema key: the query reads that sub-column
// directly. A first key outside the schema either falls back to the
// remainder (lazy) or fails with ErrUnknownKey (strict). Index, wildcard
// and slice leads range over keys the schema does not individually
// address, so they evaluate against the full reconstruction.
func (c *Column) Eval(i int, p *jsonpath.Path, lazy bool) (jsonval.Value, bool, error) {
	if c.remainder.IsNull(i) {
		return jsonval.Value{}, false, nil
	}

	steps := p.Steps()
	if len(steps) == 0 {
		return c.Value(i), true, nil
	}

	if first := steps[0]; first.Kind == jsonpath.StepKey {
		if j, ok := c.schema.Index(first.Key); ok {
			if c.subs[j].IsNull(i) {
				return jsonval.Value{}, false, nil
			}
			v, found := jsonpath.EvalSteps(c.subs[j].JSONAt(i), steps[1:])
			return v, found, nil
		}
		if !lazy {
			return jsonval.Value{}, false, fmt.Errorf("%w: %q", ErrUnknownKey, first.Key)
		}
		v, found := jsonpath.EvalSteps(c.remainder.Value(i), steps)
		return v, found, nil
	}

	v, found := jsonpath.EvalSteps(c.Value(i), steps)
	return v, found, nil
}

type jsonSub struct{ *column.JSONs }

func (s *jsonSub) appendValue(v jsonval.Value) { s.Append(v) }
func (s *jsonSub) appendNull()                 { s.AppendNull() }

type boolSub struct{ *column.Bools }

func (s *boolSub) appendValue(v jsonval.Value) {
	if v.Type() == jsonval.TypeBool {
		s.Append(v.Bool())
		return
	}
	s.AppendNull()
}
func (s *boolSub) appendNull() { s.AppendNull() }

type intSub struct{ *column.Int64s }

func (s *intSub) appendValue(v jsonval.Value) {
	if v.Type() == jsonval.TypeInt {
		s.Append(v.Int64())
		return
	}
	s.AppendNull()
}
func (s *intSub) appendNull() { s.AppendNull() }

type doubleSub struct{ *column.Float64s }

func (s *doubleSub) appendValue(v jsonval.Value) {
	if v.Type() == jsonval.TypeDouble {
		s.Append(v.Float64())
		return
	}
	s.AppendNull()
}
func (s *doubleSub) appendNull() { s.AppendNull() }

type stringSub struct{ *column.Texts }

func (s *stringSub) appendValue(v jsonval.Value) {
	if v.Type() == jsonval.TypeString {
		s.Append(v.Str())
		return
	}
	s.AppendNull()
}
func (s *stringSub) appendNull() { s.AppendNull() }
