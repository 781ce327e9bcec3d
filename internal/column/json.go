package column

import (
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// JSONs is a nullable column of binary JSON documents. Append must not
// be mixed with the constant constructors.
type JSONs struct {
	values    []jsonval.Value
	nulls     []bool
	constant  bool
	constVal  jsonval.Value
	constNull bool
	length    int
}

func NewJSONs() *JSONs { return &JSONs{} }

// ConstJSON builds a column presenting v at every one of n rows.
func ConstJSON(v jsonval.Value, n int) *JSONs {
	return &JSONs{constant: true, constVal: v, length: n}
}

// ConstNullJSON builds a column presenting null at every one of n rows.
func ConstNullJSON(n int) *JSONs {
	return &JSONs{constant: true, constNull: true, length: n}
}

func (c *JSONs) Append(v jsonval.Value) {
	c.values = append(c.values, v)
	c.nulls = append(c.nulls, false)
}

func (c *JSONs) AppendNull() {
	c.values = append(c.values, jsonval.Value{})
	c.nulls = append(c.nulls, true)
}

// IsConst reports whether every row shares one document decided before
// the batch.
func (c *JSONs) IsConst() bool { return c.constant }

func (c *JSONs) Len() int {
	if c.constant {
		return c.length
	}
	return len(c.values)
}

func (c *JSONs) IsNull(i int) bool {
	if c.constant {
		return c.constNull
	}
	return c.nulls[i]
}

func (c *JSONs) Nulls() int {
	if c.constant {
		if c.constNull {
			return c.length
		}
		return 0
	}
	n := 0
	for _, isNull := range c.nulls {
		if isNull {
			n++
		}
	}
	return n
}

// Value returns the document at row i. The JSON null stands in for null
// cells; IsNull distinguishes the two.
func (c *JSONs) Value(i int) jsonval.Value {
	if c.constant {
		return c.constVal
	}
	return c.values[i]
}

func (c *JSONs) JSONAt(i int) jsonval.Value { return c.Value(i) }
