package column

import (
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// scalars is the shared append/validity base for fixed-width columns.
type scalars[T any] struct {
	values []T
	nulls  []bool
}

func (c *scalars[T]) Append(v T) {
	c.values = append(c.values, v)
	c.nulls = append(c.nulls, false)
}

// AppendNull adds a null cell holding the zero value.
func (c *scalars[T]) AppendNull() {
	var zero T
	c.values = append(c.values, zero)
	c.nulls = append(c.nulls, true)
}

func (c *scalars[T]) Len() int { return len(c.values) }

func (c *scalars[T]) IsNull(i int) bool { return c.nulls[i] }

// Nulls returns the number of null cells.
func (c *scalars[T]) Nulls() int {
	n := 0
	for _, isNull := range c.nulls {
		if isNull {
			n++
		}
	}
	return n
}

// Value returns cell i. The zero value stands in for null cells.
func (c *scalars[T]) Value(i int) T { return c.values[i] }

// Bools is a nullable boolean column.
type Bools struct{ scalars[bool] }

func NewBools() *Bools { return &Bools{} }

func (c *Bools) JSONAt(i int) jsonval.Value {
	if c.IsNull(i) {
		return jsonval.Null()
	}
	return jsonval.FromBool(c.Value(i))
}

// Int64s is a nullable 64-bit integer column.
type Int64s struct{ scalars[int64] }

func NewInt64s() *Int64s { return &Int64s{} }

func (c *Int64s) JSONAt(i int) jsonval.Value {
	if c.IsNull(i) {
		return jsonval.Null()
	}
	return jsonval.FromInt64(c.Value(i))
}

// Float64s is a nullable double column.
type Float64s struct{ scalars[float64] }

func NewFloat64s() *Float64s { return &Float64s{} }

func (c *Float64s) JSONAt(i int) jsonval.Value {
	if c.IsNull(i) {
		return jsonval.Null()
	}
	return jsonval.FromFloat64(c.Value(i))
}
