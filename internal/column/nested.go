package column

import (
	"fmt"
)

// Structs models a struct-typed input column: named field columns of one
// shared length plus per-row validity for the struct cells themselves.
type Structs struct {
	names  []string
	fields []Cell
	nulls  []bool
}

// NewStructs wraps parallel field columns. nulls marks rows where the
// whole struct cell is null; it may be nil when no row is.
func NewStructs(names []string, fields []Cell, nulls []bool) (*Structs, error) {
	if len(fields) == 0 || len(names) != len(fields) {
		return nil, fmt.Errorf("%w: %d names for %d fields", ErrShape, len(names), len(fields))
	}
	n := fields[0].Len()
	for i, f := range fields {
		if f.Len() != n {
			return nil, fmt.Errorf("%w: field %q has %d rows, want %d", ErrShape, names[i], f.Len(), n)
		}
	}
	if nulls != nil && len(nulls) != n {
		return nil, fmt.Errorf("%w: %d validity rows for %d field rows", ErrShape, len(nulls), n)
	}
	return &Structs{names: names, fields: fields, nulls: nulls}, nil
}

func (c *Structs) Len() int { return c.fields[0].Len() }

func (c *Structs) IsNull(i int) bool { return c.nulls != nil && c.nulls[i] }

// Names returns the field names in declaration order.
func (c *Structs) Names() []string { return c.names }

// Field returns field column j.
func (c *Structs) Field(j int) Cell { return c.fields[j] }

// Maps models a map-typed input column: parallel key and value columns
// plus offsets, where offsets[i] and offsets[i+1] bound row i's entries.
type Maps struct {
	keys    Cell
	values  Cell
	offsets []int
	nulls   []bool
}

// NewMaps wraps parallel entry columns. len(offsets) is the row count
// plus one; nulls may be nil when no row is null.
func NewMaps(keys, values Cell, offsets []int, nulls []bool) (*Maps, error) {
	if len(offsets) == 0 {
		return nil, fmt.Errorf("%w: offsets must hold at least the terminating bound", ErrShape)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, fmt.Errorf("%w: offsets must not decrease", ErrShape)
		}
	}
	last := offsets[len(offsets)-1]
	if keys.Len() != last || values.Len() != last {
		return nil, fmt.Errorf("%w: %d keys and %d values for %d entries", ErrShape, keys.Len(), values.Len(), last)
	}
	if nulls != nil && len(nulls) != len(offsets)-1 {
		return nil, fmt.Errorf("%w: %d validity rows for %d rows", ErrShape, len(nulls), len(offsets)-1)
	}
	return &Maps{keys: keys, values: values, offsets: offsets, nulls: nulls}, nil
}

func (c *Maps) Len() int { return len(c.offsets) - 1 }

func (c *Maps) IsNull(i int) bool { return c.nulls != nil && c.nulls[i] }

// Entries bounds row i's entries in the key and value columns.
func (c *Maps) Entries(i int) (int, int) { return c.offsets[i], c.offsets[i+1] }

func (c *Maps) Keys() Cell { return c.keys }

func (c *Maps) Values() Cell { return c.values }
