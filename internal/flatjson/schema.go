package flatjson

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/tenglei/jsoncol/internal/column"
)

// Field is one flattened top-level key and the cell kind its sub-column
// stores. KindJSON keeps the value nested; narrower kinds store the
// matching scalar and null out anything else.
type Field struct {
	Key  string
	Kind column.Kind
}

// Schema is the ordered set of top-level keys a column is flattened on.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema validates the target keys: at least one, none empty, no
// duplicates.
func NewSchema(fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no target keys", ErrSchema)
	}

	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if f.Key == "" {
			return nil, fmt.Errorf("%w: empty target key at position %d", ErrSchema, i)
		}
		if _, dup := index[f.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate target key %q", ErrSchema, f.Key)
		}
		index[f.Key] = i
	}
	return &Schema{fields: fields, index: index}, nil
}

// Fields returns the schema fields in order.
func (s *Schema) Fields() []Field { return s.fields }

// Keys returns the flattened key names in order.
func (s *Schema) Keys() []string {
	return lo.Map(s.fields, func(f Field, _ int) string { return f.Key })
}

// Index reports the position of key in the schema.
func (s *Schema) Index(key string) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}

func (s *Schema) String() string {
	parts := lo.Map(s.fields, func(f Field, _ int) string {
		return fmt.Sprintf("%s(%s)", f.Key, f.Kind)
	})
	return fmt.Sprintf("%v", parts)
}
