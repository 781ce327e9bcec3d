package column

import (
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// Texts is a nullable string column. Document text and path arguments
// arrive as Texts, either per-row or constant across the batch. Append
// must not be mixed with the constant constructors.
type Texts struct {
	values    []string
	nulls     []bool
	constant  bool
	constVal  string
	constNull bool
	length    int
}

func NewTexts() *Texts { return &Texts{} }

// ConstText builds a column presenting value at every one of n rows.
func ConstText(value string, n int) *Texts {
	return &Texts{constant: true, constVal: value, length: n}
}

// ConstNullText builds a column presenting null at every one of n rows.
func ConstNullText(n int) *Texts {
	return &Texts{constant: true, constNull: true, length: n}
}

func (c *Texts) Append(v string) {
	c.values = append(c.values, v)
	c.nulls = append(c.nulls, false)
}

func (c *Texts) AppendNull() {
	c.values = append(c.values, "")
	c.nulls = append(c.nulls, true)
}

// IsConst reports whether every row shares one value decided before the
// batch, which lets prepare compile a path argument exactly once.
func (c *Texts) IsConst() bool { return c.constant }

func (c *Texts) Len() int {
	if c.constant {
		return c.length
	}
	return len(c.values)
}

func (c *Texts) IsNull(i int) bool {
	if c.constant {
		return c.constNull
	}
	return c.nulls[i]
}

func (c *Texts) Nulls() int {
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

func (c *Texts) Value(i int) string {
	if c.constant {
		return c.constVal
	}
	return c.values[i]
}

// JSONAt views cell i as a JSON string holding the text verbatim.
// Parsing text into a document is a separate operation.
func (c *Texts) JSONAt(i int) jsonval.Value {
	if c.IsNull(i) {
		return jsonval.Null()
	}
	return jsonval.FromString(c.Value(i))
}
