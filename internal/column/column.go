package column

import (
	"errors"
	"fmt"

	"github.com/tenglei/jsoncol/internal/jsonval"
)

// ErrShape indicates structurally inconsistent column construction, such
// as field columns of differing lengths.
var ErrShape = errors.New("column: mismatched column shape")

// Kind enumerates the cell kinds flattened sub-columns and casts work
// with.
type Kind uint8

const (
	KindJSON Kind = iota
	KindBool
	KindInt
	KindDouble
	KindString
)

var kindNames = [...]string{"json", "bool", "int", "double", "string"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves the textual kind names used by schema flags and
// configuration files.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if s == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("column: unknown kind %q", s)
}

// Cell is the read surface casts and field conversions consume: any
// column whose cells can be viewed as JSON values. JSONAt returns the
// JSON null for null cells.
type Cell interface {
	Len() int
	IsNull(i int) bool
	JSONAt(i int) jsonval.Value
}
