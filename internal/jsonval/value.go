package jsonval

import (
	"encoding/binary"
	"math"
)

// Type identifies the observable variant of a Value.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeDouble
	TypeString
	TypeArray
	TypeObject
)

// String returns the variant name used in logs and error messages.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Binary layout. A value is one tag byte plus a payload:
//
//	null/false/true  no payload
//	int              8 bytes little-endian
//	double           8 bytes IEEE-754 little-endian
//	string           uvarint byte length, then the bytes
//	array            header, entry table, value blob
//	object           header, key table, entry table, key blob, value blob
//
// Container header is count(uint32) + payload size(uint32). Entries are one
// child tag byte plus a uint32 parameter; for null/false/true the parameter
// is unused, otherwise it is the child payload offset relative to the start
// of the container payload. Object key table entries are offset(uint32) +
// length(uint32) into the key blob.
const (
	tagNull   = 0x00
	tagFalse  = 0x01
	tagTrue   = 0x02
	tagInt    = 0x03
	tagDouble = 0x04
	tagString = 0x05
	tagArray  = 0x06
	tagObject = 0x07

	headerSize   = 8
	entrySize    = 5
	keyEntrySize = 8
)

// Value is one immutable binary-encoded JSON value. The zero Value is the
// JSON null.
type Value struct {
	tag  byte
	data []byte
}

// Type reports the variant of v.
func (v Value) Type() Type {
	switch v.tag {
	case tagFalse, tagTrue:
		return TypeBool
	case tagInt:
		return TypeInt
	case tagDouble:
		return TypeDouble
	case tagString:
		return TypeString
	case tagArray:
		return TypeArray
	case tagObject:
		return TypeObject
	default:
		return TypeNull
	}
}

// IsNull reports whether v is the JSON null.
func (v Value) IsNull() bool { return v.tag == tagNull }

// Bool returns the payload of a bool value.
func (v Value) Bool() bool { return v.tag == tagTrue }

// Int64 returns the payload of an int value.
func (v Value) Int64() int64 {
	if v.tag != tagInt || len(v.data) < 8 {
		return 0
	}
	return int64(binary.LittleEndian.Uint64(v.data))
}

// Float64 returns the payload of a double value.
func (v Value) Float64() float64 {
	if v.tag != tagDouble || len(v.data) < 8 {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(v.data))
}

// Str returns the payload of a string value without quoting.
func (v Value) Str() string {
	if v.tag != tagString {
		return ""
	}
	n, w := binary.Uvarint(v.data)
	if w <= 0 {
		return ""
	}
	return string(v.data[w : w+int(n)])
}

// Count returns the element count of an array or the pair count of an
// object, and 0 for every scalar.
func (v Value) Count() int {
	if v.tag != tagArray && v.tag != tagObject {
		return 0
	}
	return int(binary.LittleEndian.Uint32(v.data))
}

// Elem returns element i of an array value. i must be within [0, Count()).
func (v Value) Elem(i int) Value {
	return v.childAt(headerSize + i*entrySize)
}

// Entry returns pair i of an object value in stored order.
func (v Value) Entry(i int) (string, Value) {
	return v.entryKey(i), v.entryValue(i)
}

// Lookup resolves key against an object value. When the object carries
// duplicate keys the first occurrence wins. The second result is false when
// v is not an object or the key is absent.
func (v Value) Lookup(key string) (Value, bool) {
	if v.tag != tagObject {
		return Value{}, false
	}
	n := v.Count()
	for i := 0; i < n; i++ {
		if v.entryKey(i) == key {
			return v.entryValue(i), true
		}
	}
	return Value{}, false
}

func (v Value) entryKey(i int) string {
	pos := headerSize + i*keyEntrySize
	off := binary.LittleEndian.Uint32(v.data[pos:])
	length := binary.LittleEndian.Uint32(v.data[pos+4:])
	return string(v.data[off : off+length])
}

func (v Value) entryValue(i int) Value {
	return v.childAt(headerSize + v.Count()*keyEntrySize + i*entrySize)
}

// childAt decodes the entry at byte position pos and slices the exact child
// payload out of the container payload.
func (v Value) childAt(pos int) Value {
	tag := v.data[pos]
	param := int(binary.LittleEndian.Uint32(v.data[pos+1:]))
	switch tag {
	case tagNull, tagFalse, tagTrue:
		return Value{tag: tag}
	case tagInt, tagDouble:
		return Value{tag: tag, data: v.data[param : param+8]}
	case tagString:
		n, w := binary.Uvarint(v.data[param:])
		return Value{tag: tag, data: v.data[param : param+w+int(n)]}
	default:
		size := int(binary.LittleEndian.Uint32(v.data[param+4:]))
		return Value{tag: tag, data: v.data[param : param+size]}
	}
}
