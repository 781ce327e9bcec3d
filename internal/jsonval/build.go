package jsonval

import (
	"encoding/binary"
	"math"
)

// Pair is one ordered (key, value) member of an object under construction.
// Construction never deduplicates keys; emission order is preserved.
type Pair struct {
	Key   string
	Value Value
}

// Null returns the JSON null. The zero Value is equivalent.
func Null() Value { return Value{} }

// FromBool builds a bool value.
func FromBool(b bool) Value {
	if b {
		return Value{tag: tagTrue}
	}
	return Value{tag: tagFalse}
}

// FromInt64 builds an int value.
func FromInt64(i int64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, uint64(i))
	return Value{tag: tagInt, data: data}
}

// FromFloat64 builds a double value.
func FromFloat64(f float64) Value {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, math.Float64bits(f))
	return Value{tag: tagDouble, data: data}
}

// FromString builds a string value holding s verbatim.
func FromString(s string) Value {
	data := make([]byte, binary.MaxVarintLen64+len(s))
	w := binary.PutUvarint(data, uint64(len(s)))
	copy(data[w:], s)
	return Value{tag: tagString, data: data[:w+len(s)]}
}

// NewArray builds an array from elems in order.
func NewArray(elems []Value) Value {
	blobStart := headerSize + len(elems)*entrySize
	payload := make([]byte, blobStart, blobStart+childrenSize(elems))
	binary.LittleEndian.PutUint32(payload, uint32(len(elems)))
	for i, e := range elems {
		payload = putEntry(payload, headerSize+i*entrySize, e)
	}
	binary.LittleEndian.PutUint32(payload[4:], uint32(len(payload)))
	return Value{tag: tagArray, data: payload}
}

// NewObject builds an object from pairs in order, duplicates included.
func NewObject(pairs []Pair) Value {
	entryTable := headerSize + len(pairs)*keyEntrySize
	blobStart := entryTable + len(pairs)*entrySize
	payload := make([]byte, blobStart)
	binary.LittleEndian.PutUint32(payload, uint32(len(pairs)))
	for i, p := range pairs {
		pos := headerSize + i*keyEntrySize
		binary.LittleEndian.PutUint32(payload[pos:], uint32(len(payload)))
		binary.LittleEndian.PutUint32(payload[pos+4:], uint32(len(p.Key)))
		payload = append(payload, p.Key...)
	}
	for i, p := range pairs {
		payload = putEntry(payload, entryTable+i*entrySize, p.Value)
	}
	binary.LittleEndian.PutUint32(payload[4:], uint32(len(payload)))
	return Value{tag: tagObject, data: payload}
}

// putEntry fills the pre-allocated entry at pos and appends the child payload
// to the blob. Literal children carry no payload and keep a zero parameter.
func putEntry(payload []byte, pos int, child Value) []byte {
	payload[pos] = child.tag
	switch child.tag {
	case tagNull, tagFalse, tagTrue:
		return payload
	}
	binary.LittleEndian.PutUint32(payload[pos+1:], uint32(len(payload)))
	return append(payload, child.data...)
}

func childrenSize(elems []Value) int {
	total := 0
	for _, e := range elems {
		total += len(e.data)
	}
	return total
}
