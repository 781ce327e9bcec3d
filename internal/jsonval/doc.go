package jsonval

// Package jsonval owns the binary representation of one JSON document.
//
// A Value is a type tag plus a self-contained payload. Containers encode an
// entry table (child tag + payload offset, plus a key table for objects) in
// front of a value blob, so navigation slices into the payload instead of
// materializing children. Objects keep their pairs in construction order and
// may hold duplicate keys; Lookup resolves duplicates to the first occurrence.
//
// Values are immutable once constructed. Parse accepts strict JSON for text
// anchored on an object, array, or quoted string, and degrades bare non-JSON
// tokens to opaque string values; rendering preserves the int/double
// distinction of the source.
