package flatjson

import "errors"

var (
	// ErrSchema indicates an unusable flattening schema.
	ErrSchema = errors.New("flatjson: invalid schema")

	// ErrUnknownKey indicates a strict-mode query whose first step names
	// a key outside the flattened schema.
	ErrUnknownKey = errors.New("flatjson: path names a key outside the flattened schema")

	// ErrConstColumn indicates an attempt to flatten a constant column.
	ErrConstColumn = errors.New("flatjson: constant JSON columns cannot be flattened")

	// ErrNoFlattenableKeys indicates derivation found no key frequent
	// enough to flatten.
	ErrNoFlattenableKeys = errors.New("flatjson: no key appears often enough to flatten")
)
