package jsonval

import "errors"

var (
	// ErrParse indicates document text that is not valid JSON container,
	// string, or number syntax.
	ErrParse = errors.New("malformed JSON document")
)
