package jsonpath

import "errors"

// ErrSyntax indicates a path expression syntax error during compilation.
var ErrSyntax = errors.New("jsonpath: syntax error")
