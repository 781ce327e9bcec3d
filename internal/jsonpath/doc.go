package jsonpath

// Package jsonpath compiles and evaluates the path dialect the JSON query
// functions use to address binary JSON values.
//
// Supported steps:
//   - Child key `.k1`, quoted when the key contains special characters: $."k1.k2"
//   - Array index `[N]`, wildcard `[*]` (also `.*`), half-open slice `[a:b]`
//
// The dialect is deliberately small: no descendant operator, no unions, no
// filters. The rooted spelling "$.k1" and the bare spelling "k1" compile to
// the same steps. Evaluation never fails on data shape: every mismatch is
// the "not found" terminal state, which callers surface as a null cell.
