package jsonval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Parse decodes text into a Value.
//
// Text anchored on '{', '[' or '"' must be strict JSON; unterminated strings
// or containers, doubled commas, and trailing garbage are ErrParse. Bare
// tokens that fail strict parsing (a1, 1+1, nul) are stored as opaque string
// values, which is how loosely typed text-column input reaches the engine.
func Parse(text []byte) (Value, error) {
	return ParseString(string(text))
}

// ParseString is Parse for string input.
func ParseString(text string) (Value, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Value{}, fmt.Errorf("%w: empty text", ErrParse)
	}
	if gjson.Valid(trimmed) {
		return fromResult(gjson.Parse(trimmed)), nil
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return Value{}, fmt.Errorf("%w: %q", ErrParse, snippet(trimmed))
	}
	return FromString(trimmed), nil
}

// fromResult re-encodes a validated gjson tree. ForEach walks containers in
// document order and visits duplicate object keys individually, so the
// binary form keeps the source ordering.
func fromResult(r gjson.Result) Value {
	switch {
	case r.Type == gjson.Null:
		return Null()
	case r.Type == gjson.True:
		return FromBool(true)
	case r.Type == gjson.False:
		return FromBool(false)
	case r.Type == gjson.String:
		return FromString(r.Str)
	case r.Type == gjson.Number:
		return fromNumber(r.Raw)
	case r.IsArray():
		var elems []Value
		r.ForEach(func(_, item gjson.Result) bool {
			elems = append(elems, fromResult(item))
			return true
		})
		return NewArray(elems)
	case r.IsObject():
		var pairs []Pair
		r.ForEach(func(key, item gjson.Result) bool {
			pairs = append(pairs, Pair{Key: key.Str, Value: fromResult(item)})
			return true
		})
		return NewObject(pairs)
	default:
		return Null()
	}
}

// fromNumber keeps the int/double distinction of the source text. Integer
// literals beyond the int64 range degrade to double.
func fromNumber(raw string) Value {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return FromInt64(i)
		}
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return FromFloat64(f)
}

func snippet(s string) string {
	const max = 32
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
