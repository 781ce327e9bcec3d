package jsonfunc

import "github.com/tenglei/jsoncol/internal/jsonval"

// asInt64 converts supported node types to int64. Doubles truncate
// toward zero.
func asInt64(v jsonval.Value) (int64, bool) {
	switch v.Type() {
	case jsonval.TypeInt:
		return v.Int64(), true
	case jsonval.TypeDouble:
		return int64(v.Float64()), true
	default:
		return 0, false
	}
}

// asFloat64 converts supported node types to float64.
func asFloat64(v jsonval.Value) (float64, bool) {
	switch v.Type() {
	case jsonval.TypeDouble:
		return v.Float64(), true
	case jsonval.TypeInt:
		return float64(v.Int64()), true
	default:
		return 0, false
	}
}

// asBool converts supported node types to bool. Numbers map to
// "not zero".
func asBool(v jsonval.Value) (bool, bool) {
	switch v.Type() {
	case jsonval.TypeBool:
		return v.Bool(), true
	case jsonval.TypeInt:
		return v.Int64() != 0, true
	case jsonval.TypeDouble:
		return v.Float64() != 0, true
	default:
		return false, false
	}
}

// asText returns string payloads unquoted and renders every other node
// canonically. JSON null is the one node with no text form.
func asText(v jsonval.Value) (string, bool) {
	switch v.Type() {
	case jsonval.TypeNull:
		return "", false
	case jsonval.TypeString:
		return v.Str(), true
	default:
		return v.String(), true
	}
}
