package jsonval

import (
	"math"
	"strconv"
)

// String renders v as canonical JSON text: object keys in stored order, one
// space after ':' and ',', shortest round-trippable float form.
func (v Value) String() string {
	return string(v.appendText(make([]byte, 0, 64)))
}

func (v Value) appendText(dst []byte) []byte {
	switch v.tag {
	case tagTrue:
		return append(dst, "true"...)
	case tagFalse:
		return append(dst, "false"...)
	case tagInt:
		return strconv.AppendInt(dst, v.Int64(), 10)
	case tagDouble:
		return appendDouble(dst, v.Float64())
	case tagString:
		return appendQuoted(dst, v.Str())
	case tagArray:
		dst = append(dst, '[')
		n := v.Count()
		for i := 0; i < n; i++ {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			dst = v.Elem(i).appendText(dst)
		}
		return append(dst, ']')
	case tagObject:
		dst = append(dst, '{')
		n := v.Count()
		for i := 0; i < n; i++ {
			if i > 0 {
				dst = append(dst, ", "...)
			}
			key, val := v.Entry(i)
			dst = appendQuoted(dst, key)
			dst = append(dst, ": "...)
			dst = val.appendText(dst)
		}
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

func appendDouble(dst []byte, f float64) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	return strconv.AppendFloat(dst, f, format, -1, 64)
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a JSON string literal. Escaping is limited to
// what JSON requires; UTF-8 passes through verbatim.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}
