package jsonvalue

import (
	"math"
	"strconv"
	"strings"
)

// objectText is the default string form of any object.
const objectText = "[object Object]"

// Coerce returns the textual form of v that search matching compares
// against. It follows the default string conversion of a browser runtime:
//
//   - strings are returned verbatim
//   - numbers use FormatNumber
//   - booleans and null use their literal names
//   - arrays join the coercion of their items with "," (null items are empty)
//   - objects are always "[object Object]"
//
// Containers are therefore represented shallowly; an object never matches on
// its members' text.
func Coerce(v Value) string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return FormatNumber(v.num)
	case KindBoolean:
		if v.boolean {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	case KindObject:
		return objectText
	case KindArray:
		parts := make([]string, len(v.items))
		for i, item := range v.items {
			if item.kind == KindNull {
				continue
			}
			parts[i] = Coerce(item)
		}
		return strings.Join(parts, ",")
	}
	return ""
}

// FormatNumber renders f the way a browser prints numbers: the shortest
// representation that round-trips, in plain notation for magnitudes in
// [1e-6, 1e21) and exponent notation ("1e+21", "1.5e-7") otherwise.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
