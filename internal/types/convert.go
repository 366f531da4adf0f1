package types

import (
	"math"
	"strconv"
	"strings"
)

// IsMissing reports whether a cell holds no value: nil, NaN, or blank text.
func IsMissing(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	case string:
		return strings.TrimSpace(x) == ""
	case []byte:
		return strings.TrimSpace(string(x)) == ""
	default:
		return false
	}
}

// ToInt64 converts a cell value to an int64.
// Supports signed and unsigned integers, whole floats and numeric text.
// ok is false for missing values, booleans, fractional numbers and anything else.
func ToInt64(v interface{}) (int64, bool) {
	switch i := v.(type) {
	case int64:
		return i, true
	case int:
		return int64(i), true
	case int32:
		return int64(i), true
	case int16:
		return int64(i), true
	case int8:
		return int64(i), true
	case uint:
		return int64(i), true
	case uint64:
		if i > math.MaxInt64 {
			return 0, false
		}
		return int64(i), true
	case uint32:
		return int64(i), true
	case uint16:
		return int64(i), true
	case uint8:
		return int64(i), true
	case float64:
		return floatToInt64(i)
	case float32:
		return floatToInt64(float64(i))
	case string:
		return parseInt64(i)
	case []byte:
		return parseInt64(string(i))
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	// Spreadsheets often export whole numbers as "25.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt64(f)
}

// ToString returns the value of a text cell. ok is false for any other type.
func ToString(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	default:
		return "", false
	}
}

// falseWords are the text values read as false. Any other non-blank text is true.
var falseWords = map[string]bool{
	"false": true,
	"f":     true,
	"no":    true,
	"n":     true,
	"0":     true,
	"0.0":   true,
	"off":   true,
	"nan":   true,
}

// ToBool converts a cell value to a bool. Missing values are false.
func ToBool(v interface{}) bool {
	if IsMissing(v) {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return !falseWords[strings.ToLower(strings.TrimSpace(b))]
	case []byte:
		return !falseWords[strings.ToLower(strings.TrimSpace(string(b)))]
	case float64:
		return b != 0
	case float32:
		return b != 0
	default:
		if n, ok := ToInt64(v); ok {
			return n != 0
		}
		return false
	}
}
