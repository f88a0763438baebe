package extractor

import (
	"errors"
	"strconv"

	"github.com/tidwall/gjson"
)

// Scalar lists the types a payload field can be coerced into.
type Scalar interface {
	int64 | uint64 | uint | float64 | string
}

var errNotDecimal = errors.New("not a plain decimal number")

// Coerce reads key from obj and converts it to T. The payload encodes most
// numbers as strings, so numeric targets accept either a JSON string or a
// JSON number; string targets accept only a JSON string.
func Coerce[T Scalar](obj gjson.Result, key string) (T, error) {
	var zero T

	v, ok := lookup(obj, key)
	if !ok {
		return zero, &ExtractionError{Key: key}
	}

	if _, wantString := any(zero).(string); wantString {
		if v.Type != gjson.String {
			return zero, &ExtractionError{Key: key, Found: v.Type.String()}
		}
		return any(v.Str).(T), nil
	}

	var raw string
	switch v.Type {
	case gjson.String:
		raw = v.Str
	case gjson.Number:
		raw = v.Raw
	default:
		return zero, &ExtractionError{Key: key, Found: v.Type.String()}
	}

	out, err := parseNumber[T](raw)
	if err != nil {
		return zero, &CoercionError{Key: key, Raw: raw, Err: err}
	}
	return out, nil
}

func parseNumber[T Scalar](raw string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		return any(n).(T), err
	case uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		return any(n).(T), err
	case uint:
		n, err := strconv.ParseUint(raw, 10, strconv.IntSize)
		return any(uint(n)).(T), err
	case float64:
		f, err := parseDecimal(raw)
		return any(f).(T), err
	}
	return zero, errNotDecimal
}

// parseDecimal accepts "123", "-1.5", "2e3" and rejects the extra forms
// strconv.ParseFloat understands (hex mantissas, inf, nan).
func parseDecimal(raw string) (float64, error) {
	if raw == "" {
		return 0, errNotDecimal
	}
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9':
		case c == '.', c == '-', c == '+', c == 'e', c == 'E':
		default:
			return 0, errNotDecimal
		}
	}
	return strconv.ParseFloat(raw, 64)
}

// fieldReader coerces a run of fields and keeps only the first failure, so
// a record can be read in one expression and checked once.
type fieldReader struct {
	err error
}

func read[T Scalar](r *fieldReader, obj gjson.Result, key string) T {
	var zero T
	if r.err != nil {
		return zero
	}
	v, err := Coerce[T](obj, key)
	if err != nil {
		r.err = err
		return zero
	}
	return v
}
