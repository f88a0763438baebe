package extractor

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadNotFound matches every *PayloadNotFoundError.
	ErrPayloadNotFound = errors.New("payload not found")
	// ErrMalformedPayload is returned when the located payload is not valid JSON.
	ErrMalformedPayload = errors.New("malformed payload")
)

// MarkerReason says which marker the locator could not find.
type MarkerReason string

const (
	StartMarkerMissing MarkerReason = "start marker not found"
	EndMarkerMissing   MarkerReason = "end marker not found after start marker"
)

type PayloadNotFoundError struct {
	Reason MarkerReason
	Marker string
}

func (e *PayloadNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s (%q)", ErrPayloadNotFound, e.Reason, e.Marker)
}

func (e *PayloadNotFoundError) Is(target error) bool {
	return target == ErrPayloadNotFound
}

// MissingFieldError reports the navigation step that failed. Field is the
// segment that was expected, Path is where it was expected.
type MissingFieldError struct {
	Field string
	Path  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q at %s", e.Field, e.Path)
}

// ExtractionError means the key was absent or held a JSON value of the wrong
// shape for the requested type.
type ExtractionError struct {
	Key   string
	Found string
}

func (e *ExtractionError) Error() string {
	if e.Found == "" {
		return fmt.Sprintf("failed to extract %s: key not present", e.Key)
	}
	return fmt.Sprintf("failed to extract %s: unexpected JSON %s", e.Key, e.Found)
}

// CoercionError means the key held a string that does not parse as the
// requested numeric type.
type CoercionError struct {
	Key string
	Raw string
	Err error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("failed to convert %s value %q to numeric: %v", e.Key, e.Raw, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

type TimezoneError struct {
	Zone          string
	OffsetSeconds int
}

func (e *TimezoneError) Error() string {
	return fmt.Sprintf("invalid timezone offset for %s: %ds", e.Zone, e.OffsetSeconds)
}

// FieldName returns the payload key or navigation segment named by a
// field-level error, or "" for any other error.
func FieldName(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var extraction *ExtractionError
	if errors.As(err, &extraction) {
		return extraction.Key
	}
	var coercion *CoercionError
	if errors.As(err, &coercion) {
		return coercion.Key
	}
	return ""
}
