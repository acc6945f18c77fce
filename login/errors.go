package login

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DeserializationError reports a payload that could not be decoded into a
// login value: syntactically invalid JSON, a missing required key, or a key
// holding a value of the wrong type. It is the only error this package
// produces.
type DeserializationError struct {
	// Field is the offending JSON key, empty when the document itself is
	// malformed.
	Field string
	// Reason is a short description of what was wrong.
	Reason string
	// Err is the underlying decoder error, if one exists.
	Err error
}

func (e *DeserializationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("login: field %q: %s", e.Field, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("login: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("login: %s", e.Reason)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

// asDeserializationError passes *DeserializationError values through and
// wraps anything else, such as the syntax errors encoding/json raises
// before a custom unmarshaler ever runs.
func asDeserializationError(err error) error {
	var derr *DeserializationError
	if errors.As(err, &derr) {
		return derr
	}
	return &DeserializationError{Reason: "invalid JSON", Err: err}
}

// decodeObject parses data as a JSON object with raw values, so that the
// callers can demand required keys and ignore unknown ones.
func decodeObject(data []byte) (map[string]json.RawMessage, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, &DeserializationError{Reason: "not a JSON object", Err: err}
	}
	return obj, nil
}

// stringField extracts a required string value from a decoded object.
// Absence must fail loudly; defaulting to "" would hide a broken payload.
func stringField(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", &DeserializationError{Field: key, Reason: "missing"}
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &DeserializationError{Field: key, Reason: "not a string", Err: err}
	}
	if value == nil {
		return "", &DeserializationError{Field: key, Reason: "not a string"}
	}
	return *value, nil
}
