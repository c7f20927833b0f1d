package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const invalidValue = "Invalid value"

// FieldError describes one rejected input field.
type FieldError struct {
	Type     string      `json:"type"`
	Value    interface{} `json:"value,omitempty"`
	Msg      string      `json:"msg"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
}

// ValidationErrorResponse is the 400 body returned when input fails validation.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// fields collects validation failures for one request.
type fields struct {
	location string
	errs     []FieldError
}

func (f *fields) reject(path string, value interface{}) {
	f.errs = append(f.errs, FieldError{
		Type:     "field",
		Value:    value,
		Msg:      invalidValue,
		Path:     path,
		Location: f.location,
	})
}

func (f *fields) ok() bool {
	return len(f.errs) == 0
}

// queryInt parses a required integer query parameter.
func (f *fields) queryInt(raw, path string) int64 {
	id, ok := parseInt(raw)
	if !ok {
		f.reject(path, nullIfEmpty(raw))
	}
	return id
}

// bodyInt parses a required integer body field. Integral JSON numbers and integer strings are accepted.
func (f *fields) bodyInt(body map[string]json.RawMessage, path string) int64 {
	raw, present := body[path]
	if !present {
		f.reject(path, nil)
		return 0
	}

	var number json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		f.reject(path, nil)
		return 0
	}

	switch v := value.(type) {
	case json.Number:
		number = v
	case string:
		number = json.Number(v)
	default:
		f.reject(path, value)
		return 0
	}

	id, ok := parseInt(number.String())
	if !ok {
		f.reject(path, value)
	}
	return id
}

// bodyString decodes a string body field. A present non-string value is rejected;
// a missing field is rejected only when required.
func (f *fields) bodyString(body map[string]json.RawMessage, path string, required bool) *string {
	raw, present := body[path]
	if !present {
		if required {
			f.reject(path, nil)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		f.reject(path, rawValue(raw))
		return nil
	}
	return &s
}

// bodyBool decodes a boolean body field with the same presence rules as bodyString.
func (f *fields) bodyBool(body map[string]json.RawMessage, path string, required bool) *bool {
	raw, present := body[path]
	if !present {
		if required {
			f.reject(path, nil)
		}
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || isNull(raw) {
		f.reject(path, rawValue(raw))
		return nil
	}
	return &b
}

func parseInt(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func rawValue(raw json.RawMessage) interface{} {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
