// Package validation carries field-level rejection messages from the domain
// services to the transport layer.
package validation

import (
	"errors"
	"sort"
	"strings"
)

// Error maps field names to human readable messages. The zero value is ready
// to use.
type Error struct {
	Fields map[string]string
	cause  error
}

func New(field, message string) *Error {
	e := &Error{}
	e.Add(field, message)
	return e
}

// Wrap builds a single-field error that also matches cause with errors.Is.
func Wrap(cause error, field, message string) *Error {
	e := New(field, message)
	e.cause = cause
	return e
}

// Add records message for field unless the field already has one.
func (e *Error) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = message
}

func (e *Error) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no field was rejected so callers can write
// `return verr.OrNil()`.
func (e *Error) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+e.Fields[key])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FieldsOf extracts the field map from err when it is (or wraps) an *Error.
func FieldsOf(err error) (map[string]string, bool) {
	var verr *Error
	if !errors.As(err, &verr) {
		return nil, false
	}
	return verr.Fields, true
}
