package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip does not exist for the calling owner.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel every *ValidationError matches.
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ValidationError carries one human-readable message per offending field.
// Keys are field paths in wire form, e.g. "endDate", "budget.amount",
// "activities[2].location".
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records msg for path. The first message recorded for a path wins.
func (e *ValidationError) Add(path, msg string) {
	if _, ok := e.Fields[path]; !ok {
		e.Fields[path] = msg
	}
}

// Merge adds every message of fields. Paths already recorded keep their message.
func (e *ValidationError) Merge(fields map[string]string) {
	for path, msg := range fields {
		e.Add(path, msg)
	}
}

// Empty reports whether no field has been rejected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e when it has fields and a nil error otherwise, so callers
// never return a typed nil inside an error interface.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Error lists the field messages in path order.
func (e *ValidationError) Error() string {
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	msgs := make([]string, len(paths))
	for i, p := range paths {
		msgs[i] = e.Fields[p]
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
