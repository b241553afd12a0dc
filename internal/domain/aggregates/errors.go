package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes aggregate failure semantics across domains.
type ErrorCode string

const (
	CodeValidation ErrorCode = "validation"
	CodeNotFound   ErrorCode = "not_found"
	CodeConflict   ErrorCode = "conflict"
	CodeInternal   ErrorCode = "internal"
)

// Error is the canonical aggregate error wrapper.
//
// Message is safe to show to callers for every code except CodeInternal, whose
// Message may echo the underlying store failure; use PublicMessage at the edge.
type Error struct {
	Code     ErrorCode
	Op       string
	EntityID string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	if id := strings.TrimSpace(e.EntityID); id != "" {
		op = fmt.Sprintf("%s[%s]", op, id)
	}
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// PublicMessage is the caller-facing text. Internal failures only expose the
// operation and entity id; the cause stays in logs.
func (e *Error) PublicMessage() string {
	if e == nil {
		return ""
	}
	if e.Code != CodeInternal && strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	op := strings.TrimSpace(e.Op)
	if op == "" {
		op = "operation"
	}
	if id := strings.TrimSpace(e.EntityID); id != "" {
		return fmt.Sprintf("%s failed for %s", op, id)
	}
	return op + " failed"
}

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// WithEntity stamps the entity id on an aggregate error. Non-aggregate errors
// are returned unchanged.
func WithEntity(err error, id string) error {
	var aggErr *Error
	if !errors.As(err, &aggErr) || aggErr.EntityID != "" {
		return err
	}
	cp := *aggErr
	cp.EntityID = strings.TrimSpace(id)
	return &cp
}

// IsCode checks whether err (or wrapped err) carries the given aggregate code.
func IsCode(err error, code ErrorCode) bool {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return false
	}
	return aggErr.Code == code
}

// CodeOf extracts the aggregate error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}
