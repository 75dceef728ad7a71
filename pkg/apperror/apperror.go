package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error. Every error the service layer
// surfaces carries exactly one Kind; the transport layer maps it to an
// HTTP status in one place.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindAlreadyExists
	KindTimeConflict
	KindCapacityExceeded
	KindBusinessRule
	KindStore
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the status code for the error kind.
func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindAlreadyExists, KindTimeConflict:
		return http.StatusConflict
	case KindCapacityExceeded:
		return http.StatusTooManyRequests
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Title returns the short, stable problem title for the error kind.
func (e *AppError) Title() string {
	switch e.Kind {
	case KindNotFound:
		return "Not Found"
	case KindValidation:
		return "Validation Error"
	case KindAlreadyExists:
		return "Already Exists"
	case KindTimeConflict:
		return "Time Conflict"
	case KindCapacityExceeded:
		return "Capacity Exceeded"
	case KindBusinessRule:
		return "Business Rule Violation"
	default:
		return "Internal Server Error"
	}
}

// Slug returns the stable type identifier used in problem bodies.
func (e *AppError) Slug() string {
	switch e.Kind {
	case KindNotFound:
		return "not-found"
	case KindValidation:
		return "validation"
	case KindAlreadyExists:
		return "already-exists"
	case KindTimeConflict:
		return "time-conflict"
	case KindCapacityExceeded:
		return "capacity-exceeded"
	case KindBusinessRule:
		return "business-rule"
	default:
		return "store-failure"
	}
}

// Error constructors

func NotFound(entity string, id interface{}) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with id=%v not found", entity, id),
	}
}

func Validation(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func AlreadyExists(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindAlreadyExists,
		Message: fmt.Sprintf(format, args...),
	}
}

func TimeConflict(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindTimeConflict,
		Message: fmt.Sprintf(format, args...),
	}
}

func CapacityExceeded(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf(format, args...),
	}
}

func BusinessRule(format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindBusinessRule,
		Message: fmt.Sprintf(format, args...),
	}
}

// Store wraps an unclassified persistence failure. Raw driver errors are
// never surfaced to clients.
func Store(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindStore,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// From extracts an *AppError from err, wrapping unknown errors as a
// store failure.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Store(err, "unexpected internal error")
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
