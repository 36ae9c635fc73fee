package shared

import (
	"errors"
	"net/http"
)

// AppError carries an HTTP status alongside the wrapped cause. Handlers return
// errors as-is and the HTTP service maps them onto the response envelope.
type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message, Err: err}
}

func NewNotFoundError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message, Err: err}
}

// NewInvalidStateError covers lifecycle violations: quest already completed,
// reward already collected, badge already held.
func NewInvalidStateError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message, Err: err}
}

// NewConflictError marks an optimistic-concurrency failure on the user
// aggregate. Callers retry a bounded number of times before surfacing it.
func NewConflictError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: message, Err: err}
}

func NewUnauthorizedError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusUnauthorized, Message: message, Err: err}
}

func NewInternalError(err error, message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
}

func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsConflict reports whether err is the optimistic-concurrency conflict
// produced by a versioned aggregate save.
func IsConflict(err error) bool {
	appErr, ok := GetAppError(err)
	return ok && appErr.StatusCode == http.StatusConflict && errors.Is(appErr.Err, ErrVersionConflict)
}

// ErrVersionConflict is the sentinel cause inside a Conflict AppError.
var ErrVersionConflict = errors.New("aggregate version conflict")
