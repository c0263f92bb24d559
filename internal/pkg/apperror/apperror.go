package apperror

import "fmt"

// AppError is an error carrying the HTTP status code it should be reported with.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404, 409)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Newf derives a more specific error from a sentinel AppError.
// The result keeps the sentinel's status code and unwraps to it,
// so errors.Is(err, base) still holds.
func Newf(base *AppError, format string, args ...any) *AppError {
	return &AppError{
		Code:    base.Code,
		Message: fmt.Sprintf(format, args...),
		Err:     base,
	}
}
