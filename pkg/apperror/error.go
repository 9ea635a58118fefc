package apperror

import "net/http"

// Caller-facing messages. Provider and configuration details never leave the server.
const (
	MsgInvalidRequest  = "Invalid request."
	MsgSpamDetected    = "Spam detected."
	MsgTooManyRequests = "Too many requests. Please try later."
	MsgInternal        = "Something went wrong. Please try again."
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func TooManyRequests() *AppError {
	return New(http.StatusTooManyRequests, MsgTooManyRequests, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, MsgInternal, err)
}
