package errno

import (
	"errors"
	"net/http"
)

// Errno is an error that knows which HTTP status it maps to.
type Errno struct {
	Code    int
	Status  int
	Message string
}

func (e Errno) Error() string {
	return e.Message
}

// Is lets errors.Is match a derived Errno (same code, different message)
// against the base value.
func (e Errno) Is(target error) bool {
	var t Errno
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithMessage keeps the code and status but replaces the client-facing text.
func (e Errno) WithMessage(msg string) Errno {
	e.Message = msg
	return e
}

// Validation builds a ValidationError carrying a specific message.
func Validation(msg string) error {
	return ErrValidation.WithMessage(msg)
}

// Decode converts any error to a status code and a client-safe message.
// Unknown errors collapse to a generic server error.
func Decode(err error) (int, string) {
	if err == nil {
		return http.StatusOK, OK.Message
	}

	var typed Errno
	if errors.As(err, &typed) {
		return typed.Status, typed.Message
	}
	return ErrServer.Status, ErrServer.Message
}

var OK = Errno{Code: 0, Status: http.StatusOK, Message: "Success"}

var (
	ErrValidation         = Errno{Code: 10001, Status: http.StatusBadRequest, Message: "Invalid input"}
	ErrBind               = Errno{Code: 10002, Status: http.StatusBadRequest, Message: "Please provide valid inputs"}
	ErrUnauthorized       = Errno{Code: 10003, Status: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrInvalidCredentials = Errno{Code: 10004, Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	ErrNotFound           = Errno{Code: 10005, Status: http.StatusNotFound, Message: "Not found"}
	ErrServer             = Errno{Code: 10006, Status: http.StatusInternalServerError, Message: "Server error"}
)

// File intake
var (
	ErrFileType     = ErrValidation.WithMessage("only images and PDFs allowed")
	ErrFileTooLarge = ErrValidation.WithMessage("file too large")
)
