package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Failure taxonomy. Every user action surfaces exactly one of these at the
// HTTP boundary; anything unclassified falls back to a generic failure.
const (
	CodeNotFound           = "not_found"
	CodeValidationRejected = "validation_rejected"
	CodeDraftingFailed     = "drafting_failed"
	CodeUploadRejected     = "upload_rejected"
	CodeUnauthorized       = "unauthorized"
	CodeTransient          = "request_failed"
)

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func ValidationRejected(err error) *Error {
	return New(http.StatusUnprocessableEntity, CodeValidationRejected, err)
}

func DraftingFailed(err error) *Error {
	return New(http.StatusBadGateway, CodeDraftingFailed, err)
}

func UploadRejected(err error) *Error {
	return New(http.StatusRequestEntityTooLarge, CodeUploadRejected, err)
}

func Unauthorized(err error) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, err)
}

func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == CodeNotFound
}

// StatusOf maps any error to the status/code pair the HTTP layer responds
// with. Unclassified errors are reported as a generic transient failure.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := ae.Code
		if code == "" {
			code = CodeTransient
		}
		return status, code
	}
	return http.StatusInternalServerError, CodeTransient
}
