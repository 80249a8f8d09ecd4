package util

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewValidationError reports a client input defect. The message is
// user-facing and safe to show.
func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewUnprocessable reports a syntactically valid body missing required fields.
func NewUnprocessable(message string) error {
	return NewDomainError("UNPROCESSABLE", message, http.StatusUnprocessableEntity, nil)
}

// NewUnauthorized reports rejected credentials. The reason from GLPI may be
// attached as a detail; the password never is.
func NewUnauthorized(message string, details map[string]any) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, details)
}

// NewMFARequired reports that the account demands a TOTP code that was not supplied.
func NewMFARequired(message string, details map[string]any) error {
	return NewDomainError("MFA_REQUIRED", message, http.StatusUnauthorized, details)
}

// NewNotFound reports an identity lookup miss.
func NewNotFound(message string, details map[string]any) error {
	return NewDomainError("NOT_FOUND", message, http.StatusNotFound, details)
}

// NewConfigMissing reports absent required settings, surfaced at the first
// operation that needs them.
func NewConfigMissing(message string) error {
	return NewDomainError("CONFIG_MISSING", message, http.StatusInternalServerError, nil)
}

// NewUpstreamError reports a GLPI transport or unexpected-shape failure. The
// wrapped error text is kept for operator diagnosis.
func NewUpstreamError(message string, err error) error {
	return &DomainError{
		Code:       "UPSTREAM_ERROR",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
