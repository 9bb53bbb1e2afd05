package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrNotFound means that no healthy instance or local actor matches the request.
	ErrNotFound = "not_found"
	// ErrRegistryUnavailable means that the registry could not be reached before the retry deadline.
	ErrRegistryUnavailable = "registry_unavailable"
	// ErrRegistrationFailed means that an instance could not publish itself to the registry.
	ErrRegistrationFailed = "registration_failed"
	// ErrDeliveryFailed means that the transport refused or lost a message on its way to a remote actor.
	ErrDeliveryFailed = "delivery_failed"
	// ErrServiceUnavailable means that a local component cannot take work right now (stopped host, full mailbox, empty cluster).
	ErrServiceUnavailable = "service_unavailable"
)

// MyError represents an error within the context of mymesh services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewNotFoundError(message string, inner error) *MyError {
	return NewMyError(ErrNotFound, message, inner)
}

// NewRegistryUnavailableError always produces registry_unavailable: the inner error is usually the last
// backend failure and may itself be a MyError.
func NewRegistryUnavailableError(message string, inner error) *MyError {
	return NewMyError(ErrRegistryUnavailable, message, inner)
}

func NewRegistrationFailedError(message string, inner error) *MyError {
	return NewMyError(ErrRegistrationFailed, message, inner)
}

func NewDeliveryFailedError(message string, inner error) *MyError {
	return NewMyError(ErrDeliveryFailed, message, inner)
}

func NewServiceUnavailableError(message string, inner error) *MyError {
	return NewMyError(ErrServiceUnavailable, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a mymesh error, or nil if it is not a mymesh error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsNotFoundError(err error) bool {
	return IsMyError(err, ErrNotFound)
}

func IsRegistryUnavailableError(err error) bool {
	return IsMyError(err, ErrRegistryUnavailable)
}

func IsRegistrationFailedError(err error) bool {
	return IsMyError(err, ErrRegistrationFailed)
}

func IsDeliveryFailedError(err error) bool {
	return IsMyError(err, ErrDeliveryFailed)
}

func IsServiceUnavailableError(err error) bool {
	return IsMyError(err, ErrServiceUnavailable)
}
