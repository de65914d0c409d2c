package errors

import (
	"errors"
	"fmt"
)

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
	Details any
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf, true
	}
	return nil, false
}

// ConfigurationError reports a server-side misconfiguration. It is raised
// before any upstream call is attempted.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

func IsConfigurationError(err error) (*ConfigurationError, bool) {
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// UpstreamTransportError covers a failed call to the ERP: the request never
// got a response (Status == 0, Cause set), the response had a non-2xx status,
// or the body could not be decoded. Details holds the decoded body, if any.
type UpstreamTransportError struct {
	Message string
	Stage   string
	Status  int
	Details any
	Cause   error
}

func (e *UpstreamTransportError) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Message, e.Status)
	}
	return e.Message
}

func (e *UpstreamTransportError) Unwrap() error {
	return e.Cause
}

func NewUpstreamTransportError(message, stage string, status int, details any, cause error) *UpstreamTransportError {
	return &UpstreamTransportError{
		Message: message,
		Stage:   stage,
		Status:  status,
		Details: details,
		Cause:   cause,
	}
}

func IsUpstreamTransportError(err error) (*UpstreamTransportError, bool) {
	var ue *UpstreamTransportError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}

// UpstreamShapeError means the ERP answered successfully but none of the known
// envelope shapes carried the expected key. Raw is the payload as received.
type UpstreamShapeError struct {
	Message string
	Stage   string
	Raw     any
}

func (e *UpstreamShapeError) Error() string {
	return e.Message
}

func NewUpstreamShapeError(message, stage string, raw any) *UpstreamShapeError {
	return &UpstreamShapeError{
		Message: message,
		Stage:   stage,
		Raw:     raw,
	}
}

func IsUpstreamShapeError(err error) (*UpstreamShapeError, bool) {
	var se *UpstreamShapeError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

func NewInternalError(message string, cause error) *InternalError {
	return &InternalError{
		Message: message,
		Cause:   cause,
	}
}

func IsInternalError(err error) (*InternalError, bool) {
	var ie *InternalError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
