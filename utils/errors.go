package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for reporting.
type ErrorKind string

const (
	// KindValidation covers bad input, missing permissions and failed guards. Shown to the user as is.
	KindValidation ErrorKind = "validation"
	// KindCollaborator is a failed Discord REST call.
	KindCollaborator ErrorKind = "collaborator"
	// KindBackend is a record store failure.
	KindBackend ErrorKind = "backend"
	KindInternal ErrorKind = "internal"
)

// GenericErrorMessage is shown whenever a failure's details must not reach the user.
const GenericErrorMessage = "An error occurred while processing your request."

// DomainError carries a user-facing title and message next to the underlying cause.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Title   string
	Message string
	Err     error
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

// UserMessage is what the user sees for this error.
func (e *DomainError) UserMessage() string {
	switch e.Kind {
	case KindValidation, KindCollaborator:
		return e.Message
	default:
		return GenericErrorMessage
	}
}

// UserTitle is the embed title used when reporting the error.
func (e *DomainError) UserTitle() string {
	if e.Title != "" && (e.Kind == KindValidation || e.Kind == KindCollaborator) {
		return e.Title
	}
	return "Error"
}

func NewValidationError(code, title, message string) error {
	return &DomainError{Kind: KindValidation, Code: code, Title: title, Message: message}
}

// NewCollaboratorError wraps a Discord failure. The cause is interpolated into the message.
func NewCollaboratorError(title, action string, err error) error {
	return &DomainError{
		Kind:    KindCollaborator,
		Code:    "discord_error",
		Title:   title,
		Message: fmt.Sprintf("Failed to %s: %v", action, err),
		Err:     err,
	}
}

func NewBackendError(op string, err error) error {
	return &DomainError{
		Kind:    KindBackend,
		Code:    "backend_error",
		Message: "failed to " + op,
		Err:     err,
	}
}

// AsDomainError returns err as a DomainError, classifying anything else as internal.
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de
	}
	return &DomainError{Kind: KindInternal, Code: "internal", Message: "internal error", Err: err}
}

// HasCode reports whether err is a DomainError with the given code.
func HasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
