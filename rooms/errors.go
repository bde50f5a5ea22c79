package rooms

import (
	"fmt"

	"github.com/imtaco/interview-lobby/internal/errors"
)

const (
	ErrValidation      errors.Code = "validation"
	ErrConflict        errors.Code = "conflict"
	ErrNotFound        errors.Code = "not_found"
	ErrAuth            errors.Code = "auth"
	ErrUnauthorized    errors.Code = "unauthorized"
	ErrPermission      errors.Code = "permission"
	ErrConfiguration   errors.Code = "configuration"
	ErrTransport       errors.Code = "transport"
	ErrProvider        errors.Code = "provider"
	ErrProviderRuntime errors.Code = "provider_runtime"

	ErrBusy         errors.Code = "busy"
	ErrInvalidStep  errors.Code = "invalid_step"
	ErrFlowNotFound errors.Code = "flow_not_found"
)

// FlowError is a user-presentable failure: a short title plus a description.
// errors.Is(err, code) matches its Code.
type FlowError struct {
	Code    errors.Code
	Title   string
	Message string
	Err     error
}

func NewFlowError(code errors.Code, title, message string) *FlowError {
	return &FlowError{Code: code, Title: title, Message: message}
}

// WrapFlowError titles err, keeping its cause and, when err is coded, its
// code and message.
func WrapFlowError(title string, err error) *FlowError {
	if fe, ok := errors.As[*FlowError](err); ok {
		return &FlowError{Code: fe.Code, Title: title, Message: fe.Message, Err: err}
	}
	code, ok := errors.CodeOf(err)
	if !ok {
		code = ErrProvider
	}
	return &FlowError{Code: code, Title: title, Message: errors.Message(err), Err: err}
}

func (e *FlowError) Error() string {
	if e.Title == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

func (e *FlowError) Unwrap() error { return e.Err }

func (e *FlowError) Is(target error) bool {
	c, ok := target.(errors.Code)
	return ok && c == e.Code
}
