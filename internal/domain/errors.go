package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidArgument     ErrorCode = "INVALID_ARGUMENT"
	CodeResourceExhausted   ErrorCode = "RESOURCE_EXHAUSTED"
	CodeSpawnFailed         ErrorCode = "SPAWN_FAILED"
	CodeConnectionFailed    ErrorCode = "CONNECTION_FAILED"
	CodeUnsupportedSize     ErrorCode = "UNSUPPORTED_SIZE"
	CodeUnsupportedLocation ErrorCode = "UNSUPPORTED_LOCATION"
	CodeTransportFailed     ErrorCode = "TRANSPORT_FAILED"
	CodeWorkerError         ErrorCode = "WORKER_ERROR"
	CodeInternal            ErrorCode = "INTERNAL"
)

// Error is the single error shape every failure site collapses into before
// it crosses the host boundary as a terminal response.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	if e.Op == "" {
		if msg == "" {
			return string(e.Code)
		}
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	if msg == "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func E(code ErrorCode, op, msg string, cause error) *Error {
	if msg == "" && cause != nil {
		msg = cause.Error()
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: msg,
		Cause:   cause,
	}
}

func CodeFrom(err error) (ErrorCode, bool) {
	if err == nil {
		return "", false
	}
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Code != "" {
		return domainErr.Code, true
	}
	return "", false
}

// RequestScoped reports whether an error fails only its owning request, as
// opposed to the whole batch or the whole instance.
func RequestScoped(err error) bool {
	code, ok := CodeFrom(err)
	if !ok {
		return false
	}
	switch code {
	case CodeUnsupportedSize, CodeUnsupportedLocation, CodeWorkerError:
		return true
	default:
		return false
	}
}
