package engine

import "fmt"

// PlanError reports an unsupported or inconsistent query shape discovered
// before execution begins, e.g. an argument-type combination a scalar
// function does not accept. Plan errors abort the query before any work is
// done and are never retried.
type PlanError struct {
	msg string
}

func (e *PlanError) Error() string { return "plan error: " + e.msg }

// PlanErrorf constructs a PlanError with a formatted message.
func PlanErrorf(format string, args ...any) error {
	return &PlanError{msg: fmt.Sprintf(format, args...)}
}

// ExecError reports a failure during execution, after partial results may
// already have been streamed downstream. It wraps the underlying cause when
// one exists (e.g. a listing-backend error).
type ExecError struct {
	msg string
	err error
}

func (e *ExecError) Error() string {
	if e.err != nil {
		return "execution error: " + e.msg + ": " + e.err.Error()
	}
	return "execution error: " + e.msg
}

func (e *ExecError) Unwrap() error { return e.err }

// ExecErrorf constructs an ExecError with a formatted message.
func ExecErrorf(format string, args ...any) error {
	return &ExecError{msg: fmt.Sprintf(format, args...)}
}

// WrapExecError wraps an underlying cause as an ExecError. It returns nil
// when err is nil.
func WrapExecError(msg string, err error) error {
	if err == nil {
		return nil
	}
	return &ExecError{msg: msg, err: err}
}

// InternalError reports a contract violation between components: data
// inconsistent with a declared schema, a failed downcast of an array into
// its expected concrete representation, or similar. Internal errors are
// non-recoverable for the failing call.
type InternalError struct {
	msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.msg }

// InternalErrorf constructs an InternalError with a formatted message.
func InternalErrorf(format string, args ...any) error {
	return &InternalError{msg: fmt.Sprintf(format, args...)}
}
