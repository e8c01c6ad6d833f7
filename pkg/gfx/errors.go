package gfx

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrPrecondition    = errors.New("precondition violation")
	ErrGPUResource     = errors.New("gpu resource error")
)

// ArgError reports malformed input. Arg is the 1-based position of the
// offending parameter when the caller knows it.
type ArgError struct {
	Func  string
	Param string
	Arg   int
	Msg   string
}

func (e *ArgError) Error() string {
	if e.Arg > 0 {
		return fmt.Sprintf("bad argument #%d to '%s' (%s)", e.Arg, e.Func, e.Msg)
	}
	return fmt.Sprintf("bad argument '%s' to '%s' (%s)", e.Param, e.Func, e.Msg)
}

func (e *ArgError) Is(target error) bool { return target == ErrInvalidArgument }

// PreconditionError reports a draw issued before the shared state it needs.
type PreconditionError struct {
	Op  string
	Msg string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// GPUResourceError is unrecoverable: the GL context can not be trusted after it.
type GPUResourceError struct {
	Op  string
	Err error
}

func (e *GPUResourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GPUResourceError) Unwrap() error { return e.Err }

func (e *GPUResourceError) Is(target error) bool { return target == ErrGPUResource }
