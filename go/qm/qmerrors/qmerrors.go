/*
Copyright 2026 The QueryMesh Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package qmerrors provides the error type used across querymesh.
//
// Every error created here carries a Code that tells callers what class of
// failure happened, plus a stack trace captured at creation. Wrapping keeps
// the code of the innermost coded error.
//
// Planner invariant violations are not returned; they are raised with
// panic(qmerrors.Bug(...)) and turned back into INTERNAL errors by the
// PanicHandler deferred at the top of an optimization pass.
package qmerrors

import (
	"context"
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Code classifies an error.
type Code int

// All the error codes.
const (
	OK Code = iota
	Canceled
	Unknown
	InvalidArgument
	DeadlineExceeded
	NotFound
	AlreadyExists
	ResourceExhausted
	FailedPrecondition
	Unimplemented
	Internal
)

var codeNames = map[Code]string{
	OK:                 "OK",
	Canceled:           "CANCELED",
	Unknown:            "UNKNOWN",
	InvalidArgument:    "INVALID_ARGUMENT",
	DeadlineExceeded:   "DEADLINE_EXCEEDED",
	NotFound:           "NOT_FOUND",
	AlreadyExists:      "ALREADY_EXISTS",
	ResourceExhausted:  "RESOURCE_EXHAUSTED",
	FailedPrecondition: "FAILED_PRECONDITION",
	Unimplemented:      "UNIMPLEMENTED",
	Internal:           "INTERNAL",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

type fundamental struct {
	msg   string
	code  Code
	stack error
}

func (f *fundamental) Error() string { return f.msg }

// Format prints the stack trace with %+v.
func (f *fundamental) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%+v", f.stack)
			return
		}
		fallthrough
	case 's':
		fmt.Fprint(s, f.msg)
	case 'q':
		fmt.Fprintf(s, "%q", f.msg)
	}
}

// New returns an error with the supplied code and message.
func New(code Code, message string) error {
	return &fundamental{
		msg:   message,
		code:  code,
		stack: pkgerrors.New(message),
	}
}

// Errorf formats according to a format specifier and returns the result as a
// coded error.
func Errorf(code Code, format string, args ...any) error {
	return New(code, fmt.Sprintf(format, args...))
}

type wrapping struct {
	cause error
	msg   string
	stack error
}

func (w *wrapping) Error() string { return w.msg + ": " + w.cause.Error() }
func (w *wrapping) Unwrap() error { return w.cause }

func (w *wrapping) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", w.msg, w.stack)
		return
	}
	fmt.Fprint(s, w.Error())
}

// Wrap annotates err with a message. Wrap returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrapping{
		cause: err,
		msg:   message,
		stack: pkgerrors.WithStack(err),
	}
}

// Wrapf annotates err with a formatted message. Wrapf returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// CodeOf returns the code of the innermost coded error in err's chain.
// Context errors map to their matching codes and foreign errors to Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}
	var f *fundamental
	if errors.As(err, &f) {
		return f.code
	}
	switch {
	case errors.Is(err, context.Canceled):
		return Canceled
	case errors.Is(err, context.DeadlineExceeded):
		return DeadlineExceeded
	}
	return Unknown
}

// RootCause returns the innermost error in err's chain.
func RootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
