// Package errors provides annotated errors that carry structured logging
// attributes and the source location where the annotation happened.
//
// Domain packages keep using fmt.Errorf with %w. This package is meant for
// the application boundary where errors are logged.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
)

// annotatedError wraps an error with a message, slog attributes, and the
// program counter of the annotating call site.
type annotatedError struct {
	err   error
	msg   string
	attrs []slog.Attr
	pc    uintptr
}

func (e *annotatedError) Error() string {
	if e.msg == "" {
		return e.err.Error()
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error suitable for package-level sentinel values.
func NewSentinel(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with a message and optional slog attributes. It records
// the caller so that logs point at the annotation site instead of this
// package. Returns nil when err is nil.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	if err == nil {
		return nil
	}
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and Wrap itself.
	return &annotatedError{
		err:   err,
		msg:   msg,
		attrs: attrs,
		pc:    pcs[0],
	}
}

// DecoratePanic converts a value recovered from a panic into an annotated
// error pointing at the recover site.
func DecoratePanic(excp any) error {
	var pcs [1]uintptr
	runtime.Callers(2, pcs[:]) //nolint:mnd // skip runtime.Callers and DecoratePanic itself.
	return &annotatedError{
		err:   fmt.Errorf("panic: %v", excp),
		msg:   "",
		attrs: nil,
		pc:    pcs[0],
	}
}

// New, Is, As, Unwrap, and Join mirror the standard library so that callers
// don't need to import both packages.

func New(msg string) error { return errors.New(msg) }

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func Join(errs ...error) error { return errors.Join(errs...) }

// SlogError converts an error into a slog.Attr grouping the message, the
// annotation source location, and all attributes collected from the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Attr{} //nolint:exhaustruct // empty attr is dropped by slog.
	}

	var (
		annotations []slog.Attr
		source      string
	)
	for e := err; e != nil; e = errors.Unwrap(e) {
		ae, ok := e.(*annotatedError)
		if !ok {
			continue
		}
		annotations = append(annotations, ae.attrs...)
		if source == "" && ae.pc != 0 {
			source = formatSource(ae.pc)
		}
	}

	groupAttrs := []slog.Attr{slog.String("message", err.Error())}
	if source != "" {
		groupAttrs = append(groupAttrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		groupAttrs = append(groupAttrs, slog.Attr{
			Key:   "annotations",
			Value: slog.GroupValue(annotations...),
		})
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.GroupValue(groupAttrs...),
	}
}

// formatSource renders a program counter as "file.go:line".
func formatSource(pc uintptr) string {
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return ""
	}
	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}
