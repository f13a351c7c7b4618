// Package errors provides error annotation with slog attributes and the
// source location where the error was raised. It re-exports the standard
// library helpers so that callers only need one errors import.
package errors

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// annotatedError carries a message, an optional wrapped cause, slog
// attributes and the file:line where it was created.
type annotatedError struct {
	msg    string
	err    error
	attrs  []slog.Attr
	source string
}

// New creates an annotated error without a cause. The source location of the
// caller is captured for logging.
func New(msg string, attrs ...slog.Attr) error {
	return newAnnotated(nil, msg, attrs)
}

// Wrap annotates err with a message and optional slog attributes. The source
// location of the caller is captured for logging. Wrapping a nil error yields
// an error with only the annotation message.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return newAnnotated(err, msg, attrs)
}

// NewSentinel creates a plain sentinel error suitable for package-level
// declarations and errors.Is matching. No source location is captured since
// the declaration site is not the failure site.
func NewSentinel(msg string) error {
	return stderrors.New(msg)
}

// newAnnotated captures the caller of the exported constructor, two frames up
// from here.
func newAnnotated(err error, msg string, attrs []slog.Attr) *annotatedError {
	const skipFrames = 2
	source := ""
	if _, file, line, ok := runtime.Caller(skipFrames); ok {
		source = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return &annotatedError{
		msg:    msg,
		err:    err,
		attrs:  attrs,
		source: source,
	}
}

// DecoratePanic converts a recovered panic value into an error whose source
// points at the panic site instead of the recovery handler.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	return &annotatedError{
		msg:    fmt.Sprintf("panic: %v", excp),
		err:    nil,
		attrs:  nil,
		source: panicSource(),
	}
}

// panicSource walks the stack past the runtime panic machinery and returns
// the first user frame, which is where the panic was raised.
func panicSource() string {
	pc := make([]uintptr, 64)
	n := runtime.Callers(1, pc)
	frames := runtime.CallersFrames(pc[:n])
	seenPanic := false
	for {
		frame, more := frames.Next()
		switch {
		case frame.Function == "runtime.gopanic" || frame.Function == "runtime.sigpanic":
			seenPanic = true
		case seenPanic && !strings.HasPrefix(frame.Function, "runtime."):
			return fmt.Sprintf("%s:%d", filepath.Base(frame.File), frame.Line)
		}
		if !more {
			break
		}
	}
	return ""
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// SlogError renders an error into a structured slog attribute containing the
// message, the source location of the innermost annotation site, and all
// annotations collected along the wrap chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		attrs  []slog.Attr
		source string
	)
	for current := err; current != nil; current = stderrors.Unwrap(current) {
		var annotated *annotatedError
		if stderrors.As(current, &annotated) {
			attrs = append(attrs, annotated.attrs...)
			source = annotated.source
			current = annotated
		}
	}

	parts := []any{slog.String("message", err.Error())}
	if source != "" {
		parts = append(parts, slog.String("source", source))
	}
	if len(attrs) > 0 {
		annotationArgs := make([]any, 0, len(attrs))
		for _, attr := range attrs {
			annotationArgs = append(annotationArgs, attr)
		}
		parts = append(parts, slog.Group("annotations", annotationArgs...))
	}
	return slog.Group("error", parts...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if any.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// Join wraps the given errors into a single error.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
