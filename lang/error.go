package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrUnresolvedReference        = NewError("unresolved reference")
	ErrUnnamedArgumentAfterNamed  = NewError("unnamed argument after named argument")
	ErrParameterAlreadyBound      = NewError("parameter already bound")
	ErrUnresolvedParameter        = NewError("unresolved parameter")
	ErrInvalidArgumentCount       = NewError("invalid argument count")
	ErrMismatchingArgumentType    = NewError("mismatching argument type")
	ErrInvalidFunctionCall        = NewError("invalid function call")
	ErrInvalidLambdaArgumentCount = NewError("invalid lambda argument count")
	ErrFunctionCallRuntime        = NewError("function call failed")
	ErrDocumentType               = NewError("unsupported document type")
	ErrMaxDepthExceeded           = NewError("maximum call depth exceeded")
	ErrParse                      = NewError("parse error")
	ErrReadInput                  = NewError("failed to read input")
)

// Coercion errors. Their messages are shown to document authors verbatim.
var (
	ErrNotNumeric    = NewError("Not a numeric value")
	ErrNotBoolean    = NewError("Not a valid boolean value")
	ErrInvalidSize   = NewError("Invalid size")
	ErrInvalidSizes  = NewError("Invalid top-right-bottom-left sizes")
	ErrInvalidColor  = NewError("Not a valid color")
	ErrInvalidRange  = NewError("Invalid range")
	ErrNoSuchElement = NewError("No such element")
	ErrNotIterable   = NewError("Not an iterable")
	ErrNotDictionary = NewError("Not a dictionary")
	ErrNotLambda     = NewError("Not a lambda")
	ErrNotPair       = NewError("Not a pair")
	ErrNotContent    = NewError("Not markdown content")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel e was derived from.
// Errors created by [Error.Wrap], [Error.Wrapf], and [Error.With] share the
// message of their sentinel and therefore match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.err != nil || t.msg == "" {
		return false
	}

	return t.msg == e.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// Wrapf creates a new Error wrapping a formatted detail message.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithPosition records a source position on the error.
func (e *Error) WithPosition(pos Position) *Error {
	return e.With(
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)
}

// CallError is the failure of a single function call. It carries enough of
// the call site to render an error box in place of the call.
type CallError struct {
	Name        string   // Called name
	Signature   string   // Display signature, empty if the name is unresolved
	Arguments   []string // Literal arguments as written
	Source      string   // Source text of the call
	Suggestions []string // Close matches for unresolved names
	Kind        *Error   // Taxonomy sentinel
	Cause       error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	switch {
	case e.Kind == ErrUnresolvedReference:
		msg := "Unresolved reference: " + e.Name
		if len(e.Suggestions) > 0 {
			msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
		}

		return msg

	case e.Kind == ErrFunctionCallRuntime, e.Kind == ErrMaxDepthExceeded:
		if e.Cause != nil {
			return e.Cause.Error()
		}

		return e.Kind.Error()
	}

	return fmt.Sprintf(
		"Cannot call function %s with arguments (%s): %s",
		e.Signature,
		strings.Join(e.Arguments, ", "),
		e.reason(),
	)
}

// reason returns the detail message for binding and type errors. A type
// mismatch names the offending value without the taxonomy prefix.
func (e *CallError) reason() string {
	if e.Cause == nil {
		return e.Kind.Error()
	}

	var ee *Error
	if errors.As(e.Cause, &ee) && ee.msg == ErrMismatchingArgumentType.msg &&
		ee.err != nil {
		return ee.err.Error()
	}

	return e.Cause.Error()
}

// Unwrap exposes both the taxonomy sentinel and the cause to errors.Is/As.
func (e *CallError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// LogValue implements slog.LogValuer.
func (e *CallError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("function", e.Name),
		slog.String("kind", e.Kind.msg),
		slog.String("error", e.Error()),
	)
}
