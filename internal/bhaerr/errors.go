// Package bhaerr implements the engine's tagged error model: every
// fallible operation returns a (value, error) pair where the error, if
// present, is an *Error carrying a closed error code, a message and
// optional context. This mirrors original_source/headers/bha/error.hpp's
// Error class in idiomatic Go — a plain error implementation rather than
// a generic Result[T, E] monad, since Go already returns (T, error).
package bhaerr

import "fmt"

// Code is one of the closed set of error codes the engine can produce.
type Code int

const (
	InvalidArgument Code = iota
	NotFound
	ParseError
	IoError
	ConfigError
	AnalysisError
	PluginError
	GitError
	InternalError
)

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "InvalidArgument"
	case NotFound:
		return "NotFound"
	case ParseError:
		return "ParseError"
	case IoError:
		return "IoError"
	case ConfigError:
		return "ConfigError"
	case AnalysisError:
		return "AnalysisError"
	case PluginError:
		return "PluginError"
	case GitError:
		return "GitError"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Error is the tagged error value returned by every fallible operation
// in the engine.
type Error struct {
	code    Code
	message string
	context string
}

// New constructs an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf constructs an Error with a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Code returns the error's code, so callers can use errors.As and branch
// on it without string matching.
func (e *Error) Code() Code { return e.code }

// Message returns the bare message, without the code/context wrapper.
func (e *Error) Message() string { return e.message }

// Context returns the accumulated context string, if any.
func (e *Error) Context() string { return e.context }

// WithContext appends additional context, matching the reference
// semantics of appending "; <new context>" to any existing context.
func (e *Error) WithContext(ctx string) *Error {
	if e.context == "" {
		e.context = ctx
	} else {
		e.context = e.context + "; " + ctx
	}
	return e
}

// Error implements the error interface, formatting as
// "[<Code>] <message> (context: <context>)".
func (e *Error) Error() string {
	if e.context == "" {
		return fmt.Sprintf("[%s] %s", e.code, e.message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.code, e.message, e.context)
}

// Constructors per code, matching original_source's factory-method style.

func NewInvalidArgument(message string) *Error { return New(InvalidArgument, message) }
func NewNotFound(message string) *Error        { return New(NotFound, message) }
func NewParseError(message string) *Error       { return New(ParseError, message) }
func NewIoError(message string) *Error          { return New(IoError, message) }
func NewConfigError(message string) *Error      { return New(ConfigError, message) }
func NewAnalysisError(message string) *Error    { return New(AnalysisError, message) }
func NewPluginError(message string) *Error      { return New(PluginError, message) }
func NewGitError(message string) *Error         { return New(GitError, message) }
func NewInternalError(message string) *Error    { return New(InternalError, message) }
