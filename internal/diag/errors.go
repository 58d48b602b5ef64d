package diag

import (
	"errors"
	"fmt"

	"unsure/internal/source"
)

// SyntaxError is the only error kind shown to users as a source problem.
// Line and Col are 1-based and point at the offending character.
type SyntaxError struct {
	Code    Code
	Message string
	Line    int
	Col     int
	Span    source.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at line %d, col %d", e.Message, e.Line, e.Col)
}

// Diagnostic converts the error into an error-level Diagnostic.
func (e *SyntaxError) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Span, e.Message)
}

// NewSyntaxError builds a SyntaxError positioned at pos.
func NewSyntaxError(code Code, span source.Span, pos source.LineCol, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    int(pos.Line),
		Col:     int(pos.Col),
		Span:    span,
	}
}

// AsSyntaxError unwraps err into a *SyntaxError.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// InternalError reports a broken invariant inside the compiler.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal compiler error: " + e.Message
}

// Unreachable returns an InternalError for a state that cannot occur.
func Unreachable(format string, args ...any) *InternalError {
	return &InternalError{Message: fmt.Sprintf(format, args...)}
}

// IsInternal reports whether err (or anything it wraps) is an InternalError.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}
