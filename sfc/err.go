package sfc

import "errors"

// ErrKind identifies the class of a compile error.
type ErrKind int

const (
	// ErrUnexpectedEOF is returned when a "must read" hit end of input.
	ErrUnexpectedEOF ErrKind = iota
	// ErrUnexpectedChar is returned when a code point did not satisfy the
	// grammar of the current state.
	ErrUnexpectedChar
	// ErrInvalidTopLevel is returned for a top-level code point that cannot
	// start a section.
	ErrInvalidTopLevel
	// ErrNotAllowedAtTopLevel is returned for close or self-closing tags at
	// the top level.
	ErrNotAllowedAtTopLevel
	// ErrUnknownTopLevelTag is returned for top-level sections other than
	// template, script and style.
	ErrUnknownTopLevelTag
	// ErrDuplicateSection is returned for a second template or script.
	ErrDuplicateSection
	// ErrDirectiveArgumentArity is returned when a directive value is present
	// where none is allowed, or missing where one is required.
	ErrDirectiveArgumentArity
	// ErrUnknownDirective is returned when a v- key does not match the
	// directive table or the custom-directive shape, or carries a target or
	// modifier it does not accept.
	ErrUnknownDirective
	// ErrDirectiveConflict is returned when an element carries more than one
	// of v-if, v-else-if, v-else and v-for.
	ErrDirectiveConflict
	// ErrVForSyntax is returned when the v-for sub-grammar fails.
	ErrVForSyntax
	// ErrElseWithoutIf is returned for v-else or v-else-if without a
	// preceding v-if or v-else-if sibling.
	ErrElseWithoutIf
	// ErrMismatchedClose is returned when a closing tag mismatch cannot be
	// recovered, e.g. a stray open tag where </script> is required.
	ErrMismatchedClose
	// ErrUnsupported is returned for directives that are recognized but not
	// implemented.
	ErrUnsupported
)

func (k ErrKind) String() string {
	switch k {
	case ErrUnexpectedEOF:
		return "unexpected EOF"
	case ErrUnexpectedChar:
		return "unexpected character"
	case ErrInvalidTopLevel:
		return "invalid top level content"
	case ErrNotAllowedAtTopLevel:
		return "tag not allowed at top level"
	case ErrUnknownTopLevelTag:
		return "unknown top level tag"
	case ErrDuplicateSection:
		return "duplicate section"
	case ErrDirectiveArgumentArity:
		return "bad directive argument arity"
	case ErrUnknownDirective:
		return "unknown directive"
	case ErrDirectiveConflict:
		return "conflicting directives"
	case ErrVForSyntax:
		return "bad v-for expression"
	case ErrElseWithoutIf:
		return "v-else without v-if"
	case ErrMismatchedClose:
		return "mismatched closing tag"
	case ErrUnsupported:
		return "unsupported directive"
	}
	return "parse error"
}

// Error is the single error type produced by the compiler core. At is a one
// or two code point span near the fault, addressed into the source buffer,
// which the host may render as a diagnostic range.
type Error struct {
	Kind ErrKind
	Msg  string
	At   Span
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is matches errors of the same kind, so callers can probe with
// errors.Is(err, &Error{Kind: ErrDuplicateSection}).
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// IsEOF reports whether err is an unexpected end of input.
func IsEOF(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == ErrUnexpectedEOF
}
