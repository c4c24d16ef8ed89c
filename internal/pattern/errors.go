package pattern

import "fmt"

type ErrorKind string

const (
	InvalidSyntax    ErrorKind = "invalid_syntax"
	InvalidRange     ErrorKind = "invalid_range"
	UnknownCharClass ErrorKind = "unknown_char_class"
	SpaceTooLarge    ErrorKind = "space_too_large"
)

// CompileError reports a rejected attack descriptor. Fragment is the piece
// of user input that caused the rejection, for display.
type CompileError struct {
	Kind     ErrorKind
	Fragment string
	Detail   string
}

func (e *CompileError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %q", e.Kind, e.Detail, e.Fragment)
}

func errSyntax(fragment, detail string) *CompileError {
	return &CompileError{Kind: InvalidSyntax, Fragment: fragment, Detail: detail}
}

func errRange(fragment, detail string) *CompileError {
	return &CompileError{Kind: InvalidRange, Fragment: fragment, Detail: detail}
}

func errClass(fragment, detail string) *CompileError {
	return &CompileError{Kind: UnknownCharClass, Fragment: fragment, Detail: detail}
}

// ErrSpaceTooLarge marks a descriptor whose candidate count overflows
// 64-bit arithmetic.
func ErrSpaceTooLarge(fragment string) *CompileError {
	return &CompileError{Kind: SpaceTooLarge, Fragment: fragment, Detail: "candidate space exceeds 64-bit count"}
}
