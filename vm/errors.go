package vm

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

var (
	// ErrStackUnderflow indicates an operation needed more stack items than
	// were present. The stack is left unmodified.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrStackOverflow indicates a push would exceed the Store's configured
	// maximum depth.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrIncompatibleTypes indicates an arithmetic operation received
	// operand kinds with no defined coercion.
	ErrIncompatibleTypes = errors.New("incompatible operand types")

	// ErrDivisionByZero indicates a div or mod with a zero right operand.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrArithmeticUnderflow indicates an unsigned subtraction that would
	// go below zero.
	ErrArithmeticUnderflow = errors.New("arithmetic underflow")

	// ErrVocabularyCapacityExceeded indicates activating a vocabulary would
	// exceed the maximum simultaneous active count.
	ErrVocabularyCapacityExceeded = errors.New("too many active vocabularies")

	// ErrWordKindUnsupported indicates a resolved word has a kind this core
	// does not execute (Sequence and Constant bodies are reserved).
	ErrWordKindUnsupported = errors.New("word kind not yet supported")
)

// NoWordsByNameError indicates neither dictionary resolution nor literal
// parsing succeeded for a token.
type NoWordsByNameError struct {
	Token string
}

func (e *NoWordsByNameError) Error() string {
	return fmt.Sprintf("no words by name %q", e.Token)
}

// InternalError wraps a lower-level failure the core did not cause but must
// surface, or an internal-consistency violation that should be unreachable.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
