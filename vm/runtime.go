package vm

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Runtime: the dispatch loop
// ---------------------------------------------------------------------------

// Options configures a new Runtime. The zero value selects all defaults.
type Options struct {
	// StoreCapacity is the slot pre-allocation hint for the Store.
	StoreCapacity int
	// MaxStoreDepth is a hard stack depth ceiling; 0 means unbounded.
	MaxStoreDepth int
	// MaxActiveVocabularies bounds the search order; 0 selects the default.
	MaxActiveVocabularies int
}

// Runtime is the unit of interpretation state: exactly one Store and one
// Vocabularies registry. All mutation flows through these two fields; there
// is no process-wide interpreter state.
type Runtime struct {
	Store        *Store
	Vocabularies *Vocabularies
}

// NewRuntime creates a Runtime with an empty Store at default capacity and
// a Vocabularies registry pre-populated with the primitives vocabulary.
func NewRuntime() *Runtime {
	return NewRuntimeWith(Options{})
}

// NewRuntimeWith creates a Runtime with the given options.
func NewRuntimeWith(opts Options) *Runtime {
	return &Runtime{
		Store:        NewStoreWith(opts.StoreCapacity, opts.MaxStoreDepth),
		Vocabularies: NewVocabularies(newPrimitivesVocabulary(), opts.MaxActiveVocabularies),
	}
}

// Feed interprets one token: a resolvable identifier executes, anything
// else falls back to literal parsing, and a token that is neither fails
// with NoWordsByNameError. The Runtime is ready for the next token after
// every call regardless of outcome; a failed word leaves the Store as it
// was, because every word verifies depth before popping.
func (rt *Runtime) Feed(token string) error {
	if w, ok := rt.Vocabularies.Resolve(token); ok {
		switch w.Kind() {
		case WordPrimitive:
			return w.Primitive()(rt)
		default:
			// Sequence and Constant bodies are reserved for the compile
			// layer; resolving one is reported, not silently skipped.
			return fmt.Errorf("%q resolves to a %s word: %w", token, w.Kind(), ErrWordKindUnsupported)
		}
	}
	return rt.pushLiteral(token)
}

// pushLiteral parses token as a literal in fixed order: unsigned integer,
// then signed integer, then float. The first successful parse wins.
func (rt *Runtime) pushLiteral(token string) error {
	if u, err := strconv.ParseUint(token, 10, 64); err == nil {
		_, err := rt.Store.Push(FromUnsignedInt(u))
		return err
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		_, err := rt.Store.Push(FromSignedInt(i))
		return err
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		_, err := rt.Store.Push(FromFloat64(f))
		return err
	}
	return &NoWordsByNameError{Token: token}
}
