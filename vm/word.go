package vm

// ---------------------------------------------------------------------------
// Word: how an identifier executes
// ---------------------------------------------------------------------------

// Primitive is the native implementation of a primitive word. It mutates
// the Runtime it receives directly; there is no ambient state.
type Primitive func(*Runtime) error

// WordKind discriminates the closed set of word implementations. The set is
// fixed and small, so dispatch is an explicit switch rather than an
// interface.
type WordKind uint8

const (
	// WordPrimitive is a native Go implementation.
	WordPrimitive WordKind = iota
	// WordSequence is an ordered list of other words. Representable but not
	// executed by this core; reserved for the compile layer.
	WordSequence
	// WordConstant wraps a single Object. Representable but not executed by
	// this core; reserved.
	WordConstant
)

func (k WordKind) String() string {
	switch k {
	case WordPrimitive:
		return "primitive"
	case WordSequence:
		return "sequence"
	case WordConstant:
		return "constant"
	}
	return "unknown"
}

// Word is one definition bound to an identifier inside a Vocabulary.
//
// Hidden excludes the definition from resolution while it still occupies a
// slot in its identifier's definition list. Immediate is accepted but inert
// in this core; it is reserved for compile-time execution.
type Word struct {
	Hidden    bool
	Immediate bool

	kind      WordKind
	primitive Primitive
	sequence  []*Word
	constant  *Object
}

// NewPrimitiveWord creates a visible word backed by a native function.
func NewPrimitiveWord(fn Primitive) *Word {
	return &Word{kind: WordPrimitive, primitive: fn}
}

// NewSequenceWord creates a visible word backed by an ordered list of other
// words. Sequences are data only in this core.
func NewSequenceWord(words []*Word) *Word {
	return &Word{kind: WordSequence, sequence: words}
}

// NewConstantWord creates a visible word wrapping a constant Object.
// Constants are data only in this core.
func NewConstantWord(obj Object) *Word {
	return &Word{kind: WordConstant, constant: &obj}
}

// Kind returns the implementation kind of the word.
func (w *Word) Kind() WordKind {
	return w.kind
}

// Primitive returns the native implementation, or nil for other kinds.
func (w *Word) Primitive() Primitive {
	return w.primitive
}

// Sequence returns the word list, or nil for other kinds.
func (w *Word) Sequence() []*Word {
	return w.sequence
}

// Constant returns the wrapped Object handle, or nil for other kinds.
func (w *Word) Constant() *Object {
	return w.constant
}

func (w *Word) String() string {
	return "(" + w.kind.String() + " word)"
}
