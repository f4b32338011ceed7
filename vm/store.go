package vm

import (
	"strings"
)

// ---------------------------------------------------------------------------
// Store: the operand stack of shared object handles
// ---------------------------------------------------------------------------

// DefaultStoreCapacity is the pre-allocation hint for a new Store's slots.
const DefaultStoreCapacity = 4096

// A StoredObject is a shared handle to an immutable Object. Multiple Store
// slots may hold the same handle (Dup aliases, it never copies), so handle
// identity is pointer identity.
type StoredObject = *Object

// Store is the operand stack. The top of the stack is the most recently
// pushed handle. Every operation that requires N items checks depth >= N
// before mutating anything, so a failed operation leaves the stack exactly
// as it was.
type Store struct {
	slots    []StoredObject
	maxDepth int // 0 means unbounded
}

// NewStore creates an empty Store with the default capacity hint and no
// maximum depth.
func NewStore() *Store {
	return NewStoreWith(DefaultStoreCapacity, 0)
}

// NewStoreWith creates an empty Store with the given slot capacity hint and
// hard maximum depth. A maxDepth of 0 means the stack grows without bound.
func NewStoreWith(capacity, maxDepth int) *Store {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &Store{
		slots:    make([]StoredObject, 0, capacity),
		maxDepth: maxDepth,
	}
}

// Len returns the current depth of the stack.
func (s *Store) Len() int {
	return len(s.slots)
}

// MaxDepth returns the configured hard depth limit, or 0 if unbounded.
func (s *Store) MaxDepth() int {
	return s.maxDepth
}

// Push wraps obj in a fresh handle, appends it at the top, and returns the
// handle. Fails with ErrStackOverflow if a maximum depth is configured and
// the push would exceed it.
func (s *Store) Push(obj Object) (StoredObject, error) {
	h := &obj
	if err := s.PushHandle(h); err != nil {
		return nil, err
	}
	return h, nil
}

// PushHandle appends an existing handle at the top without copying the
// underlying Object. Dup, Swap and Rot move handles this way.
func (s *Store) PushHandle(h StoredObject) error {
	if s.maxDepth > 0 && len(s.slots) >= s.maxDepth {
		return ErrStackOverflow
	}
	s.slots = append(s.slots, h)
	return nil
}

// Pop removes and returns the top handle. Fails with ErrStackUnderflow if
// the stack is empty.
func (s *Store) Pop() (StoredObject, error) {
	if len(s.slots) == 0 {
		return nil, ErrStackUnderflow
	}
	top := s.slots[len(s.slots)-1]
	s.slots[len(s.slots)-1] = nil // release the slot's reference
	s.slots = s.slots[:len(s.slots)-1]
	return top, nil
}

// Peek returns the top handle without removing it.
func (s *Store) Peek() (StoredObject, error) {
	return s.PeekN(0)
}

// PeekN returns the nth-from-top handle (0 = top) without removing it.
// Fails with ErrStackUnderflow if n >= depth.
func (s *Store) PeekN(n int) (StoredObject, error) {
	if n < 0 || n >= len(s.slots) {
		return nil, ErrStackUnderflow
	}
	return s.slots[len(s.slots)-1-n], nil
}

// Dup pushes a new handle aliasing the current top's Object. No Object is
// copied: afterwards the two top handles refer to the same instance.
func (s *Store) Dup() error {
	top, err := s.Peek()
	if err != nil {
		return err
	}
	return s.PushHandle(top)
}

// Swap exchanges the top two handles. Fails with ErrStackUnderflow if the
// depth is less than 2.
func (s *Store) Swap() error {
	n := len(s.slots)
	if n < 2 {
		return ErrStackUnderflow
	}
	s.slots[n-1], s.slots[n-2] = s.slots[n-2], s.slots[n-1]
	return nil
}

// Rot moves the third-from-top handle to the top, shifting the other two
// down by one and preserving their relative order: with the top three being
// (a=3rd, b=2nd, c=top), the stack afterwards reads (b, c, a). Fails with
// ErrStackUnderflow if the depth is less than 3.
func (s *Store) Rot() error {
	n := len(s.slots)
	if n < 3 {
		return ErrStackUnderflow
	}
	a, b, c := s.slots[n-3], s.slots[n-2], s.slots[n-1]
	s.slots[n-3], s.slots[n-2], s.slots[n-1] = b, c, a
	return nil
}

func (s *Store) String() string {
	var sb strings.Builder
	sb.WriteString("Store[ ")
	for _, h := range s.slots {
		sb.WriteString(h.String())
		sb.WriteString(" ")
	}
	sb.WriteString("]")
	return sb.String()
}
