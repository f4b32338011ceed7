package vm

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ---------------------------------------------------------------------------
// Vocabulary: one namespace of word definitions
// ---------------------------------------------------------------------------

// DefaultVocabularyCapacity is the initial table size hint for a new
// Vocabulary.
const DefaultVocabularyCapacity = 512

// PrimitivesVocabularyName names the built-in vocabulary every Runtime
// carries. It is always registered and always last in the search order.
const PrimitivesVocabularyName = "primitives"

// Vocabulary maps identifiers to ordered lists of word definitions. A new
// definition for an identifier is appended, never substituted: older
// definitions stay reachable through any reference captured before the
// shadow, they just stop resolving.
type Vocabulary struct {
	name  string
	words map[string][]*Word
}

// NewVocabulary creates an empty vocabulary with the given name.
func NewVocabulary(name string) *Vocabulary {
	return &Vocabulary{
		name:  name,
		words: make(map[string][]*Word, DefaultVocabularyCapacity),
	}
}

// Name returns the vocabulary's registered name.
func (v *Vocabulary) Name() string {
	return v.name
}

// Define appends word to identifier's definition list, creating the list on
// first use. Prior definitions are never overwritten or removed.
func (v *Vocabulary) Define(identifier string, word *Word) {
	v.words[identifier] = append(v.words[identifier], word)
}

// Definitions returns identifier's definition list, oldest first. The
// returned slice is shared; callers must not mutate it.
func (v *Vocabulary) Definitions(identifier string) []*Word {
	return v.words[identifier]
}

// Resolve returns the newest non-hidden definition for identifier, or nil
// if the identifier is unknown here or every definition is hidden.
func (v *Vocabulary) Resolve(identifier string) *Word {
	defs := v.words[identifier]
	for i := len(defs) - 1; i >= 0; i-- {
		if !defs[i].Hidden {
			return defs[i]
		}
	}
	return nil
}

// Identifiers returns the sorted identifiers with at least one non-hidden
// definition.
func (v *Vocabulary) Identifiers() []string {
	ids := make([]string, 0, len(v.words))
	for id := range v.words {
		if v.Resolve(id) != nil {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// AllIdentifiers returns every identifier with a definition list, sorted,
// hidden-only identifiers included. Snapshotting uses this; resolution
// never does.
func (v *Vocabulary) AllIdentifiers() []string {
	ids := make([]string, 0, len(v.words))
	for id := range v.words {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ---------------------------------------------------------------------------
// Vocabularies: registry plus the active search order
// ---------------------------------------------------------------------------

// DefaultMaxActiveVocabularies bounds how many vocabularies may be active
// at once. The bound reflects the intended footprint on constrained
// targets; exceeding it is reported, never silently truncated.
const DefaultMaxActiveVocabularies = 25

// Vocabularies is the registry of named vocabularies plus the ordered list
// of active ones consulted during resolution. The search order runs from
// most recently activated down to "primitives", which is always present and
// always last.
type Vocabularies struct {
	table     map[string]*Vocabulary
	order     []string
	maxActive int
}

// NewVocabularies creates a registry holding only a freshly built, active
// primitives vocabulary. A maxActive of 0 selects the default bound.
func NewVocabularies(primitives *Vocabulary, maxActive int) *Vocabularies {
	if maxActive <= 0 {
		maxActive = DefaultMaxActiveVocabularies
	}
	return &Vocabularies{
		table:     map[string]*Vocabulary{primitives.Name(): primitives},
		order:     []string{primitives.Name()},
		maxActive: maxActive,
	}
}

// Get returns the registered vocabulary with the given name.
func (vs *Vocabularies) Get(name string) (*Vocabulary, bool) {
	v, ok := vs.table[name]
	return v, ok
}

// Register adds a vocabulary to the table without activating it.
// Registering a name twice is an internal-consistency error.
func (vs *Vocabularies) Register(v *Vocabulary) error {
	if _, exists := vs.table[v.Name()]; exists {
		return &InternalError{Err: fmt.Errorf("vocabulary %q already registered", v.Name())}
	}
	vs.table[v.Name()] = v
	return nil
}

// Activate places the named vocabulary at the front of the search order.
// An already-active vocabulary moves to the front. Fails with
// ErrVocabularyCapacityExceeded when the active count is at its bound.
func (vs *Vocabularies) Activate(name string) error {
	if _, ok := vs.table[name]; !ok {
		return &InternalError{Err: fmt.Errorf("no vocabulary named %q", name)}
	}
	if name == PrimitivesVocabularyName {
		// Always active, always last; activation is a no-op.
		return nil
	}
	if i := slices.Index(vs.order, name); i >= 0 {
		vs.order = slices.Delete(vs.order, i, i+1)
	} else if len(vs.order) >= vs.maxActive {
		return ErrVocabularyCapacityExceeded
	}
	vs.order = slices.Insert(vs.order, 0, name)
	return nil
}

// Deactivate removes the named vocabulary from the search order. Its table
// entry and definitions are untouched. The primitives vocabulary cannot be
// deactivated.
func (vs *Vocabularies) Deactivate(name string) error {
	if name == PrimitivesVocabularyName {
		return &InternalError{Err: errors.New("the primitives vocabulary cannot be deactivated")}
	}
	i := slices.Index(vs.order, name)
	if i < 0 {
		return &InternalError{Err: fmt.Errorf("vocabulary %q is not active", name)}
	}
	vs.order = slices.Delete(vs.order, i, i+1)
	return nil
}

// SearchOrder returns a copy of the active search order, most recently
// activated first.
func (vs *Vocabularies) SearchOrder() []string {
	return slices.Clone(vs.order)
}

// Names returns every registered vocabulary name, sorted, active or not.
func (vs *Vocabularies) Names() []string {
	names := make([]string, 0, len(vs.table))
	for name := range vs.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve walks the search order and returns the first visible definition
// for identifier. A vocabulary whose definitions for the identifier are all
// hidden is skipped, not blocking.
func (vs *Vocabularies) Resolve(identifier string) (*Word, bool) {
	for _, name := range vs.order {
		if w := vs.table[name].Resolve(identifier); w != nil {
			return w, true
		}
	}
	return nil, false
}
