package vm

import (
	"errors"
	"fmt"
	"testing"
)

func nopWord() *Word {
	return NewPrimitiveWord(func(*Runtime) error { return nil })
}

func TestDefineAppends(t *testing.T) {
	voc := NewVocabulary("scratch")
	first := nopWord()
	second := nopWord()

	voc.Define("inc", first)
	voc.Define("inc", second)

	defs := voc.Definitions("inc")
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if defs[0] != first || defs[1] != second {
		t.Error("definitions are not in append order")
	}
}

func TestResolveNewestVisible(t *testing.T) {
	voc := NewVocabulary("scratch")
	first := nopWord()
	second := nopWord()

	voc.Define("inc", first)
	if voc.Resolve("inc") != first {
		t.Error("single definition did not resolve")
	}

	voc.Define("inc", second)
	if voc.Resolve("inc") != second {
		t.Error("shadowing definition did not win resolution")
	}

	// The shadowed definition stays reachable through its captured
	// reference, never through resolution.
	if voc.Definitions("inc")[0] != first {
		t.Error("shadowed definition fell out of the list")
	}
}

func TestResolveSkipsHidden(t *testing.T) {
	voc := NewVocabulary("scratch")
	visible := nopWord()
	hidden := nopWord()
	hidden.Hidden = true

	voc.Define("inc", visible)
	voc.Define("inc", hidden)

	if voc.Resolve("inc") != visible {
		t.Error("hidden newest definition should be skipped in favor of the older visible one")
	}

	voc2 := NewVocabulary("scratch2")
	voc2.Define("inc", hidden)
	if voc2.Resolve("inc") != nil {
		t.Error("identifier with only hidden definitions should not resolve")
	}
}

func TestSearchOrderPrecedence(t *testing.T) {
	rt := NewRuntime()
	vs := rt.Vocabularies

	user := NewVocabulary("user")
	userDup := nopWord()
	user.Define("dup", userDup)

	if err := vs.Register(user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	// Registered but inactive: the primitives definition still wins.
	if w, ok := vs.Resolve("dup"); !ok || w == userDup {
		t.Error("inactive vocabulary took part in resolution")
	}

	if err := vs.Activate("user"); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if w, ok := vs.Resolve("dup"); !ok || w != userDup {
		t.Error("most recently activated vocabulary should shadow primitives")
	}

	if err := vs.Deactivate("user"); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if w, ok := vs.Resolve("dup"); !ok || w == userDup {
		t.Error("deactivated vocabulary still resolving")
	}
	// Deactivation never touches the table.
	if _, ok := vs.Get("user"); !ok {
		t.Error("deactivation removed the vocabulary from the registry")
	}
}

func TestHiddenOnlyVocabularyIsSkippedNotBlocking(t *testing.T) {
	rt := NewRuntime()
	vs := rt.Vocabularies

	shadow := NewVocabulary("shadow")
	hidden := nopWord()
	hidden.Hidden = true
	shadow.Define("dup", hidden)

	if err := vs.Register(shadow); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := vs.Activate("shadow"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	// "shadow" is searched first and contains "dup", but every definition
	// there is hidden; resolution continues into primitives.
	w, ok := vs.Resolve("dup")
	if !ok {
		t.Fatal("resolution failed instead of continuing past hidden definitions")
	}
	if w == hidden {
		t.Error("resolved a hidden definition")
	}
}

func TestActivateCapacity(t *testing.T) {
	rt := NewRuntimeWith(Options{MaxActiveVocabularies: 3})
	vs := rt.Vocabularies

	// Primitives occupies one slot; two more fit.
	for i := 0; i < 2; i++ {
		name := fmt.Sprintf("extra-%d", i)
		if err := vs.Register(NewVocabulary(name)); err != nil {
			t.Fatalf("Register %s: %v", name, err)
		}
		if err := vs.Activate(name); err != nil {
			t.Fatalf("Activate %s: %v", name, err)
		}
	}

	if err := vs.Register(NewVocabulary("overflow")); err != nil {
		t.Fatalf("Register overflow: %v", err)
	}
	if err := vs.Activate("overflow"); !errors.Is(err, ErrVocabularyCapacityExceeded) {
		t.Errorf("activation past the bound: got %v, want ErrVocabularyCapacityExceeded", err)
	}

	// Re-activating an already-active vocabulary moves it, costing nothing.
	if err := vs.Activate("extra-0"); err != nil {
		t.Errorf("re-activate: %v", err)
	}
	if order := vs.SearchOrder(); order[0] != "extra-0" {
		t.Errorf("search order starts with %q, want extra-0", order[0])
	}
}

func TestPrimitivesAlwaysLast(t *testing.T) {
	rt := NewRuntime()
	vs := rt.Vocabularies

	if err := vs.Register(NewVocabulary("user")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := vs.Activate("user"); err != nil {
		t.Fatalf("Activate: %v", err)
	}

	order := vs.SearchOrder()
	if order[len(order)-1] != PrimitivesVocabularyName {
		t.Errorf("search order ends with %q, want primitives", order[len(order)-1])
	}

	if err := vs.Deactivate(PrimitivesVocabularyName); err == nil {
		t.Error("deactivating primitives should fail")
	}

	// Activating primitives is a no-op, not a reorder.
	if err := vs.Activate(PrimitivesVocabularyName); err != nil {
		t.Errorf("Activate(primitives): %v", err)
	}
	order = vs.SearchOrder()
	if order[len(order)-1] != PrimitivesVocabularyName {
		t.Error("activating primitives moved it off the end")
	}
}

func TestRegisterTwice(t *testing.T) {
	rt := NewRuntime()
	if err := rt.Vocabularies.Register(NewVocabulary("user")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := rt.Vocabularies.Register(NewVocabulary("user"))
	var internal *InternalError
	if !errors.As(err, &internal) {
		t.Errorf("duplicate registration: got %v, want InternalError", err)
	}
}

func TestIdentifiers(t *testing.T) {
	voc := NewVocabulary("scratch")
	voc.Define("b", nopWord())
	voc.Define("a", nopWord())
	hidden := nopWord()
	hidden.Hidden = true
	voc.Define("c", hidden)

	ids := voc.Identifiers()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Identifiers() = %v, want [a b]", ids)
	}
}
