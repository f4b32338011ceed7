// Package image serializes runtime snapshots to CBOR and restores them.
//
// An image captures the operand stack, every registered vocabulary, and the
// active search order. Objects are written through a pool indexed by handle,
// so stack slots that alias one object (after dup) still alias one object
// after a round trip. Primitive word bodies are not serialized; they are
// re-bound by identifier against a fresh runtime's built-ins on restore.
package image

import (
	"fmt"

	"github.com/chazu/gluumy/vm"
)

// FormatVersion is the image format version this package reads and writes.
//
// v1: initial format
const FormatVersion = 1

// Image is a serializable snapshot of a vm.Runtime.
type Image struct {
	Version      uint32          `cbor:"1,keyasint"`
	Objects      []ObjectRec     `cbor:"2,keyasint"`
	Stack        []int           `cbor:"3,keyasint"` // indices into Objects, bottom first
	Vocabularies []VocabularyRec `cbor:"4,keyasint"`
	SearchOrder  []string        `cbor:"5,keyasint"`
	MaxDepth     int             `cbor:"6,keyasint,omitempty"`
}

// ObjectRec is one serialized Object. Float32 payloads travel in the Float
// field; the kind disambiguates on restore.
type ObjectRec struct {
	Kind  uint8   `cbor:"1,keyasint"`
	Bool  bool    `cbor:"2,keyasint,omitempty"`
	Uint  uint64  `cbor:"3,keyasint,omitempty"`
	Int   int64   `cbor:"4,keyasint,omitempty"`
	Float float64 `cbor:"5,keyasint,omitempty"`
}

// VocabularyRec is one serialized vocabulary: its name and every definition,
// in append order per identifier.
type VocabularyRec struct {
	Name  string    `cbor:"1,keyasint"`
	Words []WordRec `cbor:"2,keyasint"`
}

// WordRec is one serialized word definition.
type WordRec struct {
	Identifier string     `cbor:"1,keyasint"`
	Kind       uint8      `cbor:"2,keyasint"`
	Hidden     bool       `cbor:"3,keyasint,omitempty"`
	Immediate  bool       `cbor:"4,keyasint,omitempty"`
	Constant   *ObjectRec `cbor:"5,keyasint,omitempty"`
}

// Snapshot captures rt into an Image.
//
// Sequence words have no serialized body yet (the compile layer that would
// give them one does not exist); snapshotting a runtime that contains one
// is an error rather than a lossy write.
func Snapshot(rt *vm.Runtime) (*Image, error) {
	img := &Image{
		Version:  FormatVersion,
		MaxDepth: rt.Store.MaxDepth(),
	}

	// Pool stack objects by handle so aliases stay aliases.
	indexByHandle := make(map[vm.StoredObject]int)
	depth := rt.Store.Len()
	for n := depth - 1; n >= 0; n-- { // bottom of the stack first
		h, err := rt.Store.PeekN(n)
		if err != nil {
			return nil, &vm.InternalError{Err: fmt.Errorf("image: peeking slot %d of %d: %w", n, depth, err)}
		}
		idx, ok := indexByHandle[h]
		if !ok {
			idx = len(img.Objects)
			indexByHandle[h] = idx
			img.Objects = append(img.Objects, encodeObject(*h))
		}
		img.Stack = append(img.Stack, idx)
	}

	img.SearchOrder = rt.Vocabularies.SearchOrder()

	for _, name := range rt.Vocabularies.Names() {
		voc, _ := rt.Vocabularies.Get(name)
		rec := VocabularyRec{Name: name}
		for _, id := range voc.AllIdentifiers() {
			for _, w := range voc.Definitions(id) {
				wr := WordRec{
					Identifier: id,
					Kind:       uint8(w.Kind()),
					Hidden:     w.Hidden,
					Immediate:  w.Immediate,
				}
				switch w.Kind() {
				case vm.WordConstant:
					enc := encodeObject(*w.Constant())
					wr.Constant = &enc
				case vm.WordSequence:
					return nil, fmt.Errorf("image: %s/%s: sequence words cannot be snapshotted", name, id)
				}
				rec.Words = append(rec.Words, wr)
			}
		}
		img.Vocabularies = append(img.Vocabularies, rec)
	}

	return img, nil
}

// Restore builds a fresh runtime from an image. Primitive definitions are
// re-bound by identifier from the new runtime's primitives vocabulary;
// an identifier that no longer exists there is a restore error.
func Restore(img *Image) (*vm.Runtime, error) {
	if img.Version != FormatVersion {
		return nil, fmt.Errorf("image: unsupported format version %d (want %d)", img.Version, FormatVersion)
	}

	rt := vm.NewRuntimeWith(vm.Options{MaxStoreDepth: img.MaxDepth})
	prims, _ := rt.Vocabularies.Get(vm.PrimitivesVocabularyName)

	// Vocabularies and definitions first; literally-pushed stack objects do
	// not depend on them, but the search order references vocabulary names.
	for _, rec := range img.Vocabularies {
		voc, ok := rt.Vocabularies.Get(rec.Name)
		if !ok {
			voc = vm.NewVocabulary(rec.Name)
			if err := rt.Vocabularies.Register(voc); err != nil {
				return nil, fmt.Errorf("image: registering %q: %w", rec.Name, err)
			}
		}
		for _, wr := range rec.Words {
			w, err := restoreWord(rec.Name, wr, prims)
			if err != nil {
				return nil, err
			}
			if w != nil {
				voc.Define(wr.Identifier, w)
			}
		}
	}

	// Search order, least-recent first so the image's front ends up front.
	for i := len(img.SearchOrder) - 1; i >= 0; i-- {
		if err := rt.Vocabularies.Activate(img.SearchOrder[i]); err != nil {
			return nil, fmt.Errorf("image: activating %q: %w", img.SearchOrder[i], err)
		}
	}

	// Stack, preserving aliases through per-index handles.
	handles := make([]vm.StoredObject, len(img.Objects))
	for _, idx := range img.Stack {
		if idx < 0 || idx >= len(img.Objects) {
			return nil, fmt.Errorf("image: stack references object %d of %d", idx, len(img.Objects))
		}
		if handles[idx] == nil {
			obj, err := decodeObject(img.Objects[idx])
			if err != nil {
				return nil, err
			}
			h, err := rt.Store.Push(obj)
			if err != nil {
				return nil, fmt.Errorf("image: restoring stack: %w", err)
			}
			handles[idx] = h
			continue
		}
		if err := rt.Store.PushHandle(handles[idx]); err != nil {
			return nil, fmt.Errorf("image: restoring stack: %w", err)
		}
	}

	return rt, nil
}

// restoreWord rebuilds one definition. Primitive records in the primitives
// vocabulary are skipped (the fresh runtime already has them); elsewhere
// they re-bind to the built-in of the same identifier.
func restoreWord(vocName string, wr WordRec, prims *vm.Vocabulary) (*vm.Word, error) {
	switch vm.WordKind(wr.Kind) {
	case vm.WordPrimitive:
		if vocName == vm.PrimitivesVocabularyName {
			return nil, nil
		}
		builtin := prims.Resolve(wr.Identifier)
		if builtin == nil {
			return nil, fmt.Errorf("image: %s/%s: no such primitive to re-bind", vocName, wr.Identifier)
		}
		w := vm.NewPrimitiveWord(builtin.Primitive())
		w.Hidden = wr.Hidden
		w.Immediate = wr.Immediate
		return w, nil
	case vm.WordConstant:
		if wr.Constant == nil {
			return nil, fmt.Errorf("image: %s/%s: constant word without a constant", vocName, wr.Identifier)
		}
		obj, err := decodeObject(*wr.Constant)
		if err != nil {
			return nil, err
		}
		w := vm.NewConstantWord(obj)
		w.Hidden = wr.Hidden
		w.Immediate = wr.Immediate
		return w, nil
	}
	return nil, fmt.Errorf("image: %s/%s: unknown word kind %d", vocName, wr.Identifier, wr.Kind)
}

func encodeObject(obj vm.Object) ObjectRec {
	rec := ObjectRec{Kind: uint8(obj.Kind())}
	switch obj.Kind() {
	case vm.KindBoolean:
		rec.Bool = obj.Boolean()
	case vm.KindUnsignedInt:
		rec.Uint = obj.UnsignedInt()
	case vm.KindSignedInt:
		rec.Int = obj.SignedInt()
	case vm.KindFloat32:
		rec.Float = float64(obj.Float32())
	case vm.KindFloat64:
		rec.Float = obj.Float64()
	}
	return rec
}

func decodeObject(rec ObjectRec) (vm.Object, error) {
	switch vm.Kind(rec.Kind) {
	case vm.KindBoolean:
		return vm.FromBoolean(rec.Bool), nil
	case vm.KindUnsignedInt:
		return vm.FromUnsignedInt(rec.Uint), nil
	case vm.KindSignedInt:
		return vm.FromSignedInt(rec.Int), nil
	case vm.KindFloat32:
		return vm.FromFloat32(float32(rec.Float)), nil
	case vm.KindFloat64:
		return vm.FromFloat64(rec.Float), nil
	}
	return vm.Object{}, fmt.Errorf("image: unknown object kind %d", rec.Kind)
}
