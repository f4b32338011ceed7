package vm

import (
	"math"
	"strconv"
)

// ---------------------------------------------------------------------------
// Object: immutable tagged runtime values
// ---------------------------------------------------------------------------

// Kind identifies the runtime type of an Object.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindUnsignedInt
	KindSignedInt
	KindFloat32
	KindFloat64
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "Boolean"
	case KindUnsignedInt:
		return "UnsignedInt"
	case KindSignedInt:
		return "SignedInt"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	}
	return "Unknown"
}

// Object is an immutable tagged runtime value. Objects never mutate after
// creation; sharing one between Store slots is always safe.
type Object struct {
	kind Kind
	b    bool
	u    uint64
	i    int64
	f32  float32
	f64  float64
}

// FromBoolean creates a Boolean object.
func FromBoolean(v bool) Object {
	return Object{kind: KindBoolean, b: v}
}

// FromUnsignedInt creates an UnsignedInt object.
func FromUnsignedInt(v uint64) Object {
	return Object{kind: KindUnsignedInt, u: v}
}

// FromSignedInt creates a SignedInt object.
func FromSignedInt(v int64) Object {
	return Object{kind: KindSignedInt, i: v}
}

// FromFloat32 creates a Float32 object.
func FromFloat32(v float32) Object {
	return Object{kind: KindFloat32, f32: v}
}

// FromFloat64 creates a Float64 object.
func FromFloat64(v float64) Object {
	return Object{kind: KindFloat64, f64: v}
}

// Kind returns the runtime type tag of the object.
func (o Object) Kind() Kind {
	return o.kind
}

// Boolean returns the boolean payload.
func (o Object) Boolean() bool {
	if o.kind != KindBoolean {
		panic("vm: Object.Boolean: not a Boolean")
	}
	return o.b
}

// UnsignedInt returns the unsigned integer payload.
func (o Object) UnsignedInt() uint64 {
	if o.kind != KindUnsignedInt {
		panic("vm: Object.UnsignedInt: not an UnsignedInt")
	}
	return o.u
}

// SignedInt returns the signed integer payload.
func (o Object) SignedInt() int64 {
	if o.kind != KindSignedInt {
		panic("vm: Object.SignedInt: not a SignedInt")
	}
	return o.i
}

// Float32 returns the 32-bit float payload.
func (o Object) Float32() float32 {
	if o.kind != KindFloat32 {
		panic("vm: Object.Float32: not a Float32")
	}
	return o.f32
}

// Float64 returns the 64-bit float payload.
func (o Object) Float64() float64 {
	if o.kind != KindFloat64 {
		panic("vm: Object.Float64: not a Float64")
	}
	return o.f64
}

// Equal reports whether two objects have the same kind and payload.
func (o Object) Equal(other Object) bool {
	return o == other
}

func (o Object) String() string {
	switch o.kind {
	case KindBoolean:
		return strconv.FormatBool(o.b)
	case KindUnsignedInt:
		return strconv.FormatUint(o.u, 10)
	case KindSignedInt:
		return strconv.FormatInt(o.i, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(o.f32), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(o.f64, 'g', -1, 64)
	}
	return "(unknown)"
}

// ---------------------------------------------------------------------------
// Arithmetic and coercion
// ---------------------------------------------------------------------------
//
// Identical-kind pairs compute directly in that kind. A Float32/Float64 mix
// widens to Float64. Every other pairing (signed/unsigned mixes, int/float
// mixes, anything involving Boolean) is ErrIncompatibleTypes.

func (o Object) isFloat() bool {
	return o.kind == KindFloat32 || o.kind == KindFloat64
}

// asFloat64 widens a float-kinded object to float64.
func (o Object) asFloat64() float64 {
	if o.kind == KindFloat32 {
		return float64(o.f32)
	}
	return o.f64
}

// isZero reports whether a numeric object is zero. False for Booleans.
func (o Object) isZero() bool {
	switch o.kind {
	case KindUnsignedInt:
		return o.u == 0
	case KindSignedInt:
		return o.i == 0
	case KindFloat32:
		return o.f32 == 0
	case KindFloat64:
		return o.f64 == 0
	}
	return false
}

// Add computes left + right under the coercion policy.
func Add(left, right Object) (Object, error) {
	switch {
	case left.kind == KindUnsignedInt && right.kind == KindUnsignedInt:
		return FromUnsignedInt(left.u + right.u), nil
	case left.kind == KindSignedInt && right.kind == KindSignedInt:
		return FromSignedInt(left.i + right.i), nil
	case left.kind == KindFloat32 && right.kind == KindFloat32:
		return FromFloat32(left.f32 + right.f32), nil
	case left.kind == KindFloat64 && right.kind == KindFloat64:
		return FromFloat64(left.f64 + right.f64), nil
	case left.isFloat() && right.isFloat():
		return FromFloat64(left.asFloat64() + right.asFloat64()), nil
	}
	return Object{}, ErrIncompatibleTypes
}

// Sub computes left - right under the coercion policy. Unsigned subtraction
// that would go below zero is ErrArithmeticUnderflow, not wraparound.
func Sub(left, right Object) (Object, error) {
	switch {
	case left.kind == KindUnsignedInt && right.kind == KindUnsignedInt:
		if left.u < right.u {
			return Object{}, ErrArithmeticUnderflow
		}
		return FromUnsignedInt(left.u - right.u), nil
	case left.kind == KindSignedInt && right.kind == KindSignedInt:
		return FromSignedInt(left.i - right.i), nil
	case left.kind == KindFloat32 && right.kind == KindFloat32:
		return FromFloat32(left.f32 - right.f32), nil
	case left.kind == KindFloat64 && right.kind == KindFloat64:
		return FromFloat64(left.f64 - right.f64), nil
	case left.isFloat() && right.isFloat():
		return FromFloat64(left.asFloat64() - right.asFloat64()), nil
	}
	return Object{}, ErrIncompatibleTypes
}

// Mul computes left * right under the coercion policy.
func Mul(left, right Object) (Object, error) {
	switch {
	case left.kind == KindUnsignedInt && right.kind == KindUnsignedInt:
		return FromUnsignedInt(left.u * right.u), nil
	case left.kind == KindSignedInt && right.kind == KindSignedInt:
		return FromSignedInt(left.i * right.i), nil
	case left.kind == KindFloat32 && right.kind == KindFloat32:
		return FromFloat32(left.f32 * right.f32), nil
	case left.kind == KindFloat64 && right.kind == KindFloat64:
		return FromFloat64(left.f64 * right.f64), nil
	case left.isFloat() && right.isFloat():
		return FromFloat64(left.asFloat64() * right.asFloat64()), nil
	}
	return Object{}, ErrIncompatibleTypes
}

// Div computes left / right under the coercion policy. The right operand is
// checked for zero before anything else; the runtime never trusts an
// upstream type system to have excluded it.
func Div(left, right Object) (Object, error) {
	if right.isZero() {
		return Object{}, ErrDivisionByZero
	}
	switch {
	case left.kind == KindUnsignedInt && right.kind == KindUnsignedInt:
		return FromUnsignedInt(left.u / right.u), nil
	case left.kind == KindSignedInt && right.kind == KindSignedInt:
		return FromSignedInt(left.i / right.i), nil
	case left.kind == KindFloat32 && right.kind == KindFloat32:
		return FromFloat32(left.f32 / right.f32), nil
	case left.kind == KindFloat64 && right.kind == KindFloat64:
		return FromFloat64(left.f64 / right.f64), nil
	case left.isFloat() && right.isFloat():
		return FromFloat64(left.asFloat64() / right.asFloat64()), nil
	}
	return Object{}, ErrIncompatibleTypes
}

// Mod computes left mod right under the coercion policy, with the same
// zero check as Div. Float remainders use math.Mod semantics.
func Mod(left, right Object) (Object, error) {
	if right.isZero() {
		return Object{}, ErrDivisionByZero
	}
	switch {
	case left.kind == KindUnsignedInt && right.kind == KindUnsignedInt:
		return FromUnsignedInt(left.u % right.u), nil
	case left.kind == KindSignedInt && right.kind == KindSignedInt:
		return FromSignedInt(left.i % right.i), nil
	case left.kind == KindFloat32 && right.kind == KindFloat32:
		return FromFloat32(float32(math.Mod(float64(left.f32), float64(right.f32)))), nil
	case left.kind == KindFloat64 && right.kind == KindFloat64:
		return FromFloat64(math.Mod(left.f64, right.f64)), nil
	case left.isFloat() && right.isFloat():
		return FromFloat64(math.Mod(left.asFloat64(), right.asFloat64())), nil
	}
	return Object{}, ErrIncompatibleTypes
}
