package vm

// ---------------------------------------------------------------------------
// Built-in primitive words
// ---------------------------------------------------------------------------

// newPrimitivesVocabulary builds the vocabulary of native words every
// Runtime starts with.
func newPrimitivesVocabulary() *Vocabulary {
	voc := NewVocabulary(PrimitivesVocabularyName)

	// stack ops
	voc.Define("drop", NewPrimitiveWord(primDrop))
	voc.Define("dup", NewPrimitiveWord(primDup))
	voc.Define("swap", NewPrimitiveWord(primSwap))
	voc.Define("rot", NewPrimitiveWord(primRot))

	// math
	voc.Define("add", NewPrimitiveWord(primAdd))
	voc.Define("sub", NewPrimitiveWord(primSub))
	voc.Define("mul", NewPrimitiveWord(primMul))
	voc.Define("div", NewPrimitiveWord(primDiv))
	voc.Define("mod", NewPrimitiveWord(primMod))

	return voc
}

func primDrop(rt *Runtime) error {
	_, err := rt.Store.Pop()
	return err
}

func primDup(rt *Runtime) error {
	return rt.Store.Dup()
}

func primSwap(rt *Runtime) error {
	return rt.Store.Swap()
}

func primRot(rt *Runtime) error {
	return rt.Store.Rot()
}

// binaryOp applies op to the top two stack items, left operand below right.
// Operands are read before anything is popped, so a failing op leaves the
// stack untouched.
func binaryOp(rt *Runtime, op func(left, right Object) (Object, error)) error {
	right, err := rt.Store.PeekN(0)
	if err != nil {
		return err
	}
	left, err := rt.Store.PeekN(1)
	if err != nil {
		return err
	}

	result, err := op(*left, *right)
	if err != nil {
		return err
	}

	// Depth was verified by the peeks; neither pop can fail.
	rt.Store.Pop()
	rt.Store.Pop()
	_, err = rt.Store.Push(result)
	return err
}

func primAdd(rt *Runtime) error {
	return binaryOp(rt, Add)
}

func primSub(rt *Runtime) error {
	return binaryOp(rt, Sub)
}

func primMul(rt *Runtime) error {
	return binaryOp(rt, Mul)
}

func primDiv(rt *Runtime) error {
	return binaryOp(rt, Div)
}

func primMod(rt *Runtime) error {
	return binaryOp(rt, Mod)
}
