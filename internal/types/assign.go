package types

// Elaboration explains why a relation failed; Next holds deeper reasons.
type Elaboration struct {
	Message string
	Next    []Elaboration
}

// Relation configures assignability checks.
type Relation struct {
	In *Interner
	// StrictNull makes null assignable only to null and any.
	StrictNull bool
	// StrictFunctions compares parameters contravariantly instead of bivariantly.
	StrictFunctions bool
}

// Assignable reports whether a value of type src can be stored where dst is expected.
// On failure the returned elaborations describe nested mismatches (the top-level
// "not assignable" message is left to the caller).
func (r Relation) Assignable(src, dst TypeID) (bool, []Elaboration) {
	return r.assignable(src, dst, 0)
}

func (r Relation) assignable(src, dst TypeID, depth int) (bool, []Elaboration) {
	if src == dst || depth > 8 {
		return true, nil
	}
	sk, dk := r.In.KindOf(src), r.In.KindOf(dst)
	if sk == KindAny || dk == KindAny || sk == KindInvalid || dk == KindInvalid {
		return true, nil
	}
	if sk == KindNull {
		return !r.StrictNull, nil
	}
	switch dk {
	case KindArray:
		if sk != KindArray {
			return false, nil
		}
		ok, why := r.assignable(r.In.ElemOf(src), r.In.ElemOf(dst), depth+1)
		if ok {
			return true, nil
		}
		return false, []Elaboration{r.mismatch(r.In.ElemOf(src), r.In.ElemOf(dst), why)}
	case KindFn:
		if sk != KindFn {
			return false, nil
		}
		return r.fnAssignable(src, dst, depth)
	}
	return false, nil
}

func (r Relation) fnAssignable(src, dst TypeID, depth int) (bool, []Elaboration) {
	sf, _ := r.In.FnInfo(src)
	df, _ := r.In.FnInfo(dst)
	if sf.MinArgs() > len(df.Params) && !df.HasRest() {
		return false, nil
	}
	n := min(len(sf.Params), len(df.Params))
	for i := range n {
		sp, dp := sf.Params[i], df.Params[i]
		ok, why := r.assignable(dp.Type, sp.Type, depth+1)
		if !ok && !r.StrictFunctions {
			ok, _ = r.assignable(sp.Type, dp.Type, depth+1)
		}
		if !ok {
			return false, []Elaboration{{
				Message: "Types of parameters '" + sp.Name + "' and '" + dp.Name + "' are incompatible.",
				Next:    []Elaboration{r.mismatch(dp.Type, sp.Type, why)},
			}}
		}
	}
	if r.In.KindOf(df.Result) == KindVoid {
		return true, nil
	}
	ok, why := r.assignable(sf.Result, df.Result, depth+1)
	if !ok {
		return false, []Elaboration{{
			Message: "Type '" + Label(r.In, sf.Result) + "' is not assignable to type '" + Label(r.In, df.Result) + "'.",
			Next:    why,
		}}
	}
	return true, nil
}

func (r Relation) mismatch(src, dst TypeID, why []Elaboration) Elaboration {
	return Elaboration{
		Message: "Type '" + Label(r.In, src) + "' is not assignable to type '" + Label(r.In, dst) + "'.",
		Next:    why,
	}
}

// Comparable reports whether values of a and b may be equal (the types overlap).
func (r Relation) Comparable(a, b TypeID) bool {
	ak, bk := r.In.KindOf(a), r.In.KindOf(b)
	if ak == KindAny || bk == KindAny || ak == KindNull || bk == KindNull {
		return true
	}
	ok, _ := r.Assignable(a, b)
	if ok {
		return true
	}
	ok, _ = r.Assignable(b, a)
	return ok
}
