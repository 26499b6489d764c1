package types

// IsNumeric reports whether id can be used as an arithmetic operand.
func (in *Interner) IsNumeric(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindNumber || k == KindAny || k == KindInvalid
}

// IsAny reports whether id is any (or unknown, which is treated as any).
func (in *Interner) IsAny(id TypeID) bool {
	k := in.KindOf(id)
	return k == KindAny || k == KindInvalid
}

// AddResult computes the type of a + b. ok is false when '+' does not apply.
func (in *Interner) AddResult(a, b TypeID) (TypeID, bool) {
	ak, bk := in.KindOf(a), in.KindOf(b)
	switch {
	case ak == KindString || bk == KindString:
		return in.builtins.String, true
	case ak == KindNumber && bk == KindNumber:
		return in.builtins.Number, true
	case in.IsAny(a) && (in.IsAny(b) || bk == KindNumber):
		return in.builtins.Any, true
	case in.IsAny(b) && ak == KindNumber:
		return in.builtins.Any, true
	}
	return NoTypeID, false
}

// Orderable reports whether a and b can be compared with < <= > >=.
func (in *Interner) Orderable(a, b TypeID) bool {
	if in.IsAny(a) || in.IsAny(b) {
		return true
	}
	ak, bk := in.KindOf(a), in.KindOf(b)
	return ak == bk && (ak == KindNumber || ak == KindString)
}
