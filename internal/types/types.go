package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindNumber
	KindString
	KindBoolean
	KindVoid
	KindNull
	KindArray
	KindFn
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindVoid:
		return "void"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindFn:
		return "function"
	case KindModule:
		return "module"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // for arrays
	Payload uint32 // slot in the side tables for functions and modules
}

// IsPrimitive reports whether k is one of number, string, boolean.
func (k Kind) IsPrimitive() bool {
	return k == KindNumber || k == KindString || k == KindBoolean
}
