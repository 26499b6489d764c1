package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for primitive types.
type Builtins struct {
	Any     TypeID
	Number  TypeID
	String  TypeID
	Boolean TypeID
	Void    TypeID
	Null    TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
	fns      []FnInfo
	modules  []string
}

// NewInterner constructs an interner seeded with built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.internRaw(Type{Kind: KindInvalid}) // reserve 0
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Number = in.Intern(Type{Kind: KindNumber})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Boolean = in.Intern(Type{Kind: KindBoolean})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	n, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(n)
	in.types = append(in.types, t)
	if t.Kind != KindInvalid {
		in.index[t] = id
	}
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// KindOf returns the kind of id, KindInvalid for unknown ids.
func (in *Interner) KindOf(id TypeID) Kind {
	t, _ := in.Lookup(id)
	return t.Kind
}

// Array returns the T[] type.
func (in *Interner) Array(elem TypeID) TypeID {
	return in.Intern(Type{Kind: KindArray, Elem: elem})
}

// ElemOf returns the element type of an array, NoTypeID otherwise.
func (in *Interner) ElemOf(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindArray {
		return NoTypeID
	}
	return t.Elem
}

// Module returns the type of a namespace import of the module at path.
func (in *Interner) Module(path string) TypeID {
	for i, p := range in.modules {
		if p == path {
			slot, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("module slot overflow: %w", err))
			}
			return in.Intern(Type{Kind: KindModule, Payload: slot})
		}
	}
	in.modules = append(in.modules, path)
	slot, err := safecast.Conv[uint32](len(in.modules) - 1)
	if err != nil {
		panic(fmt.Errorf("module slot overflow: %w", err))
	}
	return in.Intern(Type{Kind: KindModule, Payload: slot})
}

// ModulePath returns the module path behind a namespace type.
func (in *Interner) ModulePath(id TypeID) (string, bool) {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindModule || int(t.Payload) >= len(in.modules) {
		return "", false
	}
	return in.modules[t.Payload], true
}
