package types

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Param describes one parameter of a function type.
type Param struct {
	Name     string
	Type     TypeID
	Optional bool
	Rest     bool // Type is the array type of the rest parameter
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []Param
	Result TypeID
}

// MinArgs is the number of required arguments.
func (f *FnInfo) MinArgs() int {
	n := 0
	for _, p := range f.Params {
		if p.Optional || p.Rest {
			break
		}
		n++
	}
	return n
}

// MaxArgs is the maximum argument count, -1 when a rest parameter is present.
func (f *FnInfo) MaxArgs() int {
	if f.HasRest() {
		return -1
	}
	return len(f.Params)
}

func (f *FnInfo) HasRest() bool {
	return len(f.Params) > 0 && f.Params[len(f.Params)-1].Rest
}

// RegisterFn creates or finds a function type.
func (in *Interner) RegisterFn(params []Param, result TypeID) TypeID {
	for id := TypeID(1); int(id) < len(in.types); id++ {
		tt := in.types[id]
		if tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
			continue
		}
		info := in.fns[tt.Payload]
		if info.Result == result && slices.Equal(info.Params, params) {
			return id
		}
	}
	in.fns = append(in.fns, FnInfo{Params: slices.Clone(params), Result: result})
	slot, err := safecast.Conv[uint32](len(in.fns) - 1)
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	return in.internRaw(Type{Kind: KindFn, Payload: slot})
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFn || int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}
