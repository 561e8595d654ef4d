package gtype

import "fmt"

// ResolvedType is the unique terminal in a TypeSet that a value matches,
// together with its index within that TypeSet.
type ResolvedType struct {
	TypeSet TypeSet
	Ty      *FieldType
	Index   int
}

// Matches reports whether value satisfies the bound described by ty. Named
// and Enum branches consult r; every other branch is self-contained.
//
// The PrimUint/PrimInt/PrimF64 definitions deliberately overlap (an integer >= 0
// matches all three), which is why Resolve below must treat more than one
// match as an error rather than picking the first.
func (ty *FieldType) Matches(v Value, r DeclResolver) (bool, error) {
	switch ty.kind {
	case KPrimitive:
		switch ty.prim {
		case PrimNull:
			return v.Kind() == VNull, nil
		case PrimBool:
			return v.Kind() == VBool, nil
		case PrimUint:
			return v.Kind() == VInt && v.AsInt() >= 0, nil
		case PrimInt:
			return v.Kind() == VInt, nil
		case PrimF64:
			return v.Kind() == VFloat || v.Kind() == VInt, nil
		case PrimStr:
			return v.Kind() == VString, nil
		}
		return false, fmt.Errorf("gtype: unknown primitive kind %v", ty.prim)
	case KIdent:
		return v.Kind() == VIdent, nil
	case KIface:
		return v.Kind() == VInstance && v.AsInstance() != nil && v.AsInstance().IfaceName == ty.name, nil
	case KEnum:
		if v.Kind() != VString {
			return false, nil
		}
		variants, err := r.EnumVariants(ty.name)
		if err != nil {
			return false, err
		}
		for _, variant := range variants {
			if variant == v.AsString() {
				return true, nil
			}
		}
		return false, nil
	case KArray:
		if v.Kind() != VArray {
			return false, nil
		}
		for _, elem := range v.AsArray() {
			ok, err := ty.elem.Matches(elem, r)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case KNamed:
		aliased, err := r.ResolveNamed(ty.name)
		if err != nil {
			return false, err
		}
		return aliased.Matches(v, r)
	case KUnion:
		for _, variant := range ty.variants {
			ok, err := variant.Matches(v, r)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("gtype: unknown FieldType kind %d", ty.kind)
}

// Resolve finds the unique terminal in ts that matches value. Exactly one
// match is required: zero matches is ErrValueMismatch, more than one is
// ErrAmbiguous.
func Resolve(ts TypeSet, value Value, r DeclResolver) (ResolvedType, error) {
	found := -1
	for i, t := range ts {
		ok, err := t.Matches(value, r)
		if err != nil {
			return ResolvedType{}, err
		}
		if !ok {
			continue
		}
		if found != -1 {
			return ResolvedType{}, fmt.Errorf("%w: value matches both %s and %s", ErrAmbiguous, ts[found], t)
		}
		found = i
	}
	if found == -1 {
		return ResolvedType{}, fmt.Errorf("%w: value %s matches no terminal in %v", ErrValueMismatch, value.Kind(), ts)
	}
	return ResolvedType{TypeSet: ts, Ty: ts[found], Index: found}, nil
}
