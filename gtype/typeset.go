package gtype

import "fmt"

// TypeSet is an ordered, deduplicated list of terminal FieldTypes derived by
// flattening a FieldType under a schema's declarations.
type TypeSet []*FieldType

// IndexOf returns the position of t within ts, comparing by TypeID.
func (ts TypeSet) IndexOf(t *FieldType) (int, bool) {
	for i, tt := range ts {
		if tt.id == t.id {
			return i, true
		}
	}
	return -1, false
}

// DeclResolver is the minimal view of a Schema that gtype needs: resolving a
// Named reference to the type it names, and listing an Enum declaration's
// variants for value matching. The concrete schema.Schema type implements
// this; gtype never imports schema to avoid a cycle.
type DeclResolver interface {
	ResolveNamed(name TypeName) (*FieldType, error)
	EnumVariants(name TypeName) ([]string, error)
}

// Flatten eliminates Named references and nested Unions from ty, producing
// an ordered TypeSet of terminal FieldTypes.
//
// Rules: primitives/idents/arrays/ifaces/enums pass through as singletons;
// named typedefs are replaced by the flattening of their alias; unions
// recursively flatten their variants, dedupe by TypeID, and if PrimNull appears
// anywhere it is moved to the front exactly once.
//
// Flatten is memoized by the caller (schema.Schema.Flatten), not here: the
// same FieldType flattens differently under different schemas, so the
// cache key must include schema identity.
func Flatten(ty *FieldType, r DeclResolver) (TypeSet, error) {
	if ty == nil {
		return nil, fmt.Errorf("gtype: cannot flatten nil type")
	}
	switch ty.Kind() {
	case KPrimitive, KIdent, KIface, KEnum, KArray:
		return TypeSet{ty}, nil
	case KNamed:
		aliased, err := r.ResolveNamed(ty.Name())
		if err != nil {
			return nil, fmt.Errorf("gtype: flattening %s: %w", ty, err)
		}
		return Flatten(aliased, r)
	case KUnion:
		var out TypeSet
		for _, v := range ty.Variants() {
			sub, err := Flatten(v, r)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return normalizeTypeSet(out), nil
	default:
		return nil, fmt.Errorf("gtype: unknown FieldType kind %d", ty.Kind())
	}
}

// normalizeTypeSet dedupes by TypeID (first occurrence wins) and, if PrimNull is
// present, moves it to index 0.
func normalizeTypeSet(in TypeSet) TypeSet {
	seen := make(map[TypeID]bool, len(in))
	out := make(TypeSet, 0, len(in))
	var null *FieldType
	for _, t := range in {
		if seen[t.id] {
			continue
		}
		seen[t.id] = true
		if t.Kind() == KPrimitive && t.Primitive() == PrimNull {
			null = t
			continue
		}
		out = append(out, t)
	}
	if null != nil {
		out = append(TypeSet{null}, out...)
	}
	return out
}
