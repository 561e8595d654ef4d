// Package gtype implements the Type Registry: interned, hash-consed grammar
// types lifted from a WebIDL schema (primitives, identifier tags, named
// references, interfaces, enums, arrays, unions) and the TypeSet flattening
// and value-matching rules layered on top of them.
//
// Grounded on the teacher's (openconfig/ygot) approach to schema-keyed
// interning and on the dolthub/dolt type_cache.go idiom of hash-consing
// structurally-equal types to a single pointer (see DESIGN.md).
package gtype

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// TypeName is an interned string key for a declared grammar entity (a
// typedef, interface, or enum name from the lifted WebIDL schema).
type TypeName string

// TypeID is a process-wide unique identifier assigned to a FieldType the
// moment it is created. Two FieldTypes with the same TypeID are the same
// object; TypeID is what TypeSet dedup and union-variant dedup key on.
type TypeID uint64

var nextTypeID atomic.Uint64

func newTypeID() TypeID {
	return TypeID(nextTypeID.Inc())
}

// PrimitiveKind enumerates the scalar leaf types of the grammar.
type PrimitiveKind uint8

const (
	PrimNull PrimitiveKind = iota
	PrimBool
	PrimUint
	PrimInt
	PrimF64
	PrimStr
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimNull:
		return "Null"
	case PrimBool:
		return "Bool"
	case PrimUint:
		return "Uint"
	case PrimInt:
		return "Int"
	case PrimF64:
		return "F64"
	case PrimStr:
		return "Str"
	default:
		return "Unknown"
	}
}

// IdentTag distinguishes a variable identifier from a property name; the
// carried values are opaque string-like handles either way.
type IdentTag uint8

const (
	IdentVar IdentTag = iota
	IdentProp
)

func (t IdentTag) String() string {
	if t == IdentProp {
		return "prop"
	}
	return "ident"
}

// Kind discriminates the FieldType tagged union.
type Kind uint8

const (
	KPrimitive Kind = iota
	KIdent
	KNamed
	KIface
	KEnum
	KArray
	KUnion
)

// FieldType is a tagged-variant grammar type. Primitive/Ident/Iface/Enum/
// Array are terminal (no further resolution needed to know their shape);
// Named/Union are non-terminal (elimination happens during flattening).
//
// FieldType values are always obtained from a Registry constructor, which
// interns by structural key so that two structurally-equal constructions
// return the identical pointer.
type FieldType struct {
	id   TypeID
	kind Kind

	prim     PrimitiveKind // KPrimitive
	identTag IdentTag      // KIdent
	name     TypeName      // KNamed, KIface, KEnum
	elem     *FieldType    // KArray
	variants []*FieldType  // KUnion, ordered, deduplicated by TypeID
}

func (t *FieldType) ID() TypeID     { return t.id }
func (t *FieldType) Kind() Kind     { return t.kind }
func (t *FieldType) Primitive() PrimitiveKind { return t.prim }
func (t *FieldType) IdentTag() IdentTag       { return t.identTag }
func (t *FieldType) Name() TypeName           { return t.name }
func (t *FieldType) Elem() *FieldType         { return t.elem }
func (t *FieldType) Variants() []*FieldType   { return t.variants }

// IsTerminal reports whether t requires no further resolution to determine
// its runtime shape.
func (t *FieldType) IsTerminal() bool {
	switch t.kind {
	case KPrimitive, KIdent, KIface, KEnum, KArray:
		return true
	default:
		return false
	}
}

// key returns the canonical structural string this type interns under.
func (t *FieldType) key() string {
	switch t.kind {
	case KPrimitive:
		return "prim:" + t.prim.String()
	case KIdent:
		return "ident:" + t.identTag.String()
	case KNamed:
		return "named:" + string(t.name)
	case KIface:
		return "iface:" + string(t.name)
	case KEnum:
		return "enum:" + string(t.name)
	case KArray:
		return "array:" + t.elem.key()
	case KUnion:
		parts := make([]string, len(t.variants))
		for i, v := range t.variants {
			parts[i] = v.key()
		}
		return "union:" + strings.Join(parts, "|")
	default:
		return "?"
	}
}

// String renders a human-readable, stable type name used in bit-accounting
// category keys (sym/type/<tyPretty> etc.) and debug output.
func (t *FieldType) String() string {
	switch t.kind {
	case KPrimitive:
		return t.prim.String()
	case KIdent:
		return "Ident(" + t.identTag.String() + ")"
	case KNamed:
		return "Named(" + string(t.name) + ")"
	case KIface:
		return string(t.name)
	case KEnum:
		return string(t.name)
	case KArray:
		return "Array<" + t.elem.String() + ">"
	case KUnion:
		parts := make([]string, len(t.variants))
		for i, v := range t.variants {
			parts[i] = v.String()
		}
		return "(" + strings.Join(parts, "|") + ")"
	default:
		return "?"
	}
}

// Registry is the intern table for FieldTypes. Rather than a module-level
// singleton, a Registry is an explicit value owned by a Schema, so multiple
// schemas can coexist in one process without sharing or leaking intern
// state.
type Registry struct {
	mu    sync.Mutex
	byKey map[string]*FieldType
}

// NewRegistry returns an empty, ready-to-use Registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*FieldType)}
}

func (r *Registry) intern(t *FieldType) *FieldType {
	k := t.key()
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byKey[k]; ok {
		return existing
	}
	t.id = newTypeID()
	r.byKey[k] = t
	return t
}

// MakePrimitive interns the primitive type of the given kind.
func (r *Registry) MakePrimitive(kind PrimitiveKind) *FieldType {
	return r.intern(&FieldType{kind: KPrimitive, prim: kind})
}

// MakeIdent interns the identifier-handle type for the given tag.
func (r *Registry) MakeIdent(tag IdentTag) *FieldType {
	return r.intern(&FieldType{kind: KIdent, identTag: tag})
}

// MakeNamed interns an unresolved reference to a schema declaration. Named
// references are eliminated during TypeSet flattening.
func (r *Registry) MakeNamed(name TypeName) *FieldType {
	return r.intern(&FieldType{kind: KNamed, name: name})
}

// MakeIface interns a terminal reference to an interface declaration.
func (r *Registry) MakeIface(name TypeName) *FieldType {
	return r.intern(&FieldType{kind: KIface, name: name})
}

// MakeEnum interns a terminal reference to an enum declaration.
func (r *Registry) MakeEnum(name TypeName) *FieldType {
	return r.intern(&FieldType{kind: KEnum, name: name})
}

// MakeArray interns an array-of-inner type.
func (r *Registry) MakeArray(inner *FieldType) *FieldType {
	return r.intern(&FieldType{kind: KArray, elem: inner})
}

// MakeUnion interns a union of variants. Variants are deduplicated by
// TypeID, preserving first-occurrence order. If fewer than two distinct
// variants survive dedup, the constructor fails unless there is exactly
// one, in which case it collapses the degenerate union to that sole
// variant.
func (r *Registry) MakeUnion(variants ...*FieldType) (*FieldType, error) {
	deduped := dedupeByID(variants)
	switch len(deduped) {
	case 0:
		return nil, fmt.Errorf("gtype: union requires at least one variant")
	case 1:
		return deduped[0], nil
	default:
		return r.intern(&FieldType{kind: KUnion, variants: deduped}), nil
	}
}

func dedupeByID(ts []*FieldType) []*FieldType {
	seen := make(map[TypeID]bool, len(ts))
	out := make([]*FieldType, 0, len(ts))
	for _, t := range ts {
		if t == nil {
			continue
		}
		if seen[t.id] {
			continue
		}
		seen[t.id] = true
		out = append(out, t)
	}
	return out
}
