// Package schema holds the ordered declaration table lifted from a WebIDL
// grammar: typedefs, enums, and interfaces, plus the gtype.DeclResolver
// implementation and memoized flattening that the tree walker and entropy
// coder build on.
//
// Grounded on the teacher's ygen.Directory / goyang Entry map idiom (a
// name-keyed declaration collection with deterministic field ordering),
// adapted here to an explicit ordered slice since path-suffix determinism
// depends on WebIDL declaration order, not alphabetical order.
package schema

import (
	"fmt"

	"github.com/binast/binpack/gtype"
)

// Field is one member of an Iface declaration, in WebIDL declaration order.
type Field struct {
	Name string
	Type *gtype.FieldType
}

// DeclKind discriminates the Declaration tagged union.
type DeclKind uint8

const (
	DTypedef DeclKind = iota
	DEnum
	DIface
)

// Declaration is a single named entry in the schema's declaration table.
type Declaration struct {
	Kind DeclKind

	// DTypedef
	Aliased *gtype.FieldType

	// DEnum
	Variants []string

	// DIface
	Fields []Field
	IsNode bool // true if this interface appears as a tree node (has a "type" tag field in the source grammar)

	name gtype.TypeName
}

func (d Declaration) Name() gtype.TypeName { return d.name }

// ErrUnknownType is returned by GetDecl and by the DeclResolver methods when
// a name has no declaration in the schema.
type ErrUnknownType gtype.TypeName

func (e ErrUnknownType) Error() string {
	return fmt.Sprintf("schema: unknown type %q", string(e))
}

// ErrDuplicateDecl is returned by the Declare* methods when name is already
// bound.
type ErrDuplicateDecl gtype.TypeName

func (e ErrDuplicateDecl) Error() string {
	return fmt.Sprintf("schema: duplicate declaration %q", string(e))
}

// ErrInvalidDecl flags a structurally invalid declaration (an enum with no
// variants) or a lookup that found a declaration of the wrong kind (e.g.
// EnumVariants on an interface name).
type ErrInvalidDecl struct {
	Name   gtype.TypeName
	Reason string
}

func (e ErrInvalidDecl) Error() string {
	return fmt.Sprintf("schema: invalid declaration %q: %s", string(e.Name), e.Reason)
}

// Schema is the ordered table of declarations lifted from one WebIDL
// grammar, together with the FieldType Registry used to build them. Schema
// implements gtype.DeclResolver so the gtype package never needs to import
// schema.
type Schema struct {
	Registry *gtype.Registry

	order []gtype.TypeName
	decls map[gtype.TypeName]Declaration

	flattenCache map[gtype.TypeID]gtype.TypeSet
}

// NewSchema returns an empty schema bound to a fresh Registry.
func NewSchema() *Schema {
	return &Schema{
		Registry:     gtype.NewRegistry(),
		decls:        make(map[gtype.TypeName]Declaration),
		flattenCache: make(map[gtype.TypeID]gtype.TypeSet),
	}
}

// DeclareTypedef binds name to an alias of aliased. Re-declaring an existing
// name is an error.
func (s *Schema) DeclareTypedef(name gtype.TypeName, aliased *gtype.FieldType) error {
	if err := s.reserve(name); err != nil {
		return err
	}
	s.commit(name, Declaration{Kind: DTypedef, Aliased: aliased, name: name})
	return nil
}

// DeclareEnum binds name to an enum over variants, which must be non-empty.
func (s *Schema) DeclareEnum(name gtype.TypeName, variants []string) error {
	if err := s.reserve(name); err != nil {
		return err
	}
	if len(variants) == 0 {
		return ErrInvalidDecl{Name: name, Reason: "enum has no variants"}
	}
	cp := append([]string(nil), variants...)
	s.commit(name, Declaration{Kind: DEnum, Variants: cp, name: name})
	return nil
}

// DeclareIface binds name to an interface with the given fields, in
// declaration order. isNode marks interfaces the tree walker treats as AST
// node types (as opposed to plain records).
func (s *Schema) DeclareIface(name gtype.TypeName, fields []Field, isNode bool) error {
	if err := s.reserve(name); err != nil {
		return err
	}
	cp := append([]Field(nil), fields...)
	s.commit(name, Declaration{Kind: DIface, Fields: cp, IsNode: isNode, name: name})
	return nil
}

func (s *Schema) reserve(name gtype.TypeName) error {
	if _, ok := s.decls[name]; ok {
		return ErrDuplicateDecl(name)
	}
	return nil
}

func (s *Schema) commit(name gtype.TypeName, d Declaration) {
	s.decls[name] = d
	s.order = append(s.order, name)
}

// GetDecl looks up a declaration by name.
func (s *Schema) GetDecl(name gtype.TypeName) (Declaration, error) {
	d, ok := s.decls[name]
	if !ok {
		return Declaration{}, ErrUnknownType(name)
	}
	return d, nil
}

// Declarations returns every declaration in the order it was added.
func (s *Schema) Declarations() []Declaration {
	out := make([]Declaration, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.decls[name])
	}
	return out
}

// ResolveNamed implements gtype.DeclResolver: a Named reference resolves to
// a typedef's aliased type, or to the terminal Iface/Enum type of an
// interface or enum declaration.
func (s *Schema) ResolveNamed(name gtype.TypeName) (*gtype.FieldType, error) {
	d, err := s.GetDecl(name)
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case DTypedef:
		return d.Aliased, nil
	case DIface:
		return s.Registry.MakeIface(name), nil
	case DEnum:
		return s.Registry.MakeEnum(name), nil
	}
	return nil, ErrInvalidDecl{Name: name, Reason: "unknown declaration kind"}
}

// EnumVariants implements gtype.DeclResolver.
func (s *Schema) EnumVariants(name gtype.TypeName) ([]string, error) {
	d, err := s.GetDecl(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != DEnum {
		return nil, ErrInvalidDecl{Name: name, Reason: "not an enum"}
	}
	return d.Variants, nil
}

// Flatten flattens ty under this schema's declarations, memoizing by the
// type's identity (two FieldTypes always flatten to the same TypeSet under
// the same schema since flattening never consults tree-walk state).
func (s *Schema) Flatten(ty *gtype.FieldType) (gtype.TypeSet, error) {
	if cached, ok := s.flattenCache[ty.ID()]; ok {
		return cached, nil
	}
	ts, err := gtype.Flatten(ty, s)
	if err != nil {
		return nil, err
	}
	s.flattenCache[ty.ID()] = ts
	return ts, nil
}

// IfaceFields returns the declaration-order field list of an interface
// declaration, or an error if name isn't an interface.
func (s *Schema) IfaceFields(name gtype.TypeName) ([]Field, error) {
	d, err := s.GetDecl(name)
	if err != nil {
		return nil, err
	}
	if d.Kind != DIface {
		return nil, ErrInvalidDecl{Name: name, Reason: "not an interface"}
	}
	return d.Fields, nil
}
