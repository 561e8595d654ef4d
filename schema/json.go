package schema

import (
	"encoding/json"
	"fmt"

	"github.com/binast/binpack/gtype"
)

// fieldTypeDoc is the on-disk shape of one FieldType: a "kind"
// discriminator plus the payload the kind needs. Grounded on the same
// tagged-union decode idiom as gtype.DecodeValue. Schema documents are
// stored apart from the script files whose values they type (see
// corpus.SchemaFileName).
type fieldTypeDoc struct {
	Kind      string         `json:"kind"`
	Primitive string         `json:"primitive,omitempty"`
	Tag       string         `json:"tag,omitempty"`
	Name      string         `json:"name,omitempty"`
	Elem      *fieldTypeDoc  `json:"elem,omitempty"`
	Variants  []fieldTypeDoc `json:"variants,omitempty"`
}

type fieldDoc struct {
	Name string       `json:"name"`
	Type fieldTypeDoc `json:"type"`
}

type ifaceDoc struct {
	Name   string     `json:"name"`
	IsNode bool       `json:"isNode"`
	Fields []fieldDoc `json:"fields"`
}

type enumDoc struct {
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}

type typedefDoc struct {
	Name string       `json:"name"`
	Type fieldTypeDoc `json:"type"`
}

// schemaDoc is the on-disk shape of a whole schema: typedefs, enums, and
// interfaces, declared in the order a WebIDL lifter would emit them. Named
// references may point forward; FieldType construction only interns a
// placeholder and resolution happens lazily at Flatten time, so decode
// order need not match declaration dependency order.
type schemaDoc struct {
	Typedefs []typedefDoc `json:"typedefs"`
	Enums    []enumDoc    `json:"enums"`
	Ifaces   []ifaceDoc   `json:"ifaces"`
}

// DecodeSchema parses a JSON-encoded grammar document into a ready-to-use
// Schema. This is the deserialization boundary for whatever external
// WebIDL-to-schema lifter produced the document; DecodeSchema itself does
// no WebIDL interpretation, only structural decode of the already-lifted
// result.
func DecodeSchema(data []byte) (*Schema, error) {
	var doc schemaDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode: %w", err)
	}
	s := NewSchema()
	for _, td := range doc.Typedefs {
		ft, err := decodeFieldType(s.Registry, td.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: typedef %q: %w", td.Name, err)
		}
		if err := s.DeclareTypedef(gtype.TypeName(td.Name), ft); err != nil {
			return nil, err
		}
	}
	for _, ed := range doc.Enums {
		if err := s.DeclareEnum(gtype.TypeName(ed.Name), ed.Variants); err != nil {
			return nil, err
		}
	}
	for _, id := range doc.Ifaces {
		fields := make([]Field, len(id.Fields))
		for i, fd := range id.Fields {
			ft, err := decodeFieldType(s.Registry, fd.Type)
			if err != nil {
				return nil, fmt.Errorf("schema: iface %q field %q: %w", id.Name, fd.Name, err)
			}
			fields[i] = Field{Name: fd.Name, Type: ft}
		}
		if err := s.DeclareIface(gtype.TypeName(id.Name), fields, id.IsNode); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeFieldType(r *gtype.Registry, doc fieldTypeDoc) (*gtype.FieldType, error) {
	switch doc.Kind {
	case "primitive":
		prim, err := decodePrimitive(doc.Primitive)
		if err != nil {
			return nil, err
		}
		return r.MakePrimitive(prim), nil
	case "ident":
		tag, err := decodeIdentTag(doc.Tag)
		if err != nil {
			return nil, err
		}
		return r.MakeIdent(tag), nil
	case "named":
		return r.MakeNamed(gtype.TypeName(doc.Name)), nil
	case "iface":
		return r.MakeIface(gtype.TypeName(doc.Name)), nil
	case "enum":
		return r.MakeEnum(gtype.TypeName(doc.Name)), nil
	case "array":
		if doc.Elem == nil {
			return nil, fmt.Errorf("schema: array field type missing \"elem\"")
		}
		elem, err := decodeFieldType(r, *doc.Elem)
		if err != nil {
			return nil, err
		}
		return r.MakeArray(elem), nil
	case "union":
		variants := make([]*gtype.FieldType, len(doc.Variants))
		for i, v := range doc.Variants {
			ft, err := decodeFieldType(r, v)
			if err != nil {
				return nil, err
			}
			variants[i] = ft
		}
		return r.MakeUnion(variants...)
	default:
		return nil, fmt.Errorf("schema: unknown field type kind %q", doc.Kind)
	}
}

func decodePrimitive(s string) (gtype.PrimitiveKind, error) {
	switch s {
	case "Null":
		return gtype.PrimNull, nil
	case "Bool":
		return gtype.PrimBool, nil
	case "Uint":
		return gtype.PrimUint, nil
	case "Int":
		return gtype.PrimInt, nil
	case "F64":
		return gtype.PrimF64, nil
	case "Str":
		return gtype.PrimStr, nil
	default:
		return 0, fmt.Errorf("schema: unknown primitive kind %q", s)
	}
}

func decodeIdentTag(s string) (gtype.IdentTag, error) {
	switch s {
	case "var":
		return gtype.IdentVar, nil
	case "prop":
		return gtype.IdentProp, nil
	default:
		return 0, fmt.Errorf("schema: unknown ident tag %q", s)
	}
}
