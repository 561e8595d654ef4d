package gtype

import (
	"encoding/json"
	"fmt"
)

// valueDoc is the on-disk shape of one Value node: a "kind" discriminator
// plus the payload fields that kind uses. This is binpack's own wire format
// for an already-typed tree — the WebIDL-to-schema lifter and the
// JSON-AST-to-typed-tree importer that would turn raw JavaScript source
// into values like these are out of scope; DecodeValue only deserializes
// the already-typed result, the way ytypes.Unmarshal decodes an
// already-schema-shaped JSON document rather than parsing YANG itself.
type valueDoc struct {
	Kind     string              `json:"kind"`
	Value    json.RawMessage     `json:"value,omitempty"`
	Tag      string              `json:"tag,omitempty"`
	Name     string              `json:"name,omitempty"`
	Type     string              `json:"type,omitempty"`
	Fields   map[string]valueDoc `json:"fields,omitempty"`
	Elements []valueDoc          `json:"elements,omitempty"`
}

// DecodeValue parses one JSON-encoded Value tree. The shape is a tagged
// union keyed by "kind": null, bool, int, float, string, ident, instance,
// array; "instance" nests child values under "fields" and "array" under
// "elements".
func DecodeValue(data []byte) (Value, error) {
	var doc valueDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Value{}, fmt.Errorf("gtype: decode value: %w", err)
	}
	return decodeValueDoc(doc)
}

func decodeValueDoc(doc valueDoc) (Value, error) {
	switch doc.Kind {
	case "null", "":
		return Null(), nil
	case "bool":
		var b bool
		if err := json.Unmarshal(doc.Value, &b); err != nil {
			return Value{}, fmt.Errorf("gtype: decode bool value: %w", err)
		}
		return Bool(b), nil
	case "int":
		var i int64
		if err := json.Unmarshal(doc.Value, &i); err != nil {
			return Value{}, fmt.Errorf("gtype: decode int value: %w", err)
		}
		return Int(i), nil
	case "float":
		var f float64
		if err := json.Unmarshal(doc.Value, &f); err != nil {
			return Value{}, fmt.Errorf("gtype: decode float value: %w", err)
		}
		return Float(f), nil
	case "string":
		var str string
		if err := json.Unmarshal(doc.Value, &str); err != nil {
			return Value{}, fmt.Errorf("gtype: decode string value: %w", err)
		}
		return Str(str), nil
	case "ident":
		tag, err := decodeIdentTag(doc.Tag)
		if err != nil {
			return Value{}, err
		}
		return Ident(tag, doc.Name), nil
	case "instance":
		fields := make(map[string]Value, len(doc.Fields))
		for name, child := range doc.Fields {
			v, err := decodeValueDoc(child)
			if err != nil {
				return Value{}, fmt.Errorf("gtype: decode field %q of %q: %w", name, doc.Type, err)
			}
			fields[name] = v
		}
		return Inst(TypeName(doc.Type), fields), nil
	case "array":
		elems := make([]Value, len(doc.Elements))
		for i, child := range doc.Elements {
			v, err := decodeValueDoc(child)
			if err != nil {
				return Value{}, fmt.Errorf("gtype: decode array element %d: %w", i, err)
			}
			elems[i] = v
		}
		return Array(elems...), nil
	default:
		return Value{}, fmt.Errorf("gtype: unknown value kind %q", doc.Kind)
	}
}

func decodeIdentTag(s string) (IdentTag, error) {
	switch s {
	case "var":
		return IdentVar, nil
	case "prop":
		return IdentProp, nil
	default:
		return 0, fmt.Errorf("gtype: unknown ident tag %q", s)
	}
}
