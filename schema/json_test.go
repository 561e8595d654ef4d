package schema

import "testing"

func TestDecodeSchemaRoundTrip(t *testing.T) {
	doc := `{
		"enums": [{"name": "BinOp", "variants": ["Add", "Sub"]}],
		"ifaces": [
			{
				"name": "Expr",
				"isNode": true,
				"fields": [
					{"name": "op", "type": {"kind": "enum", "name": "BinOp"}},
					{"name": "left", "type": {"kind": "union", "variants": [
						{"kind": "primitive", "primitive": "Int"},
						{"kind": "named", "name": "Expr"}
					]}}
				]
			}
		]
	}`
	s, err := DecodeSchema([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeSchema: %v", err)
	}
	variants, err := s.EnumVariants("BinOp")
	if err != nil {
		t.Fatalf("EnumVariants: %v", err)
	}
	if len(variants) != 2 || variants[0] != "Add" || variants[1] != "Sub" {
		t.Errorf("EnumVariants = %v, want [Add Sub]", variants)
	}
	fields, err := s.IfaceFields("Expr")
	if err != nil {
		t.Fatalf("IfaceFields: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	ts, err := s.Flatten(fields[1].Type)
	if err != nil {
		t.Fatalf("Flatten(left): %v", err)
	}
	if len(ts) != 2 {
		t.Errorf("flattened union size = %d, want 2", len(ts))
	}
}

func TestDecodeSchemaUnknownFieldTypeKind(t *testing.T) {
	doc := `{"ifaces": [{"name": "X", "fields": [{"name": "f", "type": {"kind": "bogus"}}]}]}`
	if _, err := DecodeSchema([]byte(doc)); err == nil {
		t.Fatalf("DecodeSchema: want error for unknown kind, got nil")
	}
}
