package pathmodel

import (
	"testing"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/tree"
)

// capturingHandler records every Location begun during a walk, keyed by
// the field name that led to it, so tests can grab a specific leaf.
type capturingHandler struct {
	byField map[string]*tree.Location
}

func (h *capturingHandler) Visit(loc *tree.Location) (tree.Handler, error) {
	if loc == nil {
		return nil, nil
	}
	if loc.FieldName != "" {
		h.byField[loc.FieldName] = loc
	}
	return h, nil
}

func buildProgramStmtSchema(t *testing.T) (*schema.Schema, gtype.TypeSet) {
	t.Helper()
	s := schema.NewSchema()
	r := s.Registry
	boolTy := r.MakePrimitive(gtype.PrimBool)
	if err := s.DeclareIface("Stmt", []schema.Field{{Name: "flag", Type: boolTy}}, true); err != nil {
		t.Fatalf("DeclareIface(Stmt): %v", err)
	}
	stmtTy := r.MakeIface("Stmt")
	if err := s.DeclareIface("Program", []schema.Field{{Name: "stmt", Type: stmtTy}}, true); err != nil {
		t.Fatalf("DeclareIface(Program): %v", err)
	}
	progTy := r.MakeIface("Program")
	ts, err := s.Flatten(progTy)
	if err != nil {
		t.Fatalf("Flatten(Program): %v", err)
	}
	return s, ts
}

func TestForLocationClosesSlicesOverNodeBoundaries(t *testing.T) {
	s, ts := buildProgramStmtSchema(t)
	val := gtype.Inst("Program", map[string]gtype.Value{
		"stmt": gtype.Inst("Stmt", map[string]gtype.Value{
			"flag": gtype.Bool(true),
		}),
	})

	h := &capturingHandler{byField: make(map[string]*tree.Location)}
	if err := tree.Walk(s, ts, val, h); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	leaf := h.byField["flag"]
	if leaf == nil {
		t.Fatalf("did not capture the \"flag\" location")
	}

	in := NewInterner()
	suf1 := in.ForLocation(s, leaf, 1)
	if suf1 == nil {
		t.Fatalf("ForLocation(length=1) = nil, want a suffix")
	}
	if got := suf1.KeyString(); got != "Stmt.flag" {
		t.Errorf("ForLocation(length=1).KeyString() = %q, want %q", got, "Stmt.flag")
	}

	suf2 := in.ForLocation(s, leaf, 2)
	if suf2 == nil {
		t.Fatalf("ForLocation(length=2) = nil, want a suffix")
	}
	if got := suf2.KeyString(); got != "Program.stmt/Stmt.flag" {
		t.Errorf("ForLocation(length=2).KeyString() = %q, want %q", got, "Program.stmt/Stmt.flag")
	}

	if in.ForLocation(s, leaf, 3) != nil {
		t.Errorf("ForLocation(length=3): want nil (only two node anchors exist), got a suffix")
	}
}

// S3: Array[Bool] with value [true, false, true]. PathSuffix at element 2
// (index < 4) uses leaf key "2"; at element 7 (>= 4) uses "index".
func TestFormatLeafKeyCollapsesLargeIndices(t *testing.T) {
	loc2 := &tree.Location{IsArrayElem: true, ArrayIndex: 2}
	if got := formatLeafKey(loc2); got != "2" {
		t.Errorf("formatLeafKey(index=2) = %q, want %q", got, "2")
	}
	loc7 := &tree.Location{IsArrayElem: true, ArrayIndex: 7}
	if got := formatLeafKey(loc7); got != "index" {
		t.Errorf("formatLeafKey(index=7) = %q, want %q", got, "index")
	}
}

func TestValueTagAndIndexBool(t *testing.T) {
	s := schema.NewSchema()
	boolTy := s.Registry.MakePrimitive(gtype.PrimBool)
	tag, ok, err := ValueTagAndIndex(s, boolTy, gtype.Bool(true))
	if err != nil || !ok {
		t.Fatalf("ValueTagAndIndex(true) = %v, %v, %v", tag, ok, err)
	}
	if tag.Tag != "bool" || tag.Index != 0 {
		t.Errorf("ValueTagAndIndex(true) = %+v, want {bool 0}", tag)
	}
	tag, ok, err = ValueTagAndIndex(s, boolTy, gtype.Bool(false))
	if err != nil || !ok || tag.Index != 1 {
		t.Errorf("ValueTagAndIndex(false) = %+v, %v, %v, want index 1", tag, ok, err)
	}
}

func TestValueTagAndIndexUintMissBucket(t *testing.T) {
	s := schema.NewSchema()
	uintTy := s.Registry.MakePrimitive(gtype.PrimUint)
	tag, _, _ := ValueTagAndIndex(s, uintTy, gtype.Int(3))
	if tag.Index != 3 {
		t.Errorf("ValueTagAndIndex(uint 3).Index = %d, want 3", tag.Index)
	}
	tag, _, _ = ValueTagAndIndex(s, uintTy, gtype.Int(50))
	if tag.Index != uintAlphabetSize-1 {
		t.Errorf("ValueTagAndIndex(uint 50).Index = %d, want MISS bucket %d", tag.Index, uintAlphabetSize-1)
	}
}

func TestValueTagAndIndexIntShiftsByOne(t *testing.T) {
	s := schema.NewSchema()
	intTy := s.Registry.MakePrimitive(gtype.PrimInt)
	tag, _, _ := ValueTagAndIndex(s, intTy, gtype.Int(-1))
	if tag.Index != 0 {
		t.Errorf("ValueTagAndIndex(int -1).Index = %d, want 0", tag.Index)
	}
	tag, _, _ = ValueTagAndIndex(s, intTy, gtype.Int(100))
	if tag.Index != intAlphabetSize-1 {
		t.Errorf("ValueTagAndIndex(int 100).Index = %d, want MISS bucket %d", tag.Index, intAlphabetSize-1)
	}
}

func TestValueTagAndIndexArrayLength(t *testing.T) {
	s := schema.NewSchema()
	boolTy := s.Registry.MakePrimitive(gtype.PrimBool)
	arrTy := s.Registry.MakeArray(boolTy)
	tag, ok, err := ValueTagAndIndex(s, arrTy, gtype.Array(gtype.Bool(true), gtype.Bool(false), gtype.Bool(true)))
	if err != nil || !ok || tag.Tag != "arrayLength" || tag.Index != 3 {
		t.Errorf("ValueTagAndIndex([true,false,true]) = %+v, %v, %v, want {arrayLength 3}", tag, ok, err)
	}
}

func TestValueTagAndIndexNilForNullF64StrIdentIface(t *testing.T) {
	s := schema.NewSchema()
	for _, ty := range []*gtype.FieldType{
		s.Registry.MakePrimitive(gtype.PrimNull),
		s.Registry.MakePrimitive(gtype.PrimF64),
		s.Registry.MakePrimitive(gtype.PrimStr),
		s.Registry.MakeIdent(gtype.IdentVar),
		s.Registry.MakeIface("Foo"),
	} {
		_, ok, err := ValueTagAndIndex(s, ty, gtype.Null())
		if err != nil || ok {
			t.Errorf("ValueTagAndIndex(%v) = ok:%v err:%v, want ok:false err:nil", ty, ok, err)
		}
	}
}
