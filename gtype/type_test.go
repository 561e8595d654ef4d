package gtype

import "testing"

func TestInterningIsIdempotent(t *testing.T) {
	r := NewRegistry()

	if a, b := r.MakePrimitive(PrimBool), r.MakePrimitive(PrimBool); a != b {
		t.Errorf("MakePrimitive(PrimBool) not idempotent: %p != %p", a, b)
	}
	if a, b := r.MakeIdent(IdentProp), r.MakeIdent(IdentProp); a != b {
		t.Errorf("MakeIdent(prop) not idempotent: %p != %p", a, b)
	}
	if a, b := r.MakeIface("Foo"), r.MakeIface("Foo"); a != b {
		t.Errorf("MakeIface(Foo) not idempotent: %p != %p", a, b)
	}
	arr1 := r.MakeArray(r.MakePrimitive(PrimBool))
	arr2 := r.MakeArray(r.MakePrimitive(PrimBool))
	if arr1 != arr2 {
		t.Errorf("MakeArray(PrimBool) not idempotent: %p != %p", arr1, arr2)
	}
}

func TestDistinctTypesGetDistinctIDs(t *testing.T) {
	r := NewRegistry()
	b := r.MakePrimitive(PrimBool)
	u := r.MakePrimitive(PrimUint)
	if b.ID() == u.ID() {
		t.Errorf("PrimBool and PrimUint interned to same id %d", b.ID())
	}
}

func TestMakeUnionCollapsesDegenerate(t *testing.T) {
	r := NewRegistry()
	b := r.MakePrimitive(PrimBool)
	got, err := r.MakeUnion(b, b)
	if err != nil {
		t.Fatalf("MakeUnion(PrimBool, PrimBool): %v", err)
	}
	if got != b {
		t.Errorf("MakeUnion(PrimBool, PrimBool) = %v, want collapse to sole variant %v", got, b)
	}
}

func TestMakeUnionRequiresAVariant(t *testing.T) {
	r := NewRegistry()
	if _, err := r.MakeUnion(); err == nil {
		t.Errorf("MakeUnion() with no variants: want error, got nil")
	}
}

func TestMakeUnionOfDistinctVariants(t *testing.T) {
	r := NewRegistry()
	b := r.MakePrimitive(PrimBool)
	u := r.MakePrimitive(PrimUint)
	union, err := r.MakeUnion(b, u)
	if err != nil {
		t.Fatalf("MakeUnion(PrimBool, PrimUint): %v", err)
	}
	if union.Kind() != KUnion {
		t.Errorf("MakeUnion(PrimBool, PrimUint).Kind() = %v, want KUnion", union.Kind())
	}
	if len(union.Variants()) != 2 {
		t.Errorf("MakeUnion(PrimBool, PrimUint) variants = %d, want 2", len(union.Variants()))
	}
}
