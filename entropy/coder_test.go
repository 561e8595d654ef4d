package entropy

import (
	"testing"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/stringwindow"
	"github.com/binast/binpack/tree"
)

// fakeGlobalDict never already knows any string, so every string emission
// in these tests exercises the literal-table fallback path.
type fakeGlobalDict struct{}

func (fakeGlobalDict) Lookup(string) (int, bool) { return 0, false }
func (fakeGlobalDict) Len() int                  { return 0 }

func buildProgramStmtValueSchema(t *testing.T) (*schema.Schema, gtype.TypeSet) {
	t.Helper()
	s := schema.NewSchema()
	r := s.Registry
	boolTy := r.MakePrimitive(gtype.PrimBool)
	uintTy := r.MakePrimitive(gtype.PrimUint)
	flagTy, err := r.MakeUnion(boolTy, uintTy)
	if err != nil {
		t.Fatalf("MakeUnion: %v", err)
	}
	propTy := r.MakeIdent(gtype.IdentProp)
	strTy := r.MakePrimitive(gtype.PrimStr)
	f64Ty := r.MakePrimitive(gtype.PrimF64)

	stmtFields := []schema.Field{
		{Name: "flag", Type: flagTy},
		{Name: "name", Type: propTy},
		{Name: "label", Type: strTy},
		{Name: "score", Type: f64Ty},
	}
	if err := s.DeclareIface("Stmt", stmtFields, true); err != nil {
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

func uniformWindowTable(t *testing.T, windowSize int) *pathmodel.ProbTable {
	t.Helper()
	counts := make([]uint64, windowSize+1)
	for i := range counts {
		counts[i] = 1
	}
	tbl, err := pathmodel.BuildProbTable("test-window", nil, counts)
	if err != nil {
		t.Fatalf("BuildProbTable: %v", err)
	}
	return tbl
}

func TestCoderFullWalk(t *testing.T) {
	s, ts := buildProgramStmtValueSchema(t)
	val := gtype.Inst("Program", map[string]gtype.Value{
		"stmt": gtype.Inst("Stmt", map[string]gtype.Value{
			"flag":  gtype.Int(3), // matches Uint
			"name":  gtype.Ident(gtype.IdentProp, "x"),
			"label": gtype.Str("hello"),
			"score": gtype.Float(1.5),
		}),
	})

	trainedType, err := pathmodel.BuildProbTable("Program.stmt/Stmt.flag#type", []string{"Bool", "Uint"}, []uint64{1, 9})
	if err != nil {
		t.Fatalf("BuildProbTable: %v", err)
	}

	windowSize := 4
	tables := &Tables{
		PathSuffix: map[string]*pathmodel.ProbTable{
			"Program.stmt/Stmt.flag#type": trainedType,
		},
		StringWindow: map[stringwindow.Kind]*pathmodel.ProbTable{
			stringwindow.KindIdent: uniformWindowTable(t, windowSize),
			stringwindow.KindProp:  uniformWindowTable(t, windowSize),
			stringwindow.KindRaw:   uniformWindowTable(t, windowSize),
		},
		GlobalDict: fakeGlobalDict{},
	}
	paths := pathmodel.NewInterner()
	strModel := stringwindow.NewModel(windowSize, stringwindow.NewCounters(windowSize))
	coder := NewCoder(s, paths, tables, strModel)

	if err := tree.Walk(s, ts, val, coder); err != nil {
		t.Fatalf("Walk: %v", err)
	}

	// flag is the only non-singleton TypeSet: exactly one type-tag charge.
	if got := coder.Counters().Symbols("sym/type"); got != 1 {
		t.Errorf("Symbols(sym/type) = %d, want 1", got)
	}
	// flag, label ("raw" string) and name ("prop" string) each charge one
	// value/string symbol; score charges a raw 64-bit literal.
	if got := coder.Counters().Symbols("sym/value/F64"); got != 1 {
		t.Errorf("Symbols(sym/value/F64) = %d, want 1", got)
	}
	if got := coder.Counters().Bits("sym/value/F64"); got != 64 {
		t.Errorf("Bits(sym/value/F64) = %v, want 64", got)
	}
	if got := coder.Counters().Symbols("sym/string/prop"); got != 1 {
		t.Errorf("Symbols(sym/string/prop) = %d, want 1", got)
	}
	if got := coder.Counters().Symbols("sym/string/raw"); got != 1 {
		t.Errorf("Symbols(sym/string/raw) = %d, want 1", got)
	}

	// Both "x" (prop) and "hello" (raw) missed their (empty) caches and
	// are not in the fake global dict, so both land in the literal table.
	if coder.Literals().Len() != 2 {
		t.Errorf("Literals().Len() = %d, want 2", coder.Literals().Len())
	}

	size, err := coder.EstimatedSize()
	if err != nil {
		t.Fatalf("EstimatedSize: %v", err)
	}
	if size <= 0 {
		t.Errorf("EstimatedSize() = %d, want > 0", size)
	}

	summary, err := BuildSummary(coder, Comparison{GzipBytes: size, BrotliBytes: size})
	if err != nil {
		t.Fatalf("BuildSummary: %v", err)
	}
	if summary.TotalBytes != size {
		t.Errorf("summary.TotalBytes = %d, want %d", summary.TotalBytes, size)
	}
	if summary.String() == "" {
		t.Errorf("Summary.String() is empty")
	}
}

func TestCoderEscapesToUniformForUntrainedContext(t *testing.T) {
	// No PathSuffix tables at all: every #type/#<tag> lookup must fall
	// back to a uniform distribution rather than erroring out.
	s, ts := buildProgramStmtValueSchema(t)
	val := gtype.Inst("Program", map[string]gtype.Value{
		"stmt": gtype.Inst("Stmt", map[string]gtype.Value{
			"flag":  gtype.Bool(true),
			"name":  gtype.Ident(gtype.IdentProp, "y"),
			"label": gtype.Str("z"),
			"score": gtype.Float(0),
		}),
	})
	windowSize := 2
	tables := &Tables{
		PathSuffix: map[string]*pathmodel.ProbTable{},
		StringWindow: map[stringwindow.Kind]*pathmodel.ProbTable{
			stringwindow.KindIdent: uniformWindowTable(t, windowSize),
			stringwindow.KindProp:  uniformWindowTable(t, windowSize),
			stringwindow.KindRaw:   uniformWindowTable(t, windowSize),
		},
		GlobalDict: fakeGlobalDict{},
	}
	paths := pathmodel.NewInterner()
	strModel := stringwindow.NewModel(windowSize, stringwindow.NewCounters(windowSize))
	coder := NewCoder(s, paths, tables, strModel)

	if err := tree.Walk(s, ts, val, coder); err != nil {
		t.Fatalf("Walk with no trained path-suffix tables: %v", err)
	}
	if coder.Counters().Bits("sym/type") <= 0 {
		t.Errorf("expected positive escape-to-uniform bits under sym/type")
	}
}
