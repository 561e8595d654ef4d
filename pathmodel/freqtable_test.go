package pathmodel

import "testing"

// S5: ProbTable with counts [3,1,0]: allowEscape=true, table sum == 2^18-1,
// scaled counts respect sum and the non-zero floor.
func TestBuildProbTableS5(t *testing.T) {
	pt, err := BuildProbTable("ctx#type", nil, []uint64{3, 1, 0})
	if err != nil {
		t.Fatalf("BuildProbTable: %v", err)
	}
	if !pt.AllowEscape {
		t.Errorf("AllowEscape = false, want true (zero-count entry present)")
	}
	var sum uint64
	for _, p := range pt.Probs {
		sum += p
	}
	if sum != ProbTotal-1 {
		t.Errorf("sum(probs) = %d, want %d", sum, ProbTotal-1)
	}
	if pt.Probs[0] == 0 || pt.Probs[1] == 0 {
		t.Errorf("probs = %v, want index 0 and 1 both > 0 (nonzero floor)", pt.Probs)
	}
	if pt.Probs[2] != 0 {
		t.Errorf("probs[2] = %d, want 0 (raw count was zero)", pt.Probs[2])
	}
	if pt.Probs[0] <= pt.Probs[1] {
		t.Errorf("probs = %v, want index 0 (count 3) to scale above index 1 (count 1)", pt.Probs)
	}
}

func TestBuildProbTableZeroSumErrors(t *testing.T) {
	if _, err := BuildProbTable("ctx#type", nil, []uint64{0, 0}); err == nil {
		t.Errorf("BuildProbTable with all-zero counts: want ErrBadProbTable, got nil")
	}
}

func TestOffsetSizeTotal(t *testing.T) {
	pt, err := BuildProbTable("ctx#type", nil, []uint64{1, 1})
	if err != nil {
		t.Fatalf("BuildProbTable: %v", err)
	}
	off0, size0, total, err := pt.OffsetSizeTotal(0)
	if err != nil {
		t.Fatalf("OffsetSizeTotal(0): %v", err)
	}
	if off0 != 0 || total != ProbTotal {
		t.Errorf("OffsetSizeTotal(0) = (%d, %d, %d), want offset 0, total %d", off0, size0, total, ProbTotal)
	}
	off1, size1, _, err := pt.OffsetSizeTotal(1)
	if err != nil {
		t.Fatalf("OffsetSizeTotal(1): %v", err)
	}
	if off1 != size0 {
		t.Errorf("OffsetSizeTotal(1) offset = %d, want %d (= size of symbol 0)", off1, size0)
	}
	if size0+size1 != ProbTotal {
		t.Errorf("size0+size1 = %d, want %d", size0+size1, ProbTotal)
	}
}

func TestFreqTableHitAccumulates(t *testing.T) {
	ft := NewFreqTable(3, []string{"a", "b", "c"})
	ft.Hit(1)
	ft.Hit(1)
	ft.Hit(2)
	counts := ft.Counts()
	want := []uint64{0, 2, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %d, want %d", i, counts[i], want[i])
		}
	}
}
