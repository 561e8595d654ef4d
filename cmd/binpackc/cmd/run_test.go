package cmd

import "testing"

func TestCheckBoundsRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		desc    string
		values  []int
		max     int
		wantErr bool
	}{
		{"within range", []int{1, 64, 4096}, 4096, false},
		{"zero", []int{0}, 4096, true},
		{"negative", []int{-1}, 4096, true},
		{"above max", []int{4097}, 4096, true},
		{"empty", nil, 4096, false},
	}
	for _, c := range cases {
		err := checkBounds("string-window-sizes", c.values, c.max)
		if (err != nil) != c.wantErr {
			t.Errorf("%s: checkBounds(%v) error = %v, wantErr %v", c.desc, c.values, err, c.wantErr)
		}
	}
}
