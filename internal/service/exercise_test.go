package service

import "testing"

func TestDifficultyLightbulbs(t *testing.T) {
	cases := []struct {
		difficulty, n int
		want          []bool
	}{
		{3, 5, []bool{true, true, true, false, false}},
		{0, 5, []bool{false, false, false, false, false}},
		{5, 5, []bool{true, true, true, true, true}},
		{10, 5, []bool{true, true, true, true, true}},
		{-2, 5, []bool{false, false, false, false, false}},
	}
	for _, c := range cases {
		got := DifficultyLightbulbs(c.difficulty, c.n)
		if len(got) != len(c.want) {
			t.Fatalf("difficulty %d: got %v, want %v", c.difficulty, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("difficulty %d: got %v, want %v", c.difficulty, got, c.want)
			}
		}
	}
}

func TestDifficultyLightbulbsEmptyIndicator(t *testing.T) {
	if got := DifficultyLightbulbs(4, 0); len(got) != 0 {
		t.Fatalf("expected empty indicator, got %v", got)
	}
}
