package occurrence

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Occurrence
		want int
	}{
		{"pos less", Occurrence{Pos: 1}, Occurrence{Pos: 2}, -1},
		{"pos greater", Occurrence{Pos: 5}, Occurrence{Pos: 2}, 1},
		{"len tiebreak less", Occurrence{Pos: 1, Len: 1}, Occurrence{Pos: 1, Len: 3}, -1},
		{"equal", Occurrence{Pos: 1, Len: 2}, Occurrence{Pos: 1, Len: 2}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(&tt.a, &tt.b); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEncloses(t *testing.T) {
	a := Occurrence{Pos: 0, Len: 10}  // [0,10]
	b := Occurrence{Pos: 2, Len: 3}   // [2,5] enclosed in a
	c := Occurrence{Pos: 0, Len: 10}  // identical to a
	d := Occurrence{Pos: 9, Len: 5}   // [9,14] overlapping but not enclosed

	if !Encloses(&a, &b) {
		t.Error("expected b enclosed in a")
	}
	if Encloses(&a, &c) {
		t.Error("identical spans must not be reported as enclosed")
	}
	if Encloses(&a, &d) {
		t.Error("overlapping-but-not-contained span must not be enclosed")
	}
}
