package hanzi

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	if d := Pt(0, 0).Distance(Pt(3, 4)); d != 5 {
		t.Fatalf("expected distance 5, got %f", d)
	}
}

func TestPointDirection(t *testing.T) {
	tests := []struct {
		to   Point
		want float64
	}{
		{to: Pt(10, 0), want: 0},
		{to: Pt(0, -10), want: math.Pi / 2}, // up on screen
		{to: Pt(-10, 0), want: math.Pi},
		{to: Pt(0, 10), want: 3 * math.Pi / 2}, // down on screen
	}
	for _, tt := range tests {
		if got := Pt(0, 0).Direction(tt.to); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("direction to %v: got %f, want %f", tt.to, got, tt.want)
		}
	}
}
