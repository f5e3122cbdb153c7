package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHit(t *testing.T) {
	t.Parallel()

	target := Target{Finger: Index, X: 400, Y: 300, Tolerance: 20}

	tests := []struct {
		name   string
		points PointSet
		want   bool
	}{
		{"inside", index(405, 305), true},
		{"exact center", index(400, 300), true},
		{"on the edge", index(420, 280), true},
		{"square corner outside the drawn circle", index(419, 319), true},
		{"too far right", index(440, 300), false},
		{"one pixel out", index(400, 321), false},
		{"no points", NewPointSet(nil), false},
		{"wrong finger in range", NewPointSet([]TrackedPoint{{ID: Middle.Landmark(), X: 400, Y: 300}}), false},
		{"other fingers ignored when required one misses", NewPointSet([]TrackedPoint{
			{ID: Thumb.Landmark(), X: 400, Y: 300},
			{ID: Index.Landmark(), X: 500, Y: 500},
		}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHit(tt.points, target))
		})
	}
}

func TestIsHitTranslationInvariant(t *testing.T) {
	t.Parallel()

	offsets := []Point{{0, 0}, {17, -3}, {-100, 250}, {1000, 1000}}
	for px := 360; px <= 440; px += 7 {
		for py := 260; py <= 340; py += 7 {
			base := IsHit(index(px, py), Target{Finger: Index, X: 400, Y: 300, Tolerance: 20})
			for _, o := range offsets {
				moved := Target{Finger: Index, X: 400 + o.X, Y: 300 + o.Y, Tolerance: 20}
				assert.Equal(t, base, IsHit(index(px+o.X, py+o.Y), moved), "point (%d,%d) offset %v", px, py, o)
			}
		}
	}
}
