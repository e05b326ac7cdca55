package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	enemy := Rect{X: 100, Y: 100, W: 40, H: 40}

	tests := []struct {
		name string
		box  Rect
		want bool
	}{
		{"inside", Rect{X: 110, Y: 110, W: 4, H: 12}, true},
		{"partial left edge", Rect{X: 98, Y: 120, W: 4, H: 12}, true},
		{"partial bottom edge", Rect{X: 120, Y: 135, W: 4, H: 12}, true},
		{"touching right edge", Rect{X: 140, Y: 110, W: 4, H: 12}, false},
		{"touching left edge", Rect{X: 96, Y: 110, W: 4, H: 12}, false},
		{"touching top edge", Rect{X: 120, Y: 88, W: 4, H: 12}, false},
		{"touching bottom edge", Rect{X: 120, Y: 140, W: 4, H: 12}, false},
		{"far away", Rect{X: 0, Y: 0, W: 4, H: 12}, false},
		{"enclosing", Rect{X: 90, Y: 90, W: 60, H: 60}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.box, enemy))
			assert.Equal(t, tt.want, Overlaps(enemy, tt.box), "overlap must be symmetric")
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 10))
	assert.Equal(t, 10.0, Clamp(15, 0, 10))
	assert.Equal(t, 7.5, Clamp(7.5, 0, 10))
	assert.Equal(t, 3.0, Clamp(5, 3, 1), "lower bound wins when range is empty")
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	assert.Equal(t, 10.0, r.Left())
	assert.Equal(t, 40.0, r.Right())
	assert.Equal(t, 20.0, r.Top())
	assert.Equal(t, 60.0, r.Bottom())
	assert.Equal(t, 25.0, r.CenterX())
}
