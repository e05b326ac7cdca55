package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

func newTestFormation(t *testing.T, health int) *Formation {
	t.Helper()
	f := NewFormation(testField, health)
	f.Spawn()
	return f
}

// assertCentered checks that the leftmost and rightmost columns are
// equidistant from the field walls.
func assertCentered(t *testing.T, f *Formation) {
	t.Helper()
	minX, maxX, _ := f.extents()
	left := minX
	right := testField.Width - (maxX + config.EnemyWidth)
	assert.InDelta(t, left, right, 1e-9)
}

func TestFormationSpawnLayout(t *testing.T) {
	f := newTestFormation(t, 5)

	require.Equal(t, config.EnemyColumns, f.Len())
	assertCentered(t, f)
	for i, e := range f.Enemies {
		assert.Equal(t, config.EnemyTop, e.Y)
		assert.Equal(t, 5, e.Health)
		if i > 0 {
			assert.Equal(t, config.EnemyWidth+config.EnemySpacing, e.X-f.Enemies[i-1].X)
		}
	}
}

func TestFormationAdvanceMovesSideways(t *testing.T) {
	f := newTestFormation(t, 1)
	x0 := f.Enemies[0].X

	moved, bottom := f.Advance()
	assert.True(t, moved)
	assert.False(t, bottom)
	assert.Equal(t, x0+config.EnemySpeed, f.Enemies[0].X)
	assert.Equal(t, config.EnemyTop, f.Enemies[0].Y)
	assert.Equal(t, 1.0, f.Direction)
}

func TestFormationBouncesOffRightWall(t *testing.T) {
	f := newTestFormation(t, 1)
	_, maxX, _ := f.extents()
	stepsToWall := int((testField.Width - config.EnemyWidth - maxX) / config.EnemySpeed)

	for i := 0; i < stepsToWall-1; i++ {
		f.Advance()
	}
	assert.Equal(t, 1.0, f.Direction)
	assert.Equal(t, config.EnemyTop, f.Enemies[0].Y)

	f.Advance()
	assert.Equal(t, -1.0, f.Direction)
	assert.Equal(t, config.EnemyTop+config.EnemyDropDistance, f.Enemies[0].Y)

	x := f.Enemies[0].X
	f.Advance()
	assert.Equal(t, x-config.EnemySpeed, f.Enemies[0].X)
}

func TestFormationFlipCondition(t *testing.T) {
	wallX := testField.Width - config.EnemyWidth

	tests := []struct {
		name     string
		x        float64
		dir      float64
		wantFlip bool
	}{
		{"reaches left wall", config.EnemySpeed, -1, true},
		{"passes left wall", 2, -1, true},
		{"one step from left wall", 2 * config.EnemySpeed, -1, false},
		{"reaches right wall", wallX - config.EnemySpeed, 1, true},
		{"one step from right wall", wallX - 2*config.EnemySpeed, 1, false},
		{"middle", 300, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormation(testField, 1)
			f.Enemies = []*Enemy{NewEnemy(tt.x, 100, 1)}
			f.Direction = tt.dir

			f.Advance()

			minX, maxX, _ := f.extents()
			hitWall := minX <= 0 || maxX >= wallX
			assert.Equal(t, tt.wantFlip, hitWall)
			assert.Equal(t, tt.wantFlip, f.Direction != tt.dir)
			if tt.wantFlip {
				assert.Equal(t, 100+config.EnemyDropDistance, f.Enemies[0].Y)
			} else {
				assert.Equal(t, 100.0, f.Enemies[0].Y)
			}
		})
	}
}

func TestFormationFlipUsesAllEnemies(t *testing.T) {
	f := NewFormation(testField, 1)
	// Only the trailing enemy touches the wall.
	f.Enemies = []*Enemy{NewEnemy(300, 40, 1), NewEnemy(config.EnemySpeed, 90, 1)}
	f.Direction = -1

	f.Advance()
	assert.Equal(t, 1.0, f.Direction)
	assert.Equal(t, 90.0, f.Enemies[0].Y)
	assert.Equal(t, 140.0, f.Enemies[1].Y)
}

func TestFormationReachesBottom(t *testing.T) {
	limit := testField.Height - config.EnemyHeight
	wallX := testField.Width - config.EnemyWidth

	tests := []struct {
		name       string
		x, y       float64
		wantBottom bool
	}{
		{"drop lands on limit", wallX - config.EnemySpeed, limit - config.EnemyHeight - config.EnemyDropDistance, true},
		{"drop lands past limit", wallX - config.EnemySpeed, limit - config.EnemyDropDistance, true},
		{"drop stops short", wallX - config.EnemySpeed, limit - config.EnemyHeight - config.EnemyDropDistance - 1, false},
		{"low but no drop", 300, limit, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormation(testField, 1)
			f.Enemies = []*Enemy{NewEnemy(tt.x, tt.y, 1)}

			moved, bottom := f.Advance()
			assert.True(t, moved)
			assert.Equal(t, tt.wantBottom, bottom)
		})
	}
}

func TestFormationEmptyDoesNotMove(t *testing.T) {
	f := NewFormation(testField, 1)
	moved, bottom := f.Advance()
	assert.False(t, moved)
	assert.False(t, bottom)
	assert.True(t, f.Empty())
}

func TestFormationFirstOverlapUsesFormationOrder(t *testing.T) {
	f := NewFormation(testField, 1)
	f.Enemies = []*Enemy{NewEnemy(100, 40, 1), NewEnemy(110, 40, 1), NewEnemy(400, 40, 1)}

	box := physics.Rect{X: 120, Y: 50, W: 4, H: 12}
	assert.Equal(t, 0, f.FirstOverlap(box))

	f.RemoveAt(0)
	assert.Equal(t, 0, f.FirstOverlap(box), "second enemy becomes first after removal")
	assert.Equal(t, 110.0, f.Enemies[0].X)

	assert.Equal(t, -1, f.FirstOverlap(physics.Rect{X: 10, Y: 600, W: 4, H: 12}))
}

func TestFormationNextWaveDoublesRows(t *testing.T) {
	f := newTestFormation(t, 10)
	f.Direction = -1
	f.Enemies = nil

	require.True(t, f.NextWave())
	assert.Equal(t, 2, f.Rows)
	require.Equal(t, 2*config.EnemyColumns, f.Len())
	assertCentered(t, f)
	assert.Equal(t, config.EnemyTop, f.Enemies[0].Y)
	assert.Equal(t, config.EnemyTop+config.EnemyRowPitch, f.Enemies[config.EnemyColumns].Y)
	assert.Equal(t, 10, f.Enemies[11].Health)
	assert.Equal(t, -1.0, f.Direction, "direction carries over between waves")

	f.Enemies = nil
	require.True(t, f.NextWave())
	assert.Equal(t, 4, f.Rows)
	assert.Equal(t, 4*config.EnemyColumns, f.Len())

	f.Enemies = nil
	assert.False(t, f.NextWave(), "row cap reached")
	assert.Equal(t, 4, f.Rows)
	assert.True(t, f.Empty())
}
