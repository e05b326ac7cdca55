package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCanvas maps a 100x100 logical field onto 10 columns x 5 rows
// (10x10 sub-pixels), so each pixel covers 10x10 logical units.
func newTestCanvas() *Canvas {
	return NewScaledCanvas(10, 5, 100, 100)
}

func TestFillRectCoversPixelCenters(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(20, 30, 30, 20)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x >= 2 && x <= 4 && y >= 3 && y <= 4
			assert.Equal(t, want, c.Pixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestFillRectTinyStillVisible(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(42, 61, 4, 2)
	assert.True(t, c.Pixel(4, 6))
}

func TestClearRectCutsHole(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 40, 40)
	c.ClearRect(10, 10, 20, 20)

	assert.True(t, c.Pixel(0, 0))
	assert.False(t, c.Pixel(1, 1))
	assert.False(t, c.Pixel(2, 2))
	assert.True(t, c.Pixel(3, 3))
}

func TestFillRectClipsToCanvas(t *testing.T) {
	c := newTestCanvas()
	assert.NotPanics(t, func() { c.FillRect(-50, -50, 500, 500) })
	assert.True(t, c.Pixel(0, 0))
	assert.True(t, c.Pixel(9, 9))
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetFloat(0, 0) // top of column 1
	c.SetFloat(1, 0)
	c.SetFloat(1, 1) // both halves of column 2

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H▀█", buf.String())
}

func TestRenderOnlyChangedCells(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 100, 100)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, 50, strings.Count(buf.String(), "█"))

	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Empty(t, buf.String(), "nothing changed")

	c.ClearRect(0, 0, 10, 20)
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[1;1H ", buf.String())
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	c.SetOffset(4, 2)
	c.SetFloat(0, 1)

	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[3;5H▄", buf.String())
}

func TestForceRedrawAndMarkTextDirty(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))

	c.MarkTextDirty(3, 2, 2)
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, "\033[2;3H  ", buf.String())

	c.ForceRedraw()
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	assert.Equal(t, 50, strings.Count(buf.String(), " "))
}

func TestRenderBorder(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.SetOffset(1, 1)

	var buf bytes.Buffer
	require.NoError(t, c.RenderBorder(&buf))
	out := buf.String()
	assert.Contains(t, out, "\033[1;1H┌───┐")
	assert.Contains(t, out, "\033[3;1H└───┘")
	assert.Contains(t, out, "\033[2;1H│\033[2;5H│")
}

func TestRenderBorderNoRoom(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	var buf bytes.Buffer
	require.NoError(t, c.RenderBorder(&buf))
	assert.Empty(t, buf.String())
}

func TestDrawPolygonFilled(t *testing.T) {
	c := newTestCanvas()
	c.DrawPolygon([]Point{{X: 10, Y: 10}, {X: 80, Y: 10}, {X: 80, Y: 80}, {X: 10, Y: 80}}, true)
	assert.True(t, c.Pixel(4, 4))
	assert.False(t, c.Pixel(9, 9))
}

func TestLogicalToTerminal(t *testing.T) {
	c := newTestCanvas()
	col, row := c.LogicalToTerminal(55, 35)
	assert.Equal(t, 6, col)
	assert.Equal(t, 2, row)
}
