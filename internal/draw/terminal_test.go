package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeRecorder keeps every Write call separately.
type writeRecorder struct {
	writes []string
}

func (r *writeRecorder) Write(p []byte) (int, error) {
	r.writes = append(r.writes, string(p))
	return len(p), nil
}

func TestChunkWriterOffsets(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 2, 3)
	cw.WriteAt(1, 1, "hi")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[4;3Hhi", buf.String())

	buf.Reset()
	cw.SetOffset(0, 0)
	cw.WriteAt(5, 2, "x")
	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[2;5Hx", buf.String())
}

func TestChunkWriterFlushSplitsFrame(t *testing.T) {
	rec := &writeRecorder{}
	cw := NewChunkWriter(rec, 0, 0)
	cw.WriteAt(1, 1, strings.Repeat("#", 2*maxChunkSize))
	require.NoError(t, cw.Flush())

	require.Len(t, rec.writes, 3)
	for _, w := range rec.writes {
		assert.LessOrEqual(t, len(w), maxChunkSize)
	}
	assert.Equal(t, "\033[1;1H"+strings.Repeat("#", 2*maxChunkSize), strings.Join(rec.writes, ""))

	require.NoError(t, cw.Flush())
	assert.Len(t, rec.writes, 3, "empty flush writes nothing")
}

func TestChunkWriterClearScreenRepaintsCanvas(t *testing.T) {
	c := newTestCanvas()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	buf.Reset()
	require.NoError(t, c.Render(&buf))
	require.Empty(t, buf.String())

	cw := NewChunkWriter(&buf, 0, 0)
	cw.ClearScreen(c)
	require.NoError(t, c.Render(cw))
	require.NoError(t, cw.Flush())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\033[H\033[2J"))
	assert.Equal(t, 50, strings.Count(out, " "))
}

func TestCursorAndClearHelpers(t *testing.T) {
	var buf bytes.Buffer
	HideCursor(&buf)
	ClearScreen(&buf)
	ShowCursor(&buf)
	assert.Equal(t, "\033[?25l\033[H\033[2J\033[?25h", buf.String())
}
