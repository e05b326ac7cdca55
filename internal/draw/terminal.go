package draw

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ANSI control sequences.
const (
	seqClearScreen = "\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output (canvas cells, HUD text,
// screen clears) and hands it to the session in pieces of at most
// maxChunkSize bytes on Flush.
type ChunkWriter struct {
	w      io.Writer
	buf    strings.Builder
	numBuf [20]byte // Scratch space for cursor coordinates
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter for w. Text positions passed to WriteAt
// are shifted by the canvas offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{w: w, offCol: offsetCol, offRow: offsetRow}
}

// SetOffset follows the canvas after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

func (cw *ChunkWriter) moveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write lets Canvas.Render and RenderBorder emit into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteAt writes s with its first cell at the 1-based canvas position col, row.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveCursor(col, row)
	cw.buf.WriteString(s)
}

// ClearScreen wipes the terminal at the start of the frame and makes the next
// Render of c repaint every cell, since the terminal no longer shows them.
func (cw *ChunkWriter) ClearScreen(c *Canvas) {
	cw.buf.WriteString(seqClearScreen)
	c.ForceRedraw()
}

// Flush sends the frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := io.WriteString(cw.w, data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc returns the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen wipes w outside of a frame, e.g. when a session starts or ends.
func ClearScreen(w io.Writer) {
	io.WriteString(w, seqClearScreen)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	io.WriteString(w, seqShowCursor)
}
