// Package draw renders the playfield to terminals and defines the Surface the simulation paints on.
package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// BlockUpperHalf paints the top pixel of a cell in the foreground colour.
const BlockUpperHalf = '▀'

// Escape sequences.
const (
	seqReset      = "\033[0m"
	seqClear      = "\033[0m\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
	// Button press reporting (1000) in SGR encoding (1006).
	seqMouseOn  = "\033[?1000h\033[?1006h"
	seqMouseOff = "\033[?1006l\033[?1000l"
)

// maxChunkSize is the maximum bytes to write at once. Keeping writes under
// a typical MTU keeps SSH frames flowing smoothly.
const maxChunkSize = 1400

// writeChunked writes data to w in pieces of at most maxChunkSize bytes.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// FrameBuffer collects one frame of terminal output (canvas cells, borders and
// text) and sends it in a single chunked Flush. Positions passed to MoveTo and
// TextAt are 1-based canvas coordinates; the canvas offset is added here.
type FrameBuffer struct {
	out    *bufio.Writer
	buf    []byte
	offCol int
	offRow int
}

var _ io.Writer = (*FrameBuffer)(nil)

func NewFrameBuffer(w io.Writer, offsetCol, offsetRow int) *FrameBuffer {
	return &FrameBuffer{
		out:    bufio.NewWriterSize(w, 8192),
		buf:    make([]byte, 0, 16*1024),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the canvas origin, e.g. after a terminal resize.
func (f *FrameBuffer) SetOffset(offsetCol, offsetRow int) {
	f.offCol = offsetCol
	f.offRow = offsetRow
}

// MoveTo appends a cursor position sequence.
func (f *FrameBuffer) MoveTo(col, row int) {
	f.buf = append(f.buf, "\033["...)
	f.buf = strconv.AppendInt(f.buf, int64(row+f.offRow), 10)
	f.buf = append(f.buf, ';')
	f.buf = strconv.AppendInt(f.buf, int64(col+f.offCol), 10)
	f.buf = append(f.buf, 'H')
}

// TextAt writes s starting at the given canvas cell.
func (f *FrameBuffer) TextAt(col, row int, s string) {
	f.MoveTo(col, row)
	f.buf = append(f.buf, s...)
}

// Clear queues a full screen clear.
func (f *FrameBuffer) Clear() {
	f.buf = append(f.buf, seqClear...)
}

func (f *FrameBuffer) Write(p []byte) (int, error) {
	f.buf = append(f.buf, p...)
	return len(p), nil
}

// Flush sends the frame and empties the buffer.
func (f *FrameBuffer) Flush() error {
	err := writeChunked(f.out, f.buf)
	f.buf = f.buf[:0]
	if err != nil {
		return err
	}
	return f.out.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// EnterGameMode hides the cursor, turns on mouse click reporting and clears the screen.
func EnterGameMode(w io.Writer) error {
	_, err := io.WriteString(w, seqHideCursor+seqMouseOn+seqClear)
	return err
}

// LeaveGameMode undoes EnterGameMode.
func LeaveGameMode(w io.Writer) error {
	_, err := io.WriteString(w, seqMouseOff+seqShowCursor+seqClear)
	return err
}
