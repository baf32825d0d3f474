// Package input turns raw terminal bytes into per-frame key presses and mouse clicks.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// maxPendingSeq bounds how many bytes of an unfinished escape sequence are carried
// over to the next frame before they are discarded as garbage.
const maxPendingSeq = 32

// Click is a left mouse button press at a 1-based terminal cell.
type Click struct {
	Col, Row int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Space   bool
	Enter   bool
	Escape  bool
	Clicks  []Click
	Pressed []byte // Every byte consumed this frame; empty when the user did nothing
}

// Stream delivers input bytes via a channel and keeps partial escape sequences
// between frames.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and parses them.
// A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	buf := append([]byte(nil), s.pending...)

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, rest := Parse(buf)
	if len(rest) > maxPendingSeq {
		rest = nil
	}
	s.pending = append(s.pending[:0], rest...)
	if s.closed {
		in.Quit = true
	}
	return in
}

// Parse decodes keys and SGR mouse reports (ESC [ < b ; col ; row M) from buf.
// An incomplete escape sequence at the end of buf is returned as rest so the caller
// can prepend it to the next read.
func Parse(buf []byte) (in Input, rest []byte) {
	i := 0
	for i < len(buf) {
		b := buf[i]
		if b != '\x1b' {
			applyByte(&in, b)
			i++
			continue
		}

		// Lone ESC or ESC followed by something other than a CSI introducer.
		if i+1 >= len(buf) || buf[i+1] != '[' {
			in.Escape = true
			i++
			continue
		}
		if i+2 >= len(buf) {
			return in.consumed(buf[:i]), buf[i:]
		}

		if buf[i+2] == '<' {
			end := i + 3
			for end < len(buf) && isParamByte(buf[end]) {
				end++
			}
			if end >= len(buf) {
				return in.consumed(buf[:i]), buf[i:]
			}
			if c, ok := parseSGRMouse(buf[i+3:end], buf[end]); ok {
				in.Clicks = append(in.Clicks, c)
			}
			i = end + 1
			continue
		}

		// Any other CSI sequence (arrows, function keys) is skipped up to its final byte.
		end := i + 2
		for end < len(buf) && buf[end] >= 0x20 && buf[end] <= 0x3f {
			end++
		}
		if end >= len(buf) {
			return in.consumed(buf[:i]), buf[i:]
		}
		i = end + 1
	}
	return in.consumed(buf), nil
}

func (in Input) consumed(b []byte) Input {
	in.Pressed = b
	return in
}

// applyByte records a single-byte key press.
func applyByte(in *Input, b byte) {
	switch b {
	case 'q', 'Q', '\x03': // q or Ctrl-C
		in.Quit = true
	case ' ':
		in.Space = true
	case '\n', '\r':
		in.Enter = true
	}
}

func isParamByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == ';'
}

// parseSGRMouse decodes "b;col;row" with final byte 'M' (press) or 'm' (release).
// Only left button presses without motion or wheel bits are reported.
func parseSGRMouse(params []byte, final byte) (Click, bool) {
	if final != 'M' {
		return Click{}, false
	}
	fields := bytes.Split(params, []byte{';'})
	if len(fields) != 3 {
		return Click{}, false
	}

	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil {
			return Click{}, false
		}
		nums[i] = n
	}

	button := nums[0]
	if button&(32|64) != 0 || button&3 != 0 {
		return Click{}, false
	}
	return Click{Col: nums[1], Row: nums[2]}, true
}
