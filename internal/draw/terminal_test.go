package draw

import (
	"bytes"
	"strings"
	"testing"
)

type countingWriter struct {
	bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.Buffer.Write(p)
}

func TestWriteChunkedSplitsLargeWrites(t *testing.T) {
	var w countingWriter
	data := bytes.Repeat([]byte("x"), maxChunkSize*2+10)
	if err := writeChunked(&w, data); err != nil {
		t.Fatal(err)
	}
	if w.writes != 3 || w.Len() != len(data) {
		t.Fatalf("writes = %d, bytes = %d", w.writes, w.Len())
	}
}

func TestFrameBufferAppliesOffset(t *testing.T) {
	var out bytes.Buffer
	f := NewFrameBuffer(&out, 2, 3)
	f.TextAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatal("wrote before Flush")
	}
	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[4;3Hhi" {
		t.Fatalf("output = %q", got)
	}

	out.Reset()
	f.SetOffset(0, 0)
	f.TextAt(5, 6, "!")
	_ = f.Flush()
	if got := out.String(); got != "\033[6;5H!" {
		t.Fatalf("output after SetOffset = %q", got)
	}
}

func TestRenderBorder(t *testing.T) {
	tests := []struct {
		name           string
		offCol, offRow int
		want, notWant  []string
	}{
		{"none", 0, 0, nil, []string{"─", "│"}},
		{"ends only", 0, 2, []string{"\033[2;1H───"}, []string{"│", "┌"}},
		{"sides only", 4, 0, []string{"\033[1;4H│", "\033[1;8H│"}, []string{"─"}},
		{"box", 4, 2, []string{"\033[2;4H┌───┐", "\033[5;4H└───┘"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewScaledCanvas(3, 2, 3, 4)
			c.SetOffset(tt.offCol, tt.offRow)

			var out bytes.Buffer
			f := NewFrameBuffer(&out, tt.offCol, tt.offRow)
			c.RenderBorder(f)
			_ = f.Flush()

			for _, s := range tt.want {
				if !strings.Contains(out.String(), s) {
					t.Errorf("missing %q in %q", s, out.String())
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out.String(), s) {
					t.Errorf("unexpected %q in %q", s, out.String())
				}
			}
		})
	}
}

func TestGameModeSequences(t *testing.T) {
	var out bytes.Buffer
	_ = EnterGameMode(&out)
	if !strings.Contains(out.String(), seqMouseOn) || !strings.Contains(out.String(), seqHideCursor) {
		t.Fatalf("enter = %q", out.String())
	}
	out.Reset()
	_ = LeaveGameMode(&out)
	if !strings.Contains(out.String(), seqMouseOff) || !strings.Contains(out.String(), seqShowCursor) {
		t.Fatalf("leave = %q", out.String())
	}
}
