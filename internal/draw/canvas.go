package draw

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Canvas is a colour pixel buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// It implements Surface, so the simulation can paint onto it directly.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Last emitted cell colours, used to skip unchanged cells on the next Render.
	rendered []cell
	dirty    bool

	renderBuf bytes.Buffer // Buffer for batching render output
	numBuf    [20]byte     // Scratch buffer for allocation-free integer formatting
}

// cell is the quantised pair of colours a half-block terminal cell shows.
type cell struct {
	top, bottom [3]uint8
	painted     bool // false forces the cell to be re-emitted
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// The pixel buffer is reallocated (and so cleared) only when the size changes.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.rendered = make([]cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.dirty = true
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.dirty = true
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the terminal was cleared.
func (c *Canvas) ForceRedraw() {
	c.dirty = true
}

// MarkTextDirty invalidates width cells starting at the 1-based canvas position (col, row),
// so text drawn over them is painted over by the next Render.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+width; x++ {
		if x < 0 || x >= c.termWidth {
			continue
		}
		c.rendered[r*c.termWidth+x].painted = false
	}
}

// Clear resets all pixels to black.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// Size returns the logical dimensions (implements Surface).
func (c *Canvas) Size() (float64, float64) {
	return c.logicalWidth, c.logicalHeight
}

// Fade darkens every pixel towards black by alpha (implements Surface).
func (c *Canvas) Fade(alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha >= 1 {
		c.Clear()
		return
	}
	for i, p := range c.pixels {
		c.pixels[i] = p.BlendRgb(Black, alpha)
	}
}

// FillCircle rasterises a filled circle at logical coordinates (implements Surface).
// Circles smaller than a pixel still light the pixel under their centre.
func (c *Canvas) FillCircle(x, y, radius float64, col colorful.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	cx := x * c.scaleX
	cy := y * c.scaleY
	rx := radius * c.scaleX
	ry := radius * c.scaleY

	if rx < 0.5 || ry < 0.5 {
		c.blendPixel(int(math.Floor(cx)), int(math.Floor(cy)), col, alpha)
		return
	}

	yStart := int(math.Floor(cy - ry))
	yEnd := int(math.Ceil(cy + ry))
	xStart := int(math.Floor(cx - rx))
	xEnd := int(math.Ceil(cx + rx))

	for py := yStart; py <= yEnd; py++ {
		dy := (float64(py) + 0.5 - cy) / ry
		for px := xStart; px <= xEnd; px++ {
			dx := (float64(px) + 0.5 - cx) / rx
			if dx*dx+dy*dy <= 1 {
				c.blendPixel(px, py, col, alpha)
			}
		}
	}
}

// blendPixel mixes col into a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) blendPixel(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	c.pixels[i] = c.pixels[i].BlendRgb(col, alpha)
}

// Pixel returns the colour at actual pixel coordinates. Out-of-range reads return black.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return Black
	}
	return c.pixels[y*c.termWidth+x]
}

// Render outputs the canvas to the writer using upper half-block characters, with the
// top pixel as foreground colour and the bottom pixel as background colour.
// Cells that did not change since the previous Render are skipped.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				top:     quantize(c.pixels[topOffset+col]),
				bottom:  quantize(c.pixels[bottomOffset+col]),
				painted: true,
			}
			idx := row*c.termWidth + col
			if !c.dirty && c.rendered[idx] == next {
				continue
			}
			c.rendered[idx] = next
			c.writeCell(row, col, next)
		}
	}
	c.dirty = false

	if c.renderBuf.Len() == 0 {
		return nil
	}
	c.renderBuf.WriteString(seqReset)
	return writeChunked(w, c.renderBuf.Bytes())
}

// writeCell appends the escape sequence that paints one terminal cell.
func (c *Canvas) writeCell(row, col int, v cell) {
	b := &c.renderBuf
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	b.WriteByte('H')

	if v.top == ([3]uint8{}) && v.bottom == ([3]uint8{}) {
		b.WriteString(seqReset + " ")
		return
	}

	b.WriteString("\033[38;2;")
	c.writeRGB(v.top)
	b.WriteString("m\033[48;2;")
	c.writeRGB(v.bottom)
	b.WriteByte('m')
	b.WriteRune(BlockUpperHalf)
}

func (c *Canvas) writeRGB(rgb [3]uint8) {
	b := &c.renderBuf
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb[0]), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb[1]), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(c.numBuf[:0], int64(rgb[2]), 10))
}

func quantize(col colorful.Color) [3]uint8 {
	r, g, b := col.Clamped().RGB255()
	return [3]uint8{r, g, b}
}

// RenderBorder frames the canvas when the terminal is larger than the render area.
// Each pair of sides is drawn only where the offset leaves room for it.
func (c *Canvas) RenderBorder(f *FrameBuffer) {
	sides := c.offsetCol >= 1
	ends := c.offsetRow >= 1
	w, h := c.termWidth, c.termHeight

	if ends {
		line := strings.Repeat("─", w)
		if sides {
			f.TextAt(0, 0, "┌"+line+"┐")
			f.TextAt(0, h+1, "└"+line+"┘")
		} else {
			f.TextAt(1, 0, line)
			f.TextAt(1, h+1, line)
		}
	}
	if sides {
		for row := 1; row <= h; row++ {
			f.TextAt(0, row, "│")
			f.TextAt(w+1, row, "│")
		}
	}
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// TerminalToLogical converts a 1-based terminal position (as reported by mouse events)
// to logical coordinates at the centre of that cell.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64((row-1-c.offsetRow)*2) + 1
	return px / c.scaleX, py / c.scaleY
}

var _ Surface = (*Canvas)(nil)
