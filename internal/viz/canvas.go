package viz

import (
	"strings"

	"github.com/lia-aerospace/trajsim/internal/trajectory"
)

// Braille cells are 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// offset from U+2800.
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a Braille dot canvas of Width x Height cells, addressable in
// sub-pixels of (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel (x, y). Out-of-bounds points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Frame maps downrange/altitude metres onto canvas sub-pixels. Altitude 0 is
// always inside the frame so the ground line is visible.
type Frame struct {
	minX, maxX float64
	minY, maxY float64
	w, h       int
}

func NewFrame(samples []trajectory.VehicleState, c *Canvas) Frame {
	f := Frame{w: c.Width*2 - 1, h: c.Height*4 - 1}
	for i, s := range samples {
		if i == 0 {
			f.minX, f.maxX = s.X, s.X
		}
		f.minX, f.maxX = min(f.minX, s.X), max(f.maxX, s.X)
		f.minY, f.maxY = min(f.minY, s.Y), max(f.maxY, s.Y)
	}
	if f.maxX == f.minX {
		f.maxX = f.minX + 1
	}
	if f.maxY == f.minY {
		f.maxY = f.minY + 1
	}
	return f
}

func (f Frame) Point(x, y float64) (px, py int) {
	px = int((x - f.minX) / (f.maxX - f.minX) * float64(f.w))
	py = f.h - int((y-f.minY)/(f.maxY-f.minY)*float64(f.h))
	return px, py
}

// DrawProfile traces samples as connected segments plus the ground line.
func (c *Canvas) DrawProfile(f Frame, samples []trajectory.VehicleState) {
	_, gy := f.Point(0, 0)
	for x := 0; x <= f.w; x += 2 {
		c.Set(x, gy)
	}
	for i := 1; i < len(samples); i++ {
		x0, y0 := f.Point(samples[i-1].X, samples[i-1].Y)
		x1, y1 := f.Point(samples[i].X, samples[i].Y)
		c.DrawLine(x0, y0, x1, y1)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
