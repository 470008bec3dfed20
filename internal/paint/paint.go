// Package paint turns pointer strokes into tile writes.
package paint

import "chunk-ca/internal/world"

// Writer accepts point writes in world tile coordinates. *world.ChunkList
// satisfies it with SetTile.
type Writer interface {
	SetTile(tx, ty int, k world.Kind) bool
}

// Point is a world tile coordinate.
type Point struct{ X, Y int }

// Line rasterizes the segment from (x0, y0) to (x1, y1), both ends included.
func Line(x0, y0, x1, y1 int) []Point {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	pts := make([]Point, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		pts = append(pts, Point{x0, y0})
		if x0 == x1 && y0 == y1 {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Brush stamps a square of Kind with side 2*(Size/2)+1 centered on each point.
type Brush struct {
	Kind world.Kind
	Size int
}

// Stamp writes the brush at one point and returns how many tiles were written.
func (b Brush) Stamp(w Writer, p Point) int {
	r := b.Size / 2
	if r < 0 {
		r = 0
	}
	n := 0
	for y := p.Y - r; y <= p.Y+r; y++ {
		for x := p.X - r; x <= p.X+r; x++ {
			if w.SetTile(x, y, b.Kind) {
				n++
			}
		}
	}
	return n
}

// Stroke stamps the brush along the line from one point to another. Writes
// outside loaded chunks are ignored by the Writer.
func (b Brush) Stroke(w Writer, from, to Point) int {
	n := 0
	for _, p := range Line(from.X, from.Y, to.X, to.Y) {
		n += b.Stamp(w, p)
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
