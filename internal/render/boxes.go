package render

import (
	"image"

	"chunk-ca/internal/world"
)

// ChunkBox is the screen rectangle covered by one alive chunk.
type ChunkBox struct {
	Coord world.ChunkCoord
	Rect  image.Rectangle
	Dirty bool
}

// ChunkBoxes returns the screen rectangles of the alive chunks that intersect
// the viewport, clipped to it.
func ChunkBoxes(l *world.ChunkList, v Viewport) []ChunkBox {
	s := v.scale()
	cw, ch := l.ChunkSize()
	screen := image.Rect(0, 0, v.Width, v.Height)
	var out []ChunkBox
	l.Each(func(c *world.Chunk) {
		x0 := c.Coord.X*cw*s - v.OffsetX
		y0 := c.Coord.Y*ch*s - v.OffsetY
		r := image.Rect(x0, y0, x0+cw*s, y0+ch*s).Intersect(screen)
		if r.Empty() {
			return
		}
		out = append(out, ChunkBox{Coord: c.Coord, Rect: r, Dirty: c.Dirty()})
	})
	return out
}
