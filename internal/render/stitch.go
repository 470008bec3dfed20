package render

import (
	"chunk-ca/internal/core"
	"chunk-ca/internal/world"
)

// Stitch copies the visible tiles of every alive chunk into dst, resizing it
// to the viewport's tile size. Tiles with no alive chunk stay Empty. A nil dst
// allocates a new grid.
func Stitch(l *world.ChunkList, v Viewport, dst *core.ByteGrid) *core.ByteGrid {
	tw, th := v.TileSize()
	if dst == nil {
		dst = core.NewByteGrid(tw, th)
	} else if dst.W != tw || dst.H != th {
		dst.Resize(tw, th)
	} else {
		dst.Clear()
	}
	ox, oy := v.Origin()
	cw, ch := l.ChunkSize()
	cells := dst.Cells()

	l.Each(func(c *world.Chunk) {
		// Chunk bounds in frame coordinates.
		x0 := c.Coord.X*cw - ox
		y0 := c.Coord.Y*ch - oy
		if x0 >= tw || y0 >= th || x0+cw <= 0 || y0+ch <= 0 {
			return
		}
		tiles := c.Tiles()
		for ly := max(0, -y0); ly < ch && y0+ly < th; ly++ {
			row := ly * cw
			dstRow := (y0 + ly) * tw
			for lx := max(0, -x0); lx < cw && x0+lx < tw; lx++ {
				cells[dstRow+x0+lx] = uint8(tiles[row+lx])
			}
		}
	})
	return dst
}
