package render

import "chunk-ca/internal/world"

// Viewport maps screen pixels onto world tiles. OffsetX/OffsetY are the world
// pixel coordinates of the top-left screen pixel.
type Viewport struct {
	Width, Height    int
	Scale            int
	OffsetX, OffsetY int
	// Buffer is how many chunks beyond the visible area stay alive.
	Buffer int
}

func (v Viewport) scale() int {
	if v.Scale <= 0 {
		return 1
	}
	return v.Scale
}

// TileSize returns how many tiles are visible horizontally and vertically,
// counting partially visible ones at every edge.
func (v Viewport) TileSize() (int, int) {
	if v.Width <= 0 || v.Height <= 0 {
		return 0, 0
	}
	s := v.scale()
	ox, oy := v.Origin()
	return floorDiv(v.OffsetX+v.Width-1, s) - ox + 1, floorDiv(v.OffsetY+v.Height-1, s) - oy + 1
}

// Origin returns the world tile under the top-left screen pixel.
func (v Viewport) Origin() (int, int) {
	s := v.scale()
	return floorDiv(v.OffsetX, s), floorDiv(v.OffsetY, s)
}

// Shift returns the screen position of the origin tile's top-left corner. It
// lies in (-Scale, 0] when the view is between tile boundaries.
func (v Viewport) Shift() (int, int) {
	s := v.scale()
	return -floorMod(v.OffsetX, s), -floorMod(v.OffsetY, s)
}

// ScreenToTile converts a screen pixel into a world tile coordinate.
func (v Viewport) ScreenToTile(px, py int) (int, int) {
	s := v.scale()
	return floorDiv(v.OffsetX+px, s), floorDiv(v.OffsetY+py, s)
}

// Pan moves the view by a screen-space drag of (dx, dy); dragging right
// reveals tiles further left.
func (v *Viewport) Pan(dx, dy int) {
	v.OffsetX -= dx
	v.OffsetY -= dy
}

// CenterOn positions the view so that world tile (tx, ty) is in the middle.
func (v *Viewport) CenterOn(tx, ty int) {
	s := v.scale()
	v.OffsetX = tx*s - v.Width/2
	v.OffsetY = ty*s - v.Height/2
}

// Window returns the chunk window that must stay alive for this view.
func (v Viewport) Window(l *world.ChunkList) world.Window {
	tx, ty := v.Origin()
	tw, th := v.TileSize()
	return l.WindowFor(tx, ty, tw, th, v.Buffer)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
