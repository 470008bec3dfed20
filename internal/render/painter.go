//go:build ebiten

package render

import (
	"chunk-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a stitched frame into a single RGBA image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a frame of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{}
	gp.resize(w, h)
	return gp
}

func (gp *GridPainter) resize(w, h int) {
	if gp.img != nil {
		gp.img.Dispose()
	}
	gp.w, gp.h = w, h
	gp.buf = make([]byte, 4*w*h)
	gp.img = ebiten.NewImage(w, h)
}

// Blit converts a frame stitched for v into pixels and draws it scaled onto
// dst, shifted so that partially scrolled tiles line up with ScreenToTile.
func (gp *GridPainter) Blit(dst *ebiten.Image, frame *core.ByteGrid, v Viewport) {
	if frame.W != gp.w || frame.H != gp.h {
		gp.resize(frame.W, frame.H)
	}
	ox, oy := v.Origin()
	FillRGBA(gp.buf, frame.Cells(), frame.W, ox, oy)
	gp.img.WritePixels(gp.buf)

	s := float64(v.scale())
	sx, sy := v.Shift()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(float64(sx), float64(sy))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
