//go:build ebiten

package ui

import (
	"image/color"

	"chunk-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws chunk debugging visuals on top of the world view. G toggles
// chunk borders and D toggles the dirty-chunk tint.
type Overlay struct {
	showGrid  bool
	showDirty bool
	pixel     *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.showDirty = !o.showDirty
	}
}

// Active reports whether anything will be drawn.
func (o *Overlay) Active() bool { return o != nil && (o.showGrid || o.showDirty) }

// Draw paints the enabled layers for the given chunk boxes.
func (o *Overlay) Draw(screen *ebiten.Image, boxes []render.ChunkBox) {
	if !o.Active() {
		return
	}
	for _, b := range boxes {
		r := b.Rect
		if o.showDirty && b.Dirty {
			o.fill(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), color.NRGBA{R: 255, G: 64, B: 64, A: 48})
		}
		if o.showGrid {
			edge := color.NRGBA{R: 90, G: 90, B: 110, A: 160}
			o.fill(screen, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), 1, edge)
			o.fill(screen, float64(r.Min.X), float64(r.Min.Y), 1, float64(r.Dy()), edge)
		}
	}
}

func (o *Overlay) fill(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(o.pixel, op)
}
