//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"chunk-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the world view.
type HUD struct {
	src    Source
	setter IntSetter
	width  int
	title  string

	panel      *ebiten.Image
	lastHeight int
	pixel      *ebiten.Image

	snapshot     core.ParameterSnapshot
	controls     []controlState
	panelOffsetX int
}

type controlState struct {
	control   Control
	value     int
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for src with the given panel width. When src also
// implements IntSetter the controls are adjustable with the mouse.
func NewHUD(src Source, width int, title string, controls []Control) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{src: src, width: width, title: title}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if setter, ok := src.(IntSetter); ok {
		h.setter = setter
	}
	h.controls = make([]controlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = controlState{control: ctrl}
	}
	h.layoutControls()
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached snapshot and handles clicks on the controls.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.src.Parameters()
	for i := range h.controls {
		state := &h.controls[i]
		p, ok := h.snapshot.Lookup(state.control.Key)
		state.hasValue = false
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(p.Value); err == nil {
			state.value = v
			state.hasValue = true
		}
	}
	h.handleInput()
}

// Contains reports whether the screen point lies over the panel.
func (h *HUD) Contains(x, y int) bool {
	if h == nil || h.width <= 0 {
		return false
	}
	return x >= h.panelOffsetX && x < h.panelOffsetX+h.width && y >= 0
}

func (h *HUD) handleInput() {
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	x, y := ebiten.CursorPosition()
	x -= h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		direction := 0
		switch {
		case pointInRect(x, y, state.minusRect):
			direction = -1
		case pointInRect(x, y, state.plusRect):
			direction = 1
		default:
			continue
		}
		step := state.control.Step
		if step <= 0 {
			step = 1
		}
		target := state.control.Clamp(state.value + direction*step)
		if target != state.value && h.setter.SetIntParameter(state.control.Key, target) {
			state.value = target
		}
		return
	}
}

// Draw paints the HUD panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		if h.panel != nil {
			h.panel.Dispose()
		}
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	h.drawParameters()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		value := "--"
		valueColor := color.RGBA{R: 160, G: 160, B: 170, A: 255}
		if state.hasValue {
			value = strconv.Itoa(state.value)
			valueColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
		}
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)

		enabled := state.hasValue && h.setter != nil
		h.drawButton(state.minusRect, "-", enabled && state.control.Clamp(state.value-1) != state.value)
		h.drawButton(state.plusRect, "+", enabled && state.control.Clamp(state.value+1) != state.value)
	}
}

func (h *HUD) drawParameters() {
	face := basicfont.Face7x13
	y := h.paramsTop()
	for _, line := range Lines(h.snapshot) {
		if y > h.lastHeight-panelPadding {
			return
		}
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 180, G: 180, B: 190, A: 255})
		y += lineSpacing
	}
}

func (h *HUD) paramsTop() int {
	top := panelPadding + headerBaseline + infoSpacing
	if n := len(h.controls); n > 0 {
		top = h.controls[n-1].top + controlSpacing + infoSpacing
	}
	return top
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	top := panelPadding + headerBaseline + infoSpacing/2
	for i := range h.controls {
		state := &h.controls[i]
		state.top = top
		plusX := h.width - panelPadding - buttonSize
		minusX := plusX - buttonGap - buttonSize
		buttonY := top + (labelBaseline - buttonSize)
		state.minusRect = image.Rect(minusX, buttonY, minusX+buttonSize, buttonY+buttonSize)
		state.plusRect = image.Rect(plusX, buttonY, plusX+buttonSize, buttonY+buttonSize)
		top += controlSpacing
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	buttonSize     = 18
	buttonGap      = 6
	controlSpacing = 28
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	lineSpacing    = 16
)
