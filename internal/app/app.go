//go:build ebiten

package app

import (
	"image"

	"chunk-ca/internal/core"
	"chunk-ca/internal/render"
	"chunk-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 280

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	frame   *core.ByteGrid
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	stepOnce bool
	panning  bool
	painting bool
	last     image.Point
}

// New constructs a Game for the provided session.
func New(s *Session) *Game {
	tw, th := s.View.TileSize()
	return &Game{
		s:       s,
		frame:   core.NewByteGrid(tw, th),
		painter: render.NewGridPainter(tw, th),
		hud: ui.NewHUD(s, hudWidth, "chunk-ca", []ui.Control{
			{Key: "tps", Label: "Ticks/sec", Step: 5, Min: 1, Max: 240},
			{Key: "brush_size", Label: "Brush size", Step: 1, Min: 1, Max: maxBrush},
		}),
		overlay: ui.NewOverlay(),
	}
}

// Size returns the window size in pixels.
func (g *Game) Size() (int, int) {
	return g.s.View.Width + g.hud.Width(), g.s.View.Height
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.s.Paused = !g.s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.s.Recenter()
	}
	digits := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5}
	for i, k := range digits {
		if inpututil.IsKeyJustPressed(k) {
			g.s.SelectBrush(i + 1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.s.ResizeBrush(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.s.ResizeBrush(-1)
	}

	g.overlay.Update()
	g.hud.Update(g.s.View.Width)
	g.handleMouse()

	if g.stepOnce {
		g.s.Step()
		g.stepOnce = false
	} else {
		g.s.Advance()
	}
	return nil
}

// handleMouse pans with the right button and paints with the left one. Paint
// strokes connect consecutive cursor positions so fast drags leave no gaps.
func (g *Game) handleMouse() {
	x, y := ebiten.CursorPosition()
	cur := image.Pt(x, y)

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.panning {
			g.s.View.Pan(cur.X-g.last.X, cur.Y-g.last.Y)
		}
		g.panning = true
		g.last = cur
		return
	}
	g.panning = false

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) && x < g.s.View.Width && !g.hud.Contains(x, y) {
		from := cur
		if g.painting {
			from = g.last
		}
		g.s.Paint(from.X, from.Y, cur.X, cur.Y)
		g.painting = true
		g.last = cur
		return
	}
	g.painting = false
}

// Draw renders the visible chunks, the debug overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame = render.Stitch(g.s.World, g.s.View, g.frame)
	g.painter.Blit(screen, g.frame, g.s.View)
	if g.overlay.Active() {
		g.overlay.Draw(screen, render.ChunkBoxes(g.s.World, g.s.View))
	}
	g.hud.Draw(screen, g.s.View.Width, g.s.View.Height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
