package app

import (
	"fmt"

	"chunk-ca/internal/config"
	"chunk-ca/internal/core"
	"chunk-ca/internal/paint"
	"chunk-ca/internal/render"
	"chunk-ca/internal/scenario"
	"chunk-ca/internal/world"

	"go.uber.org/zap"
)

const maxBrush = 32

// BrushKinds maps the number keys 1-5 to paintable kinds; 5 erases.
var BrushKinds = []world.Kind{world.GameOfLife, world.Sand, world.Stone, world.BrainOn, world.Empty}

// Tracer receives the stats of every tick.
type Tracer interface {
	Write(world.TickStats) error
}

// Session is the host loop state shared by the window and the headless
// runner: the world, the view that decides which chunks stay alive, and the
// paint brush.
type Session struct {
	World  *world.ChunkList
	View   render.Viewport
	Brush  paint.Brush
	Pacer  *core.FixedStep
	Paused bool

	home  paint.Point
	trace Tracer
	log   *zap.Logger
}

// NewSession builds the world described by cfg and its scenario.
func NewSession(cfg *config.Config, log *zap.Logger) (*Session, error) {
	if log == nil {
		log = zap.NewNop()
	}
	l := world.NewChunkList(world.Options{
		ChunkWidth:  cfg.World.ChunkWidth,
		ChunkHeight: cfg.World.ChunkHeight,
		Workers:     cfg.World.Workers,
		Seed:        cfg.World.Seed,
		Logger:      log.Named("world"),
	})

	var sc *scenario.Scenario
	if cfg.Sim.Scenario != "" {
		var err error
		if sc, err = scenario.Resolve(cfg.Sim.Scenario); err != nil {
			return nil, fmt.Errorf("scenario: %w", err)
		}
	}

	// A scenario with its own world block replaces the configured grid.
	cols, rows := cfg.World.ChunksX, cfg.World.ChunksY
	if sc != nil && sc.World.ChunksX > 0 && sc.World.ChunksY > 0 {
		cols, rows = sc.World.ChunksX, sc.World.ChunksY
	} else {
		l.Populate(cols, rows, cfg.World.RandomFill)
	}
	if sc != nil {
		painted := sc.Apply(l)
		log.Info("scenario loaded",
			zap.String("name", sc.Name),
			zap.Int("tiles", painted),
			zap.Int("chunks", l.Len()),
		)
	}

	s := &Session{
		World: l,
		View: render.Viewport{
			Width:  cfg.Viewport.Width,
			Height: cfg.Viewport.Height,
			Scale:  cfg.Viewport.Scale,
			Buffer: cfg.Viewport.BufferChunks,
		},
		Brush:  paint.Brush{Kind: world.Sand, Size: 3},
		Pacer:  core.NewFixedStep(cfg.Sim.TPS),
		Paused: !cfg.Sim.Running,
		home: paint.Point{
			X: cols * cfg.World.ChunkWidth / 2,
			Y: rows * cfg.World.ChunkHeight / 2,
		},
		log: log,
	}
	s.Recenter()
	return s, nil
}

// SetTracer attaches t to receive every subsequent tick. nil detaches.
func (s *Session) SetTracer(t Tracer) { s.trace = t }

// Step keeps the chunks around the view alive, culls the rest and advances
// the world by one tick.
func (s *Session) Step() world.TickStats {
	w := s.View.Window(s.World)
	s.World.ReviveChunks(w)
	s.World.CullChunks(w)
	st := s.World.Update()
	if s.trace != nil {
		if err := s.trace.Write(st); err != nil {
			s.log.Warn("trace disabled", zap.Error(err))
			s.trace = nil
		}
	}
	return st
}

// Advance steps when the session is running and the pacer grants a tick.
func (s *Session) Advance() bool {
	if s.Paused || !s.Pacer.ShouldStep() {
		return false
	}
	s.Step()
	return true
}

// Paint strokes the brush between two screen pixels and returns the number of
// tiles written.
func (s *Session) Paint(fromX, fromY, toX, toY int) int {
	ax, ay := s.View.ScreenToTile(fromX, fromY)
	bx, by := s.View.ScreenToTile(toX, toY)
	return s.Brush.Stroke(s.World, paint.Point{X: ax, Y: ay}, paint.Point{X: bx, Y: by})
}

// SelectBrush picks the n-th entry of BrushKinds, counting from 1.
func (s *Session) SelectBrush(n int) bool {
	if n < 1 || n > len(BrushKinds) {
		return false
	}
	s.Brush.Kind = BrushKinds[n-1]
	return true
}

// ResizeBrush grows or shrinks the brush, keeping it within [1, 32].
func (s *Session) ResizeBrush(delta int) {
	s.Brush.Size = min(max(s.Brush.Size+delta, 1), maxBrush)
}

// Recenter moves the view back to the middle of the initial world.
func (s *Session) Recenter() { s.View.CenterOn(s.home.X, s.home.Y) }

// Parameters merges the world snapshot with the session's own values.
func (s *Session) Parameters() core.ParameterSnapshot {
	snap := s.World.Parameters()
	ox, oy := s.View.Origin()
	snap.Groups = append(snap.Groups, core.ParameterGroup{
		Name: "View",
		Params: []core.Parameter{
			core.IntParam("tps", "TPS", s.Pacer.TPS()),
			core.IntParam("brush_size", "Brush size", s.Brush.Size),
			{Key: "brush", Label: "Brush", Type: core.ParamTypeText, Value: s.Brush.Kind.String()},
			core.BoolParam("paused", "Paused", s.Paused),
			{Key: "origin", Label: "Origin", Type: core.ParamTypeText, Value: fmt.Sprintf("%d,%d", ox, oy)},
		},
	})
	return snap
}

// SetIntParameter applies HUD adjustments to tps and brush_size.
func (s *Session) SetIntParameter(key string, v int) bool {
	switch key {
	case "tps":
		if v <= 0 || v == s.Pacer.TPS() {
			return false
		}
		s.Pacer.SetTPS(v)
		return true
	case "brush_size":
		if v < 1 || v > maxBrush || v == s.Brush.Size {
			return false
		}
		s.Brush.Size = v
		return true
	}
	return false
}
