package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chunk-ca/internal/config"
	"chunk-ca/internal/world"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func blankConfig() *config.Config {
	cfg := config.Default()
	cfg.Sim.Scenario = ""
	cfg.World.ChunkWidth = 8
	cfg.World.ChunkHeight = 8
	cfg.World.ChunksX = 2
	cfg.World.ChunksY = 2
	cfg.Viewport.Width = 64
	cfg.Viewport.Height = 64
	cfg.Viewport.Scale = 4
	return cfg
}

func TestNewSessionLoadsScenario(t *testing.T) {
	s, err := NewSession(config.Default(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if s.World.Len() != 12 {
		t.Fatalf("alive = %d, want the 4x3 sandbox grid", s.World.Len())
	}
	if s.World.Census()[world.Sand] == 0 {
		t.Fatal("sandbox scenario painted no sand")
	}
	if s.View.OffsetX != 0 || s.View.OffsetY != 0 {
		t.Fatalf("default view should frame the grid exactly, offset (%d,%d)", s.View.OffsetX, s.View.OffsetY)
	}
	st := s.Step()
	if st.Tick != 1 || st.Actions == 0 {
		t.Fatalf("first tick = %+v", st)
	}
}

func TestScenarioGridReplacesConfigGrid(t *testing.T) {
	dir := t.TempDir()
	write := func(name, doc string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	shapes := `
shapes:
  - shape: rect
    kind: stone
    x: 1
    y: 1
    w: 2
    h: 1
`
	cases := []struct {
		name  string
		doc   string
		alive int
	}{
		{"world block", "name: small\nworld:\n  chunks_x: 1\n  chunks_y: 1\n" + shapes, 1},
		{"shapes only", "name: overlay\n" + shapes, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := blankConfig()
			cfg.World.ChunksX, cfg.World.ChunksY = 3, 3
			cfg.World.RandomFill = 0.5
			cfg.Sim.Scenario = write(tc.name+".yaml", tc.doc)

			s, err := NewSession(cfg, zaptest.NewLogger(t))
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			if s.World.Len() != tc.alive {
				t.Fatalf("alive = %d, want %d", s.World.Len(), tc.alive)
			}
			census := s.World.Census()
			if census[world.Stone] != 2 {
				t.Fatalf("stone = %d, want 2", census[world.Stone])
			}
			if life := census[world.GameOfLife]; (life == 0) != (tc.alive == 1) {
				t.Fatalf("life = %d with %d chunks alive", life, tc.alive)
			}
		})
	}
}

func TestNewSessionUnknownScenario(t *testing.T) {
	cfg := blankConfig()
	cfg.Sim.Scenario = "no-such-scenario"
	if _, err := NewSession(cfg, nil); err == nil {
		t.Fatal("expected an error for an unknown scenario")
	}
}

func TestStepCullsAndRevivesAroundView(t *testing.T) {
	s, err := NewSession(blankConfig(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	s.Step()
	alive := s.World.Len()

	s.View.Pan(-100000, 0)
	s.Step()
	if s.World.Len() != 0 || s.World.DeadLen() != alive {
		t.Fatalf("after panning away alive=%d dead=%d, want 0 and %d", s.World.Len(), s.World.DeadLen(), alive)
	}

	s.Recenter()
	s.Step()
	if s.World.DeadLen() != 0 || s.World.Len() != alive {
		t.Fatalf("after recentering alive=%d dead=%d", s.World.Len(), s.World.DeadLen())
	}
}

func TestPaintUsesScreenCoordinates(t *testing.T) {
	s, err := NewSession(blankConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.View.OffsetX, s.View.OffsetY = 0, 0
	s.Brush.Size = 1
	if !s.SelectBrush(3) || s.Brush.Kind != world.Stone {
		t.Fatalf("brush 3 = %v, want stone", s.Brush.Kind)
	}
	if s.SelectBrush(9) {
		t.Fatal("brush 9 does not exist")
	}
	n := s.Paint(0, 4, 40, 4)
	if n != 11 {
		t.Fatalf("painted %d tiles, want 11", n)
	}
	if k, _ := s.World.TileAt(10, 1); k != world.Stone {
		t.Fatalf("TileAt(10,1) = %v", k)
	}
}

func TestBrushAndRateControls(t *testing.T) {
	s, err := NewSession(blankConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.ResizeBrush(100)
	if s.Brush.Size != maxBrush {
		t.Fatalf("brush size = %d, want %d", s.Brush.Size, maxBrush)
	}
	s.ResizeBrush(-100)
	if s.Brush.Size != 1 {
		t.Fatalf("brush size = %d, want 1", s.Brush.Size)
	}
	if !s.SetIntParameter("brush_size", 5) || s.Brush.Size != 5 {
		t.Fatal("brush_size not applied")
	}
	if !s.SetIntParameter("tps", 12) || s.Pacer.TPS() != 12 {
		t.Fatal("tps not applied")
	}
	if s.SetIntParameter("tps", 0) || s.SetIntParameter("alive", 3) {
		t.Fatal("invalid adjustments must be rejected")
	}
	snap := s.Parameters()
	if p, ok := snap.Lookup("tps"); !ok || p.Value != "12" {
		t.Fatalf("tps parameter = %+v", p)
	}
	if _, ok := snap.Lookup("alive"); !ok {
		t.Fatal("world parameters missing from snapshot")
	}
}

func TestAdvanceRespectsPause(t *testing.T) {
	s, err := NewSession(blankConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	s.Paused = true
	if s.Advance() || s.World.Tick() != 0 {
		t.Fatal("paused session advanced")
	}
	s.Paused = false
	if !s.Advance() || s.World.Tick() != 1 {
		t.Fatal("running session should take its first tick immediately")
	}
}

type recordingTracer struct {
	ticks []uint64
	err   error
}

func (r *recordingTracer) Write(st world.TickStats) error {
	r.ticks = append(r.ticks, st.Tick)
	return r.err
}

func TestTracerReceivesTicks(t *testing.T) {
	s, err := NewSession(blankConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingTracer{}
	s.SetTracer(rec)
	for i := 0; i < 3; i++ {
		s.Step()
	}
	if len(rec.ticks) != 3 || rec.ticks[2] != 3 {
		t.Fatalf("traced ticks = %v", rec.ticks)
	}
}

func TestFailingTracerIsDetached(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	s, err := NewSession(blankConfig(), zap.New(obs))
	if err != nil {
		t.Fatal(err)
	}
	rec := &recordingTracer{err: errors.New("disk full")}
	s.SetTracer(rec)
	s.Step()
	s.Step()
	if len(rec.ticks) != 1 {
		t.Fatalf("tracer called %d times after failing", len(rec.ticks))
	}
	if logs.FilterMessage("trace disabled").Len() != 1 {
		t.Fatal("expected one warning about the failed trace")
	}
}
