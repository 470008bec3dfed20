package render

import (
	"testing"

	"chunk-ca/internal/world"
)

func TestViewportTileMath(t *testing.T) {
	v := Viewport{Width: 100, Height: 64, Scale: 8}
	if w, h := v.TileSize(); w != 13 || h != 8 {
		t.Fatalf("TileSize = %dx%d, want 13x8", w, h)
	}
	if x, y := v.ScreenToTile(15, 7); x != 1 || y != 0 {
		t.Fatalf("ScreenToTile = (%d,%d)", x, y)
	}

	v.Pan(20, 9)
	if v.OffsetX != -20 || v.OffsetY != -9 {
		t.Fatalf("offset after pan = (%d,%d)", v.OffsetX, v.OffsetY)
	}
	if x, y := v.Origin(); x != -3 || y != -2 {
		t.Fatalf("Origin = (%d,%d), want (-3,-2)", x, y)
	}
	if x, y := v.ScreenToTile(0, 0); x != -3 || y != -2 {
		t.Fatalf("ScreenToTile(0,0) = (%d,%d)", x, y)
	}

	v.CenterOn(10, 10)
	if x, y := v.ScreenToTile(v.Width/2, v.Height/2); x != 10 || y != 10 {
		t.Fatalf("centre tile = (%d,%d)", x, y)
	}
}

func TestViewportSubTileOffset(t *testing.T) {
	l := world.NewChunkList(world.Options{ChunkWidth: 16, ChunkHeight: 16})
	l.Populate(1, 1, 0)
	l.SetTile(0, 0, world.Sand)
	l.SetTile(1, 0, world.Stone)
	l.SetTile(8, 0, world.BrainOn)

	v := Viewport{Width: 64, Height: 64, Scale: 8}
	v.Pan(-4, 0)
	if v.OffsetX != 4 {
		t.Fatalf("OffsetX = %d, want 4", v.OffsetX)
	}
	if sx, sy := v.Shift(); sx != -4 || sy != 0 {
		t.Fatalf("Shift = (%d,%d), want (-4,0)", sx, sy)
	}
	// Pixels 0..63 cover world pixels 4..67: tiles 0 through 8.
	if w, h := v.TileSize(); w != 9 || h != 8 {
		t.Fatalf("TileSize = %dx%d, want 9x8", w, h)
	}

	frame := Stitch(l, v, nil)
	ox, _ := v.Origin()
	sx, _ := v.Shift()
	for px := 0; px < v.Width; px++ {
		drawn := ox + (px-sx)/v.Scale
		if tx, _ := v.ScreenToTile(px, 0); tx != drawn {
			t.Fatalf("pixel %d draws tile %d but maps to tile %d", px, drawn, tx)
		}
	}
	if got := world.Kind(frame.At(0, 0)); got != world.Sand {
		t.Fatalf("frame (0,0) = %v, want sand", got)
	}
	if got := world.Kind(frame.At(1, 0)); got != world.Stone {
		t.Fatalf("frame (1,0) = %v, want stone", got)
	}
	if got := world.Kind(frame.At(8, 0)); got != world.BrainOn {
		t.Fatalf("partial last column = %v, want brain", got)
	}

	v.Pan(12, 3) // OffsetX -8, OffsetY -3
	if sx, sy := v.Shift(); sx != 0 || sy != -5 {
		t.Fatalf("Shift = (%d,%d), want (0,-5)", sx, sy)
	}
	if w, h := v.TileSize(); w != 8 || h != 9 {
		t.Fatalf("TileSize = %dx%d, want 8x9", w, h)
	}
}

func TestViewportWindow(t *testing.T) {
	l := world.NewChunkList(world.Options{ChunkWidth: 16, ChunkHeight: 16})
	v := Viewport{Width: 256, Height: 128, Scale: 4, Buffer: 1}
	// 64x32 tiles from (0,0): chunks 0..3 x 0..1, padded by one.
	want := world.Window{MinX: -1, MinY: -1, MaxX: 4, MaxY: 2}
	if got := v.Window(l); got != want {
		t.Fatalf("Window = %+v, want %+v", got, want)
	}
}

func TestStitchCopiesVisibleTiles(t *testing.T) {
	l := world.NewChunkList(world.Options{ChunkWidth: 4, ChunkHeight: 4})
	l.Populate(2, 1, 0)
	l.SetTile(0, 0, world.Sand)
	l.SetTile(5, 3, world.Stone)

	v := Viewport{Width: 6, Height: 5, Scale: 1, OffsetX: -1}
	frame := Stitch(l, v, nil)
	if frame.W != 6 || frame.H != 5 {
		t.Fatalf("frame %dx%d", frame.W, frame.H)
	}
	if got := world.Kind(frame.At(1, 0)); got != world.Sand {
		t.Fatalf("(1,0) = %v, want sand", got)
	}
	if got := world.Kind(frame.At(6, 3)); got != world.Empty {
		t.Fatalf("outside frame should read empty, got %v", got)
	}
	if got := world.Kind(frame.At(5, 3)); got != world.Empty {
		t.Fatalf("(5,3) = %v, want empty", got)
	}
	v.OffsetX = 0
	frame = Stitch(l, v, frame)
	if got := world.Kind(frame.At(5, 3)); got != world.Stone {
		t.Fatalf("(5,3) = %v, want stone", got)
	}
	if got := world.Kind(frame.At(0, 4)); got != world.Empty {
		t.Fatalf("row below the chunks = %v, want empty", got)
	}
}

func TestFillRGBAUsesPaletteAndJitter(t *testing.T) {
	cells := []uint8{uint8(world.Empty), uint8(world.Sand), uint8(world.Stone), uint8(world.Sand)}
	buf := make([]byte, 4*len(cells))
	FillRGBA(buf, cells, 2, 10, -3)

	sand := world.ColorFor(world.Sand)
	if buf[4] != sand.R || buf[5] != sand.G || buf[6] != sand.B {
		t.Fatalf("sand pixel = %v", buf[4:8])
	}
	for i := range cells {
		if a := buf[i*4+3]; a < 180 {
			t.Fatalf("alpha %d below 180 at %d", a, i)
		}
	}
	again := make([]byte, len(buf))
	FillRGBA(again, cells, 2, 10, -3)
	for i := range buf {
		if buf[i] != again[i] {
			t.Fatal("FillRGBA is not deterministic")
		}
	}
	if tileAlpha(world.Sand, 10, -3) == tileAlpha(world.Sand, 11, -3) &&
		tileAlpha(world.Sand, 10, -3) == tileAlpha(world.Sand, 12, -3) {
		t.Fatal("alpha does not vary with position")
	}
}

func TestChunkBoxesClipToViewport(t *testing.T) {
	l := world.NewChunkList(world.Options{ChunkWidth: 4, ChunkHeight: 4})
	l.Populate(3, 1, 0)
	l.Update()
	// Blank chunks settle clean after one tick.
	l.SetTile(5, 1, world.Sand)

	v := Viewport{Width: 40, Height: 20, Scale: 2, OffsetX: 4}
	boxes := ChunkBoxes(l, v)
	byCoord := map[world.ChunkCoord]ChunkBox{}
	for _, b := range boxes {
		byCoord[b.Coord] = b
	}
	first, ok := byCoord[world.ChunkCoord{X: 0, Y: 0}]
	if !ok {
		t.Fatal("chunk (0,0) should be visible")
	}
	if first.Rect.Min.X != 0 || first.Rect.Max.X != 4 || first.Rect.Max.Y != 8 {
		t.Fatalf("chunk (0,0) rect = %v", first.Rect)
	}
	if !byCoord[world.ChunkCoord{X: 1, Y: 0}].Dirty {
		t.Fatal("chunk (1,0) should be reported dirty")
	}
	if _, ok := byCoord[world.ChunkCoord{X: -1, Y: 0}]; ok {
		t.Fatal("chunk (-1,0) lies left of the viewport")
	}
	if _, ok := byCoord[world.ChunkCoord{X: 0, Y: -1}]; ok {
		t.Fatal("chunk (0,-1) lies above the viewport")
	}
}
