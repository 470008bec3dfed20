package world

import (
	"slices"
	"testing"

	prng "chunk-ca/pkg/core"
)

func TestSandFallsOneRowPerTickUntilStone(t *testing.T) {
	l := newTestList(t, 8, 8)
	l.Populate(1, 2, 0)
	l.SetTile(3, 0, Sand)
	for x := 2; x <= 4; x++ {
		l.SetTile(x, 12, Stone)
	}

	for tick := 1; tick <= 16; tick++ {
		l.Update()
		want := min(tick, 11)
		if k, _ := l.TileAt(3, want); k != Sand {
			t.Fatalf("tick %d: sand not at y=%d", tick, want)
		}
		if n := l.Census()[Sand]; n != 1 {
			t.Fatalf("tick %d: found %d sand tiles", tick, n)
		}
		for y := 0; y < want; y++ {
			if k, _ := l.TileAt(3, y); k != Empty {
				t.Fatalf("tick %d: cell (3,%d) should be empty, got %v", tick, y, k)
			}
		}
	}
}

func TestSandCrossesChunkBoundary(t *testing.T) {
	l := newTestList(t, 4, 4)
	l.Populate(1, 2, 0)
	l.SetTile(1, 3, Sand)

	top, _ := l.Get(ChunkCoord{})
	bottom, _ := l.Get(ChunkCoord{Y: 1})
	got := top.Compute(l.neighbors(top.Coord), prng.NewRNG(1))
	want := []Action{SwapCrossChunk(13, bottom.Coord, 1, Sand)}
	if !slices.Equal(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}

	l.Update()

	if bottom.At(1, 0) != Sand {
		t.Fatal("sand should appear at local (1,0) of the chunk below")
	}
	if top.At(1, 3) != Empty {
		t.Fatal("origin cell should be empty after the swap")
	}
	if !bottom.Dirty() {
		t.Fatal("receiving chunk should be dirty")
	}
	if st := l.LastStats(); st.CrossSwaps != 1 {
		t.Fatalf("cross swaps = %d, want 1", st.CrossSwaps)
	}
}

func TestSandSlidesDiagonally(t *testing.T) {
	l := newTestList(t, 8, 8)
	l.Populate(1, 1, 0)
	l.SetTile(3, 2, Sand)
	l.SetTile(3, 3, Stone)

	l.Update()

	left, _ := l.TileAt(2, 3)
	right, _ := l.TileAt(4, 3)
	if (left == Sand) == (right == Sand) {
		t.Fatalf("sand should slide to exactly one side, left=%v right=%v", left, right)
	}
	if k, _ := l.TileAt(3, 2); k != Empty {
		t.Fatal("origin should be empty after sliding")
	}
}

func TestSandStaysWhenBelowIsUnloaded(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 4)
	c.Set(1, 3, Sand)
	for i := 0; i < 8; i++ {
		if got := c.Compute(nil, prng.NewRNG(int64(i))); len(got) != 0 {
			t.Fatalf("unloaded neighbor treated as empty: %v", got)
		}
	}
}

func TestSandBlockedOnAllSides(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 4)
	c.Set(1, 1, Sand)
	c.Set(0, 2, Stone)
	c.Set(1, 2, Sand)
	c.Set(2, 2, Stone)
	fillRow(c, 3, Stone)

	for i := 0; i < 8; i++ {
		if got := c.Compute(nil, prng.NewRNG(int64(i))); len(got) != 0 {
			t.Fatalf("blocked sand moved: %v", got)
		}
	}
}

func fillRow(c *Chunk, y int, k Kind) {
	for x := 0; x < c.w; x++ {
		c.tiles[c.Index(x, y)] = k
	}
}
