package world

import "testing"

func TestResolveWithinChunk(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 4)
	got, ok := Resolve(c, nil, 1, 1, 0, 1)
	if !ok || got.Cross || got.Index != 9 || got.Coord != c.Coord {
		t.Fatalf("Resolve inside chunk = %+v, %v", got, ok)
	}
}

func TestResolveCrossesEdges(t *testing.T) {
	c := NewChunk(ChunkCoord{}, 4, 4)
	below := NewChunk(ChunkCoord{X: 0, Y: 1}, 4, 4)
	left := NewChunk(ChunkCoord{X: -1, Y: 0}, 4, 4)
	diag := NewChunk(ChunkCoord{X: 1, Y: 1}, 4, 4)
	nb := Neighbors{below, left, diag}

	cases := []struct {
		name       string
		x, y       int
		dx, dy     int
		wantCoord  ChunkCoord
		wantIndex  int
		wantTarget *Chunk
	}{
		{"down wraps to top row", 2, 3, 0, 1, below.Coord, 2, below},
		{"left wraps to right column", 0, 2, -1, 0, left.Coord, 11, left},
		{"corner crosses both axes", 3, 3, 1, 1, diag.Coord, 0, diag},
		{"down-left stays in column", 1, 3, -1, 1, below.Coord, 0, below},
	}
	for _, tc := range cases {
		got, ok := Resolve(c, nb, tc.x, tc.y, tc.dx, tc.dy)
		if !ok {
			t.Fatalf("%s: unresolved", tc.name)
		}
		if !got.Cross || got.Coord != tc.wantCoord || got.Index != tc.wantIndex || got.Chunk != tc.wantTarget {
			t.Fatalf("%s: got %+v, want coord %v index %d", tc.name, got, tc.wantCoord, tc.wantIndex)
		}
	}
}

func TestResolveMissingNeighbor(t *testing.T) {
	c := NewChunk(ChunkCoord{X: 2, Y: 2}, 4, 4)
	below := NewChunk(ChunkCoord{X: 2, Y: 3}, 4, 4)
	nb := Neighbors{below}

	if _, ok := Resolve(c, nb, 1, 0, 0, -1); ok {
		t.Fatal("crossing into an unloaded chunk must be unresolvable")
	}
	if _, ok := BelowLeft(c, nb, 0, 3); ok {
		t.Fatal("diagonal into an unloaded corner chunk must be unresolvable")
	}
	if _, ok := Below(c, nb, 0, 3); !ok {
		t.Fatal("loaded neighbor should resolve")
	}
}

func TestResolveRejectsLongOffsets(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("offset of two tiles should panic")
		}
	}()
	Resolve(NewChunk(ChunkCoord{}, 4, 4), nil, 0, 0, 2, 0)
}

func TestNeighborsFind(t *testing.T) {
	a := NewChunk(ChunkCoord{X: 1, Y: 0}, 2, 2)
	nb := Neighbors{nil, a}
	if nb.Find(ChunkCoord{X: 1}) != a {
		t.Fatal("Find should return the loaded chunk")
	}
	if nb.Find(ChunkCoord{X: 5}) != nil {
		t.Fatal("Find should return nil for unknown coordinates")
	}
}
