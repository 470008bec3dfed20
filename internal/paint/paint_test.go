package paint

import (
	"slices"
	"testing"

	"chunk-ca/internal/world"
)

func TestLine(t *testing.T) {
	cases := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []Point
	}{
		{"single", 2, 2, 2, 2, []Point{{2, 2}}},
		{"horizontal", 0, 0, 3, 0, []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"vertical up", 1, 2, 1, -1, []Point{{1, 2}, {1, 1}, {1, 0}, {1, -1}}},
		{"diagonal", 0, 0, 3, 3, []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"shallow", 0, 0, 4, 2, []Point{{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}}},
	}
	for _, tc := range cases {
		got := Line(tc.x0, tc.y0, tc.x1, tc.y1)
		if !slices.Equal(got, tc.want) {
			t.Fatalf("%s: Line = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLineIsConnected(t *testing.T) {
	pts := Line(-7, 3, 11, -5)
	if pts[0] != (Point{-7, 3}) || pts[len(pts)-1] != (Point{11, -5}) {
		t.Fatalf("endpoints = %v, %v", pts[0], pts[len(pts)-1])
	}
	for i := 1; i < len(pts); i++ {
		if abs(pts[i].X-pts[i-1].X) > 1 || abs(pts[i].Y-pts[i-1].Y) > 1 {
			t.Fatalf("gap between %v and %v", pts[i-1], pts[i])
		}
	}
}

type recorder map[Point]world.Kind

func (r recorder) SetTile(tx, ty int, k world.Kind) bool {
	if tx < 0 || ty < 0 {
		return false
	}
	r[Point{tx, ty}] = k
	return true
}

func TestBrushStroke(t *testing.T) {
	rec := recorder{}
	b := Brush{Kind: world.Sand, Size: 3}
	n := b.Stroke(rec, Point{1, 1}, Point{3, 1})
	// 3x3 stamps at x=1,2,3 cover x 0..4, y 0..2.
	if len(rec) != 15 {
		t.Fatalf("painted %d distinct tiles, want 15", len(rec))
	}
	if n != 27 {
		t.Fatalf("Stroke reported %d writes, want 27", n)
	}
	if rec[Point{4, 2}] != world.Sand {
		t.Fatal("corner tile not painted")
	}
}

func TestBrushIgnoresRejectedWrites(t *testing.T) {
	rec := recorder{}
	n := Brush{Kind: world.Stone, Size: 1}.Stamp(rec, Point{0, 0})
	if n != 1 || len(rec) != 1 {
		t.Fatalf("size-1 brush wrote %d (%d stored)", n, len(rec))
	}
	n = Brush{Kind: world.Stone, Size: 2}.Stamp(rec, Point{0, 0})
	if n != 4 {
		t.Fatalf("writes at negative coordinates should be rejected, got %d accepted", n)
	}
}

func TestBrushWritesThroughChunkList(t *testing.T) {
	l := world.NewChunkList(world.Options{ChunkWidth: 4, ChunkHeight: 4})
	l.Populate(1, 1, 0)
	n := Brush{Kind: world.Sand, Size: 1}.Stroke(l, Point{0, 0}, Point{6, 0})
	if n != 4 {
		t.Fatalf("accepted %d writes, want 4 inside the single chunk", n)
	}
	if k, _ := l.TileAt(3, 0); k != world.Sand {
		t.Fatalf("TileAt(3,0) = %v", k)
	}
}
