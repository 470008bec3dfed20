package world

import "fmt"

// Neighbors is the list of loaded chunks surrounding the chunk being computed.
// Absent neighbors are simply missing from the list.
type Neighbors []*Chunk

// Find returns the neighbor at coord, or nil when it is not loaded.
func (nb Neighbors) Find(coord ChunkCoord) *Chunk {
	for _, c := range nb {
		if c != nil && c.Coord == coord {
			return c
		}
	}
	return nil
}

// Target is a resolved tile location, possibly inside a neighbor chunk.
type Target struct {
	Index int
	Cross bool
	Coord ChunkCoord
	Chunk *Chunk
}

// Tile returns the kind currently stored at the target.
func (t Target) Tile() Kind { return t.Chunk.tiles[t.Index] }

// Resolve locates the tile at local (x, y) + (dx, dy). Offsets that leave the
// chunk wrap onto the adjacent chunk's opposite edge. It returns false when the
// required neighbor is not in nb; callers must treat that as "no target".
func Resolve(c *Chunk, nb Neighbors, x, y, dx, dy int) (Target, bool) {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		panic(fmt.Sprintf("world: resolve offset (%d,%d) exceeds one tile", dx, dy))
	}
	nx, ny := x+dx, y+dy
	cx, cy := 0, 0

	switch {
	case nx < 0:
		nx, cx = c.w-1, -1
	case nx >= c.w:
		nx, cx = 0, 1
	}
	switch {
	case ny < 0:
		ny, cy = c.h-1, -1
	case ny >= c.h:
		ny, cy = 0, 1
	}

	if cx == 0 && cy == 0 {
		return Target{Index: c.Index(nx, ny), Coord: c.Coord, Chunk: c}, true
	}

	coord := c.Coord.Add(cx, cy)
	n := nb.Find(coord)
	if n == nil || !n.In(nx, ny) {
		return Target{}, false
	}
	return Target{Index: n.Index(nx, ny), Cross: true, Coord: coord, Chunk: n}, true
}

// Below resolves the tile directly underneath (x, y).
func Below(c *Chunk, nb Neighbors, x, y int) (Target, bool) { return Resolve(c, nb, x, y, 0, 1) }

// BelowLeft resolves the tile down and to the left of (x, y).
func BelowLeft(c *Chunk, nb Neighbors, x, y int) (Target, bool) { return Resolve(c, nb, x, y, -1, 1) }

// BelowRight resolves the tile down and to the right of (x, y).
func BelowRight(c *Chunk, nb Neighbors, x, y int) (Target, bool) { return Resolve(c, nb, x, y, 1, 1) }
