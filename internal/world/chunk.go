package world

import (
	"fmt"

	prng "chunk-ca/pkg/core"
)

// ChunkCoord identifies a chunk in the infinite chunk grid, in chunk units.
type ChunkCoord struct {
	X, Y int
}

// Add returns the coordinate offset by (dx, dy).
func (c ChunkCoord) Add(dx, dy int) ChunkCoord { return ChunkCoord{X: c.X + dx, Y: c.Y + dy} }

// Color returns the scheduling class of c in [0, 9). Two coordinates with the
// same color are never 8-neighbors.
func (c ChunkCoord) Color() int { return mod(c.X, 3) + 3*mod(c.Y, 3) }

func (c ChunkCoord) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// IncomingTile is a pending write applied before the chunk's next compute.
type IncomingTile struct {
	X, Y int
	Tile Kind
}

// Chunk is a fixed-size rectangle of tiles stored row-major.
type Chunk struct {
	Coord ChunkCoord

	w, h     int
	tiles    []Kind
	dirty    bool
	incoming []IncomingTile
	// landed holds indices that received a tile from a neighbor earlier in
	// the current tick; those tiles sit out the rest of the tick.
	landed map[int]struct{}
}

// NewChunk returns a blank, clean chunk at coord.
func NewChunk(coord ChunkCoord, w, h int) *Chunk {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("world: invalid chunk size %dx%d", w, h))
	}
	return &Chunk{Coord: coord, w: w, h: h, tiles: make([]Kind, w*h)}
}

// Width returns the chunk width in tiles.
func (c *Chunk) Width() int { return c.w }

// Height returns the chunk height in tiles.
func (c *Chunk) Height() int { return c.h }

// Tiles exposes the row-major tile array. Callers must treat it as read-only
// and must not hold it across a tick.
func (c *Chunk) Tiles() []Kind { return c.tiles }

// Index returns the linear index for local (x, y).
func (c *Chunk) Index(x, y int) int { return y*c.w + x }

// In reports whether local (x, y) lies inside the chunk.
func (c *Chunk) In(x, y int) bool { return x >= 0 && y >= 0 && x < c.w && y < c.h }

// At returns the tile at local (x, y).
func (c *Chunk) At(x, y int) Kind { return c.tiles[c.Index(x, y)] }

// Set writes k at local (x, y) and marks the chunk dirty.
func (c *Chunk) Set(x, y int, k Kind) {
	c.tiles[c.Index(x, y)] = k
	c.dirty = true
}

// Dirty reports whether the chunk must be evaluated next tick.
func (c *Chunk) Dirty() bool { return c.dirty }

// MarkDirty schedules the chunk for the next tick.
func (c *Chunk) MarkDirty() { c.dirty = true }

// MarkClean removes the chunk from the next tick's schedule.
func (c *Chunk) MarkClean() { c.dirty = false }

// FillRandom replaces every tile with GameOfLife with probability p, Empty
// otherwise.
func (c *Chunk) FillRandom(rng *prng.RNG, p float64) {
	for i := range c.tiles {
		if rng.Chance(p) {
			c.tiles[i] = GameOfLife
			continue
		}
		c.tiles[i] = Empty
	}
	c.dirty = true
}

// Queue records a write to apply before the next compute pass.
func (c *Chunk) Queue(x, y int, k Kind) {
	c.incoming = append(c.incoming, IncomingTile{X: x, Y: y, Tile: k})
	c.dirty = true
}

// ApplyIncoming drains the incoming queue into the tile array and returns the
// indices written. Entries outside the chunk are dropped.
func (c *Chunk) ApplyIncoming() []int {
	if len(c.incoming) == 0 {
		return nil
	}
	written := make([]int, 0, len(c.incoming))
	for _, in := range c.incoming {
		if !c.In(in.X, in.Y) {
			continue
		}
		idx := c.Index(in.X, in.Y)
		c.tiles[idx] = in.Tile
		written = append(written, idx)
	}
	c.incoming = c.incoming[:0]
	c.dirty = true
	return written
}

// Compute evaluates every tile in row-major order and returns one Action per
// tile whose rules fired. It reads c and nb only and mutates nothing.
func (c *Chunk) Compute(nb Neighbors, rng *prng.RNG) []Action {
	if len(c.tiles) != c.w*c.h {
		panic(fmt.Sprintf("world: chunk %v holds %d tiles, want %d", c.Coord, len(c.tiles), c.w*c.h))
	}
	if rng == nil {
		rng = prng.ChunkRNG(0, 0, c.Coord.X, c.Coord.Y)
	}
	var actions []Action
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			idx := c.Index(x, y)
			if c.landed != nil {
				if _, ok := c.landed[idx]; ok {
					continue
				}
			}
			for _, rule := range RulesFor(c.tiles[idx]) {
				if a := rule(x, y, c, nb, rng); !a.IsNone() {
					actions = append(actions, a)
					break
				}
			}
		}
	}
	return actions
}

func (c *Chunk) land(idx int) {
	if c.landed == nil {
		c.landed = make(map[int]struct{})
	}
	c.landed[idx] = struct{}{}
}

func mod(a, n int) int {
	return (a%n + n) % n
}

func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
