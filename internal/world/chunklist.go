package world

import (
	"cmp"
	"fmt"
	"runtime"
	"slices"

	prng "chunk-ca/pkg/core"

	"go.uber.org/zap"
)

// Options configures a ChunkList.
type Options struct {
	ChunkWidth  int
	ChunkHeight int
	// Workers bounds the number of chunks computed concurrently. Zero means
	// GOMAXPROCS.
	Workers int
	// Seed drives every random decision made by tile rules.
	Seed   int64
	Logger *zap.Logger
}

// Window is an inclusive, axis-aligned range of chunk coordinates.
type Window struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Contains reports whether c lies inside the window.
func (w Window) Contains(c ChunkCoord) bool {
	return c.X >= w.MinX && c.X <= w.MaxX && c.Y >= w.MinY && c.Y <= w.MaxY
}

// ChunkList owns every chunk, keyed by coordinate. Alive chunks are simulated
// and rendered; dead chunks are kept but paused. A coordinate is never in both
// sets.
//
// ChunkList is not safe for concurrent use. The host loop calls its methods
// between ticks; parallelism is internal to Update.
type ChunkList struct {
	alive map[ChunkCoord]*Chunk
	dead  map[ChunkCoord]*Chunk

	chunkW, chunkH int
	workers        int
	seed           int64
	tick           uint64
	last           TickStats
	landed         []*Chunk

	log *zap.Logger
}

// NewChunkList returns an empty registry.
func NewChunkList(opts Options) *ChunkList {
	if opts.ChunkWidth <= 0 || opts.ChunkHeight <= 0 {
		panic(fmt.Sprintf("world: invalid chunk size %dx%d", opts.ChunkWidth, opts.ChunkHeight))
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ChunkList{
		alive:   make(map[ChunkCoord]*Chunk),
		dead:    make(map[ChunkCoord]*Chunk),
		chunkW:  opts.ChunkWidth,
		chunkH:  opts.ChunkHeight,
		workers: workers,
		seed:    opts.Seed,
		log:     log,
	}
}

// ChunkSize returns the width and height of every chunk in tiles.
func (l *ChunkList) ChunkSize() (int, int) { return l.chunkW, l.chunkH }

// Tick returns the number of completed ticks.
func (l *ChunkList) Tick() uint64 { return l.tick }

// Len returns the number of alive chunks.
func (l *ChunkList) Len() int { return len(l.alive) }

// DeadLen returns the number of dormant chunks.
func (l *ChunkList) DeadLen() int { return len(l.dead) }

// Get returns the alive chunk at coord.
func (l *ChunkList) Get(coord ChunkCoord) (*Chunk, bool) {
	c, ok := l.alive[coord]
	return c, ok
}

// GetDead returns the dormant chunk at coord.
func (l *ChunkList) GetDead(coord ChunkCoord) (*Chunk, bool) {
	c, ok := l.dead[coord]
	return c, ok
}

// Coords returns the alive coordinates sorted by row, then column.
func (l *ChunkList) Coords() []ChunkCoord {
	coords := make([]ChunkCoord, 0, len(l.alive))
	for c := range l.alive {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

// Each calls fn for every alive chunk in Coords order. fn must not retain the
// chunk past the current tick.
func (l *ChunkList) Each(fn func(*Chunk)) {
	for _, coord := range l.Coords() {
		fn(l.alive[coord])
	}
}

// Populate creates the alive grid [0, cols) x [0, rows). When fill > 0 each
// chunk is seeded with GameOfLife tiles at that density. New chunks are dirty.
func (l *ChunkList) Populate(cols, rows int, fill float64) {
	rng := prng.NewRNG(l.seed)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := l.getOrCreate(ChunkCoord{X: x, Y: y})
			if fill > 0 {
				c.FillRandom(rng, fill)
			}
			c.MarkDirty()
		}
	}
}

// ExtendChunks makes sure all 8 neighbors of every coordinate are alive.
// Missing neighbors are created blank and clean; dormant ones are revived.
func (l *ChunkList) ExtendChunks(coords []ChunkCoord) int {
	created := 0
	for _, coord := range coords {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				n := coord.Add(dx, dy)
				if _, ok := l.alive[n]; ok {
					continue
				}
				if c, ok := l.dead[n]; ok {
					delete(l.dead, n)
					l.alive[n] = c
					continue
				}
				l.alive[n] = NewChunk(n, l.chunkW, l.chunkH)
				created++
			}
		}
	}
	return created
}

// CullChunks moves alive chunks outside w into the dead set and returns how
// many were moved.
func (l *ChunkList) CullChunks(w Window) int {
	var out []ChunkCoord
	for coord := range l.alive {
		if !w.Contains(coord) {
			out = append(out, coord)
		}
	}
	for _, coord := range out {
		if _, dup := l.dead[coord]; dup {
			panic(fmt.Sprintf("world: chunk %v is both alive and dead", coord))
		}
		l.dead[coord] = l.alive[coord]
		delete(l.alive, coord)
	}
	if len(out) > 0 {
		l.log.Debug("culled chunks", zap.Int("count", len(out)), zap.Int("alive", len(l.alive)))
	}
	return len(out)
}

// ReviveChunks moves dead chunks inside w back to the alive set and returns
// their coordinates in sorted order.
func (l *ChunkList) ReviveChunks(w Window) []ChunkCoord {
	var revived []ChunkCoord
	for coord := range l.dead {
		if w.Contains(coord) {
			revived = append(revived, coord)
		}
	}
	sortCoords(revived)
	for _, coord := range revived {
		if _, dup := l.alive[coord]; dup {
			panic(fmt.Sprintf("world: chunk %v is both alive and dead", coord))
		}
		l.alive[coord] = l.dead[coord]
		delete(l.dead, coord)
	}
	if len(revived) > 0 {
		l.log.Debug("revived chunks", zap.Int("count", len(revived)), zap.Int("alive", len(l.alive)))
	}
	return revived
}

// WindowFor converts a tile-space viewport rectangle into the chunk window
// that should stay alive, padded by buffer chunks on every side.
func (l *ChunkList) WindowFor(tileX, tileY, tilesW, tilesH, buffer int) Window {
	if tilesW < 1 {
		tilesW = 1
	}
	if tilesH < 1 {
		tilesH = 1
	}
	return Window{
		MinX: floorDiv(tileX, l.chunkW) - buffer,
		MinY: floorDiv(tileY, l.chunkH) - buffer,
		MaxX: floorDiv(tileX+tilesW-1, l.chunkW) + buffer,
		MaxY: floorDiv(tileY+tilesH-1, l.chunkH) + buffer,
	}
}

// Locate maps a world tile coordinate to its chunk and local position.
func (l *ChunkList) Locate(tx, ty int) (ChunkCoord, int, int) {
	coord := ChunkCoord{X: floorDiv(tx, l.chunkW), Y: floorDiv(ty, l.chunkH)}
	return coord, mod(tx, l.chunkW), mod(ty, l.chunkH)
}

// TileAt returns the tile at a world tile coordinate if its chunk is alive.
func (l *ChunkList) TileAt(tx, ty int) (Kind, bool) {
	coord, x, y := l.Locate(tx, ty)
	c, ok := l.alive[coord]
	if !ok {
		return Empty, false
	}
	return c.At(x, y), true
}

// SetTile overwrites one tile directly. It must only be called between ticks.
// Writes outside alive chunks are ignored and report false.
func (l *ChunkList) SetTile(tx, ty int, k Kind) bool {
	coord, x, y := l.Locate(tx, ty)
	c, ok := l.alive[coord]
	if !ok {
		return false
	}
	c.Set(x, y, k)
	l.touchEdge(c, c.Index(x, y))
	return true
}

// QueueTile records a write in the chunk's incoming queue; it lands at the
// start of the next Update. Writes outside alive chunks report false.
func (l *ChunkList) QueueTile(tx, ty int, k Kind) bool {
	coord, x, y := l.Locate(tx, ty)
	c, ok := l.alive[coord]
	if !ok {
		return false
	}
	c.Queue(x, y, k)
	return true
}

func (l *ChunkList) getOrCreate(coord ChunkCoord) *Chunk {
	if c, ok := l.alive[coord]; ok {
		return c
	}
	if c, ok := l.dead[coord]; ok {
		delete(l.dead, coord)
		l.alive[coord] = c
		return c
	}
	c := NewChunk(coord, l.chunkW, l.chunkH)
	l.alive[coord] = c
	return c
}

// neighbors collects the alive chunks around coord.
func (l *ChunkList) neighbors(coord ChunkCoord) Neighbors {
	nb := make(Neighbors, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if c, ok := l.alive[coord.Add(dx, dy)]; ok {
				nb = append(nb, c)
			}
		}
	}
	return nb
}

// touchEdge marks the alive neighbors bordering tile idx of c dirty. Interior
// tiles touch nothing.
func (l *ChunkList) touchEdge(c *Chunk, idx int) {
	x, y := idx%c.w, idx/c.w
	var xs, ys [3]int
	nx, ny := 1, 1
	if x == 0 {
		xs[nx] = -1
		nx++
	}
	if x == c.w-1 {
		xs[nx] = 1
		nx++
	}
	if y == 0 {
		ys[ny] = -1
		ny++
	}
	if y == c.h-1 {
		ys[ny] = 1
		ny++
	}
	if nx == 1 && ny == 1 {
		return
	}
	for _, dy := range ys[:ny] {
		for _, dx := range xs[:nx] {
			if dx == 0 && dy == 0 {
				continue
			}
			if n, ok := l.alive[c.Coord.Add(dx, dy)]; ok {
				n.MarkDirty()
			}
		}
	}
}

func sortCoords(coords []ChunkCoord) {
	slices.SortFunc(coords, func(a, b ChunkCoord) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
}
