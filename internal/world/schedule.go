package world

import (
	"time"

	prng "chunk-ca/pkg/core"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// colorClasses is the number of scheduling classes; chunks of one class are at
// least three chunks apart on some axis and never share a neighbor tile.
const colorClasses = 9

type chunkResult struct {
	chunk   *Chunk
	actions []Action
}

type crossSwap struct {
	origin *Chunk
	action Action
}

// Update advances the world by one tick.
//
// Dirty chunks are grouped by color. For each color in order the chunks are
// computed in parallel against a read-only view, then their Actions are
// committed serially; cross-chunk swaps of the class are resolved one at a time
// after its local commits. Update always runs to completion.
func (l *ChunkList) Update() TickStats {
	start := time.Now()
	l.tick++
	stats := TickStats{Tick: l.tick}

	l.applyIncoming()

	var dirty []ChunkCoord
	for coord, c := range l.alive {
		if c.Dirty() {
			dirty = append(dirty, coord)
		}
	}
	sortCoords(dirty)
	stats.Dirty = len(dirty)
	stats.Created = l.ExtendChunks(dirty)

	var classes [colorClasses][]ChunkCoord
	for _, coord := range dirty {
		color := coord.Color()
		classes[color] = append(classes[color], coord)
	}

	for color := 0; color < colorClasses; color++ {
		if len(classes[color]) == 0 {
			continue
		}
		results := l.computeClass(classes[color])
		l.commitClass(results, &stats)
	}

	for _, c := range l.landed {
		c.landed = nil
	}
	l.landed = l.landed[:0]

	stats.Alive = len(l.alive)
	stats.Dead = len(l.dead)
	stats.Duration = time.Since(start)
	l.last = stats

	l.log.Debug("tick",
		zap.Uint64("tick", stats.Tick),
		zap.Int("dirty", stats.Dirty),
		zap.Int("created", stats.Created),
		zap.Int("actions", stats.Actions),
		zap.Int("cross_swaps", stats.CrossSwaps),
		zap.Duration("took", stats.Duration),
	)
	return stats
}

func (l *ChunkList) applyIncoming() {
	for _, c := range l.alive {
		if len(c.incoming) == 0 {
			continue
		}
		for _, idx := range c.ApplyIncoming() {
			l.touchEdge(c, idx)
		}
	}
}

// computeClass runs Compute for every chunk of one color on the worker pool.
// Chunks of one color never neighbor each other and nothing is written until
// all of them finish, so the shared reads are race free.
func (l *ChunkList) computeClass(coords []ChunkCoord) []chunkResult {
	results := make([]chunkResult, len(coords))
	var g errgroup.Group
	g.SetLimit(l.workers)
	for i, coord := range coords {
		c := l.alive[coord]
		nb := l.neighbors(coord)
		rng := prng.ChunkRNG(l.seed, l.tick, coord.X, coord.Y)
		results[i].chunk = c
		g.Go(func() error {
			results[i].actions = c.Compute(nb, rng)
			return nil
		})
	}
	// Compute cannot fail; the group only bounds concurrency.
	g.Wait()
	return results
}

func (l *ChunkList) commitClass(results []chunkResult, stats *TickStats) {
	var deferred []crossSwap
	for _, res := range results {
		c := res.chunk
		if len(res.actions) == 0 {
			// Tiles that landed this tick have not been evaluated yet.
			if c.landed == nil {
				c.MarkClean()
			}
			continue
		}
		c.MarkDirty()
		stats.Actions += len(res.actions)
		for _, a := range res.actions {
			switch a.Op {
			case OpReplace:
				c.tiles[a.A] = a.Tile
				l.touchEdge(c, a.A)
			case OpDestroy:
				c.tiles[a.A] = Empty
				l.touchEdge(c, a.A)
			case OpSwap:
				c.tiles[a.A], c.tiles[a.B] = c.tiles[a.B], c.tiles[a.A]
				l.touchEdge(c, a.A)
				l.touchEdge(c, a.B)
			case OpSwapCrossChunk:
				deferred = append(deferred, crossSwap{origin: c, action: a})
			}
		}
	}
	for _, cs := range deferred {
		l.resolveCross(cs, stats)
	}
}

// resolveCross applies one cross-chunk swap in three steps: read the
// neighbor's current tile, write the moving tile over it, then write the
// displaced tile back into the origin.
func (l *ChunkList) resolveCross(cs crossSwap, stats *TickStats) {
	a := cs.action
	n, ok := l.alive[a.Neighbor]
	if !ok {
		stats.Dropped++
		l.log.Warn("dropping cross-chunk swap",
			zap.Stringer("origin", cs.origin.Coord),
			zap.Stringer("neighbor", a.Neighbor),
		)
		return
	}
	displaced := n.tiles[a.B]
	n.tiles[a.B] = a.Tile
	n.land(a.B)
	l.landed = append(l.landed, n)
	n.MarkDirty()
	l.touchEdge(n, a.B)

	cs.origin.tiles[a.A] = displaced
	cs.origin.MarkDirty()
	l.touchEdge(cs.origin, a.A)
	stats.CrossSwaps++
}
