package world

import (
	"time"

	"chunk-ca/internal/core"
)

// TickStats summarizes one Update call.
type TickStats struct {
	Tick       uint64        `json:"tick"`
	Dirty      int           `json:"dirty"`
	Created    int           `json:"created"`
	Actions    int           `json:"actions"`
	CrossSwaps int           `json:"cross_swaps"`
	Dropped    int           `json:"dropped,omitempty"`
	Alive      int           `json:"alive"`
	Dead       int           `json:"dead"`
	Duration   time.Duration `json:"duration_ns"`
}

// LastStats returns the stats of the most recent Update.
func (l *ChunkList) LastStats() TickStats { return l.last }

// Parameters exposes the registry state for display.
func (l *ChunkList) Parameters() core.ParameterSnapshot {
	dirty := 0
	for _, c := range l.alive {
		if c.Dirty() {
			dirty++
		}
	}
	last := l.last
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("chunk_width", "Chunk width", l.chunkW),
				core.IntParam("chunk_height", "Chunk height", l.chunkH),
				core.IntParam("workers", "Workers", l.workers),
				core.Int64Param("seed", "Seed", l.seed),
			},
		},
		{
			Name: "Chunks",
			Params: []core.Parameter{
				core.IntParam("alive", "Alive", len(l.alive)),
				core.IntParam("dead", "Dead", len(l.dead)),
				core.IntParam("dirty", "Dirty", dirty),
			},
		},
		{
			Name: "Last tick",
			Params: []core.Parameter{
				core.Uint64Param("tick", "Tick", l.tick),
				core.IntParam("actions", "Actions", last.Actions),
				core.IntParam("cross_swaps", "Cross swaps", last.CrossSwaps),
				core.IntParam("created", "Created", last.Created),
				core.DurationParam("duration", "Duration", last.Duration),
			},
		},
	}}
}

// Census counts every tile by kind across alive and dormant chunks.
func (l *ChunkList) Census() map[Kind]int {
	counts := make(map[Kind]int, kindCount)
	for _, set := range []map[ChunkCoord]*Chunk{l.alive, l.dead} {
		for _, c := range set {
			for _, k := range c.tiles {
				counts[k]++
			}
		}
	}
	return counts
}
