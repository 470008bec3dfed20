package world

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func newTestList(t *testing.T, cw, ch int) *ChunkList {
	t.Helper()
	return NewChunkList(Options{
		ChunkWidth:  cw,
		ChunkHeight: ch,
		Workers:     4,
		Seed:        1,
		Logger:      zaptest.NewLogger(t),
	})
}

func fill(c *Chunk, k Kind) {
	for i := range c.tiles {
		c.tiles[i] = k
	}
}
