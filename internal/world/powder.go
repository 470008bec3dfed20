package world

import prng "chunk-ca/pkg/core"

// fallDown moves the tile one row down into an Empty cell.
func fallDown(x, y int, c *Chunk, nb Neighbors, _ *prng.RNG) Action {
	t, ok := Below(c, nb, x, y)
	return fallInto(x, y, c, t, ok)
}

// fallDiagonal flips a coin for the side and tries only that diagonal. The
// coin is drawn every tick, so a blocked tile may try the other side later.
func fallDiagonal(x, y int, c *Chunk, nb Neighbors, rng *prng.RNG) Action {
	var (
		t  Target
		ok bool
	)
	if rng != nil && rng.Bool() {
		t, ok = BelowRight(c, nb, x, y)
	} else {
		t, ok = BelowLeft(c, nb, x, y)
	}
	return fallInto(x, y, c, t, ok)
}

func fallInto(x, y int, c *Chunk, t Target, ok bool) Action {
	if !ok || t.Tile() != Empty {
		return None()
	}
	idx := c.Index(x, y)
	if t.Cross {
		return SwapCrossChunk(idx, t.Coord, t.Index, c.tiles[idx])
	}
	return Swap(idx, t.Index)
}
