package world

import prng "chunk-ca/pkg/core"

// countAround counts tiles of kind k in the 8-neighborhood of local (x, y).
// Cells inside chunks that are not loaded are not counted.
func countAround(x, y int, c *Chunk, nb Neighbors, k Kind) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			lx, ly := x+dx, y+dy
			src := c
			if !c.In(lx, ly) {
				ox := floorDiv(lx, c.w)
				oy := floorDiv(ly, c.h)
				src = nb.Find(c.Coord.Add(ox, oy))
				if src == nil {
					continue
				}
				lx -= ox * c.w
				ly -= oy * c.h
			}
			if src.tiles[src.Index(lx, ly)] == k {
				count++
			}
		}
	}
	return count
}

// lifeBirth turns an Empty tile with exactly three live neighbors into life.
func lifeBirth(x, y int, c *Chunk, nb Neighbors, _ *prng.RNG) Action {
	if countAround(x, y, c, nb, GameOfLife) == 3 {
		return Replace(c.Index(x, y), GameOfLife)
	}
	return None()
}

// lifeDeath clears a live tile with fewer than two or more than three live
// neighbors.
func lifeDeath(x, y int, c *Chunk, nb Neighbors, _ *prng.RNG) Action {
	n := countAround(x, y, c, nb, GameOfLife)
	if n < 2 || n > 3 {
		return Destroy(c.Index(x, y))
	}
	return None()
}
