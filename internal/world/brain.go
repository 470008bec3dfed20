package world

import prng "chunk-ca/pkg/core"

// Brian's Brain: firing cells always start dying, dying cells always go dark,
// and a dark cell fires when exactly two neighbors are firing.

func brainFire(x, y int, c *Chunk, _ Neighbors, _ *prng.RNG) Action {
	return Replace(c.Index(x, y), BrainDying)
}

func brainDecay(x, y int, c *Chunk, _ Neighbors, _ *prng.RNG) Action {
	return Destroy(c.Index(x, y))
}

func brainBirth(x, y int, c *Chunk, nb Neighbors, _ *prng.RNG) Action {
	if countAround(x, y, c, nb, BrainOn) == 2 {
		return Replace(c.Index(x, y), BrainOn)
	}
	return None()
}
