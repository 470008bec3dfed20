// Package life is a flat, fixed-size Game of Life. The chunked engine is
// checked against it.
package life

import "chunk-ca/pkg/core"

// Life implements Conway's Game of Life on a bounded grid; cells outside the
// grid are dead.
type Life struct {
	w, h int
	cur  []uint8
	nxt  []uint8
}

// New returns an empty grid with the provided dimensions.
func New(w, h int) *Life {
	cells := make([]uint8, w*h)
	return &Life{w: w, h: h, cur: cells, nxt: make([]uint8, len(cells))}
}

// Size returns the grid dimensions.
func (l *Life) Size() (int, int) { return l.w, l.h }

// Cells exposes the current grid values, 1 for alive.
func (l *Life) Cells() []uint8 { return l.cur }

// Set marks (x, y) alive or dead. Out-of-range writes are dropped.
func (l *Life) Set(x, y int, alive bool) {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return
	}
	v := uint8(0)
	if alive {
		v = 1
	}
	l.cur[y*l.w+x] = v
}

// Alive reports whether (x, y) is alive.
func (l *Life) Alive(x, y int) bool {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return false
	}
	return l.cur[y*l.w+x] == 1
}

// Reset seeds the board with the given density.
func (l *Life) Reset(seed int64, density float64) {
	rng := core.NewRNG(seed)
	for i := range l.cur {
		l.cur[i] = 0
		if rng.Chance(density) {
			l.cur[i] = 1
		}
	}
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	w, h := l.w, l.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && l.Alive(x+dx, y+dy) {
						neighbors++
					}
				}
			}
			idx := y*w + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}
