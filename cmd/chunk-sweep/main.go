// Command chunk-sweep measures tick throughput over a grid of worker counts
// and chunk sizes.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"chunk-ca/internal/scenario"
	"chunk-ca/internal/world"
)

type sweepCase struct {
	workers   int
	chunkSize int
}

func (c sweepCase) String() string {
	return fmt.Sprintf("workers=%d chunk=%dx%d", c.workers, c.chunkSize, c.chunkSize)
}

type sweepResult struct {
	c           sweepCase
	ticks       int
	elapsed     time.Duration
	actions     int
	crossSwaps  int
	peakDirty   int
	finalChunks int
}

func (r sweepResult) ticksPerSecond() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.ticks) / r.elapsed.Seconds()
}

func main() {
	ticks := flag.Int("ticks", 200, "ticks to simulate per case")
	parallel := flag.Int("parallel", 1, "cases run concurrently (more than 1 skews timings)")
	worldTiles := flag.Int("tiles", 256, "world edge length in tiles")
	name := flag.String("scenario", "", "built-in scenario or YAML file painted over the world")
	fill := flag.Float64("fill", 0.3, "game of life density")
	flag.Parse()

	var sc *scenario.Scenario
	if *name != "" {
		var err error
		if sc, err = scenario.Resolve(*name); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
		// The grid is sized per case; only the shapes carry over.
		sc.World = scenario.WorldSpec{}
	}

	var cases []sweepCase
	for _, size := range []int{16, 32, 64} {
		for workers := 1; workers <= runtime.NumCPU(); workers *= 2 {
			cases = append(cases, sweepCase{workers: workers, chunkSize: size})
		}
	}

	fmt.Printf("Sweeping %d cases (%d ticks, %dx%d tiles)\n", len(cases), *ticks, *worldTiles, *worldTiles)

	jobs := make(chan sweepCase)
	results := make(chan sweepResult)
	var wg sync.WaitGroup

	for i := 0; i < max(*parallel, 1); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				results <- runCase(c, *worldTiles, *fill, sc, *ticks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, c := range cases {
			jobs <- c
		}
		close(jobs)
	}()

	start := time.Now()
	var all []sweepResult
	for res := range results {
		all = append(all, res)
		fmt.Printf("%-28s %8.1f ticks/s  actions=%d cross=%d peakDirty=%d chunks=%d\n",
			res.c, res.ticksPerSecond(), res.actions, res.crossSwaps, res.peakDirty, res.finalChunks)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ticksPerSecond() > all[j].ticksPerSecond() })
	fmt.Printf("\nTop 3 (elapsed %s):\n", time.Since(start).Round(time.Millisecond))
	for i := 0; i < len(all) && i < 3; i++ {
		fmt.Printf("%d) %s %.1f ticks/s\n", i+1, all[i].c, all[i].ticksPerSecond())
	}
}

func runCase(c sweepCase, tiles int, fill float64, sc *scenario.Scenario, ticks int) sweepResult {
	l := world.NewChunkList(world.Options{
		ChunkWidth:  c.chunkSize,
		ChunkHeight: c.chunkSize,
		Workers:     c.workers,
		Seed:        1337,
	})
	n := max(tiles/c.chunkSize, 1)
	l.Populate(n, n, fill)
	if sc != nil {
		sc.Apply(l)
	}
	window := l.WindowFor(0, 0, tiles, tiles, 1)

	res := sweepResult{c: c, ticks: ticks}
	start := time.Now()
	for i := 0; i < ticks; i++ {
		l.CullChunks(window)
		st := l.Update()
		res.actions += st.Actions
		res.crossSwaps += st.CrossSwaps
		res.peakDirty = max(res.peakDirty, st.Dirty)
	}
	res.elapsed = time.Since(start)
	res.finalChunks = l.Len()
	return res
}
