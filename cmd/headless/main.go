// Command headless runs a scenario without a window and reports tick stats.
package main

import (
	"fmt"
	"os"
	"time"

	"chunk-ca/internal/app"
	"chunk-ca/internal/config"
	"chunk-ca/internal/logging"
	"chunk-ca/internal/trace"
	"chunk-ca/internal/world"

	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.FromArgs("headless", args)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	session, err := app.NewSession(cfg, log)
	if err != nil {
		return err
	}
	session.Paused = false

	if cfg.Trace.Path != "" {
		tw, err := trace.Create(cfg.Trace.Path)
		if err != nil {
			return err
		}
		defer func() {
			if err := tw.Close(); err != nil {
				log.Error("close trace", zap.Error(err))
			}
		}()
		session.SetTracer(tw)
	}

	start := time.Now()
	var total world.TickStats
	report := max(cfg.Sim.Ticks/10, 1)
	for i := 1; i <= cfg.Sim.Ticks; i++ {
		st := session.Step()
		total.Actions += st.Actions
		total.CrossSwaps += st.CrossSwaps
		total.Created += st.Created
		total.Dropped += st.Dropped
		if i%report == 0 {
			log.Info("progress",
				zap.Uint64("tick", st.Tick),
				zap.Int("dirty", st.Dirty),
				zap.Int("alive", st.Alive),
				zap.Int("dead", st.Dead),
				zap.Int("actions", st.Actions),
			)
		}
	}
	elapsed := time.Since(start)

	census := session.World.Census()
	fields := []zap.Field{
		zap.Int("ticks", cfg.Sim.Ticks),
		zap.Duration("elapsed", elapsed.Round(time.Millisecond)),
		zap.Int("actions", total.Actions),
		zap.Int("cross_swaps", total.CrossSwaps),
		zap.Int("created", total.Created),
		zap.Int("dropped", total.Dropped),
	}
	for _, k := range world.Kinds() {
		if k == world.Empty || census[k] == 0 {
			continue
		}
		fields = append(fields, zap.Int(k.String(), census[k]))
	}
	log.Info("done", fields...)
	return nil
}
