package main

import (
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/fileutil"
	"github.com/lox/cardgames/internal/simulator"
)

// SimulateCmd plays many seeded games of War and prints aggregate statistics
type SimulateCmd struct {
	Games     int           `kong:"help='Number of games (default from config)'"`
	Workers   int           `kong:"help='Parallel workers (default: number of CPUs)'"`
	Seed      *int64        `kong:"help='Base RNG seed; game i uses a seed derived from it'"`
	AceLow    bool          `kong:"help='Aces tie with kings instead of beating them'"`
	Progress  time.Duration `kong:"default='2s',help='Progress log interval (0 disables)'"`
	Histogram int           `kong:"help='Print a round-length histogram with buckets of this many rounds'"`
	StatsFile string        `kong:"help='Write a JSON summary to this file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	games := e.cfg.Simulation.Games
	if c.Games > 0 {
		games = c.Games
	}
	workers := e.cfg.Simulation.Workers
	if c.Workers > 0 {
		workers = c.Workers
	}
	ranking := e.cfg.Ranking()
	if c.AceLow {
		ranking = deck.AceTiesKing
	}

	_, seed := resolveSeed(c.Seed, e.cfg.Simulation.Seed)

	ctx, cancel := setupSignalHandler(e.logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Games:     games,
		Seed:      seed,
		Workers:   workers,
		MaxRounds: e.cfg.War.MaxRounds,
		Ranking:   ranking,
		Logger:    e.logger,
		Clock:     quartz.NewReal(),
		Progress: func(done, total int) {
			e.logger.Info("Progress", "done", done, "total", total)
		},
		ProgressInterval: c.Progress,
	})

	report, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	e.display.ShowSummary(report)
	if c.Histogram > 0 {
		fmt.Fprint(e.out, e.display.RoundHistogram(report.Stats, c.Histogram, 40))
	}

	if c.StatsFile != "" {
		if err := fileutil.WriteJSONAtomic(c.StatsFile, report.Summary(), 0o644); err != nil {
			return err
		}
		e.logger.Info("Stats written to file", "file", c.StatsFile)
	}
	return nil
}
