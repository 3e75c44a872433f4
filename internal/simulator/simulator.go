package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/randutil"
	"github.com/lox/cardgames/internal/statistics"
	"github.com/lox/cardgames/internal/war"
)

// DefaultMaxRounds stops games that cycle without a winner
const DefaultMaxRounds = 100_000

// Config holds configuration for running simulations
type Config struct {
	Games     int
	Seed      int64
	Workers   int          // defaults to runtime.NumCPU()
	MaxRounds int          // per game, defaults to DefaultMaxRounds
	Ranking   deck.Ranking // defaults to deck.AceHigh
	Logger    *log.Logger
	Clock     quartz.Clock // defaults to the real clock

	// Progress, if set, is called every ProgressInterval with the number of
	// finished games.
	Progress         func(done, total int)
	ProgressInterval time.Duration
}

// Report is the outcome of a simulation run
type Report struct {
	Stats   *statistics.Statistics
	Seed    int64
	Workers int
	Started time.Time
	Elapsed time.Duration
}

// GamesPerSecond returns the simulation throughput
func (r *Report) GamesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Stats.Games) / r.Elapsed.Seconds()
}

// Summary is the JSON form of a report
type Summary struct {
	Games           int        `json:"games"`
	Completed       int        `json:"completed"`
	Stalled         int        `json:"stalled"`
	Seed            int64      `json:"seed"`
	Workers         int        `json:"workers"`
	Wins            [2]int     `json:"wins"`
	WinRate         [2]float64 `json:"win_rate"`
	MinRounds       int        `json:"min_rounds"`
	MedianRounds    float64    `json:"median_rounds"`
	MeanRounds      float64    `json:"mean_rounds"`
	MaxRounds       int        `json:"max_rounds"`
	P90Rounds       float64    `json:"p90_rounds"`
	StdDevRounds    float64    `json:"std_dev_rounds"`
	WarsPerGame     float64    `json:"wars_per_game"`
	LayersPerGame   float64    `json:"layers_per_game"`
	LongestWar      int        `json:"longest_war"`
	DurationSeconds float64    `json:"duration_seconds"`
	GamesPerSecond  float64    `json:"games_per_second"`
}

// Summary flattens the report for serialization
func (r *Report) Summary() Summary {
	s := r.Stats
	return Summary{
		Games:           s.Games,
		Completed:       s.Completed(),
		Stalled:         s.Stalled,
		Seed:            r.Seed,
		Workers:         r.Workers,
		Wins:            s.Wins,
		WinRate:         [2]float64{s.WinRate(0), s.WinRate(1)},
		MinRounds:       s.Min().Rounds,
		MedianRounds:    s.Median(),
		MeanRounds:      s.Mean(),
		MaxRounds:       s.Max().Rounds,
		P90Rounds:       s.Percentile(0.9),
		StdDevRounds:    s.StdDev(),
		WarsPerGame:     s.WarsPerGame(),
		LayersPerGame:   s.LayersPerGame(),
		LongestWar:      s.LongestWar,
		DurationSeconds: r.Elapsed.Seconds(),
		GamesPerSecond:  r.GamesPerSecond(),
	}
}

// Simulator plays many independent games of War
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.MaxRounds <= 0 {
		config.MaxRounds = DefaultMaxRounds
	}
	if config.Ranking == nil {
		config.Ranking = deck.AceHigh
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays Config.Games games across the worker pool. Game i is seeded with
// randutil.Derive(Seed, i) and results are aggregated in game order, so the
// statistics do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	cfg := s.config
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("invalid games count: %d", cfg.Games)
	}

	started := cfg.Clock.Now()
	cfg.Logger.Info("Starting simulation", "games", cfg.Games, "workers", cfg.Workers, "seed", cfg.Seed)

	results := make([]statistics.GameResult, cfg.Games)
	var done atomic.Int64

	tickCtx, stopTicker := context.WithCancel(ctx)
	defer stopTicker()
	if cfg.Progress != nil && cfg.ProgressInterval > 0 {
		cfg.Clock.TickerFunc(tickCtx, cfg.ProgressInterval, func() error {
			cfg.Progress(int(done.Load()), cfg.Games)
			return nil
		}, "simulator", "progress")
	}

	g, gctx := errgroup.WithContext(ctx)
	next := make(chan int)

	g.Go(func() error {
		defer close(next)
		for i := range cfg.Games {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range cfg.Workers {
		g.Go(func() error {
			for i := range next {
				res, err := s.PlayGame(randutil.Derive(cfg.Seed, i))
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				results[i] = res
				done.Add(1)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		cfg.Logger.Error("Simulation failed", "completed", done.Load(), "error", err)
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, res := range results {
		stats.Add(res)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{
		Stats:   stats,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		Started: started,
		Elapsed: cfg.Clock.Since(started),
	}
	cfg.Logger.Info("Simulation complete",
		"games", stats.Games,
		"stalled", stats.Stalled,
		"elapsed", report.Elapsed)
	return report, nil
}

// PlayGame plays a single game from seed. A game that hits the round limit is
// reported as stalled rather than failing the run.
func (s *Simulator) PlayGame(seed int64) (statistics.GameResult, error) {
	opts := []war.Option{
		war.WithRanking(s.config.Ranking),
		war.WithMaxRounds(s.config.MaxRounds),
	}
	if s.config.Logger.GetLevel() <= log.DebugLevel {
		opts = append(opts, war.WithLogger(s.config.Logger.With("seed", seed)))
	}

	game, err := war.New(randutil.New(seed), opts...)
	if err != nil {
		return statistics.GameResult{}, err
	}

	res, err := game.Play()
	stalled := errors.Is(err, war.ErrRoundLimit)
	if err != nil && !stalled {
		return statistics.GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	if err := game.CheckIntegrity(); err != nil {
		return statistics.GameResult{}, fmt.Errorf("seed %d: %w", seed, err)
	}
	if !stalled && res.WinnerCards != deck.Size {
		return statistics.GameResult{}, fmt.Errorf("seed %d: winner holds %d cards", seed, res.WinnerCards)
	}
	if stalled {
		s.config.Logger.Warn("Game stalled", "seed", seed, "rounds", res.Rounds)
	}

	return statistics.GameResult{
		Seed:        seed,
		Winner:      res.Winner,
		WinnerCards: res.WinnerCards,
		Rounds:      res.Rounds,
		Wars:        res.Wars,
		WarLayers:   res.WarLayers,
		Stalled:     stalled,
	}, nil
}
