package main

import (
	"errors"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/war"
)

// WarCmd plays one game of War between two computer hands
type WarCmd struct {
	Seed      *int64 `kong:"help='Deterministic RNG seed (optional)'"`
	AceLow    bool   `kong:"help='Aces tie with kings instead of beating them'"`
	MaxRounds int    `kong:"help='Stop after this many rounds (default from config)'"`
}

func (c *WarCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	rng, seed := resolveSeed(c.Seed, 0)
	e.logger.Info("Using seed", "seed", seed)

	ranking := e.cfg.Ranking()
	if c.AceLow {
		ranking = deck.AceTiesKing
	}
	maxRounds := e.cfg.War.MaxRounds
	if c.MaxRounds > 0 {
		maxRounds = c.MaxRounds
	}

	game, err := war.New(rng,
		war.WithRanking(ranking),
		war.WithMaxRounds(maxRounds),
		war.WithLogger(e.logger))
	if err != nil {
		return err
	}

	res, err := game.Play()
	switch {
	case errors.Is(err, war.ErrRoundLimit):
		e.display.ShowWarStalled(res)
		return nil
	case err != nil:
		return err
	}

	e.display.ShowWarResult(res)
	return nil
}
