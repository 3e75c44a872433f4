package gofish

import (
	"errors"
	"fmt"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/randutil"
)

// ErrNoHumanInput is returned when a human player must choose but no input is attached
var ErrNoHumanInput = errors.New("no input attached for human player")

// HumanInput resolves a human player's choices, usually by prompting at the
// console. Implementations re-prompt on invalid input themselves.
type HumanInput interface {
	AskRank(asker, target string, hand *deck.Hand) (deck.Rank, error)
	AskRiverIndex(asker string, size int) (int, error)
}

// Chooser makes the per-turn decisions for each player, dispatching on Kind.
type Chooser struct {
	src   randutil.Source
	human HumanInput
}

// NewChooser creates a chooser. human may be nil for computer-only games.
func NewChooser(src randutil.Source, human HumanInput) *Chooser {
	return &Chooser{src: src, human: human}
}

// ChooseRank picks the rank p asks target for. It is always a rank p holds;
// a human answer naming any other rank is asked for again.
func (c *Chooser) ChooseRank(p, target *Player) (deck.Rank, error) {
	switch p.Kind {
	case Computer:
		ranks := p.Ranks()
		if len(ranks) == 0 {
			return 0, fmt.Errorf("%s: %w", p.Name, deck.ErrEmptyCollection)
		}
		return ranks[c.src.IntN(len(ranks))], nil

	case Human:
		if c.human == nil {
			return 0, ErrNoHumanInput
		}
		// An input that does not validate ranks itself is asked again
		var rank deck.Rank
		for range maxChoiceAttempts {
			r, err := c.human.AskRank(p.Name, target.Name, p.Hand)
			if err != nil {
				return 0, err
			}
			if p.HasRank(r) {
				return r, nil
			}
			rank = r
		}
		return 0, fmt.Errorf("%w: %s does not hold %s", deck.ErrInvalidInput, p.Name, rank)
	}
	return 0, fmt.Errorf("unknown player kind %d", p.Kind)
}

// ChooseRiverIndex picks which river card p draws
func (c *Chooser) ChooseRiverIndex(p *Player, size int) (int, error) {
	if size <= 0 {
		return 0, deck.ErrEmptyCollection
	}

	switch p.Kind {
	case Computer:
		return c.src.IntN(size), nil
	case Human:
		if c.human == nil {
			return 0, ErrNoHumanInput
		}
		return c.human.AskRiverIndex(p.Name, size)
	}
	return 0, fmt.Errorf("unknown player kind %d", p.Kind)
}
