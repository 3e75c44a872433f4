// Package war plays the card game War between two hands.
//
// Each round both hands turn over their top card and the higher rank takes
// both. Equal ranks start a war: each side stakes four more cards and the last
// card staked by each side decides who takes the whole pile. Repeated ties add
// further layers to the same pile.
package war

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/randutil"
)

const (
	// HandSize is the number of cards each player starts with
	HandSize = deck.Size / 2
	// warStake is the number of cards each side adds to the pile per war layer
	warStake = 4
)

var (
	// ErrRoundLimit is returned when a game reaches the configured round limit
	ErrRoundLimit = errors.New("round limit reached")
	// ErrGameOver is returned when a round is played after a hand has emptied
	ErrGameOver = errors.New("game is over")
)

// Option configures a Game
type Option func(*config)

type config struct {
	ranking   deck.Ranking
	maxRounds int
	logger    *log.Logger
}

// WithRanking sets how ranks are compared. Default is deck.AceHigh.
func WithRanking(r deck.Ranking) Option {
	return func(c *config) {
		c.ranking = r
	}
}

// WithMaxRounds aborts Play after n rounds. Default is math.MaxInt.
func WithMaxRounds(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxRounds = n
		}
	}
}

// WithLogger sets the logger used for round and game events
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Game holds the state of a single game of War
type Game struct {
	ID        string
	Hands     [2]*deck.Hand
	Rounds    int
	Wars      int
	WarLayers int

	total  int
	config config
}

// Result summarises a finished game
type Result struct {
	Winner      int // index of the winning hand
	WinnerCards int // cards held by the winner, 52 for a completed game
	Rounds      int
	Wars        int // rounds that went to war
	WarLayers   int // war layers resolved by staking cards
}

// New shuffles a full deck with src and deals 26 cards to each hand,
// the first hand receiving the top 26.
func New(src randutil.Source, opts ...Option) (*Game, error) {
	d := deck.NewShuffled(src)
	hands := [2]*deck.Hand{deck.NewHand(), deck.NewHand()}
	for _, h := range hands {
		if _, err := deck.DealN(d, HandSize, h); err != nil {
			return nil, fmt.Errorf("initial deal: %w", err)
		}
	}
	return newGame(hands, opts), nil
}

// NewWithHands starts a game from fixed hands. The hands are owned by the game
// from then on.
func NewWithHands(first, second *deck.Hand, opts ...Option) *Game {
	return newGame([2]*deck.Hand{first, second}, opts)
}

func newGame(hands [2]*deck.Hand, opts []Option) *Game {
	cfg := config{
		ranking:   deck.AceHigh,
		maxRounds: math.MaxInt,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.NewString()
	cfg.logger = cfg.logger.With("game", id)

	return &Game{
		ID:     id,
		Hands:  hands,
		total:  hands[0].Len() + hands[1].Len(),
		config: cfg,
	}
}

// Over reports whether either hand has run out of cards
func (g *Game) Over() bool {
	return g.Hands[0].IsEmpty() || g.Hands[1].IsEmpty()
}

// Round plays one battle, including any war it triggers. The round counter
// advances once no matter how many war layers were needed.
func (g *Game) Round() error {
	if g.Over() {
		return ErrGameOver
	}

	c0, err := g.Hands[0].Give(0)
	if err != nil {
		return fmt.Errorf("hand 0 battle card: %w", err)
	}
	c1, err := g.Hands[1].Give(0)
	if err != nil {
		return fmt.Errorf("hand 1 battle card: %w", err)
	}
	g.Rounds++

	switch deck.Compare(c0, c1, g.config.ranking) {
	case 1:
		g.Hands[0].Take(c0)
		g.Hands[0].Take(c1)
	case -1:
		g.Hands[1].Take(c1)
		g.Hands[1].Take(c0)
	default:
		g.Wars++
		g.config.logger.Debug("War", "round", g.Rounds, "cards", []string{c0.String(), c1.String()})
		if err := g.war([]deck.Card{c0, c1}); err != nil {
			return err
		}
	}

	g.config.logger.Debug("Round complete",
		"round", g.Rounds,
		"hand0", g.Hands[0].Len(),
		"hand1", g.Hands[1].Len())
	return nil
}

// war resolves a tie. pile holds every card currently in play.
func (g *Game) war(pile []deck.Card) error {
	for {
		// A side that cannot stake concedes the pile
		if g.Hands[0].Len() < warStake {
			deck.TakeAll(g.Hands[1], pile)
			return nil
		}
		if g.Hands[1].Len() < warStake {
			deck.TakeAll(g.Hands[0], pile)
			return nil
		}

		var last [2]deck.Card
		for side, h := range g.Hands {
			for i := 0; i < warStake; i++ {
				c, err := h.Give(0)
				if err != nil {
					return fmt.Errorf("hand %d war stake: %w", side, err)
				}
				pile = append(pile, c)
				last[side] = c
			}
		}
		g.WarLayers++

		switch deck.Compare(last[0], last[1], g.config.ranking) {
		case 1:
			deck.TakeAll(g.Hands[0], pile)
			return nil
		case -1:
			deck.TakeAll(g.Hands[1], pile)
			return nil
		}
		g.config.logger.Debug("War tied again", "round", g.Rounds, "pile", len(pile))
	}
}

// Play runs rounds until one hand is empty. If the round limit is reached the
// partial result is returned together with ErrRoundLimit.
func (g *Game) Play() (Result, error) {
	g.config.logger.Info("Starting game", "hand0", g.Hands[0].Len(), "hand1", g.Hands[1].Len())

	for !g.Over() {
		if err := g.Round(); err != nil {
			g.config.logger.Error("Round failed", "round", g.Rounds, "error", err)
			return g.Result(), err
		}
		if g.Rounds >= g.config.maxRounds {
			g.config.logger.Error("Endless game", "rounds", g.Rounds,
				"hand0", g.Hands[0].String(), "hand1", g.Hands[1].String())
			return g.Result(), fmt.Errorf("%w: %d rounds", ErrRoundLimit, g.Rounds)
		}
	}

	res := g.Result()
	g.config.logger.Info("Game complete",
		"winner", res.Winner,
		"rounds", res.Rounds,
		"wars", res.Wars)
	return res, nil
}

// Result reports the current standing. The winner is the hand holding more
// cards, the first hand on an exact tie.
func (g *Game) Result() Result {
	winner := 0
	if g.Hands[1].Len() > g.Hands[0].Len() {
		winner = 1
	}
	return Result{
		Winner:      winner,
		WinnerCards: g.Hands[winner].Len(),
		Rounds:      g.Rounds,
		Wars:        g.Wars,
		WarLayers:   g.WarLayers,
	}
}

// CheckIntegrity verifies that no card was created, lost or duplicated.
func (g *Game) CheckIntegrity() error {
	all := deck.NewHand()
	for _, h := range g.Hands {
		deck.TakeAll(all, h.Cards())
	}
	if all.Len() != g.total {
		return fmt.Errorf("card count %d, want %d", all.Len(), g.total)
	}
	if !all.Unique() {
		return fmt.Errorf("duplicate card across hands: %s", all.String())
	}
	return nil
}
