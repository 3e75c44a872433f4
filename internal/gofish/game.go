// Package gofish implements Go Fish for human and computer players.
package gofish

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/randutil"
)

const (
	// DefaultHandSize is the number of cards dealt to each player
	DefaultHandSize = 5
	// DefaultMaxTurns bounds games where no player can empty their hand
	DefaultMaxTurns = 10000

	// maxChoiceAttempts bounds how often a player is asked again after an
	// invalid rank or river index
	maxChoiceAttempts = 100
)

var (
	// ErrNotEnoughPlayers is returned when a game is set up with fewer than two players
	ErrNotEnoughPlayers = errors.New("go fish needs at least two players")
	// ErrTurnLimit is returned when Run reaches the configured turn limit
	ErrTurnLimit = errors.New("turn limit reached")
	// ErrNoPlayers is returned when a winner is requested from a game without players
	ErrNoPlayers = errors.New("no players")
)

// Option configures a Game
type Option func(*config)

type config struct {
	handSize int
	maxTurns int
	logger   *log.Logger
}

// WithHandSize sets how many cards each player is dealt
func WithHandSize(n int) Option {
	return func(c *config) {
		c.handSize = n
	}
}

// WithMaxTurns sets the turn limit for Run
func WithMaxTurns(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxTurns = n
		}
	}
}

// WithLogger sets the logger used for turn events
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Game is a game of Go Fish. The river is the shared draw pile.
type Game struct {
	ID      string
	River   *deck.Deck
	Players []*Player
	Turns   int

	config config
}

// TurnResult describes what happened during one turn
type TurnResult struct {
	Asker   string
	Target  string
	Rank    deck.Rank
	Matched bool      // the target handed over a card
	Drew    bool      // the asker drew from the river
	Card    deck.Card // the card received, if any
	Pairs   int       // pairs discarded at the end of the turn
}

// Observer is notified as the game progresses
type Observer interface {
	TurnStarted(g *Game, idx PlayerIndex)
	TurnEnded(g *Game, res TurnResult)
	GameEnded(g *Game, winner *Player)
}

type nopObserver struct{}

func (nopObserver) TurnStarted(*Game, PlayerIndex) {}
func (nopObserver) TurnEnded(*Game, TurnResult)    {}
func (nopObserver) GameEnded(*Game, *Player)       {}

// New shuffles a deck into the river and deals each player in turn, setting
// aside any pairs as soon as that player's deal completes. Any dealing error
// is fatal to the game.
func New(players []*Player, src randutil.Source, opts ...Option) (*Game, error) {
	return NewWithRiver(players, deck.NewShuffled(src), opts...)
}

// NewWithRiver is like New but deals from the given river as is.
func NewWithRiver(players []*Player, river *deck.Deck, opts ...Option) (*Game, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	cfg := config{
		handSize: DefaultHandSize,
		maxTurns: DefaultMaxTurns,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	id := uuid.NewString()
	cfg.logger = cfg.logger.With("game", id)

	g := &Game{
		ID:      id,
		River:   river,
		Players: players,
		config:  cfg,
	}

	for _, p := range g.Players {
		if _, err := deck.DealN(g.River, cfg.handSize, p); err != nil {
			return nil, fmt.Errorf("dealing to %s: %w", p.Name, err)
		}
		pairs, err := p.DiscardPairs()
		if err != nil {
			return nil, err
		}
		g.config.logger.Debug("Dealt", "player", p.Name, "cards", p.Hand.Len(), "pairs", pairs)
	}

	return g, nil
}

// HasEmptyHand reports whether any player has run out of cards
func (g *Game) HasEmptyHand() bool {
	for _, p := range g.Players {
		if p.Hand.IsEmpty() {
			return true
		}
	}
	return false
}

// Request asks the next player for rank. On a match the lowest-positioned
// card of that rank moves to the current player; only one card moves even if
// the next player holds more.
func (g *Game) Request(idx PlayerIndex, rank deck.Rank) (deck.Card, bool, error) {
	current, next := g.Players[idx.Current], g.Players[idx.Next]

	m, ok := next.Matches(rank).First()
	if !ok {
		return deck.Card{}, false, nil
	}
	card, err := deck.Deal(next, m.Position, current)
	if err != nil {
		return deck.Card{}, false, fmt.Errorf("%s handing %s to %s: %w", next.Name, rank, current.Name, err)
	}
	return card, true, nil
}

// Fish moves the river card at riverIndex to the current player
func (g *Game) Fish(idx PlayerIndex, riverIndex int) (deck.Card, error) {
	return deck.Deal(g.River, riverIndex, g.Players[idx.Current])
}

// Turn plays one full turn for the current player: ask, fish on a miss, then
// set aside any pairs the new card completed. If the river is empty a miss
// ends the turn without a draw.
func (g *Game) Turn(idx PlayerIndex, ch *Chooser) (TurnResult, error) {
	current, next := g.Players[idx.Current], g.Players[idx.Next]

	rank, err := ch.ChooseRank(current, next)
	if err != nil {
		return TurnResult{}, fmt.Errorf("%s choosing rank: %w", current.Name, err)
	}
	res := TurnResult{Asker: current.Name, Target: next.Name, Rank: rank}

	card, matched, err := g.Request(idx, rank)
	if err != nil {
		return res, err
	}

	switch {
	case matched:
		res.Matched = true
		res.Card = card
	case !g.River.IsEmpty():
		card, err := g.fish(idx, ch)
		if err != nil {
			return res, err
		}
		res.Drew = true
		res.Card = card
	}

	pairs, err := current.DiscardPairs()
	if err != nil {
		return res, err
	}
	res.Pairs = pairs
	g.Turns++

	g.config.logger.Debug("Turn",
		"turn", g.Turns,
		"asker", res.Asker,
		"target", res.Target,
		"rank", res.Rank,
		"matched", res.Matched,
		"drew", res.Drew,
		"pairs", res.Pairs)
	return res, nil
}

// fish draws for the current player, choosing again after an invalid index
func (g *Game) fish(idx PlayerIndex, ch *Chooser) (deck.Card, error) {
	current := g.Players[idx.Current]

	var lastErr error
	for attempt := 0; attempt < maxChoiceAttempts; attempt++ {
		i, err := ch.ChooseRiverIndex(current, g.River.Len())
		if err != nil {
			return deck.Card{}, fmt.Errorf("%s choosing river card: %w", current.Name, err)
		}
		card, err := g.Fish(idx, i)
		if err == nil {
			return card, nil
		}
		if !errors.Is(err, deck.ErrOutOfBounds) {
			return deck.Card{}, err
		}
		g.config.logger.Warn("Invalid river selection", "player", current.Name, "index", i, "river", g.River.Len())
		lastErr = err
	}
	return deck.Card{}, fmt.Errorf("%s fishing: %w", current.Name, lastErr)
}

// Run plays turns until some player's hand is empty and returns the winner.
// obs may be nil.
func (g *Game) Run(ch *Chooser, obs Observer) (*Player, error) {
	if obs == nil {
		obs = nopObserver{}
	}

	g.config.logger.Info("Starting game", "players", len(g.Players), "river", g.River.Len())

	idx := NewPlayerIndex(len(g.Players))
	for !g.HasEmptyHand() {
		if g.Turns >= g.config.maxTurns {
			return nil, fmt.Errorf("%w: %d turns", ErrTurnLimit, g.Turns)
		}

		obs.TurnStarted(g, idx)
		res, err := g.Turn(idx, ch)
		if err != nil {
			g.config.logger.Error("Turn failed", "turn", g.Turns+1, "error", err)
			return nil, err
		}
		obs.TurnEnded(g, res)
		idx.Advance()
	}

	_, winner, err := g.Winner()
	if err != nil {
		return nil, err
	}
	g.config.logger.Info("Game complete", "winner", winner.Name, "pairs", winner.Pairs(), "turns", g.Turns)
	obs.GameEnded(g, winner)
	return winner, nil
}

// Winner returns the player with the most paired cards. Ties go to the
// earliest player.
func (g *Game) Winner() (int, *Player, error) {
	if len(g.Players) == 0 {
		return -1, nil, ErrNoPlayers
	}
	best := 0
	for i, p := range g.Players {
		if p.Paired.Len() > g.Players[best].Paired.Len() {
			best = i
		}
	}
	return best, g.Players[best], nil
}

// Standings returns the players ordered by paired cards, most first, keeping
// seating order among equals.
func (g *Game) Standings() []*Player {
	out := slices.Clone(g.Players)
	slices.SortStableFunc(out, func(a, b *Player) int {
		return cmp.Compare(b.Paired.Len(), a.Paired.Len())
	})
	return out
}

// TotalCards counts every card in the game: river, hands and paired piles
func (g *Game) TotalCards() int {
	n := g.River.Len()
	for _, p := range g.Players {
		n += p.Hand.Len() + p.Paired.Len()
	}
	return n
}
