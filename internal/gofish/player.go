package gofish

import (
	"fmt"
	"strings"

	"github.com/lox/cardgames/internal/deck"
)

// Kind distinguishes players prompted at the console from automated ones
type Kind int

const (
	Human Kind = iota
	Computer
)

// String returns the string representation of a player kind
func (k Kind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	default:
		return "unknown"
	}
}

// ParseKind parses "human" or "computer" (also "bot" and "ai")
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "computer", "bot", "ai":
		return Computer, nil
	}
	return 0, fmt.Errorf("unknown player kind %q", s)
}

// Player is a Go Fish seat. Paired only ever grows: cards set aside as pairs
// never return to the hand.
type Player struct {
	Name   string
	Kind   Kind
	Hand   *deck.Hand
	Paired *deck.Hand
}

// NewPlayer creates a player with empty hand and paired pile
func NewPlayer(name string, kind Kind) *Player {
	return &Player{
		Name:   name,
		Kind:   kind,
		Hand:   deck.NewHand(),
		Paired: deck.NewHand(),
	}
}

// Give removes a card from the player's hand
func (p *Player) Give(index int) (deck.Card, error) {
	return p.Hand.Give(index)
}

// Take adds a card to the player's hand
func (p *Player) Take(card deck.Card) {
	p.Hand.Take(card)
}

// HasRank reports whether the hand holds any card of rank
func (p *Player) HasRank(rank deck.Rank) bool {
	return p.Hand.Index(func(c deck.Card) bool { return c.Rank == rank }) >= 0
}

// Ranks returns the distinct ranks in the hand, Ace first
func (p *Player) Ranks() []deck.Rank {
	var ranks []deck.Rank
	for _, r := range deck.Ranks {
		if p.HasRank(r) {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// Pairs returns the number of pairs set aside
func (p *Player) Pairs() int {
	return p.Paired.Len() / 2
}

// Match is a card found by a rank query and where it sat in the hand
type Match struct {
	Position int
	Card     deck.Card
}

// MatchIndex lists matches in hand order. Positions are only valid until the
// hand is next modified.
type MatchIndex []Match

// First returns the lowest-positioned match
func (m MatchIndex) First() (Match, bool) {
	if len(m) == 0 {
		return Match{}, false
	}
	return m[0], true
}

// Matches finds every card of rank in the hand
func (p *Player) Matches(rank deck.Rank) MatchIndex {
	var m MatchIndex
	for i, c := range p.Hand.All() {
		if c.Rank == rank {
			m = append(m, Match{Position: i, Card: c})
		}
	}
	return m
}

// DiscardPairs moves every complete pair from the hand to the paired pile.
// For a rank held count times, count - count%2 cards move, one at a time,
// re-locating the first remaining card of the rank before each move. It
// returns the number of pairs moved.
func (p *Player) DiscardPairs() (int, error) {
	counts := make(map[deck.Rank]int)
	for _, c := range p.Hand.All() {
		counts[c.Rank]++
	}

	pairs := 0
	for _, rank := range deck.Ranks {
		n := counts[rank] - counts[rank]%2
		for i := 0; i < n; i++ {
			pos := p.Hand.Index(func(c deck.Card) bool { return c.Rank == rank })
			if pos < 0 {
				return pairs, fmt.Errorf("%s: lost track of %s while pairing", p.Name, rank)
			}
			if _, err := deck.Deal(p.Hand, pos, p.Paired); err != nil {
				return pairs, fmt.Errorf("%s: discarding %s: %w", p.Name, rank, err)
			}
		}
		pairs += n / 2
	}
	return pairs, nil
}

// PlayerIndex tracks whose turn it is and who they ask. Current and Next are
// always adjacent modulo Count.
type PlayerIndex struct {
	Current int
	Next    int
	Count   int
}

// NewPlayerIndex starts with the first player asking the second
func NewPlayerIndex(count int) PlayerIndex {
	return PlayerIndex{Current: 0, Next: 1 % count, Count: count}
}

// Advance moves the turn to the next player
func (pi *PlayerIndex) Advance() {
	pi.Current = pi.Next
	pi.Next = (pi.Next + 1) % pi.Count
}
