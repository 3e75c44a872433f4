package deck

import (
	"iter"
	"slices"
	"strings"

	"github.com/lox/cardgames/internal/randutil"
)

// Size is the number of cards in a standard deck
const Size = 52

// Pile is an ordered sequence of cards. Deck and Hand embed it so they share
// the same query and transfer methods.
type Pile struct {
	cards []Card
}

// Len returns the number of cards in the pile
func (p *Pile) Len() int {
	return len(p.cards)
}

// IsEmpty returns true if the pile has no cards
func (p *Pile) IsEmpty() bool {
	return len(p.cards) == 0
}

// Cards returns a copy of the cards in order
func (p *Pile) Cards() []Card {
	return slices.Clone(p.cards)
}

// All iterates over positions and cards in order
func (p *Pile) All() iter.Seq2[int, Card] {
	return func(yield func(int, Card) bool) {
		for i, c := range p.cards {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Give removes and returns the card at index, shifting later cards down.
func (p *Pile) Give(index int) (Card, error) {
	if len(p.cards) == 0 {
		return Card{}, ErrEmptyCollection
	}
	if index < 0 || index >= len(p.cards) {
		return Card{}, outOfBounds(index, len(p.cards))
	}

	card := p.cards[index]
	p.cards = slices.Delete(p.cards, index, index+1)
	return card, nil
}

// Take appends a card to the end of the pile
func (p *Pile) Take(card Card) {
	p.cards = append(p.cards, card)
}

// Contains reports whether the pile holds the card
func (p *Pile) Contains(card Card) bool {
	return slices.Contains(p.cards, card)
}

// Index returns the position of the first card matching fn, or -1
func (p *Pile) Index(fn func(Card) bool) int {
	return slices.IndexFunc(p.cards, fn)
}

// Unique reports whether no card appears twice. An empty pile is unique.
func (p *Pile) Unique() bool {
	seen := make(map[Card]struct{}, len(p.cards))
	for _, c := range p.cards {
		if _, ok := seen[c]; ok {
			return false
		}
		seen[c] = struct{}{}
	}
	return true
}

// Shuffle permutes the pile uniformly (Fisher-Yates) using src
func (p *Pile) Shuffle(src randutil.Source) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
}

// String renders the pile as "[A♠, 2♠, ...]"
func (p *Pile) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p.cards {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Deck represents the stock of cards not held by any player
type Deck struct {
	Pile
}

// New creates an unshuffled 52-card deck: suit by suit, Ace through King.
func New() *Deck {
	d := &Deck{Pile{cards: make([]Card, 0, Size)}}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewShuffled creates a full deck shuffled with src
func NewShuffled(src randutil.Source) *Deck {
	d := New()
	d.Shuffle(src)
	return d
}

// NewDeckFrom creates a deck holding exactly the given cards, in order.
func NewDeckFrom(cards ...Card) *Deck {
	return &Deck{Pile{cards: slices.Clone(cards)}}
}

// Equal reports whether both decks hold the same cards in the same order
func (d *Deck) Equal(other *Deck) bool {
	return slices.Equal(d.cards, other.cards)
}

// Hand represents a player's current cards
type Hand struct {
	Pile
}

// NewHand creates a hand holding the given cards, in order.
func NewHand(cards ...Card) *Hand {
	return &Hand{Pile{cards: slices.Clone(cards)}}
}

// Equal reports whether both hands hold the same cards in the same order
func (h *Hand) Equal(other *Hand) bool {
	return slices.Equal(h.cards, other.cards)
}
