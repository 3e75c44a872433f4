package deck

import (
	"cmp"
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

// Suits in generation order.
const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in the order a fresh deck is generated.
var Suits = [...]Suit{Spades, Clubs, Hearts, Diamonds}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Code returns the single-letter ASCII form of the suit
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "S"
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The stored value is the generation value,
// so Ace is 1; use a Ranking to compare ranks.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Ranks lists every rank in generation order (Ace first).
var Ranks = [...]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// String returns the display form of a rank
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return fmt.Sprintf("%d", int(r))
	}
	return "?"
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Ranking maps a rank to the weight used when two cards are compared.
type Ranking func(Rank) int

// AceHigh weighs 2..10 at face value, J=11, Q=12, K=13 and A=14.
func AceHigh(r Rank) int {
	if r == Ace {
		return 14
	}
	return int(r)
}

// AceTiesKing weighs the Ace as 13, the same as a King.
func AceTiesKing(r Rank) int {
	if r == Ace {
		return 13
	}
	return int(r)
}

// Card represents a playing card
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the string representation of a card (e.g., "10♠")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns an ASCII representation of a card (e.g., "10S")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Code()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Compare orders two cards by rank weight only; suits never break ties.
func Compare(a, b Card, ranking Ranking) int {
	return cmp.Compare(ranking(a.Rank), ranking(b.Rank))
}

// ParseRank parses a rank token as typed at the console. Tokens are case
// insensitive: "2".."9", "10" or "0" for Ten, "1" or "A" for Ace, and J, Q, K.
func ParseRank(token string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "1", "A":
		return Ace, nil
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "0", "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	return 0, fmt.Errorf("%w: unknown rank %q", ErrInvalidInput, token)
}

// ParseCard parses a card code such as "AS", "10h" or "0d".
func ParseCard(code string) (Card, error) {
	code = strings.TrimSpace(code)
	if len(code) < 2 {
		return Card{}, fmt.Errorf("%w: invalid card %q", ErrInvalidInput, code)
	}

	rank, err := ParseRank(code[:len(code)-1])
	if err != nil {
		return Card{}, err
	}

	var suit Suit
	switch code[len(code)-1] {
	case 's', 'S':
		suit = Spades
	case 'c', 'C':
		suit = Clubs
	case 'h', 'H':
		suit = Hearts
	case 'd', 'D':
		suit = Diamonds
	default:
		return Card{}, fmt.Errorf("%w: invalid suit in %q", ErrInvalidInput, code)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses whitespace separated card codes.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
