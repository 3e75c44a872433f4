package deck

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCollection is returned when giving from a collection with no cards.
	ErrEmptyCollection = errors.New("collection is empty")
	// ErrOutOfBounds is returned when giving from a position past the end.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrInvalidInput is returned when a rank or card token cannot be parsed.
	ErrInvalidInput = errors.New("invalid input")
)

func outOfBounds(index, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrOutOfBounds, index, length)
}

// Giver removes cards by position
type Giver interface {
	Give(index int) (Card, error)
}

// Taker accepts cards at the end of its sequence
type Taker interface {
	Take(card Card)
}

// Deal moves the card at index from one collection to another. If the give
// fails the target is left untouched.
func Deal(from Giver, index int, to Taker) (Card, error) {
	card, err := from.Give(index)
	if err != nil {
		return Card{}, err
	}
	to.Take(card)
	return card, nil
}

// DealN deals n cards from the top (index 0) of from. It stops at the first
// failure and returns how many cards were moved.
func DealN(from Giver, n int, to Taker) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := Deal(from, 0, to); err != nil {
			return i, fmt.Errorf("dealing card %d of %d: %w", i+1, n, err)
		}
	}
	return n, nil
}

// TakeAll appends cards to the target in order
func TakeAll(to Taker, cards []Card) {
	for _, c := range cards {
		to.Take(c)
	}
}
