package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRank(t *testing.T) {
	tests := []struct {
		input    string
		expected Rank
		wantErr  bool
	}{
		{input: "2", expected: Two},
		{input: "9", expected: Nine},
		{input: "10", expected: Ten},
		{input: "0", expected: Ten},
		{input: "1", expected: Ace},
		{input: "a", expected: Ace},
		{input: "A", expected: Ace},
		{input: "j", expected: Jack},
		{input: "Q", expected: Queen},
		{input: " k\n", expected: King},
		{input: "", wantErr: true},
		{input: "11", wantErr: true},
		{input: "X", wantErr: true},
		{input: "KK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRank(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "mixed suits",
			input: "AS 10h 0d QC",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: Ten, Suit: Hearts},
				{Rank: Ten, Suit: Diamonds},
				{Rank: Queen, Suit: Clubs},
			},
		},
		{name: "empty string", input: "", expected: []Card{}},
		{name: "invalid suit", input: "AX", wantErr: true},
		{name: "invalid rank", input: "ZS", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseCards("nope") })
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "KD", NewCard(King, Diamonds).Code())
	assert.True(t, NewCard(Two, Diamonds).IsRed())
	assert.False(t, NewCard(Two, Clubs).IsRed())
}

func TestRankings(t *testing.T) {
	ace := NewCard(Ace, Spades)
	king := NewCard(King, Hearts)
	two := NewCard(Two, Clubs)

	assert.Equal(t, 1, Compare(ace, king, AceHigh))
	assert.Equal(t, 0, Compare(ace, king, AceTiesKing))
	assert.Equal(t, -1, Compare(two, king, AceHigh))
	// suit never breaks a tie
	assert.Equal(t, 0, Compare(NewCard(Seven, Spades), NewCard(Seven, Diamonds), AceHigh))

	for _, r := range Ranks {
		assert.True(t, r.Valid())
	}
	assert.False(t, Rank(0).Valid())
	assert.Equal(t, "?", Rank(14).String())
}
