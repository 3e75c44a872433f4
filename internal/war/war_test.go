package war

import (
	"errors"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// noTieHands splits the deck so the first hand beats the second at every
// position: the second gets the 26 lowest cards, the first the 26 highest.
func noTieHands() (*deck.Hand, *deck.Hand) {
	cards := deck.New().Cards()
	slices.SortStableFunc(cards, func(a, b deck.Card) int {
		return deck.AceHigh(a.Rank) - deck.AceHigh(b.Rank)
	})
	return deck.NewHand(cards[HandSize:]...), deck.NewHand(cards[:HandSize]...)
}

func TestNewDealsTwoHalves(t *testing.T) {
	g, err := New(randutil.New(42))
	require.NoError(t, err)

	assert.Equal(t, HandSize, g.Hands[0].Len())
	assert.Equal(t, HandSize, g.Hands[1].Len())
	assert.NotEmpty(t, g.ID)
	require.NoError(t, g.CheckIntegrity())
	assert.False(t, g.Over())
}

func TestNoTieGameTakesExactly26Rounds(t *testing.T) {
	first, second := noTieHands()
	g := NewWithHands(first, second, WithLogger(quietLogger()))

	res, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, 26, res.Rounds)
	assert.Equal(t, 0, res.Wars)
	assert.Equal(t, 0, res.Winner)
	assert.Equal(t, deck.Size, res.WinnerCards)
	assert.True(t, g.Hands[1].IsEmpty())
	assert.True(t, g.Hands[0].Unique())
}

func TestWinnerTakesOwnCardFirst(t *testing.T) {
	g := NewWithHands(
		deck.NewHand(deck.MustParseCards("2S 9C")...),
		deck.NewHand(deck.MustParseCards("KH 3C")...),
	)

	require.NoError(t, g.Round())
	assert.Equal(t, deck.MustParseCards("9C"), g.Hands[0].Cards())
	assert.Equal(t, deck.MustParseCards("3C KH 2S"), g.Hands[1].Cards())
	assert.Equal(t, 1, g.Rounds)
}

func TestSingleWarLayer(t *testing.T) {
	g := NewWithHands(
		deck.NewHand(deck.MustParseCards("7S 2S 3S 4S KS")...),
		deck.NewHand(deck.MustParseCards("7H 2H 3H 4H 5H")...),
	)

	require.NoError(t, g.Round())

	assert.Equal(t, 1, g.Rounds)
	assert.Equal(t, 1, g.Wars)
	assert.Equal(t, 1, g.WarLayers)
	assert.True(t, g.Over())
	assert.Equal(t, deck.MustParseCards("7S 7H 2S 3S 4S KS 2H 3H 4H 5H"), g.Hands[0].Cards())
}

func TestRepeatedWarCarriesPileForward(t *testing.T) {
	g := NewWithHands(
		deck.NewHand(deck.MustParseCards("7S 2S 3S 4S 9S 2C 3C 4C QC 10S")...),
		deck.NewHand(deck.MustParseCards("7H 2H 3H 4H 9H 5C 6C 8C KC")...),
	)

	require.NoError(t, g.Round())

	assert.Equal(t, 1, g.Rounds, "a multi-layer war is still one round")
	assert.Equal(t, 1, g.Wars)
	assert.Equal(t, 2, g.WarLayers)
	assert.Equal(t, deck.MustParseCards("10S"), g.Hands[0].Cards())
	assert.Equal(t, 18, g.Hands[1].Len())
	require.NoError(t, g.CheckIntegrity())
}

func TestWarConcessionWhenHandIsShort(t *testing.T) {
	g := NewWithHands(
		deck.NewHand(deck.MustParseCards("7S 2S")...),
		deck.NewHand(deck.MustParseCards("7H 2H 3H 4H 5H")...),
	)

	require.NoError(t, g.Round())

	assert.Equal(t, 1, g.Wars)
	assert.Equal(t, 0, g.WarLayers)
	assert.Equal(t, deck.MustParseCards("2S"), g.Hands[0].Cards())
	assert.Equal(t, deck.MustParseCards("2H 3H 4H 5H 7S 7H"), g.Hands[1].Cards())
}

func TestConcessionGoesToFirstHandWhenSecondIsShort(t *testing.T) {
	g := NewWithHands(
		deck.NewHand(deck.MustParseCards("7H 2H 3H 4H 5H")...),
		deck.NewHand(deck.MustParseCards("7S")...),
	)

	require.NoError(t, g.Round())
	assert.True(t, g.Over())
	assert.Equal(t, deck.MustParseCards("2H 3H 4H 5H 7H 7S"), g.Hands[0].Cards())
}

func TestRankingChangesAceOutcome(t *testing.T) {
	high := NewWithHands(
		deck.NewHand(deck.MustParseCards("AS")...),
		deck.NewHand(deck.MustParseCards("KS")...),
	)
	require.NoError(t, high.Round())
	assert.Equal(t, 0, high.Wars)
	assert.Equal(t, 0, high.Result().Winner)

	tied := NewWithHands(
		deck.NewHand(deck.MustParseCards("AS")...),
		deck.NewHand(deck.MustParseCards("KS")...),
		WithRanking(deck.AceTiesKing),
	)
	require.NoError(t, tied.Round())
	assert.Equal(t, 1, tied.Wars)
	// neither side can stake, the first hand is checked first and concedes
	assert.Equal(t, 1, tied.Result().Winner)
	assert.Equal(t, deck.MustParseCards("AS KS"), tied.Hands[1].Cards())
}

func TestRoundAfterGameOver(t *testing.T) {
	g := NewWithHands(deck.NewHand(), deck.NewHand(deck.MustParseCards("AS")...))
	assert.ErrorIs(t, g.Round(), ErrGameOver)
}

func TestRoundLimit(t *testing.T) {
	first, second := noTieHands()
	g := NewWithHands(first, second, WithMaxRounds(5))

	res, err := g.Play()
	assert.ErrorIs(t, err, ErrRoundLimit)
	assert.Equal(t, 5, res.Rounds)
	assert.Equal(t, 0, res.Winner)
}

func TestSeededGamesConserveCards(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g, err := New(randutil.New(seed), WithMaxRounds(20000), WithLogger(quietLogger()))
		require.NoError(t, err)

		for !g.Over() && g.Rounds < 20000 {
			require.NoError(t, g.Round())
			require.NoError(t, g.CheckIntegrity(), "seed %d round %d", seed, g.Rounds)
			require.True(t, g.Hands[0].Unique())
			require.True(t, g.Hands[1].Unique())
		}

		if !g.Over() {
			// cyclic deal, still conserved
			continue
		}
		res := g.Result()
		assert.Equal(t, deck.Size, res.WinnerCards, "seed %d", seed)
		assert.True(t, g.Hands[1-res.Winner].IsEmpty(), "seed %d", seed)
	}
}

func TestPlayIsDeterministicForSeed(t *testing.T) {
	play := func() (Result, error) {
		g, err := New(randutil.New(99), WithMaxRounds(50000))
		require.NoError(t, err)
		return g.Play()
	}

	a, errA := play()
	b, errB := play()
	assert.Equal(t, a, b)
	assert.Equal(t, errors.Is(errA, ErrRoundLimit), errors.Is(errB, ErrRoundLimit))
}
