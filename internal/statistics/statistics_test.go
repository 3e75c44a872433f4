package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Zero(t, stats.WinRate(0))
	assert.Zero(t, stats.WarsPerGame())
	assert.Equal(t, Bucket{}, stats.Min())
	assert.Equal(t, Bucket{}, stats.Max())

	_, ok := stats.Closest(10)
	assert.False(t, ok)

	assert.Error(t, stats.Validate())
}

func TestStatistics_SingleGame(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Seed: 7, Winner: 1, WinnerCards: 52, Rounds: 300, Wars: 12, WarLayers: 13})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 1, stats.Games)
	assert.Equal(t, 300.0, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 300.0, stats.Median())
	assert.Equal(t, 1.0, stats.WinRate(1))
	assert.Zero(t, stats.WinRate(0))
	assert.Equal(t, 12.0, stats.WarsPerGame())
	assert.Equal(t, 13, stats.LongestWar)
}

func TestStatistics_MultipleGames(t *testing.T) {
	stats := &Statistics{}
	rounds := []int{100, 250, 100, 400, 150}
	for i, r := range rounds {
		stats.Add(GameResult{Winner: i % 2, Rounds: r, Wars: 2, WarLayers: 2})
	}
	require.NoError(t, stats.Validate())

	assert.Equal(t, 200.0, stats.Mean())
	assert.Equal(t, 150.0, stats.Median())
	assert.Equal(t, Bucket{Rounds: 100, Games: 2}, stats.Min())
	assert.Equal(t, Bucket{Rounds: 400, Games: 1}, stats.Max())
	assert.InDelta(t, 0.6, stats.WinRate(0), 1e-9)
	assert.InDelta(t, 0.4, stats.WinRate(1), 1e-9)
	assert.Equal(t, 2.0, stats.WarsPerGame())
	assert.Equal(t, 2.0, stats.LayersPerGame())
	assert.InDelta(t, 340.0, stats.Percentile(0.9), 1e-9)

	// (265000 - 5*200*200) / 4
	assert.InDelta(t, 16250.0, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(16250), stats.StdDev(), 1e-9)
}

func TestStatistics_MedianEven(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []int{40, 10, 30, 20} {
		stats.Add(GameResult{Rounds: r})
	}
	assert.Equal(t, 25.0, stats.Median())
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for r := 1; r <= 5; r++ {
		stats.Add(GameResult{Rounds: r * 10})
	}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{0.25, 20},
		{0.5, 30},
		{0.9, 46},
		{1, 50},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, stats.Percentile(tt.p), 1e-9, "p=%v", tt.p)
	}
}

func TestStatistics_Closest(t *testing.T) {
	stats := &Statistics{}
	for _, r := range []int{100, 103, 103, 110} {
		stats.Add(GameResult{Rounds: r})
	}

	tests := []struct {
		name   string
		rounds int
		want   Bucket
		ok     bool
	}{
		{"exact", 100, Bucket{100, 1}, true},
		{"probes upward", 101, Bucket{103, 2}, true},
		{"below shortest", 5, Bucket{100, 1}, true},
		{"longest", 110, Bucket{110, 1}, true},
		{"past longest", 111, Bucket{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := stats.Closest(tt.rounds)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, b)
		})
	}

	// mean 104 is not a bucket, so the count comes from 110
	assert.Equal(t, Bucket{Rounds: 104, Games: 1}, stats.AverageBucket())
}

func TestStatistics_StalledGames(t *testing.T) {
	stats := &Statistics{}
	stats.Add(GameResult{Winner: 0, Rounds: 200, Wars: 3, WarLayers: 4})
	stats.Add(GameResult{Winner: 1, Rounds: 1000, Wars: 40, WarLayers: 41, Stalled: true})

	require.NoError(t, stats.Validate())
	assert.Equal(t, 2, stats.Games)
	assert.Equal(t, 1, stats.Completed())
	assert.Equal(t, [2]int{1, 0}, stats.Wins)
	assert.Equal(t, 1.0, stats.WinRate(0))
	assert.Equal(t, 200.0, stats.Mean())
	assert.Equal(t, 21.5, stats.WarsPerGame())
	assert.Equal(t, 41, stats.LongestWar)
}

func TestStatistics_Validate(t *testing.T) {
	valid := func() *Statistics {
		s := &Statistics{}
		s.Add(GameResult{Winner: 0, Rounds: 50, Wars: 1, WarLayers: 1})
		s.Add(GameResult{Winner: 1, Rounds: 70})
		return s
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(s *Statistics)
	}{
		{"wins mismatch", func(s *Statistics) { s.Wins[0]++ }},
		{"missing round length", func(s *Statistics) { s.Rounds = s.Rounds[:1] }},
		{"bucket count", func(s *Statistics) { s.RoundCount[50]++ }},
		{"round sum", func(s *Statistics) { s.SumRounds++ }},
		{"stalled overflow", func(s *Statistics) { s.Stalled = 3 }},
		{"longest war", func(s *Statistics) { s.LongestWar = 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			assert.Error(t, s.Validate())
		})
	}
}
