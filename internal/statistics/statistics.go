package statistics

import (
	"fmt"
	"math"
	"slices"
)

// GameResult represents the outcome of a single game of War
type GameResult struct {
	Seed        int64 // RNG seed for this game (for replay)
	Winner      int   // index of the winning hand
	WinnerCards int   // cards held by the winner at the end
	Rounds      int   // rounds played
	Wars        int   // rounds that went to war
	WarLayers   int   // war layers resolved by staking cards
	Stalled     bool  // the game hit the round limit without a winner
}

// Bucket is a round length and how many games finished in exactly that many rounds
type Bucket struct {
	Rounds int
	Games  int
}

// Statistics tracks aggregate results over many games of War. Stalled games
// count towards Games but not towards wins or round lengths.
type Statistics struct {
	Games   int
	Stalled int
	Wins    [2]int

	SumRounds  int
	SumRounds2 float64 // Sum of squares for variance calculation
	SumWars    int
	SumLayers  int
	Rounds     []int       // Round length of every completed game
	RoundCount map[int]int // Games per round length

	LongestWar int // Most war layers seen in a single game
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	s.Games++
	s.SumWars += result.Wars
	s.SumLayers += result.WarLayers
	s.LongestWar = max(s.LongestWar, result.WarLayers)

	if result.Stalled {
		s.Stalled++
		return
	}

	if result.Winner == 0 || result.Winner == 1 {
		s.Wins[result.Winner]++
	}

	if s.RoundCount == nil {
		s.RoundCount = make(map[int]int)
	}
	r := result.Rounds
	s.SumRounds += r
	s.SumRounds2 += float64(r) * float64(r)
	s.Rounds = append(s.Rounds, r)
	s.RoundCount[r]++
}

// Completed returns the number of games that produced a winner
func (s *Statistics) Completed() int {
	return s.Games - s.Stalled
}

// WinRate returns the fraction of completed games won by player (0 or 1)
func (s *Statistics) WinRate(player int) float64 {
	if player < 0 || player > 1 || s.Completed() == 0 {
		return 0
	}
	return float64(s.Wins[player]) / float64(s.Completed())
}

// WarsPerGame returns the average number of rounds per game that went to war
func (s *Statistics) WarsPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumWars) / float64(s.Games)
}

// LayersPerGame returns the average number of war layers staked per game
func (s *Statistics) LayersPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.SumLayers) / float64(s.Games)
}

// Mean returns the mean round length of completed games
func (s *Statistics) Mean() float64 {
	n := s.Completed()
	if n == 0 {
		return 0
	}
	return float64(s.SumRounds) / float64(n)
}

// Variance returns the sample variance of round lengths
func (s *Statistics) Variance() float64 {
	n := s.Completed()
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation of round lengths
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistics) sorted() []int {
	sorted := slices.Clone(s.Rounds)
	slices.Sort(sorted)
	return sorted
}

// Median returns the median round length of completed games
func (s *Statistics) Median() float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return float64(sorted[n/2-1]+sorted[n/2]) / 2
	}
	return float64(sorted[n/2])
}

// Percentile returns the round length at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// Min returns the shortest game and how many games had that length
func (s *Statistics) Min() Bucket {
	if len(s.Rounds) == 0 {
		return Bucket{}
	}
	r := slices.Min(s.Rounds)
	return Bucket{Rounds: r, Games: s.RoundCount[r]}
}

// Max returns the longest game and how many games had that length
func (s *Statistics) Max() Bucket {
	if len(s.Rounds) == 0 {
		return Bucket{}
	}
	r := slices.Max(s.Rounds)
	return Bucket{Rounds: r, Games: s.RoundCount[r]}
}

// Closest returns the first populated bucket at or above rounds. The search
// ends at the longest game; ok is false when no game is that long.
func (s *Statistics) Closest(rounds int) (Bucket, bool) {
	if len(s.Rounds) == 0 {
		return Bucket{}, false
	}
	longest := slices.Max(s.Rounds)
	for r := max(rounds, 0); r <= longest; r++ {
		if n, ok := s.RoundCount[r]; ok {
			return Bucket{Rounds: r, Games: n}, true
		}
	}
	return Bucket{}, false
}

// AverageBucket returns the mean round length rounded to the nearest round,
// with the game count of the closest populated bucket at or above it.
func (s *Statistics) AverageBucket() Bucket {
	avg := int(math.Round(s.Mean()))
	b, ok := s.Closest(avg)
	if !ok {
		return Bucket{Rounds: avg}
	}
	return Bucket{Rounds: avg, Games: b.Games}
}

// Validate performs consistency checks on the tallies
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if s.Stalled < 0 || s.Stalled > s.Games {
		return fmt.Errorf("stalled games (%d) outside 0..%d", s.Stalled, s.Games)
	}

	if wins := s.Wins[0] + s.Wins[1]; wins != s.Completed() {
		return fmt.Errorf("total wins (%d) does not match completed games (%d)", wins, s.Completed())
	}

	if len(s.Rounds) != s.Completed() {
		return fmt.Errorf("round lengths (%d) do not match completed games (%d)",
			len(s.Rounds), s.Completed())
	}

	bucketed, sum := 0, 0
	for r, n := range s.RoundCount {
		bucketed += n
		sum += r * n
	}
	if bucketed != s.Completed() {
		return fmt.Errorf("round buckets hold %d games, want %d", bucketed, s.Completed())
	}
	if sum != s.SumRounds {
		return fmt.Errorf("round bucket total (%d) does not match round sum (%d)", sum, s.SumRounds)
	}

	if s.LongestWar > s.SumLayers {
		return fmt.Errorf("longest war (%d) exceeds total war layers (%d)", s.LongestWar, s.SumLayers)
	}

	return nil
}
