package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lox/cardgames/internal/simulator"
	"github.com/lox/cardgames/internal/statistics"
	"github.com/lox/cardgames/internal/war"
)

// WarResult renders the outcome of one game of War
func (d *Display) WarResult(res war.Result) string {
	return fmt.Sprintf("Player %d wins with %d wars in %d rounds!", res.Winner, res.Wars, res.Rounds)
}

// ShowWarResult prints the outcome of one game of War
func (d *Display) ShowWarResult(res war.Result) {
	d.println(d.styles.Winner.Render(d.WarResult(res)))
}

// ShowWarStalled prints the standing of a game stopped by the round limit
func (d *Display) ShowWarStalled(res war.Result) {
	d.println(d.styles.Separator.Render(fmt.Sprintf("No winner after %d rounds (%d wars); player %d leads with %d cards.",
		res.Rounds, res.Wars, res.Winner, res.WinnerCards)))
}

func bucketLine(label string, rounds, games int) string {
	return fmt.Sprintf("%s Round Length: %d Rounds (%s)", label, rounds, plural(games, "game", "games"))
}

// medianLine reports the true median. With an even number of games it can fall
// between two lengths, in which case no game count is shown.
func medianLine(s *statistics.Statistics) string {
	med := s.Median()
	if med != math.Trunc(med) {
		return fmt.Sprintf("Med Round Length: %s Rounds", strconv.FormatFloat(med, 'f', -1, 64))
	}
	return bucketLine("Med", int(med), s.RoundCount[int(med)])
}

// Summary renders aggregate statistics for a simulation run
func (d *Display) Summary(rep *simulator.Report) string {
	s := rep.Stats
	var b strings.Builder

	b.WriteString(d.Header("War simulation"))
	fmt.Fprintf(&b, "\nPlayed %d games with an average of %.2f wars per game:\n", s.Games, s.WarsPerGame())

	if s.Completed() > 0 {
		mx, mn, avg := s.Max(), s.Min(), s.AverageBucket()
		b.WriteString(bucketLine("Max", mx.Rounds, mx.Games) + "\n")
		b.WriteString(medianLine(s) + "\n")
		b.WriteString(bucketLine("Avg", avg.Rounds, avg.Games) + "\n")
		b.WriteString(bucketLine("Min", mn.Rounds, mn.Games) + "\n")
		fmt.Fprintf(&b, "P90 Round Length: %.1f Rounds\n", s.Percentile(0.9))
		fmt.Fprintf(&b, "War layers per game: %.2f\n", s.LayersPerGame())
	}

	b.WriteString(d.styles.SubHeader.Render("Win rate"))
	for player := range s.Wins {
		fmt.Fprintf(&b, "\n  Player %d: %5.1f%% (%d)", player, s.WinRate(player)*100, s.Wins[player])
	}
	b.WriteString("\n")

	if s.Stalled > 0 {
		fmt.Fprintf(&b, "Stalled: %s hit the round limit\n", plural(s.Stalled, "game", "games"))
	}
	fmt.Fprintf(&b, "Longest war: %s\n", plural(s.LongestWar, "layer", "layers"))
	b.WriteString(d.styles.Separator.Render(fmt.Sprintf("seed %d, %d workers, %s", rep.Seed, rep.Workers, rep.Elapsed)))
	return b.String()
}

// ShowSummary prints aggregate statistics for a simulation run
func (d *Display) ShowSummary(rep *simulator.Report) {
	d.println(d.Summary(rep))
}

// RoundHistogram renders the distribution of round lengths in buckets of
// width rounds, one bar per bucket.
func (d *Display) RoundHistogram(s *statistics.Statistics, width, barWidth int) string {
	if s.Completed() == 0 || width <= 0 {
		return ""
	}
	lo := s.Min().Rounds / width * width
	hi := s.Max().Rounds / width * width

	counts := make(map[int]int)
	peak := 0
	for _, r := range s.Rounds {
		k := r / width * width
		counts[k]++
		peak = max(peak, counts[k])
	}

	var b strings.Builder
	for k := lo; k <= hi; k += width {
		n := counts[k]
		bar := 0
		if peak > 0 {
			bar = n * barWidth / peak
		}
		fmt.Fprintf(&b, "%6d-%-6d %s %d\n", k, k+width-1, d.styles.Action.Render(strings.Repeat("#", bar)), n)
	}
	return b.String()
}
