package display

import (
	"fmt"
	"strings"

	"github.com/lox/cardgames/internal/deck"
	"github.com/lox/cardgames/internal/gofish"
)

// Board renders the Go Fish table. Human hands and paired piles are shown in
// full; computer players only as counts.
func (d *Display) Board(g *gofish.Game) string {
	var b strings.Builder
	b.WriteString(d.Header(fmt.Sprintf("River: %s", plural(g.River.Len(), "card", "cards"))))
	b.WriteString("\n")

	for _, p := range g.Players {
		switch p.Kind {
		case gofish.Human:
			b.WriteString(d.styles.Human.Render(fmt.Sprintf("%s (you)", p.Name)))
			fmt.Fprintf(&b, "\n  hand:   %s\n  paired: %s\n", d.Cards(p.Hand.Cards()), d.Cards(p.Paired.Cards()))
		default:
			b.WriteString(d.styles.Computer.Render(fmt.Sprintf("%s: %s, %s",
				p.Name,
				plural(p.Hand.Len(), "card", "cards"),
				plural(p.Pairs(), "pair", "pairs"))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// TurnStarted shows the board before each turn
func (d *Display) TurnStarted(g *gofish.Game, idx gofish.PlayerIndex) {
	d.println("")
	d.printf("%s", d.Board(g))
	asker := g.Players[idx.Current]
	if asker.Kind == gofish.Computer {
		d.println(d.styles.Separator.Render(fmt.Sprintf("%s is thinking...", asker.Name)))
	}
}

// TurnEnded reports the outcome of a turn. Cards drawn by computers stay hidden.
func (d *Display) TurnEnded(g *gofish.Game, res gofish.TurnResult) {
	d.println(d.styles.Action.Render(fmt.Sprintf("%s asks %s for %ss", res.Asker, res.Target, res.Rank)))

	asker := findPlayer(g, res.Asker)
	switch {
	case res.Matched:
		d.printf("Here you go! %s\n", d.Cards([]deck.Card{res.Card}))
	case res.Drew && asker != nil && asker.Kind == gofish.Human:
		d.printf("Caught one! %s\n", d.Cards([]deck.Card{res.Card}))
	case res.Drew:
		d.println("Caught one!")
	default:
		d.println("Go fish! The river is empty.")
	}

	if res.Pairs > 0 {
		d.println(d.styles.SubHeader.Render(fmt.Sprintf("%s sets aside %s", res.Asker, plural(res.Pairs, "pair", "pairs"))))
	}
}

// GameEnded shows the final board and standings
func (d *Display) GameEnded(g *gofish.Game, winner *gofish.Player) {
	d.println("")
	d.printf("%s", d.Board(g))
	d.println(d.Standings(g))
	d.println(d.styles.Winner.Render(fmt.Sprintf("Winner: %s with %s!", winner.Name, plural(winner.Pairs(), "pair", "pairs"))))
}

// Standings renders players ordered by pairs collected
func (d *Display) Standings(g *gofish.Game) string {
	var b strings.Builder
	b.WriteString(d.styles.SubHeader.Render("Standings"))
	for i, p := range g.Standings() {
		fmt.Fprintf(&b, "\n  %d. %-12s %s", i+1, p.Name, plural(p.Pairs(), "pair", "pairs"))
	}
	return b.String()
}

func findPlayer(g *gofish.Game, name string) *gofish.Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}
