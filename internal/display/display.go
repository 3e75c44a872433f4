// Package display renders cards, Go Fish boards and War results for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/cardgames/internal/deck"
)

// Styles contains styling for game display
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Human     lipgloss.Style // for "(you)" rows
	Computer  lipgloss.Style // muted computer rows
	Separator lipgloss.Style
}

// NewStyles creates a new set of display styles bound to r
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		SubHeader: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}).
			Bold(true),
		Human: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Computer: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Separator: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

// Display writes rendered output to a terminal or any writer
type Display struct {
	out      io.Writer
	renderer *lipgloss.Renderer
	styles   *Styles
}

// Option configures a Display
type Option func(*Display)

// WithNoColor disables all colour and text attributes
func WithNoColor() Option {
	return func(d *Display) {
		d.renderer.SetColorProfile(termenv.Ascii)
	}
}

// New creates a display writing to out. The colour profile is detected from
// out unless WithNoColor is given.
func New(out io.Writer, opts ...Option) *Display {
	d := &Display{
		out:      out,
		renderer: lipgloss.NewRenderer(out),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.styles = NewStyles(d.renderer)
	return d
}

// Renderer returns the renderer so other components can share its profile
func (d *Display) Renderer() *lipgloss.Renderer {
	return d.renderer
}

// Card renders a single card in its suit colour
func (d *Display) Card(c deck.Card) string {
	if c.IsRed() {
		return d.styles.CardRed.Render(c.String())
	}
	return d.styles.CardBlack.Render(c.String())
}

// Cards renders a list of cards as "[A♠, 10♥]"
func (d *Display) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = d.Card(c)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Header renders a section header
func (d *Display) Header(title string) string {
	return d.styles.Header.Render(fmt.Sprintf(" %s ", title))
}

func (d *Display) println(s string) {
	fmt.Fprintln(d.out, s)
}

func (d *Display) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
