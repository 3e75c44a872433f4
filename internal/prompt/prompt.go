// Package prompt asks human Go Fish players for their choices at the console.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"github.com/lox/cardgames/internal/deck"
)

// DefaultMaxAttempts bounds how often a single question is re-asked
const DefaultMaxAttempts = 100

// Messages shown when an answer is rejected
const (
	MsgInvalidRank = "Invalid card value!"
	MsgMissingRank = "You don't have that card!"
	MsgOutOfBounds = "Index out of bounds!"
)

var (
	// ErrTooManyAttempts is returned when no valid answer was given within the attempt limit
	ErrTooManyAttempts = errors.New("too many invalid attempts")
	// ErrInterrupted is returned when the player presses Ctrl-C at a prompt
	ErrInterrupted = errors.New("interrupted")
)

// LineReader reads one line of input after showing a prompt.
// *readline.Instance satisfies it.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Styles contains styling for prompts and feedback
type Styles struct {
	Prompt lipgloss.Style
	Error  lipgloss.Style
}

// DefaultStyles returns the prompt styles bound to r
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Prompt: r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Error:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// Prompter implements gofish.HumanInput on top of a LineReader
type Prompter struct {
	rl          LineReader
	out         io.Writer
	styles      Styles
	maxAttempts int
	logger      *log.Logger
}

// Option configures a Prompter
type Option func(*Prompter)

// WithMaxAttempts sets how many answers are read before giving up
func WithMaxAttempts(n int) Option {
	return func(p *Prompter) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

// WithStyles overrides the prompt styles
func WithStyles(s Styles) Option {
	return func(p *Prompter) {
		p.styles = s
	}
}

// WithLogger sets the logger used for rejected answers
func WithLogger(l *log.Logger) Option {
	return func(p *Prompter) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Prompter that reads from rl and writes feedback to out
func New(rl LineReader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		rl:          rl,
		out:         out,
		styles:      DefaultStyles(lipgloss.NewRenderer(out)),
		maxAttempts: DefaultMaxAttempts,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AskRank asks asker which rank to request from target until they name a rank
// they hold.
func (p *Prompter) AskRank(asker, target string, hand *deck.Hand) (deck.Rank, error) {
	question := fmt.Sprintf("%s: Ask %s for a card value: ", asker, target)

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		line, err := p.read(question)
		if err != nil {
			return 0, err
		}

		rank, err := deck.ParseRank(line)
		if err != nil {
			p.reject(MsgInvalidRank, "input", line)
			continue
		}
		if hand.Index(func(c deck.Card) bool { return c.Rank == rank }) < 0 {
			p.reject(MsgMissingRank, "rank", rank)
			continue
		}
		return rank, nil
	}
	return 0, fmt.Errorf("%w: %d tries asking %s for a rank", ErrTooManyAttempts, p.maxAttempts, asker)
}

// AskRiverIndex asks asker which river card to draw. Anything other than a
// number is silently asked again.
func (p *Prompter) AskRiverIndex(asker string, size int) (int, error) {
	if size <= 0 {
		return 0, deck.ErrEmptyCollection
	}
	question := fmt.Sprintf("Go fish! [0-%d]: ", size-1)

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		line, err := p.read(question)
		if err != nil {
			return 0, err
		}

		i, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			p.logger.Debug("Ignoring non-numeric river choice", "input", line)
			continue
		}
		if i < 0 || i >= size {
			p.reject(MsgOutOfBounds, "index", i, "size", size)
			continue
		}
		return i, nil
	}
	return 0, fmt.Errorf("%w: %d tries asking %s for a river card", ErrTooManyAttempts, p.maxAttempts, asker)
}

func (p *Prompter) read(question string) (string, error) {
	p.rl.SetPrompt(p.styles.Prompt.Render(question))
	line, err := p.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) reject(msg string, keyvals ...any) {
	fmt.Fprintln(p.out, p.styles.Error.Render(msg))
	p.logger.Debug("Rejected answer", keyvals...)
}
