package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lox/cardgames/internal/config"
	"github.com/lox/cardgames/internal/gofish"
	"github.com/lox/cardgames/internal/prompt"
)

// GoFishCmd plays an interactive game of Go Fish
type GoFishCmd struct {
	Players  []string `kong:"help='Players as name:kind pairs, e.g. You:human,Bot:computer (default from config)'"`
	HandSize int      `kong:"help='Cards dealt to each player (default from config)'"`
	Seed     *int64   `kong:"help='Deterministic RNG seed (optional)'"`
	History  string   `kong:"help='Readline history file'"`
}

// parsePlayers turns "name:kind" specs into player config. Kind defaults to computer.
func parsePlayers(specs []string) []config.PlayerConfig {
	players := make([]config.PlayerConfig, 0, len(specs))
	for _, spec := range specs {
		name, kind, _ := strings.Cut(spec, ":")
		players = append(players, config.PlayerConfig{
			Name: strings.TrimSpace(name),
			Kind: strings.TrimSpace(kind),
		})
	}
	for i := range players {
		if players[i].Kind == "" {
			players[i].Kind = gofish.Computer.String()
		}
	}
	return players
}

func hasHuman(players []*gofish.Player) bool {
	for _, p := range players {
		if p.Kind == gofish.Human {
			return true
		}
	}
	return false
}

func (c *GoFishCmd) Run(g *Globals) error {
	e, err := g.setup()
	if err != nil {
		return err
	}

	if len(c.Players) > 0 {
		e.cfg.GoFish.Players = parsePlayers(c.Players)
	}
	if c.HandSize > 0 {
		e.cfg.GoFish.HandSize = c.HandSize
	}
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	players, err := e.cfg.Players()
	if err != nil {
		return err
	}

	rng, seed := resolveSeed(c.Seed, e.cfg.GoFish.Seed)
	e.logger.Info("Using seed", "seed", seed)

	game, err := gofish.New(players, rng,
		gofish.WithHandSize(e.cfg.GoFish.HandSize),
		gofish.WithMaxTurns(e.cfg.GoFish.MaxTurns),
		gofish.WithLogger(e.logger))
	if err != nil {
		return fmt.Errorf("setting up game: %w", err)
	}

	var human gofish.HumanInput
	if hasHuman(players) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     c.History,
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		human = prompt.New(rl, e.out,
			prompt.WithStyles(prompt.DefaultStyles(e.display.Renderer())),
			prompt.WithLogger(e.logger))
	}

	_, err = game.Run(gofish.NewChooser(rng, human), e.display)
	if errors.Is(err, prompt.ErrInterrupted) || errors.Is(err, io.EOF) {
		e.logger.Info("Game abandoned", "turns", game.Turns)
		return nil
	}
	return err
}
