package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	War      WarCmd           `cmd:"" help:"Play a single game of War"`
	Simulate SimulateCmd      `cmd:"" help:"Play many games of War and report statistics"`
	GoFish   GoFishCmd        `cmd:"gofish" help:"Play Go Fish against computer players"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardgames"),
		kong.Description("War and Go Fish on a shared card library"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
