package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Server   ServerCmd        `cmd:"" help:"Host a poker table over websockets"`
	Client   ClientCmd        `cmd:"" help:"Sit at a table with the terminal client"`
	Simulate SimulateCmd      `cmd:"" help:"Play bots against each other locally"`
	Odds     OddsCmd          `cmd:"" help:"Estimate a hand's equity against random hands"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("vibe-poker"),
		kong.Description("Texas Hold'em table server, client and tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
