package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Keep score for a table playing with real cards"`
	Simulate SimulateCmd      `cmd:"" help:"Compare betting strategies over many bot games"`
	Schedule ScheduleCmd      `cmd:"" help:"Print the round plan for a number of players"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rikiki"),
		kong.Description("Scorekeeper and strategy simulator for Rikiki (Oh Hell)"),
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
