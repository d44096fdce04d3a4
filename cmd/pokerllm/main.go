package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" help:"Play interactively against bots or a model"`
	Simulate    SimulateCmd      `cmd:"" help:"Run a bot-vs-bot session"`
	Benchmark   BenchmarkCmd     `cmd:"" help:"Run the round-robin model benchmark"`
	Leaderboard LeaderboardCmd   `cmd:"" help:"Show the stored leaderboard"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerllm"),
		kong.Description("Texas Hold'em engine and benchmark harness for language-model players"),
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

func setupLogger(debug bool) *log.Logger {
	logger := log.New(os.Stderr)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
