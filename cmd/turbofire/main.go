package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Solve    SolveCmd    `cmd:"" default:"withargs" help:"solve heads-up post-flop ranges and print the strategy grid"`
	Gen      GenCmd      `cmd:"" help:"generate the 5-card evaluator tables and write handranks.dat"`
	Simulate SimulateCmd `cmd:"" help:"run a heads-up all-in equity simulation"`
}

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := kong.Parse(&cli,
		kong.Name("turbofire"),
		kong.Description("Heads-up no-limit hold'em GTO solver"),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	setupLogger(cli.Debug)

	if err := ctx.Run(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level)
}
