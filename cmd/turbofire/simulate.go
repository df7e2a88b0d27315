package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/internal/sim"
	"github.com/nickingravallo/TurboFire/poker"
)

type SimulateCmd struct {
	Hand1 string `arg:"" help:"player 1 hole cards, e.g. AcAd"`
	Hand2 string `arg:"" help:"player 2 hole cards, e.g. KhKs"`

	Iterations int    `help:"number of boards to simulate" default:"1000000"`
	Seed       int64  `help:"random seed; 0 uses an arbitrary fixed seed" default:"0"`
	Tables     string `help:"load tables from handranks.dat instead of rebuilding" type:"path"`
}

func (cmd *SimulateCmd) Run(ctx context.Context) error {
	p1, err := parseHoleCards(cmd.Hand1)
	if err != nil {
		return fmt.Errorf("hand1: %w", err)
	}
	p2, err := parseHoleCards(cmd.Hand2)
	if err != nil {
		return fmt.Errorf("hand2: %w", err)
	}

	tables, err := loadOrBuildTables(cmd.Tables)
	if err != nil {
		return err
	}

	fmt.Printf("Matchup: %s  vs  %s\n", p1, p2)
	result, err := sim.New(tables, log.Logger).Run(ctx, p1, p2, cmd.Iterations, cmd.Seed)
	if err != nil {
		return err
	}

	fmt.Printf("\nSimulations: %d (%.2f million hands/sec)\n", result.Total, result.HandsPerSecond()/1e6)
	fmt.Printf("%s wins: %.4f%%\n", p1, 100*float64(result.Wins)/float64(result.Total))
	fmt.Printf("%s wins: %.4f%%\n", p2, 100*float64(result.Losses)/float64(result.Total))
	fmt.Printf("Ties:        %.4f%%\n", 100*float64(result.Ties)/float64(result.Total))
	return nil
}

func parseHoleCards(s string) (poker.Hand, error) {
	cards, err := poker.ParseCards(s)
	if err != nil {
		return 0, err
	}
	if len(cards) != 2 {
		return 0, fmt.Errorf("want exactly two cards, got %d", len(cards))
	}
	hand := poker.HandOf(cards...)
	if hand.CountCards() != 2 {
		return 0, fmt.Errorf("duplicate card in hand")
	}
	return hand, nil
}

// loadOrBuildTables prefers a table file when given, regenerating from
// scratch when it is missing or corrupt.
func loadOrBuildTables(path string) (*evaluator.FiveCardTables, error) {
	if path != "" {
		tables, err := evaluator.LoadFiveCardTables(path)
		if err == nil {
			log.Debug().Str("path", path).Msg("loaded hand rank tables")
			return tables, nil
		}
		log.Warn().Err(err).Str("path", path).Msg("table file unusable, regenerating")
	}
	return evaluator.BuildFiveCardTables()
}
