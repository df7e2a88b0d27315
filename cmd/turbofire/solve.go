package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/nickingravallo/TurboFire/internal/config"
	"github.com/nickingravallo/TurboFire/internal/driver"
	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/internal/grid"
)

// Default heads-up range, used for both players when a range is not given:
// every starting-hand class (all 1326 combinations).
const defaultRange = "22+,A2s+,K2s+,Q2s+,J2s+,T2s+,92s+,82s+,72s+,62s+,52s+,42s+,32s," +
	"A2o+,K2o+,Q2o+,J2o+,T2o+,92o+,82o+,72o+,62o+,52o+,42o+,32o"

type SolveCmd struct {
	HeroRange    string    `arg:"" optional:"" help:"small-blind range (defaults to a wide HU opening range)"`
	VillainRange string    `arg:"" optional:"" help:"big-blind range (defaults to a wide HU defending range)"`
	Board        string    `arg:"" optional:"" help:"board cards, e.g. AcKdQh (empty samples boards)"`
	Iterations   int       `help:"CFR iterations per sampled deal" default:"0"`
	Boards       int       `help:"sampling rounds per hero class and street; each round draws villain-hands deals" default:"0"`
	Seed         int64     `help:"random seed; 0 uses an arbitrary fixed seed" default:"0"`
	BetSizes     []float64 `help:"bet/raise sizes in big blinds" sep:","`
	MaxRaises    int       `help:"raise cap per street" default:"-1"`
	VillainHands int       `help:"villain hands drawn at random per sampling round, each with its own board" default:"0"`
	Profile      string    `help:"HCL solve profile; flags override its values" type:"path"`
}

// merge lays CLI flags over the profile defaults.
func (cmd *SolveCmd) merge() (*config.Profile, error) {
	profile := config.Default()
	if cmd.Profile != "" {
		loaded, err := config.Load(cmd.Profile)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	s := &profile.Solve
	if cmd.HeroRange != "" {
		s.HeroRange = cmd.HeroRange
	}
	if cmd.VillainRange != "" {
		s.VillainRange = cmd.VillainRange
	}
	if cmd.Board != "" {
		s.Board = cmd.Board
	}
	if cmd.Iterations > 0 {
		s.Iterations = cmd.Iterations
	}
	if cmd.Boards > 0 {
		s.Boards = cmd.Boards
	}
	if cmd.Seed != 0 {
		s.Seed = cmd.Seed
	}
	if len(cmd.BetSizes) > 0 {
		s.BetSizes = cmd.BetSizes
	}
	if cmd.MaxRaises >= 0 {
		s.MaxRaises = cmd.MaxRaises
	}
	if cmd.VillainHands > 0 {
		s.VillainHands = cmd.VillainHands
	}
	if s.HeroRange == "" {
		s.HeroRange = defaultRange
	}
	if s.VillainRange == "" {
		s.VillainRange = defaultRange
	}
	return profile, profile.Validate()
}

func (cmd *SolveCmd) Run(ctx context.Context) error {
	profile, err := cmd.merge()
	if err != nil {
		return err
	}
	s := profile.Solve

	log.Info().Msg("building evaluator tables")
	tables, err := evaluator.New()
	if err != nil {
		return fmt.Errorf("evaluator tables: %w", err)
	}

	d := driver.New(tables, log.Logger)
	report, err := d.Run(ctx, driver.Options{
		HeroRange:    s.HeroRange,
		VillainRange: s.VillainRange,
		Board:        s.Board,
		Iterations:   s.Iterations,
		Boards:       s.Boards,
		Seed:         s.Seed,
		BetSizes:     s.BetSizes,
		MaxRaises:    s.MaxRaises,
		VillainHands: s.VillainHands,
	})
	if err != nil {
		return err
	}

	fmt.Printf("SB Range: %s (%d hands)\n", s.HeroRange, report.HeroCombos)
	fmt.Printf("BB Range: %s (%d hands)\n", s.VillainRange, report.VillainCombos)
	if s.Board != "" {
		fmt.Printf("Board: %s\n", s.Board)
	}

	if report.RiverComplete {
		fmt.Println("River is complete - no streets left to solve.")
		return nil
	}

	for _, street := range report.Streets {
		fmt.Printf("\n=== %s strategy (range grid) ===\n\n", street.Street)
		fmt.Print(grid.Render(street.Grid, report.NumBetSizes))
		fmt.Println()
		fmt.Print(grid.RenderDetail(street.Grid, report.NumBetSizes))
		fmt.Printf("\nProcessed %d hand combinations for the %s.\n", street.Combinations, street.Street)
	}
	return nil
}
