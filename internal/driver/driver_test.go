package driver

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/internal/grid"
	"github.com/nickingravallo/TurboFire/internal/solver"
	"github.com/nickingravallo/TurboFire/poker"
)

var (
	tblOnce sync.Once
	tbl     *evaluator.Tables
	tblErr  error
)

func sharedTables(t *testing.T) *evaluator.Tables {
	t.Helper()
	tblOnce.Do(func() {
		tbl, tblErr = evaluator.New()
	})
	require.NoError(t, tblErr)
	return tbl
}

func pairsOptions() Options {
	return Options{
		HeroRange:    "22+",
		VillainRange: "22+",
		Iterations:   200,
		Boards:       2,
		Seed:         42,
		BetSizes:     []float64{1.0},
		MaxRaises:    2,
		VillainHands: 5,
	}
}

func aggressiveFor(t *testing.T, sr StreetReport, className string, numBetSizes int) float64 {
	t.Helper()
	class, err := poker.ParseClass(className)
	require.NoError(t, err)
	strat, _, ok := sr.Grid.Average(class)
	require.True(t, ok, "no data for class %s", className)
	_, aggressive, _ := grid.ActionShares(strat, numBetSizes)
	return aggressive
}

func TestPairsVersusPairs(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	report, err := d.Run(context.Background(), pairsOptions())
	require.NoError(t, err)

	require.Len(t, report.Streets, 3)
	require.Equal(t, solver.StreetFlop, report.Streets[0].Street)
	require.Equal(t, 13*6, report.HeroCombos)

	flop := report.Streets[0]
	require.Greater(t, flop.Combinations, 0)

	// Aces dominate the pair-versus-pair matchup and must come out more
	// aggressive than deuces, which are behind almost every deal and stay
	// under the 50% betting bound.
	aaBet := aggressiveFor(t, flop, "AA", report.NumBetSizes)
	lowBet := aggressiveFor(t, flop, "22", report.NumBetSizes)
	require.Greater(t, aaBet, lowBet)
	require.Less(t, lowBet, 0.5)
}

func TestRunDeterministicUnderSeed(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	opts := pairsOptions()
	opts.Iterations = 50
	opts.Boards = 1
	opts.VillainHands = 2

	run := func() *Report {
		r, err := d.Run(context.Background(), opts)
		require.NoError(t, err)
		return r
	}
	a := run()
	b := run()

	require.Equal(t, len(a.Streets), len(b.Streets))
	for si := range a.Streets {
		require.Equal(t, a.Streets[si].Combinations, b.Streets[si].Combinations)
		for _, class := range a.Streets[si].Grid.Classes() {
			sa, ca, oka := a.Streets[si].Grid.Average(class)
			sb, cb, okb := b.Streets[si].Grid.Average(class)
			require.Equal(t, oka, okb, "class %s presence differs", class)
			if !oka {
				continue
			}
			require.Equal(t, ca, cb, "class %s sample count differs", class)
			require.Equal(t, sa, sb, "class %s strategy differs", class)
		}
	}
}

func TestFixedBoardSelectsStreets(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	opts := pairsOptions()
	opts.Iterations = 20
	opts.Boards = 1
	opts.VillainHands = 1
	opts.HeroRange = "AA"
	opts.VillainRange = "KK"
	opts.Board = "2c7d9h"

	report, err := d.Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, report.Streets, 2)
	require.Equal(t, solver.StreetTurn, report.Streets[0].Street)
	require.Equal(t, solver.StreetRiver, report.Streets[1].Street)
}

func TestRiverBoardIsComplete(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	opts := pairsOptions()
	opts.Board = "2c7d9hJsQd"

	report, err := d.Run(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, report.RiverComplete)
	require.Empty(t, report.Streets)
}

func TestInvalidBoardRejected(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	opts := pairsOptions()
	opts.Board = "2c7d" // two cards is not a street
	_, err := d.Run(context.Background(), opts)
	require.Error(t, err)

	opts.Board = "zz"
	_, err = d.Run(context.Background(), opts)
	require.Error(t, err)
}

func TestBadRangeRejected(t *testing.T) {
	d := New(sharedTables(t), zerolog.Nop())
	opts := pairsOptions()
	opts.HeroRange = "XX,YY"
	_, err := d.Run(context.Background(), opts)
	require.Error(t, err)
}
