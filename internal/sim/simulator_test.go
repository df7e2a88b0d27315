package sim

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/poker"
)

var (
	tblOnce sync.Once
	tbl     *evaluator.FiveCardTables
	tblErr  error
)

func sharedTables(t *testing.T) *evaluator.FiveCardTables {
	t.Helper()
	tblOnce.Do(func() {
		tbl, tblErr = evaluator.BuildFiveCardTables()
	})
	require.NoError(t, tblErr)
	return tbl
}

func hand(t *testing.T, s string) poker.Hand {
	t.Helper()
	cards, err := poker.ParseCards(s)
	require.NoError(t, err)
	return poker.HandOf(cards...)
}

func TestAcesCrushKings(t *testing.T) {
	s := New(sharedTables(t), zerolog.Nop())
	res, err := s.Run(context.Background(), hand(t, "AcAd"), hand(t, "KhKs"), 20000, 42)
	require.NoError(t, err)
	require.EqualValues(t, 20000, res.Total)

	// AA vs KK is roughly 82/18; allow generous Monte Carlo slack.
	eq := res.Equity()
	require.Greater(t, eq, 0.75, "aces equity %v too low", eq)
	require.Less(t, eq, 0.90, "aces equity %v too high", eq)
}

func TestMirroredMatchupIsFair(t *testing.T) {
	s := New(sharedTables(t), zerolog.Nop())
	res, err := s.Run(context.Background(), hand(t, "AcKc"), hand(t, "AdKd"), 20000, 7)
	require.NoError(t, err)

	// Same class both sides: equity must hover around one half.
	eq := res.Equity()
	require.InDelta(t, 0.5, eq, 0.03)
}

func TestRunDeterministicUnderSeed(t *testing.T) {
	s := New(sharedTables(t), zerolog.Nop())
	a, err := s.Run(context.Background(), hand(t, "9h9d"), hand(t, "AcKs"), 5000, 1234)
	require.NoError(t, err)
	b, err := s.Run(context.Background(), hand(t, "9h9d"), hand(t, "AcKs"), 5000, 1234)
	require.NoError(t, err)

	require.Equal(t, a.Wins, b.Wins)
	require.Equal(t, a.Losses, b.Losses)
	require.Equal(t, a.Ties, b.Ties)
}

func TestRunRejectsDuplicateCards(t *testing.T) {
	s := New(sharedTables(t), zerolog.Nop())
	_, err := s.Run(context.Background(), hand(t, "AcAd"), hand(t, "AcKs"), 100, 1)
	require.Error(t, err)
}
