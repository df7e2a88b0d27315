package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeAppliesDefaults(t *testing.T) {
	cmd := &SolveCmd{}
	profile, err := cmd.merge()
	require.NoError(t, err)

	s := profile.Solve
	require.Equal(t, defaultRange, s.HeroRange)
	require.Equal(t, defaultRange, s.VillainRange)
	require.Equal(t, 500, s.Iterations)
	require.Equal(t, []float64{1.0}, s.BetSizes)
}

func TestMergeFlagsOverrideProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solve.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
solve {
  hero_range = "AA"
  iterations = 250
  bet_sizes  = [0.5]
}
`), 0o644))

	cmd := &SolveCmd{
		Profile:    path,
		Iterations: 1000,
	}
	profile, err := cmd.merge()
	require.NoError(t, err)

	s := profile.Solve
	require.Equal(t, "AA", s.HeroRange)
	require.Equal(t, 1000, s.Iterations, "flag must win over profile")
	require.Equal(t, []float64{0.5}, s.BetSizes)
}

func TestMergeSentinelsKeepDefaults(t *testing.T) {
	cmd := &SolveCmd{BetSizes: []float64{}}
	_, err := cmd.merge()
	require.NoError(t, err, "empty flag slice keeps profile defaults")

	cmd = &SolveCmd{MaxRaises: -1}
	profile, err := cmd.merge()
	require.NoError(t, err)
	require.Equal(t, 2, profile.Solve.MaxRaises, "sentinel keeps default raise cap")
}
