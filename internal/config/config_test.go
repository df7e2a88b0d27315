package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solve.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadProfile(t *testing.T) {
	path := writeProfile(t, `
solve {
  hero_range    = "22+"
  villain_range = "22+,A2s+"
  iterations    = 1000
  boards        = 5
  seed          = 42
  bet_sizes     = [0.5, 1.0, 2.0]
  max_raises    = 3
}
`)
	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "22+", p.Solve.HeroRange)
	require.Equal(t, 1000, p.Solve.Iterations)
	require.Equal(t, 5, p.Solve.Boards)
	require.EqualValues(t, 42, p.Solve.Seed)
	require.Equal(t, []float64{0.5, 1.0, 2.0}, p.Solve.BetSizes)
	require.Equal(t, 3, p.Solve.MaxRaises)
	// unset fields keep their defaults
	require.Equal(t, Default().Solve.VillainHands, p.Solve.VillainHands)
}

func TestLoadRejectsBadSyntax(t *testing.T) {
	path := writeProfile(t, `solve { iterations = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeProfile(t, `
solve {
  iterations = -5
}
`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}
