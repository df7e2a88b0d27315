package evaluator

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nickingravallo/TurboFire/poker"
)

var (
	fiveOnce sync.Once
	fiveTbl  *FiveCardTables
	fiveErr  error
)

func sharedFiveCardTables(t *testing.T) *FiveCardTables {
	t.Helper()
	fiveOnce.Do(func() {
		fiveTbl, fiveErr = BuildFiveCardTables()
	})
	if fiveErr != nil {
		t.Fatalf("building five-card tables: %v", fiveErr)
	}
	return fiveTbl
}

func cards7(t *testing.T, s string) [7]poker.Card {
	t.Helper()
	parsed, err := poker.ParseCards(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(parsed) != 7 {
		t.Fatalf("%q has %d cards", s, len(parsed))
	}
	var out [7]poker.Card
	copy(out[:], parsed)
	return out
}

func TestGenerateHandTypesCount(t *testing.T) {
	hands := generateHandTypes()
	if len(hands) != distinctHandTypes {
		t.Fatalf("generated %d hand types, want %d", len(hands), distinctHandTypes)
	}
}

func TestFiveCardKnownRanks(t *testing.T) {
	tbl := sharedFiveCardTables(t)
	// Verify covers the pinned emission-order ranks; re-run so failures
	// surface with this test's name.
	if err := tbl.Verify(); err != nil {
		t.Fatal(err)
	}
}

func TestEval7AgreesWithRuleBook(t *testing.T) {
	tbl := sharedFiveCardTables(t)
	tests := []struct {
		cards string
		rank  int
	}{
		{"AcKcQcJcTc2d3d", 1},    // royal flush
		{"Ad2d3d4d5d9sKh", 10},   // steel wheel
		{"AcAdAhAsKd2d3d", 11},   // quad aces, king kicker
		{"AcAdAhAs9c2d3d", 15},   // quad aces, nine kicker
		{"AcKdQhJsTc4s2h", 1600}, // broadway straight
		{"Ac2d3h4s5c9dJh", 1609}, // wheel straight
	}
	for _, tt := range tests {
		if got := tbl.Eval7(cards7(t, tt.cards)); got != tt.rank {
			t.Fatalf("Eval7(%q) = %d, want %d", tt.cards, got, tt.rank)
		}
	}
}

func TestEval7MatchesPackedEvaluatorOrdering(t *testing.T) {
	tbl := sharedFiveCardTables(t)
	packed := sharedTables(t)

	// The two evaluators use opposite scales; they must order any pair of
	// hands identically.
	hands := []string{
		"7c5d4h3s2c9dJh",
		"AcKdQhJs9c4d2h",
		"2c2d5h7s9cJdKh",
		"2c2d3h3sKc9d5h",
		"2c2d2h5s9cJdKh",
		"Ac2d3h4s5c9dJh",
		"2c4c5c7c9cJdKh",
		"2c2d2hAsAc9dJh",
		"2c2d2h2sAc9dJh",
		"Ad2d3d4d5d9sKh",
		"AcKcQcJcTc2d3d",
	}
	for i := 0; i < len(hands); i++ {
		for j := i + 1; j < len(hands); j++ {
			ci := cards7(t, hands[i])
			cj := cards7(t, hands[j])
			lo := tbl.Eval7(ci)
			hi := tbl.Eval7(cj)
			a := packed.Evaluate(poker.HandOf(ci[:]...), 0)
			b := packed.Evaluate(poker.HandOf(cj[:]...), 0)
			if (lo > hi) != (a < b) {
				t.Fatalf("ordering disagreement between %q and %q: subset %d/%d, packed %d/%d",
					hands[i], hands[j], lo, hi, a, b)
			}
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tbl := sharedFiveCardTables(t)
	path := filepath.Join(t.TempDir(), "handranks.dat")
	if err := tbl.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFiveCardTables(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Products) != len(tbl.Products) {
		t.Fatalf("product count %d, want %d", len(loaded.Products), len(tbl.Products))
	}
	for i := range tbl.Products {
		if loaded.Products[i] != tbl.Products[i] {
			t.Fatalf("product entry %d differs: %+v vs %+v", i, loaded.Products[i], tbl.Products[i])
		}
	}
	if loaded.FlushTable != tbl.FlushTable || loaded.Unique5Table != tbl.Unique5Table {
		t.Fatal("bitmask tables differ after round trip")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handranks.dat")
	if err := os.WriteFile(path, []byte("not a table file, definitely"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFiveCardTables(path); err == nil {
		t.Fatal("expected bad-magic error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFiveCardTables(filepath.Join(t.TempDir(), "absent.dat")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
