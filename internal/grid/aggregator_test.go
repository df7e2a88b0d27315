package grid

import (
	"math"
	"strings"
	"testing"

	"github.com/nickingravallo/TurboFire/poker"
)

func class(t *testing.T, s string) poker.Class {
	t.Helper()
	c, err := poker.ParseClass(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestAggregatorAverages(t *testing.T) {
	a := NewAggregator(5)
	aa := class(t, "AA")
	a.Add(aa, []float64{0.2, 0.8, 0, 0, 0})
	a.Add(aa, []float64{0.4, 0.6, 0, 0, 0})

	avg, count, ok := a.Average(aa)
	if !ok || count != 2 {
		t.Fatalf("ok=%v count=%d", ok, count)
	}
	if math.Abs(avg[0]-0.3) > 1e-9 || math.Abs(avg[1]-0.7) > 1e-9 {
		t.Fatalf("avg = %v", avg)
	}
}

func TestAggregatorSeededClassHasNoData(t *testing.T) {
	a := NewAggregator(5)
	a.Seed(class(t, "72o"))
	if _, _, ok := a.Average(class(t, "72o")); ok {
		t.Fatal("seeded class should have no average yet")
	}
}

func TestActionShares(t *testing.T) {
	// single bet size: slots are check, bet, fold, call, raise
	strategy := []float64{0.3, 0.25, 0.1, 0.2, 0.15}
	passive, aggressive, fold := ActionShares(strategy, 1)
	if math.Abs(passive-0.5) > 1e-9 {
		t.Fatalf("passive = %v", passive)
	}
	if math.Abs(aggressive-0.4) > 1e-9 {
		t.Fatalf("aggressive = %v", aggressive)
	}
	if math.Abs(fold-0.1) > 1e-9 {
		t.Fatalf("fold = %v", fold)
	}
}

func TestClassesOrdering(t *testing.T) {
	a := NewAggregator(3)
	for _, s := range []string{"22", "AKo", "AA", "AKs"} {
		a.Add(class(t, s), []float64{1, 0, 0})
	}
	got := a.Classes()
	want := []string{"AA", "AKs", "AKo", "22"}
	for i, c := range got {
		if c.String() != want[i] {
			t.Fatalf("order = %v", got)
		}
	}
}

func TestRenderShowsGridAndDetail(t *testing.T) {
	a := NewAggregator(5)
	a.Add(class(t, "AA"), []float64{0.05, 0.9, 0, 0.05, 0})
	out := Render(a, 1)
	if !strings.Contains(out, "90%") {
		t.Fatalf("grid missing AA cell:\n%s", out)
	}
	detail := RenderDetail(a, 1)
	if !strings.Contains(detail, "AA") || !strings.Contains(detail, "90.0%") {
		t.Fatalf("detail missing AA row:\n%s", detail)
	}
}
