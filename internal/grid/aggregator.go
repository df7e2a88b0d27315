// Package grid accumulates per-deal root strategies into the 169
// starting-hand classes and renders them as the classic 13x13 range grid.
package grid

import (
	"sort"

	"github.com/nickingravallo/TurboFire/poker"
)

type bucket struct {
	sums  []float64
	count int
}

// Aggregator averages strategy vectors per starting-hand class.
type Aggregator struct {
	slots   int
	buckets map[poker.Class]*bucket
}

// NewAggregator creates an aggregator for strategy vectors of the given
// slot width.
func NewAggregator(slots int) *Aggregator {
	return &Aggregator{
		slots:   slots,
		buckets: make(map[poker.Class]*bucket),
	}
}

// Seed registers a class so it renders even when no sample contributed.
func (a *Aggregator) Seed(class poker.Class) {
	if _, ok := a.buckets[class]; !ok {
		a.buckets[class] = &bucket{sums: make([]float64, a.slots)}
	}
}

// Add accumulates one normalized strategy into the class bucket.
func (a *Aggregator) Add(class poker.Class, strategy []float64) {
	b, ok := a.buckets[class]
	if !ok {
		b = &bucket{sums: make([]float64, a.slots)}
		a.buckets[class] = b
	}
	for i := 0; i < a.slots && i < len(strategy); i++ {
		b.sums[i] += strategy[i]
	}
	b.count++
}

// Average returns the mean strategy for a class and the number of samples
// behind it; ok is false when the class never contributed.
func (a *Aggregator) Average(class poker.Class) ([]float64, int, bool) {
	b, ok := a.buckets[class]
	if !ok || b.count == 0 {
		return nil, 0, false
	}
	out := make([]float64, a.slots)
	for i := range out {
		out[i] = b.sums[i] / float64(b.count)
	}
	return out, b.count, true
}

// Classes lists the registered classes by high card, then low card (both
// descending), then suited before offsuit.
func (a *Aggregator) Classes() []poker.Class {
	out := make([]poker.Class, 0, len(a.buckets))
	for c := range a.buckets {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].High != out[j].High {
			return out[i].High > out[j].High
		}
		if out[i].Low != out[j].Low {
			return out[i].Low > out[j].Low
		}
		if out[i].Pair() != out[j].Pair() {
			return out[i].Pair()
		}
		return out[i].Suited && !out[j].Suited
	})
	return out
}

// ActionShares condenses a strategy vector into passive (check/call),
// aggressive (bet/raise) and fold mass for an n-bet-size abstraction.
func ActionShares(strategy []float64, n int) (passive, aggressive, fold float64) {
	for slot, p := range strategy {
		switch {
		case slot == 0 || slot == n+2: // check or call
			passive += p
		case slot == n+1: // fold
			fold += p
		default: // bets and raises
			aggressive += p
		}
	}
	return passive, aggressive, fold
}
