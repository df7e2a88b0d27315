// Package sim runs heads-up all-in equity simulations: deal random boards,
// evaluate both hands over the five-card tables, tally the outcomes.
package sim

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/internal/randutil"
	"github.com/nickingravallo/TurboFire/poker"
)

// Result tallies a simulation from player 0's perspective.
type Result struct {
	Wins    int64
	Losses  int64
	Ties    int64
	Total   int64
	Elapsed time.Duration
}

// WinRate returns player 0's share of wins.
func (r Result) WinRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Total)
}

// Equity returns player 0's equity counting ties as half.
func (r Result) Equity() float64 {
	if r.Total == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Total)
}

// HandsPerSecond reports simulation throughput.
func (r Result) HandsPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Total) / r.Elapsed.Seconds()
}

// Simulator owns the shared read-only tables.
type Simulator struct {
	tables *evaluator.FiveCardTables
	logger zerolog.Logger
}

// New creates a simulator over prebuilt five-card tables.
func New(tables *evaluator.FiveCardTables, logger zerolog.Logger) *Simulator {
	return &Simulator{tables: tables, logger: logger}
}

// Run simulates the matchup for the given number of boards, fanning out
// across workers; a fixed seed reproduces results bit for bit.
func (s *Simulator) Run(ctx context.Context, p0, p1 poker.Hand, iterations int, seed int64) (Result, error) {
	if p0.CountCards() != 2 || p1.CountCards() != 2 {
		return Result{}, errors.New("each player needs exactly two hole cards")
	}
	if p0.Overlaps(p1) {
		return Result{}, errors.New("duplicate card between hands")
	}
	if iterations <= 0 {
		return Result{}, errors.New("iterations must be > 0")
	}

	workers := runtime.NumCPU()
	if workers > 8 {
		workers = 8
	}
	if workers > iterations {
		workers = 1
	}

	p0Cards := p0.Cards()
	p1Cards := p1.Cards()

	// Per-worker seeds come from a parent stream so the whole run is a
	// pure function of the seed regardless of scheduling.
	parent := randutil.New(seed)
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = parent.Int64()
	}

	results := make([]Result, workers)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	per := iterations / workers
	extra := iterations % workers
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w < extra {
			n++
		}
		g.Go(func() error {
			results[w] = s.worker(ctx, p0Cards, p1Cards, n, seeds[w])
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	total := Result{Elapsed: time.Since(start)}
	for _, r := range results {
		total.Wins += r.Wins
		total.Losses += r.Losses
		total.Ties += r.Ties
		total.Total += r.Total
	}
	s.logger.Debug().
		Int64("boards", total.Total).
		Float64("hands_per_sec", total.HandsPerSecond()).
		Msg("simulation finished")
	return total, nil
}

func (s *Simulator) worker(ctx context.Context, p0, p1 []poker.Card, iterations int, seed int64) Result {
	rng := randutil.New(seed)
	deck := poker.NewDeck(rng, p0[0], p0[1], p1[0], p1[1])

	var res Result
	board := make([]poker.Card, 0, 5)
	var hero, villain [7]poker.Card
	hero[0], hero[1] = p0[0], p0[1]
	villain[0], villain[1] = p1[0], p1[1]

	const checkEvery = 4096
	for i := 0; i < iterations; i++ {
		if i%checkEvery == 0 && ctx.Err() != nil {
			return res
		}
		board = deck.Draw(5, board)
		copy(hero[2:], board)
		copy(villain[2:], board)

		r0 := s.tables.Eval7(hero)
		r1 := s.tables.Eval7(villain)
		switch {
		case r0 < r1:
			res.Wins++
		case r0 > r1:
			res.Losses++
		default:
			res.Ties++
		}
		res.Total++
	}
	return res
}
