// Package driver orchestrates a solve: parse ranges, sample deals, run one
// CFR solver per (hero hand, villain hand, board) combination and aggregate
// the root strategies into the 169-class grid.
package driver

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/internal/grid"
	"github.com/nickingravallo/TurboFire/internal/randutil"
	"github.com/nickingravallo/TurboFire/internal/ranges"
	"github.com/nickingravallo/TurboFire/internal/solver"
	"github.com/nickingravallo/TurboFire/poker"
)

// Options configures a solve run.
type Options struct {
	HeroRange    string
	VillainRange string
	Board        string // 0, 3, 4 or 5 cards as concatenated pairs

	Iterations   int
	Boards       int // sampling rounds per hero class and street
	Seed         int64
	BetSizes     []float64
	MaxRaises    int
	VillainHands int // villain combos drawn at random per round, each with its own board
}

// StreetReport aggregates one analyzed street.
type StreetReport struct {
	Street       solver.Street
	Grid         *grid.Aggregator
	Combinations int
}

// Report is the outcome of a solve run.
type Report struct {
	Streets       []StreetReport
	HeroCombos    int
	VillainCombos int
	NumBetSizes   int
	RiverComplete bool // a 5-card board was given; nothing to solve
}

// Driver runs solves against shared evaluator tables.
type Driver struct {
	tables *evaluator.Tables
	logger zerolog.Logger
}

// New creates a driver over prebuilt evaluator tables.
func New(tables *evaluator.Tables, logger zerolog.Logger) *Driver {
	return &Driver{tables: tables, logger: logger}
}

// streetsFor picks the streets left to analyze for a given board size.
func streetsFor(boardSize int) ([]solver.Street, error) {
	switch boardSize {
	case 0:
		return []solver.Street{solver.StreetFlop, solver.StreetTurn, solver.StreetRiver}, nil
	case 3:
		return []solver.Street{solver.StreetTurn, solver.StreetRiver}, nil
	case 4:
		return []solver.Street{solver.StreetRiver}, nil
	case 5:
		return nil, nil
	default:
		return nil, fmt.Errorf("board has %d cards, want 0, 3, 4 or 5", boardSize)
	}
}

// task is one solver run, fully determined before any goroutine starts so
// the whole run is a pure function of the seed.
type task struct {
	street  int // index into report streets
	class   poker.Class
	hero    ranges.Combo
	villain ranges.Combo
	board   poker.Hand
}

// Run executes the solve. Sampling decisions are all drawn up front from
// the seeded parent RNG; solvers then fan out across workers.
func (d *Driver) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Iterations <= 0 {
		return nil, errors.New("iterations must be > 0")
	}
	if opts.Boards <= 0 {
		return nil, errors.New("boards must be > 0")
	}
	if opts.VillainHands <= 0 {
		return nil, errors.New("villain hands must be > 0")
	}

	cfg := solver.Config{
		BetSizesBB:    opts.BetSizes,
		StartingPotBB: 1.5,
		MaxRaises:     opts.MaxRaises,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hero, err := ranges.Parse(opts.HeroRange, d.logger)
	if err != nil {
		return nil, fmt.Errorf("hero range: %w", err)
	}
	villain, err := ranges.Parse(opts.VillainRange, d.logger)
	if err != nil {
		return nil, fmt.Errorf("villain range: %w", err)
	}

	fixedBoard, err := poker.ParseCards(opts.Board)
	if err != nil {
		return nil, fmt.Errorf("board: %w", err)
	}
	streets, err := streetsFor(len(fixedBoard))
	if err != nil {
		return nil, err
	}

	slots := 2*len(opts.BetSizes) + 3
	report := &Report{
		HeroCombos:    len(hero.Combos),
		VillainCombos: len(villain.Combos),
		NumBetSizes:   len(opts.BetSizes),
	}
	if streets == nil {
		report.RiverComplete = true
		return report, nil
	}

	rng := randutil.New(opts.Seed)
	classes := hero.Classes()

	var tasks []task
	for si, street := range streets {
		report.Streets = append(report.Streets, StreetReport{
			Street: street,
			Grid:   grid.NewAggregator(slots),
		})
		for _, class := range classes {
			report.Streets[si].Grid.Seed(class)

			// The overall range frequency gates whole classes, as the
			// original solver did for opening frequencies.
			if hero.Frequency < 1.0 && rng.Float64() > hero.Frequency {
				continue
			}
			heroCombo, ok := sampleClassCombo(hero, class, fixedBoard, rng)
			if !ok {
				continue
			}
			for b := 0; b < opts.Boards; b++ {
				for v := 0; v < opts.VillainHands; v++ {
					villainCombo, ok := sampleVillain(villain, heroCombo, fixedBoard, rng)
					if !ok {
						continue
					}
					// The full 5-card deal is fixed up front; the street
					// only selects where betting starts.
					board, ok := completeBoard(fixedBoard, heroCombo, villainCombo, rng)
					if !ok {
						continue
					}
					tasks = append(tasks, task{
						street:  si,
						class:   class,
						hero:    heroCombo,
						villain: villainCombo,
						board:   board,
					})
				}
			}
		}
	}

	d.logger.Info().
		Int("tasks", len(tasks)).
		Int("streets", len(streets)).
		Int("iterations", opts.Iterations).
		Msg("starting solve")

	strategies := make([][]float64, len(tasks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range tasks {
		i := i
		g.Go(func() error {
			tk := &tasks[i]
			s, err := solver.New(d.tables, tk.hero.Hand(), tk.villain.Hand(), tk.board,
				report.Streets[tk.street].Street, cfg, d.logger)
			if err != nil {
				// overlapping deal slipped through sampling: skip it
				d.logger.Debug().Err(err).Msg("skipping combination")
				return nil
			}
			s.Solve(opts.Iterations, ctx.Done())
			if ctx.Err() != nil {
				return ctx.Err()
			}
			strategies[i] = s.RootStrategy()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Aggregate in task order so output is independent of scheduling.
	for i, tk := range tasks {
		if strategies[i] == nil {
			continue
		}
		report.Streets[tk.street].Grid.Add(tk.class, strategies[i])
		report.Streets[tk.street].Combinations++
	}
	return report, nil
}

// sampleClassCombo picks a combo of the class from the range, avoiding the
// fixed board and honoring per-hand weights as inclusion probabilities.
func sampleClassCombo(r *ranges.Range, class poker.Class, fixedBoard []poker.Card, rng *rand.Rand) (ranges.Combo, bool) {
	dead := poker.HandOf(fixedBoard...)
	var candidates []ranges.Combo
	for _, c := range r.Combos {
		if c.Class() == class && !c.Hand().Overlaps(dead) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return ranges.Combo{}, false
	}
	for attempts := 0; attempts < 2*len(candidates); attempts++ {
		c := candidates[rng.IntN(len(candidates))]
		if c.Weight >= 1.0 || rng.Float64() <= c.Weight {
			return c, true
		}
	}
	return ranges.Combo{}, false
}

// sampleVillain draws a villain combo that does not overlap the hero hand
// or the fixed board, honoring per-hand weights.
func sampleVillain(r *ranges.Range, hero ranges.Combo, fixedBoard []poker.Card, rng *rand.Rand) (ranges.Combo, bool) {
	dead := hero.Hand() | poker.HandOf(fixedBoard...)
	for attempts := 0; attempts < 2*len(r.Combos); attempts++ {
		c := r.Combos[rng.IntN(len(r.Combos))]
		if c.Hand().Overlaps(dead) {
			continue
		}
		if c.Weight >= 1.0 || rng.Float64() <= c.Weight {
			return c, true
		}
	}
	return ranges.Combo{}, false
}

// completeBoard extends the fixed board cards to a full five-card deal
// with random cards that avoid both hands.
func completeBoard(fixed []poker.Card, hero, villain ranges.Combo, rng *rand.Rand) (poker.Hand, bool) {
	board := poker.HandOf(fixed...)
	dead := board | hero.Hand() | villain.Hand()
	if board.Overlaps(hero.Hand() | villain.Hand()) {
		return 0, false
	}

	need := 5 - len(fixed)
	if need <= 0 {
		return board, true
	}
	deck := poker.NewDeck(rng, dead.Cards()...)
	buf := make([]poker.Card, 0, need)
	for _, c := range deck.Draw(need, buf) {
		board = board.Add(c)
	}
	return board, true
}
