// Package solver implements counterfactual regret minimization over the
// post-flop heads-up betting tree for one fixed deal. Strategies accumulate
// per information set in an open-addressed hash table owned by the solver;
// the evaluator tables are shared read-only.
package solver

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nickingravallo/TurboFire/internal/evaluator"
	"github.com/nickingravallo/TurboFire/poker"
)

const (
	depthLimit = 20
	reachEps   = 1e-10
)

// Config controls the betting abstraction for a solver instance.
type Config struct {
	// BetSizesBB lists the bet/raise sizes in big blinds, ascending.
	BetSizesBB []float64

	// StartingPotBB is the pot at the root (blinds already equalized).
	StartingPotBB float64

	// MaxRaises caps raises per street.
	MaxRaises int
}

// DefaultConfig mirrors the classic single-size abstraction: one bet size
// of 1bb into the 1.5bb blind pot, two raises per street.
func DefaultConfig() Config {
	return Config{
		BetSizesBB:    []float64{1.0},
		StartingPotBB: 1.5,
		MaxRaises:     2,
	}
}

// Validate ensures the abstraction is usable before any tree walk.
func (c Config) Validate() error {
	if len(c.BetSizesBB) == 0 {
		return errors.New("at least one bet size is required")
	}
	if len(c.BetSizesBB) > MaxBetSizes {
		return fmt.Errorf("at most %d bet sizes are supported", MaxBetSizes)
	}
	last := 0.0
	for i, v := range c.BetSizesBB {
		if v <= 0 {
			return fmt.Errorf("bet size[%d] must be > 0", i)
		}
		if v <= last {
			return fmt.Errorf("bet size[%d] must be strictly increasing", i)
		}
		last = v
	}
	if c.StartingPotBB <= 0 {
		return errors.New("starting pot must be > 0")
	}
	if c.MaxRaises < 0 {
		return errors.New("max raises cannot be negative")
	}
	return nil
}

// Solver runs CFR for one fixed (hand, hand, board) deal.
type Solver struct {
	tables *evaluator.Tables
	cfg    Config

	handP0 poker.Hand
	handP1 poker.Hand
	board  poker.Hand
	street Street

	table  *infosetTable
	logger zerolog.Logger
}

// New creates a solver for a fixed deal: both hole hands, the complete
// 5-card board, and the street where betting starts. The full board is
// needed up front because any CALL ends the hand in a showdown; streets
// are betting rounds over a deal that is already fixed.
func New(tables *evaluator.Tables, handP0, handP1, board poker.Hand, street Street, cfg Config, logger zerolog.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handP0.CountCards() != 2 || handP1.CountCards() != 2 {
		return nil, errors.New("each player needs exactly two hole cards")
	}
	if board.CountCards() != 5 {
		return nil, fmt.Errorf("board has %d cards, want 5", board.CountCards())
	}
	if street > StreetRiver {
		return nil, fmt.Errorf("unknown street %d", street)
	}
	if handP0.Overlaps(handP1) || handP0.Overlaps(board) || handP1.Overlaps(board) {
		return nil, errors.New("cards overlap between hands and board")
	}

	return &Solver{
		tables: tables,
		cfg:    cfg,
		handP0: handP0,
		handP1: handP1,
		board:  board,
		street: street,
		table:  newInfosetTable(logger),
		logger: logger,
	}, nil
}

// root returns the initial information set: acting player 0, fresh history,
// the blind pot split evenly between the contributions.
func (s *Solver) root() InfoSet {
	return InfoSet{
		Board:   s.board,
		Street:  s.street,
		Player:  0,
		PotBB:   s.cfg.StartingPotBB,
		P0PutBB: s.cfg.StartingPotBB / 2,
		P1PutBB: s.cfg.StartingPotBB / 2,
	}
}

// Solve runs n CFR iterations from the root, checking cancel between
// iterations, and returns the number completed. The accumulated strategy is
// usable whether or not the run was cancelled.
func (s *Solver) Solve(n int, cancel <-chan struct{}) int {
	for i := 0; i < n; i++ {
		if cancel != nil {
			select {
			case <-cancel:
				return i
			default:
			}
		}
		root := s.root()
		s.cfr(&root, 1.0, 1.0, 0)
	}
	return n
}

// InfosetCount returns the number of information sets visited so far.
func (s *Solver) InfosetCount() int { return s.table.Size() }

// NumActionSlots returns the width of strategy vectors for this config.
func (s *Solver) NumActionSlots() int { return 2*len(s.cfg.BetSizesBB) + 3 }

// RootActions returns the legal action set at the root.
func (s *Solver) RootActions() []Action {
	root := s.root()
	return root.legalActions(len(s.cfg.BetSizesBB), s.cfg.MaxRaises, nil)
}

// RootStrategy returns the normalized average strategy at the root.
func (s *Solver) RootStrategy() []float64 {
	root := s.root()
	return s.StrategyAt(&root)
}

// StrategyAt extracts the average strategy at an information set: the
// strategy-sum vector normalized over legal actions, uniform when the node
// was never reached.
func (s *Solver) StrategyAt(is *InfoSet) []float64 {
	legal := is.legalActions(len(s.cfg.BetSizesBB), s.cfg.MaxRaises, nil)
	out := make([]float64, s.NumActionSlots())
	if data := s.table.lookup(is); data != nil {
		NormalizeSum(data.strategySum[:len(out)], legal, out)
		return out
	}
	uniform := 1.0 / float64(len(legal))
	for _, a := range legal {
		out[a] = uniform
	}
	return out
}

// showdownPayoff returns P0's profit when hands are tabled.
func (s *Solver) showdownPayoff(potBB, p0PutBB float64) float64 {
	s0 := s.tables.Evaluate(s.handP0, s.board)
	s1 := s.tables.Evaluate(s.handP1, s.board)
	var winnings float64
	switch {
	case s0 > s1:
		winnings = potBB
	case s0 < s1:
		winnings = 0
	default:
		winnings = potBB / 2
	}
	return winnings - p0PutBB
}

// terminalPayoff returns P0's profit at a terminal node: both CALL and a
// river check-behind table the hands. FOLD is charged to the acting player
// at the node where it was chosen, so it is resolved inline by the
// recursion rather than here.
func (s *Solver) terminalPayoff(is *InfoSet) float64 {
	return s.showdownPayoff(is.PotBB, is.P0PutBB)
}

// foldPayoff returns P0's profit when the acting player folds.
func (is *InfoSet) foldPayoff() float64 {
	if is.Player == 0 {
		return -is.P0PutBB
	}
	return is.PotBB - is.P0PutBB
}

// cfr walks the betting tree. Every returned value is from player 0's
// view; conversion to the acting player's perspective happens only inside
// the regret update.
func (s *Solver) cfr(is *InfoSet, reachP0, reachP1 float64, depth int) float64 {
	if depth > depthLimit {
		return 0
	}
	if reachP0 < reachEps || reachP1 < reachEps {
		return 0
	}

	n := len(s.cfg.BetSizesBB)

	if is.NumActions > 0 {
		last := is.Actions[is.NumActions-1]
		if is.isTerminalAfter(last, n) {
			if last.isCheck() && is.Street != StreetRiver {
				// Two checks close a non-river street: deal in the next
				// street with a fresh history, first player to act.
				next := *is
				next.Street++
				next.Player = 0
				next.NumActions = 0
				return s.cfr(&next, reachP0, reachP1, depth+1)
			}
			return s.terminalPayoff(is)
		}
		if is.NumActions >= MaxHistory {
			return s.terminalPayoff(is)
		}
	}

	data := s.table.get(is)

	var legalBuf [maxActionSlots]Action
	legal := is.legalActions(n, s.cfg.MaxRaises, legalBuf[:0])

	var strategy [maxActionSlots]float64
	if data != nil {
		data.visits++
		RegretMatch(data.regrets[:], legal, strategy[:])
	} else {
		// table saturated: play uniform without accumulating
		uniform := 1.0 / float64(len(legal))
		for _, a := range legal {
			strategy[a] = uniform
		}
	}

	var util [maxActionSlots]float64
	nodeUtil := 0.0
	for _, a := range legal {
		if a.isFold(n) {
			util[a] = is.foldPayoff()
		} else {
			var next InfoSet
			is.applyAction(a, s.cfg.BetSizesBB, &next)
			next.Actions[next.NumActions] = a
			next.NumActions++
			next.Player = 1 - is.Player

			nextReachP0, nextReachP1 := reachP0, reachP1
			if is.Player == 0 {
				nextReachP0 *= strategy[a]
			} else {
				nextReachP1 *= strategy[a]
			}
			util[a] = s.cfr(&next, nextReachP0, nextReachP1, depth+1)
		}
		nodeUtil += strategy[a] * util[a]
	}

	if data != nil {
		// Child recursion may have grown the table and moved the entry;
		// pointers must not be used across a resize.
		data = s.table.lookup(is)
	}
	if data != nil {
		cfReach, ownReach := reachP1, reachP0
		if is.Player == 1 {
			cfReach, ownReach = reachP0, reachP1
		}
		sign := 1.0
		if is.Player == 1 {
			sign = -1.0
		}
		for _, a := range legal {
			regret := sign*util[a] - sign*nodeUtil
			data.regrets[a] += cfReach * regret
			data.strategySum[a] += ownReach * strategy[a]
		}
	}

	return nodeUtil
}
