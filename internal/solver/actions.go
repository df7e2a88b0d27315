package solver

import "fmt"

// Action indexes the betting abstraction. With n configured bet sizes the
// layout is 0=CHECK, 1..n=BET_i, n+1=FOLD, n+2=CALL, n+3..2n+2=RAISE_i.
type Action int

const ActionCheck Action = 0

// betAction returns the BET action for size index i.
func betAction(i int) Action { return Action(1 + i) }

// foldAction returns FOLD for an n-size abstraction.
func foldAction(n int) Action { return Action(n + 1) }

// callAction returns CALL for an n-size abstraction.
func callAction(n int) Action { return Action(n + 2) }

// raiseAction returns the RAISE action for size index i.
func raiseAction(n, i int) Action { return Action(n + 3 + i) }

func (a Action) isCheck() bool       { return a == ActionCheck }
func (a Action) isBet(n int) bool    { return a >= 1 && a < Action(1+n) }
func (a Action) isFold(n int) bool   { return a == Action(n+1) }
func (a Action) isCall(n int) bool   { return a == Action(n+2) }
func (a Action) isRaise(n int) bool  { return a >= Action(n+3) && a < Action(2*n+3) }
func (a Action) betIndex() int       { return int(a) - 1 }
func (a Action) raiseIndex(n int) int { return int(a) - n - 3 }

// Label renders the action for the given bet sizes, e.g. "bet 0.5bb".
func (a Action) Label(betSizes []float64) string {
	n := len(betSizes)
	switch {
	case a.isCheck():
		return "check"
	case a.isBet(n):
		return fmt.Sprintf("bet %.2gbb", betSizes[a.betIndex()])
	case a.isFold(n):
		return "fold"
	case a.isCall(n):
		return "call"
	case a.isRaise(n):
		return fmt.Sprintf("raise %.2gbb", betSizes[a.raiseIndex(n)])
	default:
		return fmt.Sprintf("action %d", int(a))
	}
}

// Aggressive reports whether the action puts chips in (bet or raise).
func (a Action) Aggressive(n int) bool { return a.isBet(n) || a.isRaise(n) }

// facingBet reports whether the acting player has a wager to match.
func (is *InfoSet) facingBet(n int) bool {
	if is.NumActions == 0 {
		return false
	}
	last := is.Actions[is.NumActions-1]
	return last.isBet(n) || last.isRaise(n)
}

// raiseCount counts raises in the current street's history.
func (is *InfoSet) raiseCount(n int) int {
	count := 0
	for i := 0; i < is.NumActions; i++ {
		if is.Actions[i].isRaise(n) {
			count++
		}
	}
	return count
}

// legalActions appends the legal action set to out: check/bets with no bet
// facing, fold/call/raises (capped at maxRaises per street) otherwise.
func (is *InfoSet) legalActions(n, maxRaises int, out []Action) []Action {
	out = out[:0]
	if !is.facingBet(n) {
		out = append(out, ActionCheck)
		for i := 0; i < n; i++ {
			out = append(out, betAction(i))
		}
		return out
	}
	out = append(out, foldAction(n), callAction(n))
	if is.raiseCount(n) < maxRaises {
		for i := 0; i < n; i++ {
			out = append(out, raiseAction(n, i))
		}
	}
	return out
}

// isTerminalAfter reports whether the node is terminal given its last
// action: FOLD and CALL always end the hand; a CHECK answering a CHECK ends
// the street (the river case is a showdown, earlier streets advance).
func (is *InfoSet) isTerminalAfter(last Action, n int) bool {
	if last.isFold(n) || last.isCall(n) {
		return true
	}
	return last.isCheck() && is.NumActions >= 2 && is.Actions[is.NumActions-2].isCheck()
}

// applyAction writes the successor betting state into next. The caller is
// responsible for history append, player flip and street advancement.
func (is *InfoSet) applyAction(a Action, betSizes []float64, next *InfoSet) {
	*next = *is
	n := len(betSizes)
	acting := is.Player

	switch {
	case a.isCheck() || a.isFold(n):
		// no chips move
	case a.isBet(n):
		size := betSizes[a.betIndex()]
		next.PotBB += size
		next.CurrentBetBB = size
		if acting == 0 {
			next.P0PutBB += size
		} else {
			next.P1PutBB += size
		}
	case a.isCall(n):
		next.PotBB += is.CurrentBetBB
		if acting == 0 {
			next.P0PutBB += is.CurrentBetBB
		} else {
			next.P1PutBB += is.CurrentBetBB
		}
		next.CurrentBetBB = 0
	case a.isRaise(n):
		size := betSizes[a.raiseIndex(n)]
		total := is.CurrentBetBB + size
		next.PotBB += total
		next.CurrentBetBB = size
		if acting == 0 {
			next.P0PutBB += total
		} else {
			next.P1PutBB += total
		}
	}
}
