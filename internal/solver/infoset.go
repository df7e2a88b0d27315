package solver

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/nickingravallo/TurboFire/poker"
)

// Street enumerates the post-flop betting rounds.
type Street uint8

const (
	StreetFlop Street = iota
	StreetTurn
	StreetRiver
)

func (s Street) String() string {
	switch s {
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	default:
		return "unknown"
	}
}

const (
	// MaxHistory bounds the action sequence within one street.
	MaxHistory = 10

	// MaxBetSizes bounds the configured bet/raise size count.
	MaxBetSizes = 4

	// maxActionSlots is the widest possible action space:
	// CHECK, BET_0..BET_n-1, FOLD, CALL, RAISE_0..RAISE_n-1.
	maxActionSlots = 3 + 2*MaxBetSizes

	// potQuantize folds pot scalars onto a 1/100-BB lattice so that float
	// drift cannot split one information set into several.
	potQuantize = 100.0
)

// InfoSet identifies a decision point: the dealt board, street, acting
// player, the action sequence on the current street, and the quantized
// betting state.
type InfoSet struct {
	Board      poker.Hand
	Street     Street
	Player     int
	NumActions int
	Actions    [MaxHistory]Action

	PotBB        float64
	CurrentBetBB float64
	P0PutBB      float64
	P1PutBB      float64
}

func quantize(v float64) uint64 {
	return uint64(int64(math.Round(v * potQuantize)))
}

func hashCombine(a, b uint64) uint64 {
	return a ^ (b + 0x9e3779b97f4a7c15 + (a << 6) + (a >> 2))
}

// hash computes the table key. Zero is reserved for empty slots, so a zero
// result is rehashed onto a fixed sentinel.
func (is *InfoSet) hash() uint64 {
	h := hashCombine(0, uint64(is.Board))
	h = hashCombine(h, uint64(is.Board)>>32)
	h = hashCombine(h, uint64(is.Street))
	h = hashCombine(h, uint64(is.Player))
	h = hashCombine(h, uint64(is.NumActions))
	for i := 0; i < is.NumActions; i++ {
		h = hashCombine(h, uint64(is.Actions[i]))
	}
	h = hashCombine(h, quantize(is.PotBB))
	h = hashCombine(h, quantize(is.CurrentBetBB))
	h = hashCombine(h, quantize(is.P0PutBB))
	h = hashCombine(h, quantize(is.P1PutBB))
	if h == 0 {
		h = 0x9e3779b97f4a7c15
	}
	return h
}

// equal is the full-key comparison behind hash collisions. Pot scalars
// compare on the same quantized lattice the hash uses.
func (is *InfoSet) equal(other *InfoSet) bool {
	if is.Board != other.Board || is.Street != other.Street ||
		is.Player != other.Player || is.NumActions != other.NumActions {
		return false
	}
	for i := 0; i < is.NumActions; i++ {
		if is.Actions[i] != other.Actions[i] {
			return false
		}
	}
	return quantize(is.PotBB) == quantize(other.PotBB) &&
		quantize(is.CurrentBetBB) == quantize(other.CurrentBetBB) &&
		quantize(is.P0PutBB) == quantize(other.P0PutBB) &&
		quantize(is.P1PutBB) == quantize(other.P1PutBB)
}

// infosetData accumulates per-infoset regrets and the average-strategy
// numerator, mutated in place on every visit.
type infosetData struct {
	regrets     [maxActionSlots]float64
	strategySum [maxActionSlots]float64
	visits      uint64
}

type infosetEntry struct {
	keyHash uint64
	iset    InfoSet
	data    infosetData
}

const (
	initialTableCapacity = 1 << 16
	maxTableCapacity     = 1 << 18
	tableLoadFactor      = 0.75
)

// infosetTable is an open-addressed hash table with linear probing. Slots
// are empty iff keyHash is zero. On load-factor breach the table doubles up
// to a cap; at the cap inserts continue until no empty slot is left, after
// which new infosets are not stored and the solver continues with uniform
// strategies at unseen nodes.
type infosetTable struct {
	entries  []infosetEntry
	size     int
	warnedAt bool
	logger   zerolog.Logger
}

func newInfosetTable(logger zerolog.Logger) *infosetTable {
	return &infosetTable{
		entries: make([]infosetEntry, initialTableCapacity),
		logger:  logger,
	}
}

// get returns the data slot for the infoset, creating it on first visit.
// Returns nil when the table is saturated at its capacity cap.
func (t *infosetTable) get(is *InfoSet) *infosetData {
	if float64(t.size) >= float64(len(t.entries))*tableLoadFactor {
		t.grow()
	}

	h := is.hash()
	mask := uint64(len(t.entries) - 1)
	idx := h & mask
	for probes := 0; probes < len(t.entries); probes++ {
		e := &t.entries[idx]
		if e.keyHash == 0 {
			e.keyHash = h
			e.iset = *is
			t.size++
			return &e.data
		}
		if e.keyHash == h && e.iset.equal(is) {
			return &e.data
		}
		idx = (idx + 1) & mask
	}

	if !t.warnedAt {
		t.warnedAt = true
		t.logger.Warn().Int("capacity", len(t.entries)).
			Msg("infoset table full, continuing with uniform strategies at new nodes")
	}
	return nil
}

// lookup finds an existing infoset without inserting.
func (t *infosetTable) lookup(is *InfoSet) *infosetData {
	h := is.hash()
	mask := uint64(len(t.entries) - 1)
	idx := h & mask
	for probes := 0; probes < len(t.entries); probes++ {
		e := &t.entries[idx]
		if e.keyHash == 0 {
			return nil
		}
		if e.keyHash == h && e.iset.equal(is) {
			return &e.data
		}
		idx = (idx + 1) & mask
	}
	return nil
}

func (t *infosetTable) grow() {
	if len(t.entries) >= maxTableCapacity {
		if !t.warnedAt {
			t.warnedAt = true
			t.logger.Warn().Int("capacity", len(t.entries)).
				Msg("infoset table at capacity cap, accuracy may degrade")
		}
		return
	}

	old := t.entries
	t.entries = make([]infosetEntry, len(old)*2)
	t.size = 0
	mask := uint64(len(t.entries) - 1)
	for i := range old {
		if old[i].keyHash == 0 {
			continue
		}
		idx := old[i].keyHash & mask
		for t.entries[idx].keyHash != 0 {
			idx = (idx + 1) & mask
		}
		t.entries[idx] = old[i]
		t.size++
	}
}

// Size returns the number of stored infosets.
func (t *infosetTable) Size() int { return t.size }
