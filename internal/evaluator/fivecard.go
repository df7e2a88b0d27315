package evaluator

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/nickingravallo/TurboFire/poker"
)

// Five-card table generation. These tables use the opposite convention from
// the runtime evaluator: rank 1 is the best hand and 7462 the worst. They
// back the handranks.dat file and the 21-subset evaluation path used by the
// equity simulator; callers compare with "lower wins".

// primes maps rank index (deuce..ace) to its prime, so a 5-card rank
// multiset is identified by its prime product.
var primes = [13]int32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

const distinctHandTypes = 7462

// ProductEntry pairs a prime product with its precomputed rank, stored
// sorted by product for binary search.
type ProductEntry struct {
	Product int32
	Rank    int16
}

// FiveCardTables holds the three 5-card lookup structures.
type FiveCardTables struct {
	FlushTable   [flushMapSize]int16
	Unique5Table [flushMapSize]int16
	Products     []ProductEntry
}

type genHand struct {
	product  int32
	rankBits int
	isFlush  bool
}

func isStraightBits(bitsMask int) bool {
	for high := 12; high >= 4; high-- {
		mask := 0x1F << (high - 4)
		if bitsMask&mask == mask {
			return true
		}
	}
	return bitsMask&0x100F == 0x100F
}

func primeProduct(ranks ...int) int32 {
	prod := int32(1)
	for _, r := range ranks {
		prod *= primes[r]
	}
	return prod
}

// generateHandTypes emits all 7462 distinct 5-card hand types in strict
// rank order, strongest first.
func generateHandTypes() []genHand {
	hands := make([]genHand, 0, distinctHandTypes)
	add := func(prod int32, bits int, isFlush bool) {
		hands = append(hands, genHand{product: prod, rankBits: bits, isFlush: isFlush})
	}
	maskProduct := func(bitsMask int) int32 {
		prod := int32(1)
		for r := 0; r < 13; r++ {
			if bitsMask&(1<<r) != 0 {
				prod *= primes[r]
			}
		}
		return prod
	}

	// Straight flushes: royal down to six-high, then the steel wheel.
	for high := 12; high >= 4; high-- {
		bitsMask := 0x1F << (high - 4)
		add(maskProduct(bitsMask), bitsMask, true)
	}
	add(primeProduct(12, 3, 2, 1, 0), (1<<12)|0xF, true)

	// Four of a kind: quad rank high to low, kicker high to low.
	for q := 12; q >= 0; q-- {
		for k := 12; k >= 0; k-- {
			if k == q {
				continue
			}
			prod := primes[q] * primes[q] * primes[q] * primes[q] * primes[k]
			add(prod, (1<<q)|(1<<k), false)
		}
	}

	// Full houses: trips high to low, pair high to low.
	for t := 12; t >= 0; t-- {
		for p := 12; p >= 0; p-- {
			if p == t {
				continue
			}
			prod := primes[t] * primes[t] * primes[t] * primes[p] * primes[p]
			add(prod, (1<<t)|(1<<p), false)
		}
	}

	// Flushes: all non-straight 5-rank sets in descending lexicographic order.
	for r0 := 12; r0 >= 4; r0-- {
		for r1 := r0 - 1; r1 >= 3; r1-- {
			for r2 := r1 - 1; r2 >= 2; r2-- {
				for r3 := r2 - 1; r3 >= 1; r3-- {
					for r4 := r3 - 1; r4 >= 0; r4-- {
						bitsMask := (1 << r0) | (1 << r1) | (1 << r2) | (1 << r3) | (1 << r4)
						if isStraightBits(bitsMask) {
							continue
						}
						add(primeProduct(r0, r1, r2, r3, r4), bitsMask, true)
					}
				}
			}
		}
	}

	// Straights: broadway down to wheel.
	for high := 12; high >= 4; high-- {
		bitsMask := 0x1F << (high - 4)
		add(maskProduct(bitsMask), bitsMask, false)
	}
	add(primeProduct(12, 3, 2, 1, 0), (1<<12)|0xF, false)

	// Three of a kind: trips rank, then the two kickers, all high to low.
	for t := 12; t >= 0; t-- {
		for k1 := 12; k1 >= 0; k1-- {
			if k1 == t {
				continue
			}
			for k2 := k1 - 1; k2 >= 0; k2-- {
				if k2 == t {
					continue
				}
				prod := primes[t] * primes[t] * primes[t] * primes[k1] * primes[k2]
				add(prod, (1<<t)|(1<<k1)|(1<<k2), false)
			}
		}
	}

	// Two pair: high pair, low pair, kicker, all high to low.
	for p1 := 12; p1 >= 1; p1-- {
		for p2 := p1 - 1; p2 >= 0; p2-- {
			for k := 12; k >= 0; k-- {
				if k == p1 || k == p2 {
					continue
				}
				prod := primes[p1] * primes[p1] * primes[p2] * primes[p2] * primes[k]
				add(prod, (1<<p1)|(1<<p2)|(1<<k), false)
			}
		}
	}

	// One pair: pair rank, then three distinct kickers in descending order.
	for p := 12; p >= 0; p-- {
		for k1 := 12; k1 >= 0; k1-- {
			if k1 == p {
				continue
			}
			for k2 := k1 - 1; k2 >= 0; k2-- {
				if k2 == p {
					continue
				}
				for k3 := k2 - 1; k3 >= 0; k3-- {
					if k3 == p {
						continue
					}
					prod := primes[p] * primes[p] * primes[k1] * primes[k2] * primes[k3]
					add(prod, (1<<p)|(1<<k1)|(1<<k2)|(1<<k3), false)
				}
			}
		}
	}

	// High card: same enumeration as flushes, non-flush.
	for r0 := 12; r0 >= 4; r0-- {
		for r1 := r0 - 1; r1 >= 3; r1-- {
			for r2 := r1 - 1; r2 >= 2; r2-- {
				for r3 := r2 - 1; r3 >= 1; r3-- {
					for r4 := r3 - 1; r4 >= 0; r4-- {
						bitsMask := (1 << r0) | (1 << r1) | (1 << r2) | (1 << r3) | (1 << r4)
						if isStraightBits(bitsMask) {
							continue
						}
						add(primeProduct(r0, r1, r2, r3, r4), bitsMask, false)
					}
				}
			}
		}
	}

	return hands
}

// BuildFiveCardTables enumerates the 7462 hand types and distributes them
// into the flush, unique5 and product tables, then verifies known hands.
func BuildFiveCardTables() (*FiveCardTables, error) {
	hands := generateHandTypes()
	if len(hands) != distinctHandTypes {
		return nil, fmt.Errorf("generated %d hand types, want %d", len(hands), distinctHandTypes)
	}

	t := &FiveCardTables{}
	for i, h := range hands {
		rank := int16(i + 1) // rank 1 = best
		pop := bits.OnesCount16(uint16(h.rankBits))
		switch {
		case h.isFlush:
			t.FlushTable[h.rankBits] = rank
		case pop == 5:
			t.Unique5Table[h.rankBits] = rank
		default:
			t.Products = append(t.Products, ProductEntry{Product: h.product, Rank: rank})
		}
	}

	sort.Slice(t.Products, func(i, j int) bool {
		return t.Products[i].Product < t.Products[j].Product
	})

	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *FiveCardTables) productRank(prod int32) int16 {
	lo, hi := 0, len(t.Products)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case t.Products[mid].Product == prod:
			return t.Products[mid].Rank
		case t.Products[mid].Product < prod:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return distinctHandTypes
}

// Eval5 ranks a 5-card hand: flush signature, then unique-rank table, then
// the prime-product binary search. Lower is better.
func (t *FiveCardTables) Eval5(c0, c1, c2, c3, c4 poker.Card) int {
	r0, r1, r2, r3, r4 := int(c0.Rank()), int(c1.Rank()), int(c2.Rank()), int(c3.Rank()), int(c4.Rank())
	bitsMask := (1 << r0) | (1 << r1) | (1 << r2) | (1 << r3) | (1 << r4)

	if s := c0.Suit(); s == c1.Suit() && s == c2.Suit() && s == c3.Suit() && s == c4.Suit() {
		return int(t.FlushTable[bitsMask])
	}
	if bits.OnesCount16(uint16(bitsMask)) == 5 {
		return int(t.Unique5Table[bitsMask])
	}
	return int(t.productRank(primes[r0] * primes[r1] * primes[r2] * primes[r3] * primes[r4]))
}

// Eval7 returns the best rank over all 21 five-card subsets. Lower is better.
func (t *FiveCardTables) Eval7(cards [7]poker.Card) int {
	best := distinctHandTypes + 1
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 7; j++ {
			var five [5]poker.Card
			n := 0
			for k := 0; k < 7; k++ {
				if k != i && k != j {
					five[n] = cards[k]
					n++
				}
			}
			if r := t.Eval5(five[0], five[1], five[2], five[3], five[4]); r < best {
				best = r
			}
		}
	}
	return best
}

// Verify spot-checks table entries whose ranks are pinned by the emission
// order.
func (t *FiveCardTables) Verify() error {
	royalBits := (1 << 12) | (1 << 11) | (1 << 10) | (1 << 9) | (1 << 8)
	wheelBits := (1 << 12) | (1 << 3) | (1 << 2) | (1 << 1) | (1 << 0)
	worstBits := (1 << 5) | (1 << 3) | (1 << 2) | (1 << 1) | (1 << 0)

	checks := []struct {
		name string
		got  int16
		want int16
	}{
		{"royal flush", t.FlushTable[royalBits], 1},
		{"steel wheel", t.FlushTable[wheelBits], 10},
		{"quad aces king kicker", int16(t.productRank(41 * 41 * 41 * 41 * 37)), 11},
		{"quad aces queen kicker", int16(t.productRank(41 * 41 * 41 * 41 * 31)), 12},
		{"broadway straight", t.Unique5Table[royalBits], 1600},
		{"wheel straight", t.Unique5Table[wheelBits], 1609},
		{"75432 high card", t.Unique5Table[worstBits], 7462},
		{"aces with KQJ", int16(t.productRank(41 * 41 * 37 * 31 * 29)), 3326},
		{"aces full of kings", int16(t.productRank(41 * 41 * 41 * 37 * 37)), 167},
	}
	for _, c := range checks {
		if c.got != c.want {
			return fmt.Errorf("%s rank = %d, want %d", c.name, c.got, c.want)
		}
	}
	return nil
}
