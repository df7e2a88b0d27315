package evaluator

import "math/bits"

// buildFlushMap populates the 13-bit flush table. Indices with exactly five
// bits get the flush (or straight-flush) strength of that rank set; indices
// with more bits inherit the value of their best 5-card subset as the
// strongest entry left after dropping any one bit, which works because the
// loop runs in ascending index order so every reduced index is already
// populated.
func (t *Tables) buildFlushMap() {
	normalFlushCounter := 0
	for i := 0; i < flushMapSize; i++ {
		switch count := bits.OnesCount16(uint16(i)); {
		case count == 5:
			t.flushMap[i] = flushStrength(uint16(i), &normalFlushCounter)
		case count > 5:
			best := uint16(0)
			for rest := i; rest != 0; rest &= rest - 1 {
				if v := t.flushMap[i&^(rest&-rest)]; v > best {
					best = v
				}
			}
			t.flushMap[i] = best
		default:
			t.flushMap[i] = 0
		}
	}
}

// flushStrength scores an exactly-five-bit suit signature. Non-straight
// flushes are numbered by a running counter: ascending bitmask order is
// ascending hand-strength order, so the counter enumerates the 1277 flush
// ranks from weakest (floor+1) to strongest.
func flushStrength(generated uint16, normalFlushCounter *int) uint16 {
	if generated&0x100F == 0x100F {
		return StraightFlushFloor + 1 // steel wheel
	}
	for i := 8; i >= 0; i-- {
		if (generated>>i)&0x1F == 0x1F {
			return uint16(StraightFlushFloor + i + 2)
		}
	}

	(*normalFlushCounter)++
	return uint16(FlushFloor + *normalFlushCounter)
}
