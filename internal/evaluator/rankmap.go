package evaluator

// Rank-map construction: every 7-card hand is enumerated once per rank
// multiset, realised in a single canonical suit layout, scored, and inserted
// into the open-addressed map keyed by the full 64-bit canonical hand.

// suitPermutation assigns the suit for the n-th occurrence of a rank, both
// during generation and during lookup canonicalization. The exact order is
// arbitrary; it only has to match on both sides.
var suitPermutation = [4]int{1, 0, 3, 2}

// nCk is a small binomial table for the combinatorial kicker indices,
// n in 0..12, k in 0..5.
var nCk = [13][6]int{
	{1, 0, 0, 0, 0, 0}, {1, 1, 0, 0, 0, 0}, {1, 2, 1, 0, 0, 0}, {1, 3, 3, 1, 0, 0}, {1, 4, 6, 4, 1, 0},
	{1, 5, 10, 10, 5, 1}, {1, 6, 15, 20, 15, 6}, {1, 7, 21, 35, 35, 21}, {1, 8, 28, 56, 70, 56},
	{1, 9, 36, 84, 126, 126}, {1, 10, 45, 120, 210, 252}, {1, 11, 55, 165, 330, 462}, {1, 12, 66, 220, 495, 792},
}

// canonicalize reassigns suits so any two hands with the same rank multiset
// map to the identical 64-bit value: scan ranks 0..12, consume occurrences
// across suits, and re-emit each occurrence under suitPermutation.
func canonicalize(hand uint64) uint64 {
	var count [13]int
	var out uint64
	for r := 0; r < 13; r++ {
		for s := 0; s < 4; s++ {
			if (hand>>(16*s))&0x1FFF&(1<<r) != 0 {
				suit := suitPermutation[count[r]]
				count[r]++
				out |= 1 << (r + 16*suit)
			}
		}
	}
	return out
}

func (t *Tables) buildRankMap() {
	var ranks [7]int
	t.generateRanks(0, 0, 0, &ranks)
}

// generateRanks walks rank multisets depth-first: at each depth pick a rank
// no lower than the previous one, and give the n-th copy of a rank the suit
// suitPermutation[n]. Each multiset is reached exactly once in its canonical
// suit layout.
func (t *Tables) generateRanks(depth, startRank int, current uint64, ranks *[7]int) {
	if depth == 7 {
		id := rankHash(current)
		for t.rankKeys[id] != 0 && t.rankKeys[id] != current {
			id = (id + 1) & rankMapMask
		}
		if t.rankKeys[id] == 0 {
			t.rankMap[id] = scoreSeven(ranks)
			t.rankKeys[id] = current
		}
		return
	}

	for rank := startRank; rank <= 12; rank++ {
		count := 0
		for k := 0; k < depth; k++ {
			if ranks[k] == rank {
				count++
			}
		}
		if count >= 4 {
			continue
		}
		ranks[depth] = rank
		card := uint64(1) << (rank + 16*suitPermutation[count])
		t.generateRanks(depth+1, rank, current|card, ranks)
	}
}

// scoreSeven scores a non-flush 7-card hand from its rank list on the
// floor-based scale. Kicker ranks are normalized against the group ranks so
// the combinatorial indices enumerate a 12-element universe.
func scoreSeven(ranks *[7]int) uint16 {
	var rankCounts [13]int
	rankMask := 0
	for _, r := range ranks {
		rankCounts[r]++
		rankMask |= 1 << r
	}

	quads, trips, highPair, lowPair := -1, -1, -1, -1
	for i := 12; i >= 0; i-- {
		switch rankCounts[i] {
		case 4:
			quads = i
		case 3:
			if trips == -1 {
				trips = i
			} else if highPair == -1 {
				// a second trips counts as the full-house pair
				highPair = i
			}
		case 2:
			if highPair == -1 {
				highPair = i
			} else if lowPair == -1 {
				lowPair = i
			}
		}
	}

	if quads != -1 {
		kicker := -1
		for i := 12; i >= 0; i-- {
			if rankCounts[i] > 0 && i != quads {
				kicker = i
				break
			}
		}
		if kicker > quads {
			kicker--
		}
		return uint16(QuadsFloor + quads*12 + kicker + 1)
	}

	if trips != -1 && highPair != -1 {
		pair := highPair
		if pair > trips {
			pair--
		}
		return uint16(FullHouseFloor + trips*12 + pair + 1)
	}

	for i := 8; i >= 0; i-- {
		if (rankMask>>i)&0x1F == 0x1F {
			return uint16(StraightFloor + i + 2)
		}
	}
	if rankMask&0x100F == 0x100F {
		return uint16(StraightFloor + 1)
	}

	if trips != -1 {
		kickerHigh, kickerLow := -1, -1
		for i := 12; i >= 0; i-- {
			if rankCounts[i] > 0 && i != trips {
				if kickerHigh == -1 {
					kickerHigh = i
				} else {
					kickerLow = i
					break
				}
			}
		}
		if kickerHigh > trips {
			kickerHigh--
		}
		if kickerLow > trips {
			kickerLow--
		}
		return uint16(TripsFloor + trips*66 + nCk[kickerHigh][2] + nCk[kickerLow][1] + 1)
	}

	if highPair != -1 && lowPair != -1 {
		kicker := -1
		for i := 12; i >= 0; i-- {
			if rankCounts[i] > 0 && i != highPair && i != lowPair {
				kicker = i
				break
			}
		}
		if kicker > highPair {
			kicker--
		}
		if kicker > lowPair {
			kicker--
		}
		pairScore := nCk[highPair][2] + nCk[lowPair][1]
		return uint16(TwoPairFloor + pairScore*11 + kicker + 1)
	}

	if highPair != -1 {
		var kickers [3]int
		id := 0
		for i := 12; i >= 0 && id < 3; i-- {
			if rankCounts[i] > 0 && i != highPair {
				kickers[id] = i
				if kickers[id] > highPair {
					kickers[id]--
				}
				id++
			}
		}
		kickerScore := nCk[kickers[0]][3] + nCk[kickers[1]][2] + nCk[kickers[2]][1]
		return uint16(OnePairFloor + highPair*220 + kickerScore + 1)
	}

	var kickers [5]int
	id := 0
	for i := 12; i >= 0 && id < 5; i-- {
		if rankCounts[i] > 0 {
			kickers[id] = i
			id++
		}
	}
	score := nCk[kickers[0]][5] + nCk[kickers[1]][4] + nCk[kickers[2]][3] + nCk[kickers[3]][2] + nCk[kickers[4]][1]
	// The raw combinatorial index spans C(13,5) values including the ten
	// straight-shaped sets, which are never scored here. Compact those
	// holes out so high-card scores stay below the one-pair floor.
	adjust := 0
	for _, s := range straightIndices {
		if score > s {
			adjust++
		} else {
			break
		}
	}
	return uint16(HighCardFloor + score - adjust + 1)
}

// straightIndices holds the combinatorial indices of the ten straight rank
// sets, ascending, used to compact the high-card index space.
var straightIndices = func() [10]int {
	var out [10]int
	idx5 := func(k0, k1, k2, k3, k4 int) int {
		return nCk[k0][5] + nCk[k1][4] + nCk[k2][3] + nCk[k3][2] + nCk[k4][1]
	}
	n := 0
	for high := 4; high <= 12; high++ {
		out[n] = idx5(high, high-1, high-2, high-3, high-4)
		n++
	}
	out[n] = idx5(12, 3, 2, 1, 0) // wheel
	sortInts(out[:])
	return out
}()

func sortInts(v []int) {
	for i := 1; i < len(v); i++ {
		x := v[i]
		j := i - 1
		for j >= 0 && v[j] > x {
			v[j+1] = v[j]
			j--
		}
		v[j+1] = x
	}
}
