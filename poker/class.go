package poker

import "fmt"

// Class identifies one of the 169 starting-hand classes: a pair (AA), a
// suited combination (AKs) or an offsuit combination (AKo).
type Class struct {
	High   uint8 // higher rank, 0-12
	Low    uint8 // lower rank, 0-12
	Suited bool
}

// ClassOf maps two hole cards to their starting-hand class.
func ClassOf(a, b Card) Class {
	high, low := a.Rank(), b.Rank()
	if low > high {
		high, low = low, high
	}
	return Class{High: high, Low: low, Suited: high != low && a.Suit() == b.Suit()}
}

// Pair reports whether the class is a pocket pair.
func (c Class) Pair() bool { return c.High == c.Low }

// String renders the class label, e.g. "AA", "AKs" or "T9o".
func (c Class) String() string {
	if c.Pair() {
		return string([]byte{rankChars[c.High], rankChars[c.Low]})
	}
	mod := byte('o')
	if c.Suited {
		mod = 's'
	}
	return string([]byte{rankChars[c.High], rankChars[c.Low], mod})
}

// Combos returns the number of distinct card combinations in the class:
// 6 for pairs, 4 for suited, 12 for offsuit.
func (c Class) Combos() int {
	switch {
	case c.Pair():
		return 6
	case c.Suited:
		return 4
	default:
		return 12
	}
}

// ParseClass parses a class label such as "AA", "AKs" or "T9o".
func ParseClass(s string) (Class, error) {
	if len(s) < 2 || len(s) > 3 {
		return Class{}, fmt.Errorf("class %q: want 2 or 3 characters", s)
	}
	high := rankIndex(s[0])
	low := rankIndex(s[1])
	if high < 0 || low < 0 {
		return Class{}, fmt.Errorf("class %q: unknown rank", s)
	}
	if high < low {
		high, low = low, high
	}
	c := Class{High: uint8(high), Low: uint8(low)}
	if len(s) == 3 {
		switch toLower(s[2]) {
		case 's':
			c.Suited = true
		case 'o':
		default:
			return Class{}, fmt.Errorf("class %q: unknown modifier %q", s, s[2])
		}
	}
	if c.Pair() && c.Suited {
		return Class{}, fmt.Errorf("class %q: pairs cannot be suited", s)
	}
	return c, nil
}

func rankIndex(b byte) int {
	for i := 0; i < len(rankChars); i++ {
		if rankChars[i] == toUpper(b) {
			return i
		}
	}
	return -1
}
