// Package ranges parses compact starting-hand range notation into weighted
// hole-card combinations.
//
// Grammar (case-insensitive): pairs ("22"), suited ("A2s"), offsuit
// ("A2o"), both ("A2"), plus-expansion ("22+", "A2s+"), per-hand weights
// ("A8s@50%" or "A8s@0.5"), comma-separated lists, and an optional global
// frequency ("22+@70%" when the range is a single specifier).
package ranges

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nickingravallo/TurboFire/poker"
)

// MaxCombos is the number of distinct two-card combinations in a deck.
const MaxCombos = 1326

// Combo is a weighted hole-card combination with A < B by card value.
type Combo struct {
	A, B   poker.Card
	Weight float64
}

// Hand returns the packed two-card hand.
func (c Combo) Hand() poker.Hand {
	return poker.HandOf(c.A, c.B)
}

// Class returns the combo's 169-cell starting-hand class.
func (c Combo) Class() poker.Class {
	return poker.ClassOf(c.A, c.B)
}

// Range is a parsed hand range: the expanded combinations plus an overall
// frequency the whole range is played with.
type Range struct {
	Combos    []Combo
	Frequency float64
}

// ErrEmptyRange is returned when no specifier yields a valid combination.
var ErrEmptyRange = errors.New("range contains no valid hands")

// Parse expands a range string. Malformed specifiers are skipped with a
// warning; a range with zero valid combinations is an error.
func Parse(notation string, logger zerolog.Logger) (*Range, error) {
	r := &Range{Frequency: 1.0}

	notation = strings.TrimSpace(notation)
	if notation != "" && !strings.Contains(notation, ",") {
		// A trailing @N on a single-specifier range is the global
		// frequency, not a per-hand weight.
		if at := strings.LastIndexByte(notation, '@'); at >= 0 {
			if freq, ok := parseWeight(notation[at+1:]); ok {
				r.Frequency = freq
			} else {
				logger.Warn().Str("value", notation[at+1:]).Msg("invalid range frequency, using 100%")
			}
			notation = notation[:at]
		}
	}

	for _, spec := range strings.Split(notation, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		if err := r.addSpec(spec, logger); err != nil {
			logger.Warn().Str("spec", spec).Err(err).Msg("skipping range specifier")
		}
	}

	if len(r.Combos) == 0 {
		return nil, ErrEmptyRange
	}
	return r, nil
}

// addSpec expands a single specifier like "22", "A2s+", or "KJo@25%".
func (r *Range) addSpec(spec string, logger zerolog.Logger) error {
	weight := 1.0
	if at := strings.IndexByte(spec, '@'); at >= 0 {
		w, ok := parseWeight(spec[at+1:])
		if ok {
			weight = w
		} else {
			logger.Warn().Str("spec", spec).Msg("invalid hand weight, using 1.0")
		}
		spec = spec[:at]
	}

	if len(spec) < 2 {
		return fmt.Errorf("specifier too short")
	}
	r1 := rankIndex(spec[0])
	r2 := rankIndex(spec[1])
	if r1 < 0 || r2 < 0 {
		return fmt.Errorf("unknown rank")
	}

	var plus, suited, offsuit bool
	switch last := spec[len(spec)-1]; {
	case len(spec) == 2:
	case last == '+':
		plus = true
	case last == 's' || last == 'S':
		suited = true
	case last == 'o' || last == 'O':
		offsuit = true
	default:
		return fmt.Errorf("unknown modifier %q", last)
	}
	if len(spec) == 4 {
		switch spec[2] {
		case 's', 'S':
			suited = true
		case 'o', 'O':
			offsuit = true
		default:
			return fmt.Errorf("unknown modifier %q", spec[2])
		}
		if !plus {
			return fmt.Errorf("malformed specifier")
		}
	}
	if len(spec) > 4 {
		return fmt.Errorf("specifier too long")
	}

	if r1 == r2 {
		if suited || offsuit {
			return fmt.Errorf("pairs cannot be suited or offsuit")
		}
		if plus {
			for rank := r1; rank <= 12; rank++ {
				r.addPair(uint8(rank), weight)
			}
		} else {
			r.addPair(uint8(r1), weight)
		}
		return nil
	}

	high, low := r1, r2
	if low > high {
		high, low = low, high
	}
	both := !suited && !offsuit

	if plus {
		for rank := low; rank < high; rank++ {
			if suited || both {
				r.addSuited(uint8(high), uint8(rank), weight)
			}
			if offsuit || both {
				r.addOffsuit(uint8(high), uint8(rank), weight)
			}
		}
		return nil
	}
	if suited || both {
		r.addSuited(uint8(high), uint8(low), weight)
	}
	if offsuit || both {
		r.addOffsuit(uint8(high), uint8(low), weight)
	}
	return nil
}

func (r *Range) add(a, b poker.Card, weight float64) {
	if len(r.Combos) >= MaxCombos {
		return
	}
	if b < a {
		a, b = b, a
	}
	r.Combos = append(r.Combos, Combo{A: a, B: b, Weight: weight})
}

// addPair appends the 6 combinations of a pocket pair.
func (r *Range) addPair(rank uint8, weight float64) {
	for s1 := uint8(0); s1 < 4; s1++ {
		for s2 := s1 + 1; s2 < 4; s2++ {
			r.add(poker.NewCard(rank, s1), poker.NewCard(rank, s2), weight)
		}
	}
}

// addSuited appends the 4 suited combinations.
func (r *Range) addSuited(high, low uint8, weight float64) {
	for s := uint8(0); s < 4; s++ {
		r.add(poker.NewCard(high, s), poker.NewCard(low, s), weight)
	}
}

// addOffsuit appends the 12 offsuit combinations.
func (r *Range) addOffsuit(high, low uint8, weight float64) {
	for s1 := uint8(0); s1 < 4; s1++ {
		for s2 := uint8(0); s2 < 4; s2++ {
			if s1 != s2 {
				r.add(poker.NewCard(high, s1), poker.NewCard(low, s2), weight)
			}
		}
	}
}

// Classes returns the distinct starting-hand classes in range order.
func (r *Range) Classes() []poker.Class {
	seen := make(map[poker.Class]bool)
	var out []poker.Class
	for _, c := range r.Combos {
		class := c.Class()
		if !seen[class] {
			seen[class] = true
			out = append(out, class)
		}
	}
	return out
}

// parseWeight accepts "50%", "50" (percent when >1) or "0.5".
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case v > 1.0 && v <= 100.0:
		return v / 100.0, true
	case v > 0.0 && v <= 1.0:
		return v, true
	default:
		return 0, false
	}
}

func rankIndex(b byte) int {
	const rankChars = "23456789TJQKA"
	if b >= 'a' && b <= 'z' {
		b = b - 'a' + 'A'
	}
	return strings.IndexByte(rankChars, b)
}
