package poker

import rand "math/rand/v2"

// Deck is a 52-card deck with optional dead cards removed, drawing via
// partial Fisher-Yates so repeated deals stay cheap.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a deck excluding the given dead cards.
func NewDeck(rng *rand.Rand, dead ...Card) *Deck {
	deadSet := HandOf(dead...)
	d := &Deck{rng: rng, cards: make([]Card, 0, 52)}
	for c := Card(0); c < 52; c++ {
		if !deadSet.Contains(c) {
			d.cards = append(d.cards, c)
		}
	}
	return d
}

// Remaining returns the number of live cards.
func (d *Deck) Remaining() int { return len(d.cards) }

// Draw deals n distinct cards into out (which must have capacity n) by
// swapping random cards to the front. The deck order is perturbed but no
// cards are consumed; successive Draw calls are independent deals.
func (d *Deck) Draw(n int, out []Card) []Card {
	out = out[:0]
	for i := 0; i < n; i++ {
		j := i + d.rng.IntN(len(d.cards)-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
		out = append(out, d.cards[i])
	}
	return out
}
