package poker

import "testing"

func TestCardRoundTrip(t *testing.T) {
	tests := []struct {
		in   string
		rank uint8
		suit uint8
	}{
		{"2c", Two, Clubs},
		{"Td", Ten, Diamonds},
		{"Jh", Jack, Hearts},
		{"As", Ace, Spades},
		{"kS", King, Spades}, // case-insensitive
	}
	for _, tt := range tests {
		c, err := ParseCard(tt.in)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tt.in, err)
		}
		if c.Rank() != tt.rank || c.Suit() != tt.suit {
			t.Fatalf("ParseCard(%q) = rank %d suit %d", tt.in, c.Rank(), c.Suit())
		}
		if uint8(c) != tt.rank*4+tt.suit {
			t.Fatalf("ParseCard(%q) encoding = %d, want %d", tt.in, c, tt.rank*4+tt.suit)
		}
	}
}

func TestParseCardRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "A", "Ax", "1c", "AcK"} {
		if _, err := ParseCard(in); err == nil {
			t.Fatalf("ParseCard(%q) should fail", in)
		}
	}
}

func TestParseCardsBoard(t *testing.T) {
	cards, err := ParseCards("AcKdQh")
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 3 {
		t.Fatalf("got %d cards", len(cards))
	}
	if cards[0].String() != "Ac" || cards[2].String() != "Qh" {
		t.Fatalf("unexpected cards %v", cards)
	}
}

func TestHandPackingWindows(t *testing.T) {
	h := HandOf(NewCard(Ace, Spades), NewCard(Two, Clubs), NewCard(Ten, Spades))
	if got := h.SuitMask(Spades); got != (1<<Ace)|(1<<Ten) {
		t.Fatalf("spade mask = %013b", got)
	}
	if got := h.SuitMask(Clubs); got != 1<<Two {
		t.Fatalf("club mask = %013b", got)
	}
	if h.SuitMask(Hearts) != 0 || h.SuitMask(Diamonds) != 0 {
		t.Fatal("unexpected bits outside held suits")
	}
	if h.CountCards() != 3 {
		t.Fatalf("count = %d", h.CountCards())
	}
	if !h.Contains(NewCard(Ace, Spades)) || h.Contains(NewCard(Ace, Clubs)) {
		t.Fatal("Contains mismatch")
	}
}

func TestHandOverlaps(t *testing.T) {
	a := HandOf(NewCard(Ace, Spades), NewCard(King, Spades))
	b := HandOf(NewCard(Ace, Spades), NewCard(Queen, Hearts))
	c := HandOf(NewCard(Two, Clubs), NewCard(Three, Clubs))
	if !a.Overlaps(b) {
		t.Fatal("expected overlap on As")
	}
	if a.Overlaps(c) {
		t.Fatal("unexpected overlap")
	}
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"Ac", "Ad", "AA"},
		{"Ac", "Kc", "AKs"},
		{"Kc", "Ad", "AKo"},
		{"2c", "7h", "72o"},
		{"9s", "Ts", "T9s"},
	}
	for _, tt := range tests {
		a, _ := ParseCard(tt.a)
		b, _ := ParseCard(tt.b)
		if got := ClassOf(a, b).String(); got != tt.want {
			t.Fatalf("ClassOf(%s,%s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClassCombos(t *testing.T) {
	pair, _ := ParseClass("QQ")
	suited, _ := ParseClass("JTs")
	offsuit, _ := ParseClass("JTo")
	if pair.Combos() != 6 || suited.Combos() != 4 || offsuit.Combos() != 12 {
		t.Fatalf("combos = %d/%d/%d", pair.Combos(), suited.Combos(), offsuit.Combos())
	}
}

func TestParseClassRejectsSuitedPair(t *testing.T) {
	if _, err := ParseClass("AAs"); err == nil {
		t.Fatal("AAs should fail")
	}
}
