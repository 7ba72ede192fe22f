package domain

import (
	"errors"
	"testing"
)

func TestPriceFor(t *testing.T) {
	const base int64 = 1000

	cases := []struct {
		start string
		want  int64
	}{
		{"09:00", 1000},
		{"19:30", 1000},
		{"20:29", 1000},
		{"20:30", 1300}, // threshold is inclusive
		{"21:00", 1300},
		{"23:59", 1300},
	}
	for _, c := range cases {
		start, err := ParseClock(c.start)
		if err != nil {
			t.Fatalf("ParseClock(%q): %v", c.start, err)
		}
		if got := PriceFor(base, start); got != c.want {
			t.Errorf("PriceFor(%d, %s) = %d, want %d", base, c.start, got, c.want)
		}
	}
}

func TestQuoteTotal(t *testing.T) {
	const base int64 = 1000

	// night slot plus two rackets: 1000 + 300 + 2*125
	got, err := QuoteTotal(base, ClockTime(21, 0), 2)
	if err != nil {
		t.Fatalf("QuoteTotal: %v", err)
	}
	if got != 1550 {
		t.Errorf("QuoteTotal = %d, want 1550", got)
	}

	// day slot, no add-ons
	got, err = QuoteTotal(base, ClockTime(10, 30), 0)
	if err != nil {
		t.Fatalf("QuoteTotal: %v", err)
	}
	if got != 1000 {
		t.Errorf("QuoteTotal = %d, want 1000", got)
	}
}

func TestQuoteTotalRacketBounds(t *testing.T) {
	for _, n := range []int{-1, MaxRacketCount + 1} {
		_, err := QuoteTotal(1000, ClockTime(10, 0), n)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("QuoteTotal with %d rackets: got %v, want ErrValidation", n, err)
		}
	}
	if _, err := QuoteTotal(1000, ClockTime(10, 0), MaxRacketCount); err != nil {
		t.Errorf("QuoteTotal with max rackets: %v", err)
	}
}
