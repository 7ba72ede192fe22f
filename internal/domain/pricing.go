package domain

import "fmt"

// Prices are whole TRY.
const (
	NightSurcharge  int64 = 300
	RacketUnitPrice int64 = 125
	MaxRacketCount        = 4
)

// NightStart is the inclusive threshold for the night rate.
var NightStart = ClockTime(20, 30)

// PriceFor is the single source of truth for the court price of a slot.
// Slot listing and booking confirmation must both go through here so the
// displayed price and the charged price can never disagree.
func PriceFor(baseRate int64, start TimeOfDay) int64 {
	if start >= NightStart {
		return baseRate + NightSurcharge
	}
	return baseRate
}

// QuoteTotal computes the grand total for a booking request.
func QuoteTotal(baseRate int64, start TimeOfDay, racketCount int) (int64, error) {
	if racketCount < 0 || racketCount > MaxRacketCount {
		return 0, fmt.Errorf("%w: racket count %d out of range 0..%d", ErrValidation, racketCount, MaxRacketCount)
	}
	return PriceFor(baseRate, start) + RacketUnitPrice*int64(racketCount), nil
}
