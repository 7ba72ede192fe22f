package domain

// The club runs 60-minute slots on a 90-minute grid between opening hours,
// leaving a half-hour gap for court upkeep between sessions:
// 09:00-10:00, 10:30-11:30, ..., 19:30-20:30, 21:00-22:00.
var (
	OpenFrom     = ClockTime(9, 0)
	OpenTo       = ClockTime(22, 0)
	SlotDuration = TimeOfDay(60)
	SlotStep     = TimeOfDay(90)
)

// Slot is a derived, never-persisted candidate interval for one court/date,
// annotated with availability and the price the pricing rule assigns to it.
type Slot struct {
	Start     TimeOfDay `json:"start"`
	End       TimeOfDay `json:"end"`
	Available bool      `json:"available"`
	Price     int64     `json:"price"`
}

// SlotGrid returns the day's candidate slots, unpriced and unchecked.
func SlotGrid() []Slot {
	var out []Slot
	for start := OpenFrom; start+SlotDuration <= OpenTo; start += SlotStep {
		out = append(out, Slot{Start: start, End: start + SlotDuration})
	}
	return out
}
