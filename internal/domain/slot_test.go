package domain

import "testing"

func TestSlotGrid(t *testing.T) {
	slots := SlotGrid()
	if len(slots) != 9 {
		t.Fatalf("SlotGrid() returned %d slots, want 9", len(slots))
	}
	if slots[0].Start != ClockTime(9, 0) || slots[0].End != ClockTime(10, 0) {
		t.Errorf("first slot %s-%s, want 09:00-10:00", slots[0].Start, slots[0].End)
	}
	last := slots[len(slots)-1]
	if last.Start != ClockTime(21, 0) || last.End != ClockTime(22, 0) {
		t.Errorf("last slot %s-%s, want 21:00-22:00", last.Start, last.End)
	}
	for i, s := range slots {
		if s.End-s.Start != SlotDuration {
			t.Errorf("slot %d has duration %d", i, s.End-s.Start)
		}
		if s.End > OpenTo {
			t.Errorf("slot %d runs past closing: %s", i, s.End)
		}
		if i > 0 && s.Start-slots[i-1].Start != SlotStep {
			t.Errorf("slot %d not on the %d-minute grid", i, SlotStep)
		}
	}
}

// Only the last slot of the day crosses the night threshold.
func TestSlotGridNightPricing(t *testing.T) {
	var night int
	for _, s := range SlotGrid() {
		if PriceFor(1000, s.Start) != 1000 {
			night++
		}
	}
	if night != 1 {
		t.Errorf("%d slots carry the night rate, want 1", night)
	}
}
