package domain

import "testing"

func TestOverlapsHalfOpen(t *testing.T) {
	b := Booking{StartTime: "10:30", EndTime: "11:30"}

	cases := []struct {
		name       string
		start, end TimeOfDay
		want       bool
	}{
		{"identical", ClockTime(10, 30), ClockTime(11, 30), true},
		{"contained", ClockTime(10, 45), ClockTime(11, 0), true},
		{"overlaps head", ClockTime(10, 0), ClockTime(11, 0), true},
		{"overlaps tail", ClockTime(11, 0), ClockTime(12, 0), true},
		{"touches end", ClockTime(11, 30), ClockTime(12, 30), false},
		{"touches start", ClockTime(9, 30), ClockTime(10, 30), false},
		{"disjoint before", ClockTime(8, 0), ClockTime(9, 0), false},
		{"disjoint after", ClockTime(13, 0), ClockTime(14, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := b.Overlaps(c.start, c.end); got != c.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v", c.start, c.end, got, c.want)
			}
		})
	}
}
