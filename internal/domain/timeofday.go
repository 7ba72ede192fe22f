package domain

import "fmt"

// TimeOfDay is a wall-clock instant expressed as minutes since midnight.
type TimeOfDay int

func ClockTime(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseClock parses "HH:MM" (24h, zero padded).
func ParseClock(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, fmt.Errorf("%w: bad clock time %q", ErrValidation, s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: clock time out of range %q", ErrValidation, s)
	}
	return ClockTime(h, m), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}
