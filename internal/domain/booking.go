package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// ActiveStatuses are the statuses that occupy a slot for conflict purposes.
var ActiveStatuses = []BookingStatus{BookingPending, BookingConfirmed}

// Booking rows are never deleted, only status-transitioned, so the audit
// history survives cancellations and failed payments.
type Booking struct {
	ID      string `gorm:"primaryKey"`
	CourtID string `gorm:"index"`
	UserID  string `gorm:"index"`
	// Date is YYYY-MM-DD; StartTime/EndTime are zero-padded HH:MM on that day,
	// so lexicographic comparison in SQL matches clock order.
	Date           string        `gorm:"index"`
	StartTime      string        `gorm:"index"`
	EndTime        string        `gorm:"index"`
	Status         BookingStatus `gorm:"index"`
	RacketCount    int
	TotalPrice     int64
	IdempotencyKey string `gorm:"index"`
	// OrderID is the merchant_oid carried through the payment gateway.
	OrderID   string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps reports whether [start,end) collides with the booking's range.
// Touching ranges (end == other start) are not a collision.
func (b *Booking) Overlaps(start, end TimeOfDay) bool {
	return b.StartTime < end.String() && b.EndTime > start.String()
}

type EventConsumed struct {
	ID          string `gorm:"primaryKey"` // event unique id (payment id or composed key)
	EventKey    string `gorm:"index"`
	ProcessedAt time.Time
}
