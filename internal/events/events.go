package events

import (
	"encoding/json"
	"fmt"
)

const (
	RKBookingCreated   = "booking.created"
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCancelled = "booking.cancelled"

	RKPaymentPaid   = "payment.paid"
	RKPaymentFailed = "payment.failed"
)

type BookingCreated struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	CourtID   string `json:"court_id"`
	Date      string `json:"date"`
	Start     string `json:"start"` // HH:MM
	End       string `json:"end"`
	Total     int64  `json:"total"`
	OrderID   string `json:"order_id"`
}

type BookingSimple struct {
	BookingID string `json:"booking_id"`
}

type PaymentPaid struct {
	OrderID     string `json:"order_id"`
	TotalAmount string `json:"total_amount"` // kuruş, as reported by the gateway
	PaymentType string `json:"payment_type,omitempty"`
}

type PaymentFailed struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason,omitempty"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
