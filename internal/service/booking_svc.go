package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/padel-booking/internal/clock"
	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/events"
	"github.com/you/padel-booking/internal/repository"
)

// BookingStore is the slice of the repository the booking service needs;
// tests substitute an in-memory fake.
type BookingStore interface {
	HasOverlap(ctx context.Context, courtID, date string, start, end domain.TimeOfDay) (bool, error)
	CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ByOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error)
	ApplyPaymentIfNotProcessed(ctx context.Context, orderID, eventID, eventKey string, to domain.BookingStatus) (*domain.Booking, error)
	List(ctx context.Context, page, size int, f repository.BookingFilter) ([]domain.Booking, int64, error)
	ActiveForCourtDate(ctx context.Context, courtID, date string) ([]domain.Booking, error)
}

type CourtStore interface {
	ByID(ctx context.Context, id string) (*domain.Court, error)
}

// EventPublisher is satisfied by mq.Publisher.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BookingSvc struct {
	repo   BookingStore
	courts CourtStore
	pub    EventPublisher
	clk    clock.Clock
}

func NewBookingSvc(r BookingStore, courts CourtStore, pub EventPublisher, clk clock.Clock) *BookingSvc {
	return &BookingSvc{repo: r, courts: courts, pub: pub, clk: clk}
}

const dateLayout = "2006-01-02"

func parseDate(s string) (string, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: bad date %q", domain.ErrValidation, s)
	}
	return d.Format(dateLayout), nil
}

// IsAvailable reports whether [start,end) on the court/date is free of
// pending/confirmed bookings. A store failure is not "taken": it surfaces as
// ErrAvailabilityUnknown so callers can offer a retry instead of showing a
// fully booked day during an outage.
func (s *BookingSvc) IsAvailable(ctx context.Context, courtID, date string, start, end domain.TimeOfDay) (bool, error) {
	if courtID == "" {
		return false, fmt.Errorf("%w: court id required", domain.ErrValidation)
	}
	date, err := parseDate(date)
	if err != nil {
		return false, err
	}
	if end <= start {
		return false, fmt.Errorf("%w: end %s must be after start %s", domain.ErrValidation, end, start)
	}
	taken, err := s.repo.HasOverlap(ctx, courtID, date, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
	}
	return !taken, nil
}

// ListSlots renders the day grid for a court with availability and the price
// each slot would cost. Prices come from the same PriceFor the confirmation
// path uses.
func (s *BookingSvc) ListSlots(ctx context.Context, courtID, date string) ([]domain.Slot, error) {
	date, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	court, err := s.courts.ByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.ActiveForCourtDate(ctx, courtID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAvailabilityUnknown, err)
	}
	slots := domain.SlotGrid()
	for i := range slots {
		slots[i].Price = domain.PriceFor(court.PricePerHour, slots[i].Start)
		slots[i].Available = true
		for j := range active {
			if active[j].Overlaps(slots[i].Start, slots[i].End) {
				slots[i].Available = false
				break
			}
		}
	}
	return slots, nil
}

type BookingRequest struct {
	UserID         string
	CourtID        string
	Date           string
	Start          domain.TimeOfDay
	End            domain.TimeOfDay
	RacketCount    int
	IdempotencyKey string
}

// AttemptBooking is the conflict guard: it re-validates the slot at write time
// and inserts inside one locked transaction, so two users racing for the same
// slot cannot both win. The loser gets ErrSlotConflict, typed, never a string
// to match on.
func (s *BookingSvc) AttemptBooking(ctx context.Context, req BookingRequest) (*domain.Booking, error) {
	if req.UserID == "" || req.CourtID == "" {
		return nil, fmt.Errorf("%w: user and court required", domain.ErrValidation)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.End <= req.Start {
		return nil, fmt.Errorf("%w: end %s must be after start %s", domain.ErrValidation, req.End, req.Start)
	}
	court, err := s.courts.ByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	total, err := domain.QuoteTotal(court.PricePerHour, req.Start, req.RacketCount)
	if err != nil {
		return nil, err
	}

	b := &domain.Booking{
		CourtID:        req.CourtID,
		UserID:         req.UserID,
		Date:           date,
		StartTime:      req.Start.String(),
		EndTime:        req.End.String(),
		Status:         domain.BookingPending,
		RacketCount:    req.RacketCount,
		TotalPrice:     total,
		IdempotencyKey: req.IdempotencyKey,
		OrderID:        s.newOrderID(),
	}
	if err := s.repo.CreateWithNoOverlap(ctx, b); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, events.RKBookingCreated, events.BookingCreated{
		BookingID: b.ID, UserID: b.UserID, CourtID: b.CourtID,
		Date: b.Date, Start: b.StartTime, End: b.EndTime,
		Total: b.TotalPrice, OrderID: b.OrderID,
	})
	return b, nil
}

// newOrderID builds the merchant_oid carried through PayTR. Kept alphanumeric;
// the gateway rejects punctuation in merchant_oid.
func (s *BookingSvc) newOrderID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("booking%d%s", s.clk.Now().UnixMilli(), suffix)
}

func (s *BookingSvc) Confirm(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.repo.UpdateStatus(ctx, id, domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, events.RKBookingConfirmed, events.BookingSimple{BookingID: b.ID})
	return b, nil
}

// Cancel transitions any booking to canceled. Only the owner may cancel via
// the API; callers pass requesterID="" to skip the ownership check (internal
// transitions driven by payment failure).
func (s *BookingSvc) Cancel(ctx context.Context, id, requesterID string) (*domain.Booking, error) {
	if requesterID != "" {
		existing, err := s.repo.ByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing.UserID != requesterID {
			return nil, domain.ErrForbidden
		}
	}
	b, err := s.repo.UpdateStatus(ctx, id, domain.BookingCanceled)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, events.RKBookingCancelled, events.BookingSimple{BookingID: b.ID})
	return b, nil
}

func (s *BookingSvc) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.ByID(ctx, id)
}

func (s *BookingSvc) ByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	return s.repo.ByOrderID(ctx, orderID)
}

func (s *BookingSvc) List(ctx context.Context, page, size int, f repository.BookingFilter) ([]domain.Booking, int64, error) {
	return s.repo.List(ctx, page, size, f)
}
