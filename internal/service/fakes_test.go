package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/repository"
)

// fakeBookingStore is an in-memory BookingStore with the same conflict and
// idempotency semantics as the Postgres repository.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	consumed map[string]bool
	// failWith makes every query fail, simulating a store outage.
	failWith error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{consumed: make(map[string]bool)}
}

func (f *fakeBookingStore) overlap(courtID, date string, start, end domain.TimeOfDay) *domain.Booking {
	for _, b := range f.bookings {
		if b.CourtID != courtID || b.Date != date {
			continue
		}
		active := b.Status == domain.BookingPending || b.Status == domain.BookingConfirmed
		if active && b.Overlaps(start, end) {
			return b
		}
	}
	return nil
}

func (f *fakeBookingStore) HasOverlap(_ context.Context, courtID, date string, start, end domain.TimeOfDay) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return false, f.failWith
	}
	return f.overlap(courtID, date, start, end) != nil, nil
}

func (f *fakeBookingStore) CreateWithNoOverlap(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if b.IdempotencyKey != "" {
		for _, prior := range f.bookings {
			if prior.UserID == b.UserID && prior.IdempotencyKey == b.IdempotencyKey {
				if prior.CourtID != b.CourtID || prior.Date != b.Date ||
					prior.StartTime != b.StartTime || prior.EndTime != b.EndTime ||
					prior.RacketCount != b.RacketCount {
					return domain.ErrIdempotencyConflict
				}
				*b = *prior
				return nil
			}
		}
	}
	start, _ := domain.ParseClock(b.StartTime)
	end, _ := domain.ParseClock(b.EndTime)
	if f.overlap(b.CourtID, b.Date, start, end) != nil {
		return domain.ErrSlotConflict
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	cp := *b
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeBookingStore) ByID(_ context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingStore) ByOrderID(_ context.Context, orderID string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.OrderID == orderID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b.Status = to
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingStore) ApplyPaymentIfNotProcessed(ctx context.Context, orderID, eventID, _ string, to domain.BookingStatus) (*domain.Booking, error) {
	f.mu.Lock()
	already := f.consumed[eventID]
	f.consumed[eventID] = true
	f.mu.Unlock()
	b, err := f.ByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if already {
		return b, nil
	}
	// same transition guard as the real repo: only pending bookings move
	if b.Status != domain.BookingPending {
		return b, nil
	}
	return f.UpdateStatus(ctx, b.ID, to)
}

func (f *fakeBookingStore) List(_ context.Context, _, _ int, flt repository.BookingFilter) ([]domain.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if flt.UserID != "" && b.UserID != flt.UserID {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookingStore) ActiveForCourtDate(_ context.Context, courtID, date string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	var out []domain.Booking
	for _, b := range f.bookings {
		active := b.Status == domain.BookingPending || b.Status == domain.BookingConfirmed
		if b.CourtID == courtID && b.Date == date && active {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeCourtStore struct {
	courts map[string]*domain.Court
}

func (f *fakeCourtStore) ByID(_ context.Context, id string) (*domain.Court, error) {
	c, ok := f.courts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

type published struct {
	Key     string
	Payload any
}

type fakePublisher struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{Key: key, Payload: v})
	return nil
}

func (f *fakePublisher) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.msgs))
	for i, m := range f.msgs {
		out[i] = m.Key
	}
	return out
}

var errStoreDown = fmt.Errorf("store: connection refused")
