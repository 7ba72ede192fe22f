package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/padel-booking/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{}, &domain.EventConsumed{})
}

// HasOverlap reports whether any pending/confirmed booking on the court/date
// collides with [start,end). Half-open: end == other start is no collision.
// Store errors are returned as-is; the caller decides how to surface them.
func (r *BookingRepo) HasOverlap(ctx context.Context, courtID, date string, start, end domain.TimeOfDay) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("court_id = ? AND date = ? AND status IN ?", courtID, date, domain.ActiveStatuses).
		Where("start_time < ? AND end_time > ?", end.String(), start.String()).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("overlap query: %w", err)
	}
	return n > 0, nil
}

// CreateWithNoOverlap runs in a txn and prevents overlapping bookings by
// locking candidate rows, closing the check-then-act window between the slot
// the user saw and the insert. An idempotency-key replay returns the prior
// booking instead of inserting a duplicate.
func (r *BookingRepo) CreateWithNoOverlap(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if b.IdempotencyKey != "" {
			var prior domain.Booking
			err := tx.Where("user_id = ? AND idempotency_key = ?", b.UserID, b.IdempotencyKey).
				Take(&prior).Error
			switch {
			case err == nil:
				if prior.CourtID != b.CourtID || prior.Date != b.Date ||
					prior.StartTime != b.StartTime || prior.EndTime != b.EndTime ||
					prior.RacketCount != b.RacketCount {
					return domain.ErrIdempotencyConflict
				}
				*b = prior
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("court_id = ? AND date = ? AND status IN ?", b.CourtID, b.Date, domain.ActiveStatuses).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Take(&existing).Error
		if err == nil {
			return domain.ErrSlotConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, to domain.BookingStatus) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).Begin()
	if err := tx.First(&b, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	b.Status = to
	if err := tx.Save(&b).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	return &b, tx.Commit().Error
}

// ApplyPaymentIfNotProcessed transitions a booking on a payment event exactly
// once. Replayed events (same eventID) return the current row untouched. Only
// pending bookings transition: a late payment event on a canceled booking must
// not resurrect it, since its slot may already be rebooked. The event is still
// recorded as consumed.
func (r *BookingRepo) ApplyPaymentIfNotProcessed(ctx context.Context, orderID, eventID, eventKey string, to domain.BookingStatus) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).Begin()

	var seen int64
	if err := tx.Model(&domain.EventConsumed{}).Where("id = ?", eventID).Count(&seen).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if seen > 0 {
		if err := tx.First(&b, "order_id = ?", orderID).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		tx.Commit()
		return &b, nil
	}

	if err := tx.First(&b, "order_id = ?", orderID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if b.Status == domain.BookingPending && b.Status != to {
		b.Status = to
		if err := tx.Save(&b).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	rec := domain.EventConsumed{ID: eventID, EventKey: eventKey, ProcessedAt: time.Now().UTC()}
	if err := tx.Create(&rec).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	return &b, tx.Commit().Error
}

type BookingFilter struct {
	UserID   string
	CourtID  string
	Date     string
	Status   domain.BookingStatus
	DateFrom string
	DateTo   string
}

func (r *BookingRepo) List(ctx context.Context, page, size int, f BookingFilter) ([]domain.Booking, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.UserID != "" {
		qb = qb.Where("user_id = ?", f.UserID)
	}
	if f.CourtID != "" {
		qb = qb.Where("court_id = ?", f.CourtID)
	}
	if f.Date != "" {
		qb = qb.Where("date = ?", f.Date)
	}
	if f.Status != "" {
		qb = qb.Where("status = ?", f.Status)
	}
	if f.DateFrom != "" {
		qb = qb.Where("date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		qb = qb.Where("date <= ?", f.DateTo)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Booking
	if err := qb.Order("date ASC, start_time ASC").Limit(size).Offset(page * size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ActiveForCourtDate returns the pending/confirmed bookings used to render a
// day's availability, ordered by start.
func (r *BookingRepo) ActiveForCourtDate(ctx context.Context, courtID, date string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND status IN ?", courtID, date, domain.ActiveStatuses).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("active bookings query: %w", err)
	}
	return out, nil
}
