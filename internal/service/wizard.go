package service

import (
	"context"
	"errors"
	"sync"

	"github.com/you/padel-booking/internal/domain"
)

// The booking wizard mirrors the app's screens: pick a court, pick a
// date/time, pick add-ons, pay. Every transition is a total function of
// (state, event), and events arriving on a terminal state are no-ops. A
// per-session mutex serializes Apply, so concurrent dispatches on the same
// session (a double-tap retry) apply one at a time.

type WizardState string

const (
	StateCourtSelection    WizardState = "court_selection"
	StateDateTimeSelection WizardState = "datetime_selection"
	StateAddOns            WizardState = "addons"
	StatePayment           WizardState = "payment"
	StateComplete          WizardState = "complete"
	StateCanceled          WizardState = "canceled"
)

func (s WizardState) Terminal() bool {
	return s == StateComplete || s == StateCanceled
}

type WizardEvent interface{ isWizardEvent() }

type CourtChosen struct{ CourtID string }

type DateTimeChosen struct {
	Date  string
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

type RacketsChosen struct{ Count int }

// PayRequested creates the pending reservation so the gateway has an order id.
type PayRequested struct{ IdempotencyKey string }

// PaymentConfirmed may only be dispatched once the verified gateway callback
// has landed; client-side navigation is not a confirmation.
type PaymentConfirmed struct{}

type PaymentFailed struct{}

type Back struct{}

type Abort struct{}

func (CourtChosen) isWizardEvent()      {}
func (DateTimeChosen) isWizardEvent()   {}
func (RacketsChosen) isWizardEvent()    {}
func (PayRequested) isWizardEvent()     {}
func (PaymentConfirmed) isWizardEvent() {}
func (PaymentFailed) isWizardEvent()    {}
func (Back) isWizardEvent()             {}
func (Abort) isWizardEvent()            {}

type Wizard struct {
	bookings *BookingSvc

	mu    sync.Mutex
	state WizardState

	UserID      string
	Court       *domain.Court
	Date        string
	Start       domain.TimeOfDay
	End         domain.TimeOfDay
	HasTime     bool
	RacketCount int
	Quote       int64
	Booking     *domain.Booking
}

func NewWizard(bookings *BookingSvc, userID string) *Wizard {
	return &Wizard{bookings: bookings, state: StateCourtSelection, UserID: userID}
}

func (w *Wizard) State() WizardState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// WizardView is a consistent copy of a session for rendering; readers never
// touch the live fields while another request is mid-transition.
type WizardView struct {
	State       WizardState
	CourtID     string
	Date        string
	Start       domain.TimeOfDay
	End         domain.TimeOfDay
	HasTime     bool
	RacketCount int
	Quote       int64
	BookingID   string
	OrderID     string
}

func (w *Wizard) View() WizardView {
	w.mu.Lock()
	defer w.mu.Unlock()
	v := WizardView{
		State:       w.state,
		Date:        w.Date,
		Start:       w.Start,
		End:         w.End,
		HasTime:     w.HasTime,
		RacketCount: w.RacketCount,
		Quote:       w.Quote,
	}
	if w.Court != nil {
		v.CourtID = w.Court.ID
	}
	if w.Booking != nil {
		v.BookingID = w.Booking.ID
		v.OrderID = w.Booking.OrderID
	}
	return v
}

// Apply advances the machine. The returned state is the post-event state; on
// error the machine stays put except for the conflict case, which sends the
// user back to time selection with the stale choice cleared.
func (w *Wizard) Apply(ctx context.Context, ev WizardEvent) (WizardState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state.Terminal() {
		return w.state, nil
	}

	switch e := ev.(type) {
	case Abort:
		w.state = StateCanceled
		return w.state, nil
	case Back:
		w.back()
		return w.state, nil
	case CourtChosen:
		return w.applyCourtChosen(ctx, e)
	case DateTimeChosen:
		return w.applyDateTimeChosen(ctx, e)
	case RacketsChosen:
		return w.applyRacketsChosen(e)
	case PayRequested:
		return w.applyPayRequested(ctx, e)
	case PaymentConfirmed:
		return w.applyPaymentConfirmed()
	case PaymentFailed:
		// terminal for this attempt only; stay in Payment for a retry
		return w.state, nil
	default:
		return w.state, nil
	}
}

// back returns to the predecessor, clearing the selections made in the state
// being left.
func (w *Wizard) back() {
	switch w.state {
	case StateDateTimeSelection:
		w.Date, w.Start, w.End, w.HasTime = "", 0, 0, false
		w.state = StateCourtSelection
		w.Court = nil
	case StateAddOns:
		w.RacketCount = 0
		w.state = StateDateTimeSelection
	case StatePayment:
		w.Quote = 0
		w.state = StateAddOns
	}
}

func (w *Wizard) applyCourtChosen(ctx context.Context, e CourtChosen) (WizardState, error) {
	if w.state != StateCourtSelection {
		return w.state, nil
	}
	court, err := w.bookings.courts.ByID(ctx, e.CourtID)
	if err != nil {
		return w.state, err
	}
	w.Court = court
	w.state = StateDateTimeSelection
	return w.state, nil
}

func (w *Wizard) applyDateTimeChosen(ctx context.Context, e DateTimeChosen) (WizardState, error) {
	if w.state != StateDateTimeSelection {
		return w.state, nil
	}
	// the guard: both chosen and still free at the moment of transition
	free, err := w.bookings.IsAvailable(ctx, w.Court.ID, e.Date, e.Start, e.End)
	if err != nil {
		return w.state, err
	}
	if !free {
		return w.state, domain.ErrSlotConflict
	}
	w.Date, w.Start, w.End, w.HasTime = e.Date, e.Start, e.End, true
	w.state = StateAddOns
	return w.state, nil
}

func (w *Wizard) applyRacketsChosen(e RacketsChosen) (WizardState, error) {
	if w.state != StateAddOns {
		return w.state, nil
	}
	quote, err := domain.QuoteTotal(w.Court.PricePerHour, w.Start, e.Count)
	if err != nil {
		return w.state, err
	}
	w.RacketCount = e.Count
	w.Quote = quote
	w.state = StatePayment
	return w.state, nil
}

func (w *Wizard) applyPayRequested(ctx context.Context, e PayRequested) (WizardState, error) {
	if w.state != StatePayment {
		return w.state, nil
	}
	if w.Booking != nil {
		return w.state, nil // already created; gateway retry reuses it
	}
	b, err := w.bookings.AttemptBooking(ctx, BookingRequest{
		UserID:         w.UserID,
		CourtID:        w.Court.ID,
		Date:           w.Date,
		Start:          w.Start,
		End:            w.End,
		RacketCount:    w.RacketCount,
		IdempotencyKey: e.IdempotencyKey,
	})
	if err != nil {
		// the slot went to someone else between display and confirmation:
		// back to time selection with the stale time cleared
		if errors.Is(err, domain.ErrSlotConflict) {
			w.Start, w.End, w.HasTime = 0, 0, false
			w.Quote = 0
			w.RacketCount = 0
			w.state = StateDateTimeSelection
		}
		return w.state, err
	}
	w.Booking = b
	return w.state, nil
}

func (w *Wizard) applyPaymentConfirmed() (WizardState, error) {
	if w.state != StatePayment || w.Booking == nil {
		return w.state, nil
	}
	w.state = StateComplete
	return w.state, nil
}
