package httpx

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/service"
)

// WizardHandler exposes the booking wizard as server-held sessions so the
// mobile client can drive court → date/time → add-ons → payment step by step.
type WizardHandler struct {
	store    *service.WizardStore
	bookings *service.BookingSvc
}

func NewWizardHandler(store *service.WizardStore, bookings *service.BookingSvc) *WizardHandler {
	return &WizardHandler{store: store, bookings: bookings}
}

// POST /v1/booking-sessions
func (h *WizardHandler) Create(c *gin.Context) {
	id, w := h.store.Create(h.bookings, currentUserID(c))
	c.JSON(http.StatusCreated, gin.H{"session_id": id, "state": w.State()})
}

// GET /v1/booking-sessions/:id
func (h *WizardHandler) Get(c *gin.Context) {
	w, err := h.store.Get(c.Param("id"), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardJSON(c.Param("id"), w.View()))
}

// POST /v1/booking-sessions/:id/events
func (h *WizardHandler) Dispatch(c *gin.Context) {
	w, err := h.store.Get(c.Param("id"), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	var in struct {
		Type        string `json:"type" binding:"required"`
		CourtID     string `json:"court_id"`
		Date        string `json:"date"`
		Start       string `json:"start"`
		End         string `json:"end"`
		RacketCount int    `json:"racket_count"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}

	ev, err := h.buildEvent(c, w.View(), in.Type, in.CourtID, in.Date, in.Start, in.End, in.RacketCount)
	if err != nil {
		respondErr(c, err)
		return
	}
	if _, err := w.Apply(c, ev); err != nil {
		// the session body still reflects where the machine landed (a
		// conflict drops it back to time selection), so return it alongside
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, wizardJSON(c.Param("id"), w.View()))
}

func (h *WizardHandler) buildEvent(c *gin.Context, v service.WizardView, typ, courtID, date, start, end string, rackets int) (service.WizardEvent, error) {
	switch typ {
	case "court_chosen":
		return service.CourtChosen{CourtID: courtID}, nil
	case "datetime_chosen":
		st, err := domain.ParseClock(start)
		if err != nil {
			return nil, err
		}
		en, err := domain.ParseClock(end)
		if err != nil {
			return nil, err
		}
		return service.DateTimeChosen{Date: date, Start: st, End: en}, nil
	case "rackets_chosen":
		return service.RacketsChosen{Count: rackets}, nil
	case "pay_requested":
		return service.PayRequested{IdempotencyKey: c.GetHeader("Idempotency-Key")}, nil
	case "payment_confirmed":
		// never taken on the client's word: the wizard completes only once
		// the verified gateway callback has confirmed the stored booking
		if v.BookingID == "" {
			return nil, fmt.Errorf("%w: no reservation to confirm", domain.ErrValidation)
		}
		b, err := h.bookings.Get(c, v.BookingID)
		if err != nil {
			return nil, err
		}
		if b.Status != domain.BookingConfirmed {
			return nil, fmt.Errorf("%w: payment not confirmed yet", domain.ErrValidation)
		}
		return service.PaymentConfirmed{}, nil
	case "payment_failed":
		return service.PaymentFailed{}, nil
	case "back":
		return service.Back{}, nil
	case "abort":
		return service.Abort{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", domain.ErrValidation, typ)
	}
}

func wizardJSON(id string, v service.WizardView) gin.H {
	out := gin.H{
		"session_id":   id,
		"state":        v.State,
		"racket_count": v.RacketCount,
		"quote":        v.Quote,
	}
	if v.CourtID != "" {
		out["court_id"] = v.CourtID
	}
	if v.Date != "" {
		out["date"] = v.Date
	}
	if v.HasTime {
		out["start"] = v.Start.String()
		out["end"] = v.End.String()
	}
	if v.BookingID != "" {
		out["booking_id"] = v.BookingID
		out["order_id"] = v.OrderID
	}
	return out
}
