package httpx

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/repository"
	"github.com/you/padel-booking/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// GET /v1/courts/:id/slots?date=2025-06-01
func (h *BookingHandler) Slots(c *gin.Context) {
	slots, err := h.svc.ListSlots(c, c.Param("id"), c.Query("date"))
	if err != nil {
		respondErr(c, err)
		return
	}
	type slotJSON struct {
		Start     string `json:"start"`
		End       string `json:"end"`
		Available bool   `json:"available"`
		Price     int64  `json:"price"`
	}
	out := make([]slotJSON, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotJSON{Start: s.Start.String(), End: s.End.String(), Available: s.Available, Price: s.Price})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GET /v1/courts/:id/bookings?date=2025-06-01 — the active reservations used
// to render a day's availability.
func (h *BookingHandler) ForCourtDate(c *gin.Context) {
	bookings, _, err := h.svc.List(c, 0, 100, repository.BookingFilter{
		CourtID: c.Param("id"),
		Date:    c.Query("date"),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		CourtID     string `json:"court_id" binding:"required"`
		Date        string `json:"date" binding:"required"` // YYYY-MM-DD
		Start       string `json:"start" binding:"required"`
		End         string `json:"end" binding:"required"`
		RacketCount int    `json:"racket_count"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	start, err := domain.ParseClock(in.Start)
	if err != nil {
		respondErr(c, err)
		return
	}
	end, err := domain.ParseClock(in.End)
	if err != nil {
		respondErr(c, err)
		return
	}
	b, err := h.svc.AttemptBooking(c, service.BookingRequest{
		UserID:         currentUserID(c),
		CourtID:        in.CourtID,
		Date:           in.Date,
		Start:          start,
		End:            end,
		RacketCount:    in.RacketCount,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings?status=&date_from=&date_to=&page=&page_size=
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	bookings, total, err := h.svc.List(c, page-1, size, repository.BookingFilter{
		UserID:   currentUserID(c),
		Status:   domain.BookingStatus(c.Query("status")),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bookings, "total": total})
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	role, _ := c.Get("role")
	if b.UserID != currentUserID(c) && role != string(domain.RoleAdmin) {
		respondErr(c, domain.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	b, err := h.svc.Cancel(c, c.Param("id"), currentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/confirm (OWNER/ADMIN — manual desk confirmation)
func (h *BookingHandler) Confirm(c *gin.Context) {
	b, err := h.svc.Confirm(c, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
