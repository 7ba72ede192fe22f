package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
)

// respondErr maps domain error kinds to HTTP codes. Clients branch on the
// machine-readable "kind", never on message text.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
	case errors.Is(err, domain.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"kind": "slot_conflict", "error": "court is already booked for the selected time slot"})
	case errors.Is(err, domain.ErrIdempotencyConflict):
		c.JSON(http.StatusConflict, gin.H{"kind": "idempotency_conflict", "error": "idempotency key reused with a different request"})
	case errors.Is(err, domain.ErrAvailabilityUnknown):
		c.JSON(http.StatusServiceUnavailable, gin.H{"kind": "availability_unknown", "error": "could not check availability", "retryable": true})
	case errors.Is(err, domain.ErrPayment):
		c.JSON(http.StatusBadGateway, gin.H{"kind": "payment", "error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"kind": "not_found", "error": "not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"kind": "forbidden", "error": "forbidden"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"kind": "internal", "error": err.Error()})
	}
}
