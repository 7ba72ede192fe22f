package httpx

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/events"
	"github.com/you/padel-booking/internal/payment/paytr"
	"github.com/you/padel-booking/internal/service"
)

type PaymentHandler struct {
	gateway  *paytr.Client
	bookings *service.BookingSvc
	auth     *service.AuthSvc
	pub      service.EventPublisher
}

func NewPaymentHandler(gateway *paytr.Client, bookings *service.BookingSvc, auth *service.AuthSvc, pub service.EventPublisher) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, bookings: bookings, auth: auth, pub: pub}
}

// POST /v1/payments/init — create the gateway token for a pending booking.
func (h *PaymentHandler) Init(c *gin.Context) {
	var in struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"kind": "validation", "error": err.Error()})
		return
	}
	b, err := h.bookings.Get(c, in.BookingID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if b.UserID != currentUserID(c) {
		respondErr(c, domain.ErrForbidden)
		return
	}
	if b.Status != domain.BookingPending {
		c.JSON(http.StatusConflict, gin.H{"kind": "validation", "error": "booking is not awaiting payment"})
		return
	}
	u, err := h.auth.Profile(c, b.UserID)
	if err != nil {
		respondErr(c, err)
		return
	}
	res, err := h.gateway.InitPayment(c, paytr.InitRequest{
		Amount:  b.TotalPrice,
		OrderID: b.OrderID,
		Email:   u.Email,
		Name:    u.FullName,
		UserIP:  c.ClientIP(),
	})
	if err != nil {
		respondErr(c, domain.ErrPayment)
		log.Printf("[payment] init error order=%s: %v", b.OrderID, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": res.Token, "iframe_url": res.IframeURL})
}

// POST /payments/callback — PayTR server-to-server notification. This is the
// only place a payment outcome enters the system; the redirect pages below
// carry no state.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	n, err := h.gateway.VerifyCallback(c.Request.PostForm)
	if err != nil {
		log.Printf("[payment] callback hash verification failed: %v", err)
		c.String(http.StatusBadRequest, "hash verification failed")
		return
	}

	var key string
	var payload any
	if n.Succeeded {
		key = events.RKPaymentPaid
		payload = events.PaymentPaid{OrderID: n.OrderID, TotalAmount: n.TotalAmount, PaymentType: n.PaymentType}
	} else {
		key = events.RKPaymentFailed
		payload = events.PaymentFailed{OrderID: n.OrderID, Reason: n.FailReasonMsg}
	}
	// A failed publish means the outcome would be lost; answer non-OK so the
	// gateway retries the notification.
	if err := h.pub.PublishJSON(c, key, payload); err != nil {
		log.Printf("[payment] publish %s error order=%s: %v", key, n.OrderID, err)
		c.String(http.StatusInternalServerError, "retry")
		return
	}
	c.String(http.StatusOK, "OK")
}

// GET /payments/ok and /payments/fail — where PayTR sends the payer's browser
// after the iframe closes. Acknowledgement only; confirmation comes from the
// verified callback.
func (h *PaymentHandler) OKPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<html><body>
	<h3>Ödemeniz alındı</h3>
	<p>order_id: %s</p>
	<p>Rezervasyon durumu sunucu onayı sonrasında güncellenir.</p>
	</body></html>`, c.Query("merchant_oid"))
}

func (h *PaymentHandler) FailPage(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, `<html><body>
	<h3>Ödeme başarısız</h3>
	<p>order_id: %s</p>
	</body></html>`, c.Query("merchant_oid"))
}
