package httpx

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/you/padel-booking/internal/events"
	"github.com/you/padel-booking/internal/payment/paytr"
)

type capturedEvent struct {
	Key     string
	Payload any
}

type capturePublisher struct {
	mu   sync.Mutex
	msgs []capturedEvent
	fail error
}

func (p *capturePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	p.msgs = append(p.msgs, capturedEvent{Key: key, Payload: v})
	return nil
}

func callbackHash(key, salt, oid, status, total string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(oid + salt + status + total))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func newCallbackRig(pub *capturePublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gateway := paytr.NewClient(paytr.Config{
		MerchantID: "123456", MerchantKey: "test-key", MerchantSalt: "test-salt",
	})
	h := NewPaymentHandler(gateway, nil, nil, pub)
	r := gin.New()
	r.POST("/payments/callback", h.Callback)
	return r
}

func postCallback(r *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/callback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCallbackPaid(t *testing.T) {
	pub := &capturePublisher{}
	r := newCallbackRig(pub)

	form := url.Values{}
	form.Set("merchant_oid", "booking42abc")
	form.Set("status", "success")
	form.Set("total_amount", "155000")
	form.Set("payment_type", "card")
	form.Set("hash", callbackHash("test-key", "test-salt", "booking42abc", "success", "155000"))

	rec := postCallback(r, form)
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Fatalf("status=%d body=%q, want 200 OK", rec.Code, rec.Body.String())
	}
	if len(pub.msgs) != 1 || pub.msgs[0].Key != events.RKPaymentPaid {
		t.Fatalf("published %+v, want one payment.paid", pub.msgs)
	}
	paid := pub.msgs[0].Payload.(events.PaymentPaid)
	if paid.OrderID != "booking42abc" || paid.TotalAmount != "155000" {
		t.Errorf("payload = %+v", paid)
	}
}

func TestCallbackFailed(t *testing.T) {
	pub := &capturePublisher{}
	r := newCallbackRig(pub)

	form := url.Values{}
	form.Set("merchant_oid", "booking42abc")
	form.Set("status", "failed")
	form.Set("total_amount", "0")
	form.Set("failed_reason_msg", "card declined")
	form.Set("hash", callbackHash("test-key", "test-salt", "booking42abc", "failed", "0"))

	rec := postCallback(r, form)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	if len(pub.msgs) != 1 || pub.msgs[0].Key != events.RKPaymentFailed {
		t.Fatalf("published %+v, want one payment.failed", pub.msgs)
	}
	failed := pub.msgs[0].Payload.(events.PaymentFailed)
	if failed.Reason != "card declined" {
		t.Errorf("reason = %q", failed.Reason)
	}
}

// A forged callback must be rejected before it can touch any booking.
func TestCallbackBadHash(t *testing.T) {
	pub := &capturePublisher{}
	r := newCallbackRig(pub)

	form := url.Values{}
	form.Set("merchant_oid", "booking42abc")
	form.Set("status", "success")
	form.Set("total_amount", "155000")
	form.Set("hash", "forged")

	rec := postCallback(r, form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
	if len(pub.msgs) != 0 {
		t.Error("forged callback must not publish anything")
	}
}

// If the event cannot be published the outcome would be lost, so the handler
// answers non-OK and PayTR retries the notification later.
func TestCallbackPublishFailure(t *testing.T) {
	pub := &capturePublisher{fail: errors.New("broker down")}
	r := newCallbackRig(pub)

	form := url.Values{}
	form.Set("merchant_oid", "booking42abc")
	form.Set("status", "success")
	form.Set("total_amount", "155000")
	form.Set("hash", callbackHash("test-key", "test-salt", "booking42abc", "success", "155000"))

	rec := postCallback(r, form)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, want 500", rec.Code)
	}
}
