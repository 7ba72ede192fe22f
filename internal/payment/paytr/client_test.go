package paytr

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func testConfig() Config {
	return Config{
		MerchantID:   "123456",
		MerchantKey:  "test-key",
		MerchantSalt: "test-salt",
		TestMode:     true,
		OKURL:        "https://club.example/payments/ok",
		FailURL:      "https://club.example/payments/fail",
	}
}

func hmacB64(key, payload string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestInitPayment(t *testing.T) {
	cfg := testConfig()
	var got url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/odeme/api/get-token" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		got = r.PostForm
		w.Write([]byte(`{"status":"success","token":"tok-abc"}`))
	}))
	defer srv.Close()
	cfg.BaseURL = srv.URL

	c := NewClient(cfg)
	res, err := c.InitPayment(context.Background(), InitRequest{
		Amount:  1550,
		OrderID: "booking1752494400000abcdef123",
		Email:   "player@example.com",
		Name:    "Oyuncu Bir",
		UserIP:  "203.0.113.7",
	})
	if err != nil {
		t.Fatalf("InitPayment: %v", err)
	}
	if res.Token != "tok-abc" {
		t.Errorf("token = %q", res.Token)
	}
	if res.IframeURL != srv.URL+"/odeme/guvenli/tok-abc" {
		t.Errorf("iframe url = %q", res.IframeURL)
	}

	if got.Get("payment_amount") != "155000" {
		t.Errorf("payment_amount = %q, want kuruş", got.Get("payment_amount"))
	}
	if got.Get("currency") != "TL" || got.Get("test_mode") != "1" {
		t.Errorf("currency/test_mode = %q/%q", got.Get("currency"), got.Get("test_mode"))
	}
	if got.Get("merchant_ok_url") != cfg.OKURL || got.Get("merchant_fail_url") != cfg.FailURL {
		t.Error("redirect urls not forwarded")
	}

	// the token covers the exact field concatenation the gateway recomputes
	want := hmacB64(cfg.MerchantKey,
		cfg.MerchantID+"203.0.113.7"+"booking1752494400000abcdef123"+"player@example.com"+
			"155000"+got.Get("user_basket")+"0"+"0"+"TL"+"1"+cfg.MerchantSalt)
	if got.Get("paytr_token") != want {
		t.Errorf("paytr_token = %q, want %q", got.Get("paytr_token"), want)
	}
}

func TestInitPaymentRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"failed","reason":"invalid merchant"}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	c := NewClient(cfg)

	_, err := c.InitPayment(context.Background(), InitRequest{
		Amount: 1000, OrderID: "booking1", Email: "a@b.c",
	})
	if err == nil {
		t.Fatal("want error on rejected token request")
	}
}

func TestInitPaymentValidation(t *testing.T) {
	c := NewClient(testConfig())
	for _, in := range []InitRequest{
		{Amount: 0, OrderID: "x", Email: "a@b.c"},
		{Amount: 100, OrderID: "", Email: "a@b.c"},
		{Amount: 100, OrderID: "x", Email: ""},
	} {
		if _, err := c.InitPayment(context.Background(), in); err == nil {
			t.Errorf("InitPayment(%+v): want error", in)
		}
	}
}

func TestVerifyCallback(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	form := url.Values{}
	form.Set("merchant_oid", "booking1752494400000abcdef123")
	form.Set("status", "success")
	form.Set("total_amount", "155000")
	form.Set("payment_type", "card")
	form.Set("hash", hmacB64(cfg.MerchantKey,
		"booking1752494400000abcdef123"+cfg.MerchantSalt+"success"+"155000"))

	n, err := c.VerifyCallback(form)
	if err != nil {
		t.Fatalf("VerifyCallback: %v", err)
	}
	if !n.Succeeded || n.OrderID != "booking1752494400000abcdef123" || n.TotalAmount != "155000" {
		t.Errorf("notification = %+v", n)
	}
}

func TestVerifyCallbackFailedStatus(t *testing.T) {
	cfg := testConfig()
	c := NewClient(cfg)

	form := url.Values{}
	form.Set("merchant_oid", "booking42")
	form.Set("status", "failed")
	form.Set("total_amount", "0")
	form.Set("failed_reason_msg", "insufficient funds")
	form.Set("hash", hmacB64(cfg.MerchantKey, "booking42"+cfg.MerchantSalt+"failed"+"0"))

	n, err := c.VerifyCallback(form)
	if err != nil {
		t.Fatalf("VerifyCallback: %v", err)
	}
	if n.Succeeded {
		t.Error("failed status reported as success")
	}
	if n.FailReasonMsg != "insufficient funds" {
		t.Errorf("reason = %q", n.FailReasonMsg)
	}
}

func TestVerifyCallbackBadHash(t *testing.T) {
	c := NewClient(testConfig())

	form := url.Values{}
	form.Set("merchant_oid", "booking42")
	form.Set("status", "success")
	form.Set("total_amount", "155000")
	form.Set("hash", "forged")

	if _, err := c.VerifyCallback(form); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("got %v, want ErrBadSignature", err)
	}
}
