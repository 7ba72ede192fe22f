// Package paytr speaks PayTR's iframe token API and verifies its merchant
// notification callbacks. PayTR has no Go SDK; the wire contract is a form
// POST plus an HMAC-SHA256 token over a fixed field concatenation.
package paytr

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://www.paytr.com"

type Config struct {
	MerchantID   string
	MerchantKey  string
	MerchantSalt string
	TestMode     bool
	OKURL        string
	FailURL      string
	// BaseURL overrides the gateway endpoint (tests point it at a stub).
	BaseURL string
}

type Client struct {
	cfg  Config
	http *http.Client
	base string
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		base: base,
	}
}

type InitRequest struct {
	// Amount is the grand total in whole TRY; the gateway wants kuruş.
	Amount  int64
	OrderID string
	Email   string
	Name    string
	Phone   string
	Address string
	UserIP  string
}

type InitResult struct {
	Token     string
	IframeURL string
}

// InitPayment requests an iframe token. The returned URL is what the client
// renders in a webview; nothing about it implies the payment will succeed.
func (c *Client) InitPayment(ctx context.Context, in InitRequest) (*InitResult, error) {
	if in.Amount <= 0 || in.OrderID == "" || in.Email == "" {
		return nil, errors.New("paytr: amount, order id and email are required")
	}
	userIP := in.UserIP
	if userIP == "" {
		userIP = "127.0.0.1"
	}
	address := in.Address
	if address == "" {
		address = "Alaçatı Padel Club"
	}

	paymentAmount := strconv.FormatInt(in.Amount*100, 10) // kuruş
	basket, err := json.Marshal([][]any{{"Kort Rezervasyonu", fmt.Sprintf("%d TL", in.Amount), 1}})
	if err != nil {
		return nil, err
	}

	const (
		currency       = "TL"
		noInstallment  = "0"
		maxInstallment = "0"
	)
	testMode := "0"
	if c.cfg.TestMode {
		testMode = "1"
	}

	token := c.sign(c.cfg.MerchantID + userIP + in.OrderID + in.Email + paymentAmount +
		string(basket) + noInstallment + maxInstallment + currency + testMode + c.cfg.MerchantSalt)

	form := url.Values{}
	form.Set("merchant_id", c.cfg.MerchantID)
	form.Set("user_ip", userIP)
	form.Set("merchant_oid", in.OrderID)
	form.Set("email", in.Email)
	form.Set("payment_amount", paymentAmount)
	form.Set("paytr_token", token)
	form.Set("user_basket", string(basket))
	form.Set("debug_on", "0")
	form.Set("no_installment", noInstallment)
	form.Set("max_installment", maxInstallment)
	form.Set("user_name", in.Name)
	form.Set("user_address", address)
	form.Set("user_phone", in.Phone)
	form.Set("merchant_ok_url", c.cfg.OKURL)
	form.Set("merchant_fail_url", c.cfg.FailURL)
	form.Set("timeout_limit", "30")
	form.Set("currency", currency)
	form.Set("test_mode", testMode)
	form.Set("lang", "tr")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/odeme/api/get-token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("paytr get-token failed: %s (%d)", string(body), res.StatusCode)
	}

	var out struct {
		Status string `json:"status"`
		Token  string `json:"token"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse get-token response: %w", err)
	}
	if out.Status != "success" {
		return nil, fmt.Errorf("paytr get-token rejected: %s", out.Reason)
	}
	return &InitResult{
		Token:     out.Token,
		IframeURL: c.base + "/odeme/guvenli/" + out.Token,
	}, nil
}

// Notification is a verified merchant callback.
type Notification struct {
	OrderID       string
	Succeeded     bool
	TotalAmount   string
	PaymentType   string
	FailReasonMsg string
}

var ErrBadSignature = errors.New("paytr: callback hash mismatch")

// VerifyCallback authenticates a callback's HMAC before anything else looks at
// it. An unverified callback must never transition a reservation.
func (c *Client) VerifyCallback(form url.Values) (*Notification, error) {
	oid := form.Get("merchant_oid")
	status := form.Get("status")
	total := form.Get("total_amount")
	got := form.Get("hash")

	want := c.sign(oid + c.cfg.MerchantSalt + status + total)
	if !hmac.Equal([]byte(got), []byte(want)) {
		return nil, ErrBadSignature
	}
	return &Notification{
		OrderID:       oid,
		Succeeded:     status == "success",
		TotalAmount:   total,
		PaymentType:   form.Get("payment_type"),
		FailReasonMsg: form.Get("failed_reason_msg"),
	}, nil
}

func (c *Client) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.MerchantKey))
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
