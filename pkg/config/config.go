package config

import (
	"github.com/kelseyhightower/envconfig"
)

type App struct {
	// DB
	PGDSN string `envconfig:"PG_DSN" required:"true"`
	// JWT
	JWTSecret       string `envconfig:"JWT_SECRET" required:"true"`
	JWTExpireMin    int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	RefreshExpireHr int    `envconfig:"REFRESH_EXPIRE_HR" default:"720"`
	// Network
	APIHTTPAddr string `envconfig:"API_HTTP_ADDR" default:":8080"`
	// Base URL PayTR redirects the payer back to after the iframe closes
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// RabbitMQ
	RabbitURL       string `envconfig:"RABBIT_URL" required:"true"`
	BookingExchange string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
	PaymentExchange string `envconfig:"PAYMENT_EXCHANGE" default:"payment.exchange"`
	PaymentQueue    string `envconfig:"BOOKING_PAYMENT_QUEUE" default:"booking.payment.q"`

	// PayTR merchant credentials
	PayTRMerchantID   string `envconfig:"PAYTR_MERCHANT_ID" required:"true"`
	PayTRMerchantKey  string `envconfig:"PAYTR_MERCHANT_KEY" required:"true"`
	PayTRMerchantSalt string `envconfig:"PAYTR_MERCHANT_SALT" required:"true"`
	PayTRTestMode     bool   `envconfig:"PAYTR_TEST_MODE" default:"true"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
