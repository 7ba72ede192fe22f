package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/you/padel-booking/internal/clock"
	cons "github.com/you/padel-booking/internal/consumer"
	"github.com/you/padel-booking/internal/events"
	"github.com/you/padel-booking/internal/payment/paytr"
	"github.com/you/padel-booking/internal/repository"
	"github.com/you/padel-booking/internal/service"
	httpx "github.com/you/padel-booking/internal/transport/http"
	"github.com/you/padel-booking/pkg/config"
	"github.com/you/padel-booking/pkg/db"
	"github.com/you/padel-booking/pkg/mq"
	"github.com/you/padel-booking/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()

	cfg := must(config.Load())

	shutdownTracer := obs.InitTracer("padel-api")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracer(ctx)
	}()

	// DB
	gdb := db.Open(cfg.PGDSN)
	userRepo := repository.NewUserRepo(gdb)
	courtRepo := repository.NewCourtRepo(gdb)
	bookingRepo := repository.NewBookingRepo(gdb)
	matchRepo := repository.NewMatchRepo(gdb)
	must(0, userRepo.Migrate())
	must(0, courtRepo.Migrate())
	must(0, bookingRepo.Migrate())
	must(0, matchRepo.Migrate())

	// MQ: booking events out, payment events in both directions
	bookingPub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer bookingPub.Close()
	paymentPub := must(mq.NewPublisher(cfg.RabbitURL, cfg.PaymentExchange))
	defer paymentPub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	paymentCons := must(mq.NewConsumer(cfg.RabbitURL, cfg.PaymentExchange, cfg.PaymentQueue,
		[]string{events.RKPaymentPaid, events.RKPaymentFailed}))
	defer paymentCons.Close()
	pc := cons.NewPaymentConsumer(bookingRepo, paymentCons)
	must(0, pc.Run(ctx))
	log.Println("[api] payment consumer started")

	// Services
	clk := clock.NewSystem()
	bookingSvc := service.NewBookingSvc(bookingRepo, courtRepo, bookingPub, clk)
	courtSvc := service.NewCourtSvc(courtRepo)
	authSvc := service.NewAuthSvc(userRepo, cfg.JWTSecret,
		time.Duration(cfg.JWTExpireMin)*time.Minute,
		time.Duration(cfg.RefreshExpireHr)*time.Hour)
	matchSvc := service.NewMatchSvc(matchRepo, bookingRepo)

	gateway := paytr.NewClient(paytr.Config{
		MerchantID:   cfg.PayTRMerchantID,
		MerchantKey:  cfg.PayTRMerchantKey,
		MerchantSalt: cfg.PayTRMerchantSalt,
		TestMode:     cfg.PayTRTestMode,
		OKURL:        cfg.PublicBaseURL + "/payments/ok",
		FailURL:      cfg.PublicBaseURL + "/payments/fail",
	})

	r := httpx.NewRouter(httpx.Handlers{
		Auth:     httpx.NewAuthHandler(authSvc),
		Courts:   httpx.NewCourtHandler(courtSvc),
		Bookings: httpx.NewBookingHandler(bookingSvc),
		Matches:  httpx.NewMatchHandler(matchSvc),
		Payments: httpx.NewPaymentHandler(gateway, bookingSvc, authSvc, paymentPub),
		Wizard:   httpx.NewWizardHandler(service.NewWizardStore(), bookingSvc),

		JWTSecret: cfg.JWTSecret,
	})

	srv := &http.Server{Addr: cfg.APIHTTPAddr, Handler: r}
	go func() {
		log.Println("[api] listening on", cfg.APIHTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
	log.Println("[api] stopped")
}
