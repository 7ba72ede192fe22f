package consumer

import (
	"context"
	"log"

	"github.com/you/padel-booking/internal/domain"
	"github.com/you/padel-booking/internal/events"
	"github.com/you/padel-booking/internal/repository"
	"github.com/you/padel-booking/pkg/mq"
)

// PaymentConsumer applies verified payment outcomes to reservations:
// payment.paid confirms, payment.failed cancels. Both paths are idempotent,
// keyed on (order id, routing key), so redelivered events are harmless.
type PaymentConsumer struct {
	repo *repository.BookingRepo
	cons *mq.Consumer
}

func NewPaymentConsumer(repo *repository.BookingRepo, cons *mq.Consumer) *PaymentConsumer {
	return &PaymentConsumer{repo: repo, cons: cons}
}

func (pc *PaymentConsumer) Run(ctx context.Context) error {
	msgs, err := pc.cons.Deliveries(ctx)
	if err != nil {
		return err
	}
	go func() {
		for d := range msgs {
			switch d.RoutingKey {
			case events.RKPaymentPaid:
				evt, err := events.MustUnmarshal[events.PaymentPaid](d.Body)
				if err != nil {
					log.Printf("[booking-consumer] unmarshal error: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				if evt.OrderID == "" {
					log.Printf("[booking-consumer] invalid payment.paid payload")
					_ = d.Ack(false)
					continue
				}
				eventID := evt.OrderID + ":" + events.RKPaymentPaid
				if _, err := pc.repo.ApplyPaymentIfNotProcessed(ctx, evt.OrderID, eventID, events.RKPaymentPaid, domain.BookingConfirmed); err != nil {
					log.Printf("[booking-consumer] confirm error: %v", err)
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			case events.RKPaymentFailed:
				evt, err := events.MustUnmarshal[events.PaymentFailed](d.Body)
				if err != nil {
					log.Printf("[booking-consumer] unmarshal error: %v", err)
					_ = d.Nack(false, false)
					continue
				}
				if evt.OrderID == "" {
					_ = d.Ack(false)
					continue
				}
				eventID := evt.OrderID + ":" + events.RKPaymentFailed
				if _, err := pc.repo.ApplyPaymentIfNotProcessed(ctx, evt.OrderID, eventID, events.RKPaymentFailed, domain.BookingCanceled); err != nil {
					log.Printf("[booking-consumer] cancel error: %v", err)
					_ = d.Nack(false, true)
					continue
				}
				_ = d.Ack(false)
			default:
				_ = d.Ack(false)
			}
		}
	}()
	return nil
}
