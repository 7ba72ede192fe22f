package notifier

import (
	"fmt"
	"log"
)

// Notifier abstracts the delivery channel (Email/SMS/push later).
type Notifier interface {
	Notify(subject, message string) error
}

// ConsoleNotifier (MVP) logs to the console.
type ConsoleNotifier struct{}

func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{}
}

func (c *ConsoleNotifier) Notify(subject, message string) error {
	log.Printf("[notify] %s :: %s\n", subject, message)
	return nil
}

// HumanSlot renders a booked interval for notification text.
func HumanSlot(date, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date, start, end)
}
