package email

import (
	"context"
	"fmt"
	"log"

	"github.com/slauto/shopbooking/internal/kafka"
)

// Sender notifies the shop about accepted booking requests. Delivery is a
// log line for now; the shop inbox integration slots in behind the same
// method.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	subject := fmt.Sprintf("New booking request %s", event.ID)
	body := fmt.Sprintf("%s (%s) requested %q on %s, %s window",
		event.Name, event.Phone, event.ServiceType, event.PreferredDate, event.TimeWindow)
	log.Printf("notify shop: %s - %s", subject, body)
	return nil
}
