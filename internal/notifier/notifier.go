// Package notifier delivers outbound booking notifications. Delivery is
// fire-and-forget relative to reservation state: the saga logs failures and
// never lets them roll back a committed status.
package notifier

import (
	"github.com/staywell/reservation-service/internal/models"
	"github.com/staywell/reservation-service/pkg/rabbitmq"
)

type Notifier interface {
	SendConfirmation(res *models.Reservation) error
	SendCancellation(res *models.Reservation) error
}

// AMQPNotifier publishes reservation events to the reservations exchange so
// downstream services (mail, SMS) can fan out.
type AMQPNotifier struct {
	pub *rabbitmq.Publisher
}

func NewAMQPNotifier(pub *rabbitmq.Publisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (n *AMQPNotifier) SendConfirmation(res *models.Reservation) error {
	return n.pub.Publish("reservation.confirmed", res)
}

func (n *AMQPNotifier) SendCancellation(res *models.Reservation) error {
	return n.pub.Publish("reservation.cancelled", res)
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) SendConfirmation(*models.Reservation) error { return nil }
func (Nop) SendCancellation(*models.Reservation) error { return nil }
