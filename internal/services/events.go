package services

import (
	"encoding/json"
	"log/slog"
)

// Exchange is the AMQP exchange every domain event is published to.
const Exchange = "farmconnect"

// Routing keys of the published events.
const (
	EventListingCreated       = "listing.created"
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Publisher sends an event body to a message broker.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publish sends payload as JSON. A broker failure never fails the operation that
// produced the event; it is only logged.
func publish(mq Publisher, routingKey string, payload any) {
	if mq == nil {
		slog.Debug("message broker disabled, skipping event", "event", routingKey)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal event", "event", routingKey, "error", err)
		return
	}
	if err := mq.Publish(Exchange, routingKey, body); err != nil {
		slog.Warn("failed to publish event", "event", routingKey, "error", err)
		return
	}
	slog.Info("published event", "event", routingKey)
}
