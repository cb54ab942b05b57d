package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/beautysalon/salon-api/internal/email"
	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/pkg/logger"
	"github.com/beautysalon/salon-api/pkg/messaging"
	"github.com/beautysalon/salon-api/pkg/metrics"
)

// Worker consumes booking events from the broker and turns them into
// customer email. Delivery is retried with backoff; an event that still
// fails is logged and dropped rather than blocking the stream.
type Worker struct {
	broker  messaging.Broker
	sender  email.Sender
	metrics *metrics.Metrics
	logger  *logger.Logger

	maxAttempts  int
	retryBackoff time.Duration
}

func New(broker messaging.Broker, sender email.Sender, m *metrics.Metrics, log *logger.Logger) *Worker {
	return &Worker{
		broker:       broker,
		sender:       sender,
		metrics:      m,
		logger:       log,
		maxAttempts:  3,
		retryBackoff: 2 * time.Second,
	}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.broker.Subscribe(ctx, model.BookingEventsChannel)
	if err != nil {
		return err
	}
	w.logger.Info("notification worker started", "channel", model.BookingEventsChannel)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-messages:
			if !ok {
				return nil
			}
			w.handle(ctx, payload)
		}
	}
}

func (w *Worker) handle(ctx context.Context, payload []byte) {
	var event model.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.logger.Error(err, "dropping malformed booking event")
		w.metrics.NotificationsFailed.Inc()
		return
	}

	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if err = w.sender.SendBookingEvent(&event); err == nil {
			w.metrics.NotificationsSent.Inc()
			return
		}
		w.logger.Warn("email delivery failed",
			"booking_id", event.BookingID, "attempt", attempt, "error", err.Error())

		select {
		case <-ctx.Done():
			w.metrics.NotificationsFailed.Inc()
			return
		case <-time.After(w.retryBackoff * time.Duration(attempt)):
		}
	}

	w.metrics.NotificationsFailed.Inc()
	w.logger.Error(err, "giving up on booking notification",
		"booking_id", event.BookingID, "type", event.Type)
}
