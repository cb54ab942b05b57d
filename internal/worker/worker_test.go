package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautysalon/salon-api/internal/model"
	"github.com/beautysalon/salon-api/pkg/logger"
	"github.com/beautysalon/salon-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("workertest")

type channelBroker struct {
	ch chan []byte
}

func (b *channelBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}
	b.ch <- payload
	return nil
}

func (b *channelBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return b.ch, nil
}

func (b *channelBroker) Close() error {
	close(b.ch)
	return nil
}

type recordingSender struct {
	failures int
	sent     []*model.BookingEvent
}

func (s *recordingSender) SendBookingEvent(event *model.BookingEvent) error {
	if s.failures > 0 {
		s.failures--
		return errors.New("smtp unavailable")
	}
	copied := *event
	s.sent = append(s.sent, &copied)
	return nil
}

func newTestWorker(broker *channelBroker, sender *recordingSender) *Worker {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	w := New(broker, sender, testMetrics, log)
	w.retryBackoff = time.Millisecond
	return w
}

func testEvent() *model.BookingEvent {
	return &model.BookingEvent{
		Type:          model.EventBookingConfirmed,
		BookingID:     uuid.New(),
		CustomerName:  "Minji Kim",
		CustomerEmail: "minji@example.com",
		StartTime:     "10:00",
		Services:      []string{"Haircut"},
		TotalPrice:    15000,
		Status:        model.BookingStatusConfirmed,
		OccurredAt:    time.Now(),
	}
}

func TestWorkerDeliversEvents(t *testing.T) {
	broker := &channelBroker{ch: make(chan []byte, 10)}
	sender := &recordingSender{}
	w := newTestWorker(broker, sender)

	event := testEvent()
	require.NoError(t, broker.Publish(context.Background(), model.BookingEventsChannel, event))
	broker.Close()

	err := w.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, event.BookingID, sender.sent[0].BookingID)
	assert.Equal(t, "minji@example.com", sender.sent[0].CustomerEmail)
}

func TestWorkerRetriesFailedDelivery(t *testing.T) {
	broker := &channelBroker{ch: make(chan []byte, 10)}
	sender := &recordingSender{failures: 2}
	w := newTestWorker(broker, sender)

	require.NoError(t, broker.Publish(context.Background(), model.BookingEventsChannel, testEvent()))
	broker.Close()

	require.NoError(t, w.Run(context.Background()))
	assert.Len(t, sender.sent, 1)
}

func TestWorkerGivesUpAfterMaxAttempts(t *testing.T) {
	broker := &channelBroker{ch: make(chan []byte, 10)}
	sender := &recordingSender{failures: 10}
	w := newTestWorker(broker, sender)

	require.NoError(t, broker.Publish(context.Background(), model.BookingEventsChannel, testEvent()))
	broker.Close()

	require.NoError(t, w.Run(context.Background()))
	assert.Empty(t, sender.sent)
}

func TestWorkerDropsMalformedPayload(t *testing.T) {
	broker := &channelBroker{ch: make(chan []byte, 10)}
	sender := &recordingSender{}
	w := newTestWorker(broker, sender)

	broker.ch <- []byte("{not json")
	broker.Close()

	require.NoError(t, w.Run(context.Background()))
	assert.Empty(t, sender.sent)
}

func TestWorkerStopsOnContextCancel(t *testing.T) {
	broker := &channelBroker{ch: make(chan []byte)}
	sender := &recordingSender{}
	w := newTestWorker(broker, sender)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}
