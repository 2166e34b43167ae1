package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ticketeer/internal/shared/clock"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headerValue(msg *sarama.ProducerMessage, key string) string {
	for _, h := range msg.Headers {
		if string(h.Key) == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisherSendsKeyedMessage(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()

	var sent *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})

	pub := NewKafkaPublisherWithProducer(producer, "ticket-notifications")
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	event := NewTicketEvent(TicketEventPurchased, 11, "ref-11", 5, 42, 10, now)

	require.NoError(t, pub.PublishTicketEvent(context.Background(), event))
	require.NotNil(t, sent)

	assert.Equal(t, "ticket-notifications", sent.Topic)
	key, err := sent.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "42", string(key))
	assert.Equal(t, "TICKET_PURCHASED", headerValue(sent, "event_type"))
	assert.Equal(t, event.ID.String(), headerValue(sent, "event_id"))

	value, err := sent.Value.Encode()
	require.NoError(t, err)
	var decoded TicketEvent
	require.NoError(t, json.Unmarshal(value, &decoded))
	assert.Equal(t, int64(11), decoded.TicketID)
	assert.Equal(t, "ref-11", decoded.TicketReference)
	assert.True(t, now.Equal(decoded.OccurredAt))
}

func TestKafkaPublisherWrapsSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { _ = producer.Close() }()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherWithProducer(producer, "ticket-notifications")
	err := pub.PublishTicketEvent(context.Background(), NewTicketEvent(TicketEventCancelled, 1, "r", 1, 1, 1, time.Now()))

	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestSaramaConfig(t *testing.T) {
	cfg := DefaultKafkaProducerConfig([]string{"localhost:9092"}, "t").SaramaConfig()

	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) PublishTicketEvent(context.Context, *TicketEvent) error {
	p.calls++
	return errors.New("unreachable")
}

func (p *failingPublisher) Close() error { return nil }

func TestNotifierSwallowsPublishErrors(t *testing.T) {
	pub := &failingPublisher{}
	n := NewNotifier(pub, clock.NewFixed(time.Unix(0, 0)))

	n.TicketPurchased(context.Background(), 1, "r", 2, 3, 4)
	n.TicketCancelled(context.Background(), 1, "r", 2, 3, 4)

	assert.Equal(t, 2, pub.calls)
}
