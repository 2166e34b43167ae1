package eventimport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ticketeer/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	Heartbeat            time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig(brokers []string, groupID, topic string) *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              brokers,
		GroupID:              groupID,
		Topics:               []string{topic},
		SessionTimeout:       30 * time.Second,
		Heartbeat:            3 * time.Second,
		OffsetOldest:         true,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

// FeedConsumer reads feed records from Kafka and imports them.
type FeedConsumer struct {
	group    sarama.ConsumerGroup
	config   *ConsumerConfig
	importer *Importer
	log      *logger.Logger
	wg       sync.WaitGroup
}

func NewFeedConsumer(config *ConsumerConfig, importer *Importer) (*FeedConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.Heartbeat
	saramaConfig.Consumer.Return.Errors = true
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}
	return NewFeedConsumerWithGroup(group, config, importer), nil
}

// NewFeedConsumerWithGroup wraps an existing consumer group.
func NewFeedConsumerWithGroup(group sarama.ConsumerGroup, config *ConsumerConfig, importer *Importer) *FeedConsumer {
	return &FeedConsumer{group: group, config: config, importer: importer, log: logger.GetDefault()}
}

// Start consumes until ctx is cancelled.
func (c *FeedConsumer) Start(ctx context.Context) {
	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.log.Error("event feed consumer error", "error", err)
		}
	}()
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
	c.log.Info("Event feed consumer started", "topics", c.config.Topics, "group", c.config.GroupID)
}

func (c *FeedConsumer) run(ctx context.Context) {
	handler := &feedHandler{consumer: c}
	for {
		err := c.group.Consume(ctx, c.config.Topics, handler)
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return
		}
		if err != nil {
			c.log.Error("event feed consume failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
}

// Stop closes the group and waits for the loops to exit.
func (c *FeedConsumer) Stop() error {
	err := c.group.Close()
	c.wg.Wait()
	if err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.log.Info("Event feed consumer stopped")
	return nil
}

type feedHandler struct {
	consumer *FeedConsumer
}

func (h *feedHandler) Setup(sarama.ConsumerGroupSession) error { return nil }
func (h *feedHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *feedHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if h.consumer.handleMessage(session.Context(), message) {
				session.MarkMessage(message, "")
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// handleMessage imports one message and reports whether its offset can be
// committed. Undecodable and rejected records are skipped; failed ones are
// retried with backoff and left uncommitted if they keep failing.
func (c *FeedConsumer) handleMessage(ctx context.Context, message *sarama.ConsumerMessage) bool {
	records, err := DecodeRecords(message.Value)
	if err != nil {
		c.log.WarnContext(ctx, "skipping undecodable feed message",
			"topic", message.Topic, "partition", message.Partition, "offset", message.Offset, "error", err)
		return true
	}

	pending := records
	for attempt := 0; ; attempt++ {
		summary := c.importer.Import(ctx, pending)

		var failed []FeedRecord
		for _, res := range summary.Results {
			if res.Status == StatusFailed {
				failed = append(failed, pending[res.Index])
			}
		}
		if len(failed) == 0 {
			return true
		}
		if attempt == c.config.MaxRetries {
			c.log.ErrorContext(ctx, "feed message still failing after retries",
				"offset", message.Offset, "failed_records", len(failed))
			return false
		}

		// Exponential backoff
		delay := c.config.RetryBackoffDuration * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return false
		}
		pending = failed
	}
}
