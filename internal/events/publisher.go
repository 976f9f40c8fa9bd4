/**
 * @description
 * Check-in event publishing via Watermill.
 * Each check-in result is published on the "assr.checkin" topic, either to a
 * Redis stream (when REDIS_URL is set) or to an in-process channel.
 *
 * @dependencies
 * - github.com/ThreeDotsLabs/watermill
 * - github.com/ThreeDotsLabs/watermill-redisstream
 */

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/assr-bot/assr/internal/models"
	"github.com/redis/go-redis/v9"
)

// CheckInTopic carries one message per account per pass
const CheckInTopic = "assr.checkin"

// Publisher publishes check-in results
type Publisher struct {
	publisher message.Publisher
	topic     string
}

// NewPublisher wraps any Watermill publisher
func NewPublisher(publisher message.Publisher) *Publisher {
	return &Publisher{
		publisher: publisher,
		topic:     CheckInTopic,
	}
}

// NewRedisStreamPublisher publishes to a Redis stream named after the topic
func NewRedisStreamPublisher(client redis.UniversalClient) (*Publisher, error) {
	pub, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: client},
		NewLoggerAdapter(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis stream publisher: %w", err)
	}
	return NewPublisher(pub), nil
}

// NewInMemory returns an in-process pub/sub usable as publisher and subscriber
func NewInMemory() *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
}

// PublishCheckIn publishes one result
func (p *Publisher) PublishCheckIn(ctx context.Context, res models.CheckInResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("run_id", res.RunID.String())
	msg.Metadata.Set("status", string(res.Status))
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Close closes the underlying publisher
func (p *Publisher) Close() error {
	return p.publisher.Close()
}
