package redis

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"github.com/heartmarshall/bizdash-backend/internal/adapter/eventjson"
	"github.com/heartmarshall/bizdash-backend/internal/domain"
)

// Publisher sends event change notices to a Redis pub/sub channel.
type Publisher struct {
	client  *goredis.Client
	channel string
}

// NewPublisher creates a publisher for channel.
func NewPublisher(client *goredis.Client, channel string) *Publisher {
	return &Publisher{client: client, channel: channel}
}

// Publish encodes the change as JSON and publishes it.
func (p *Publisher) Publish(ctx context.Context, change domain.EventChange) error {
	payload, err := eventjson.MarshalChange(change)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", change.Kind, p.channel, err)
	}
	return nil
}

// Subscribe returns a subscription to the change channel. The caller closes it.
func (p *Publisher) Subscribe(ctx context.Context) *goredis.PubSub {
	return p.client.Subscribe(ctx, p.channel)
}
