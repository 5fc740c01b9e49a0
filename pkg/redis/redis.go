// Package redis provides a stride.Provider that receives location fixes
// over Redis pub/sub.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/stride"
)

// Provider subscribes to a Redis channel on which each message carries a
// single fix or an array of fixes.
//
// Publishers push fixes with:
//
//	PUBLISH stride:fixes '{"latitude": 51.5, "longitude": -0.12}'
type Provider struct {
	client  *redis.Client
	channel string
	codec   stride.Codec
}

// Option configures a Provider.
type Option func(*Provider)

// WithCodec sets the codec used to decode message payloads. Defaults to JSON.
func WithCodec(codec stride.Codec) Option {
	return func(p *Provider) {
		p.codec = codec
	}
}

// New creates a new Provider for the given pub/sub channel.
func New(client *redis.Client, channel string, opts ...Option) *Provider {
	p := &Provider{
		client:  client,
		channel: channel,
		codec:   stride.JSONCodec{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Subscribe subscribes to the channel and returns the decoded batches.
// Publisher cadence is outside the subscriber's control, so the request
// is ignored. Messages that fail to decode are skipped and reported via
// stride.ProviderDecodeFailed.
func (p *Provider) Subscribe(ctx context.Context, _ stride.Request) (<-chan stride.Batch, error) {
	pubsub := p.client.Subscribe(ctx, p.channel)

	// Verify subscription worked
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	out := make(chan stride.Batch)

	go func() {
		defer close(out)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				batch, err := stride.DecodeBatch(p.codec, []byte(msg.Payload))
				if err != nil {
					capitan.Emit(ctx, stride.ProviderDecodeFailed,
						stride.KeyProviderType.Field("redis"),
						stride.KeyError.Field(err.Error()),
					)
					continue
				}
				if len(batch) == 0 {
					continue
				}

				select {
				case out <- batch:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Ensure Provider implements stride.Provider.
var _ stride.Provider = (*Provider)(nil)
