package stride

import "context"

// ChannelProvider wraps an existing batch channel as a Provider.
// Useful for testing and custom sources that already produce fixes.
type ChannelProvider struct {
	ch   <-chan Batch
	sync bool
}

// NewChannelProvider creates a ChannelProvider that forwards batches from
// the given channel through an internal goroutine for each subscription.
func NewChannelProvider(ch <-chan Batch) *ChannelProvider {
	return &ChannelProvider{ch: ch, sync: false}
}

// NewSyncChannelProvider creates a ChannelProvider that returns the source
// channel directly without an intermediate goroutine.
// Use with Tracker.SyncMode() for deterministic testing.
func NewSyncChannelProvider(ch <-chan Batch) *ChannelProvider {
	return &ChannelProvider{ch: ch, sync: true}
}

// Subscribe returns a channel that emits batches from the wrapped channel.
// The request is ignored.
func (p *ChannelProvider) Subscribe(ctx context.Context, _ Request) (<-chan Batch, error) {
	if p.sync {
		return p.ch, nil
	}

	out := make(chan Batch)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case b, ok := <-p.ch:
				if !ok {
					return
				}
				select {
				case out <- b:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// Ensure ChannelProvider implements Provider.
var _ Provider = (*ChannelProvider)(nil)
