package httpctl

import (
	"context"
	"errors"
	"sync"

	"github.com/zoobzio/stride"
)

// ErrNotSubscribed is returned by Push when no tracker is subscribed.
var ErrNotSubscribed = errors.New("no active location subscription")

// IngestProvider is a stride.Provider fed by HTTP clients. Batches posted
// to the ingest endpoint are delivered to the active subscription.
type IngestProvider struct {
	mu  sync.Mutex
	out chan stride.Batch
	sub context.Context
}

// NewIngestProvider creates an IngestProvider with no subscription.
func NewIngestProvider() *IngestProvider {
	return &IngestProvider{}
}

// Subscribe opens a new subscription, replacing any previous one.
// Clients choose their own reporting cadence, so the request is ignored.
func (p *IngestProvider) Subscribe(ctx context.Context, _ stride.Request) (<-chan stride.Batch, error) {
	out := make(chan stride.Batch)

	p.mu.Lock()
	p.out = out
	p.sub = ctx
	p.mu.Unlock()

	go func() {
		<-ctx.Done()
		p.mu.Lock()
		if p.out == out {
			p.out = nil
			p.sub = nil
		}
		p.mu.Unlock()
		close(out)
	}()

	return out, nil
}

// Subscribed reports whether a subscription is currently active.
func (p *IngestProvider) Subscribed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.out != nil && p.sub.Err() == nil
}

// Push delivers batch to the active subscription, blocking until the
// subscriber takes it or ctx is done.
func (p *IngestProvider) Push(ctx context.Context, batch stride.Batch) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.out == nil || p.sub.Err() != nil {
		return ErrNotSubscribed
	}

	select {
	case p.out <- batch:
		return nil
	case <-p.sub.Done():
		return ErrNotSubscribed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure IngestProvider implements stride.Provider.
var _ stride.Provider = (*IngestProvider)(nil)
