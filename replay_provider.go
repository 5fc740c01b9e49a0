package stride

import (
	"context"
	"fmt"

	"github.com/zoobzio/clockz"
)

// ReplayProvider plays back a recorded sequence of fixes, one per request
// interval, and closes the channel when the recording is exhausted. The
// first fix is delivered immediately.
type ReplayProvider struct {
	fixes []GeoPoint
	clock clockz.Clock
}

// NewReplayProvider creates a ReplayProvider for the given recording.
func NewReplayProvider(fixes ...GeoPoint) *ReplayProvider {
	return &ReplayProvider{fixes: fixes, clock: clockz.RealClock}
}

// Clock sets a custom clock for pacing.
// Use this with clockz.FakeClock for deterministic tests.
func (p *ReplayProvider) Clock(clock clockz.Clock) *ReplayProvider {
	p.clock = clock
	return p
}

// Subscribe starts playback paced by req.Interval.
func (p *ReplayProvider) Subscribe(ctx context.Context, req Request) (<-chan Batch, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	out := make(chan Batch)
	go func() {
		defer close(out)
		for i, fix := range p.fixes {
			if i > 0 {
				timer := p.clock.NewTimer(req.Interval)
				select {
				case <-timer.C():
				case <-ctx.Done():
					timer.Stop()
					return
				}
			}
			select {
			case out <- Batch{fix}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Ensure ReplayProvider implements Provider.
var _ Provider = (*ReplayProvider)(nil)
