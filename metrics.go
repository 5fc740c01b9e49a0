package stride

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key tracker events.
type MetricsProvider interface {
	// OnStateChange is called when the tracker transitions between states.
	OnStateChange(from, to State)

	// OnBatchReceived is called for every non-empty batch, before any fix is applied.
	OnBatchReceived(size int)

	// OnFixAccepted is called when a fix adds distance. Duration is the time
	// taken to evaluate the fix.
	OnFixAccepted(meters float64, duration time.Duration)

	// OnFixDropped is called when a fix leaves the session unchanged.
	// Reason is one of "jitter", "idle", "stale" or "invalid".
	OnFixDropped(reason string)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)                 {}
func (NoOpMetricsProvider) OnBatchReceived(_ int)                    {}
func (NoOpMetricsProvider) OnFixAccepted(_ float64, _ time.Duration) {}
func (NoOpMetricsProvider) OnFixDropped(_ string)                    {}
