package stride

import (
	"testing"
	"time"
)

func TestNoOpMetricsProvider_DoesNotPanic(_ *testing.T) {
	var m NoOpMetricsProvider

	// These should not panic
	m.OnStateChange(StateIdle, StateTracking)
	m.OnBatchReceived(3)
	m.OnFixAccepted(1.11, time.Millisecond)
	m.OnFixDropped("jitter")
}

// droppedOnly overrides a single hook and inherits the rest.
type droppedOnly struct {
	NoOpMetricsProvider
	reasons []string
}

func (d *droppedOnly) OnFixDropped(reason string) { d.reasons = append(d.reasons, reason) }

func TestNoOpMetricsProvider_Embedding(t *testing.T) {
	m := &droppedOnly{}
	tracker := New(NewSyncChannelProvider(make(chan Batch))).SyncMode().Metrics(m)
	ctx := t.Context()
	if err := tracker.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	tracker.OnFixes(ctx, Batch{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 0}, {Latitude: 91}})

	if len(m.reasons) != 2 || m.reasons[0] != "jitter" || m.reasons[1] != "invalid" {
		t.Errorf("expected [jitter invalid], got %v", m.reasons)
	}
}
