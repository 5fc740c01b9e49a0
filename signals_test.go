package stride

import "testing"

func TestTrackerSignals(t *testing.T) {
	if TrackerStarted.Name() != "stride.tracker.started" {
		t.Errorf("expected name 'stride.tracker.started', got %q", TrackerStarted.Name())
	}
	if TrackerStopped.Name() != "stride.tracker.stopped" {
		t.Errorf("expected name 'stride.tracker.stopped', got %q", TrackerStopped.Name())
	}
	if TrackerReset.Name() != "stride.tracker.reset" {
		t.Errorf("expected name 'stride.tracker.reset', got %q", TrackerReset.Name())
	}
	if TrackerStateChanged.Name() != "stride.tracker.state.changed" {
		t.Errorf("expected name 'stride.tracker.state.changed', got %q", TrackerStateChanged.Name())
	}
	if TrackerPermissionDenied.Name() != "stride.tracker.permission.denied" {
		t.Errorf("expected name 'stride.tracker.permission.denied', got %q", TrackerPermissionDenied.Name())
	}
	if TrackerSubscribeFailed.Name() != "stride.tracker.subscribe.failed" {
		t.Errorf("expected name 'stride.tracker.subscribe.failed', got %q", TrackerSubscribeFailed.Name())
	}
}

func TestFixSignals(t *testing.T) {
	if BatchReceived.Name() != "stride.batch.received" {
		t.Errorf("expected name 'stride.batch.received', got %q", BatchReceived.Name())
	}
	if FixBaseline.Name() != "stride.fix.baseline" {
		t.Errorf("expected name 'stride.fix.baseline', got %q", FixBaseline.Name())
	}
	if FixAccepted.Name() != "stride.fix.accepted" {
		t.Errorf("expected name 'stride.fix.accepted', got %q", FixAccepted.Name())
	}
	if FixDropped.Name() != "stride.fix.dropped" {
		t.Errorf("expected name 'stride.fix.dropped', got %q", FixDropped.Name())
	}
	if FixRejected.Name() != "stride.fix.rejected" {
		t.Errorf("expected name 'stride.fix.rejected', got %q", FixRejected.Name())
	}
	if DisplayChanged.Name() != "stride.display.changed" {
		t.Errorf("expected name 'stride.display.changed', got %q", DisplayChanged.Name())
	}
}

func TestProviderSignals(t *testing.T) {
	if ProviderDecodeFailed.Name() != "stride.provider.decode.failed" {
		t.Errorf("expected name 'stride.provider.decode.failed', got %q", ProviderDecodeFailed.Name())
	}
	if ProviderClosed.Name() != "stride.provider.closed" {
		t.Errorf("expected name 'stride.provider.closed', got %q", ProviderClosed.Name())
	}
}
