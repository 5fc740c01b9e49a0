package stride

import "github.com/zoobzio/capitan"

// Tracker lifecycle signals.
var (
	// TrackerStarted is emitted when a Tracker subscribes to location updates.
	TrackerStarted = capitan.NewSignal(
		"stride.tracker.started",
		"Tracking started",
	)

	// TrackerStopped is emitted when a Tracker cancels its subscription.
	TrackerStopped = capitan.NewSignal(
		"stride.tracker.stopped",
		"Tracking stopped",
	)

	// TrackerReset is emitted when a Tracker clears its session.
	TrackerReset = capitan.NewSignal(
		"stride.tracker.reset",
		"Tracking session reset",
	)

	// TrackerStateChanged is emitted when a Tracker transitions between states.
	TrackerStateChanged = capitan.NewSignal(
		"stride.tracker.state.changed",
		"Tracker state transition",
	)

	// TrackerPermissionDenied is emitted when Start is refused by the permission gate.
	TrackerPermissionDenied = capitan.NewSignal(
		"stride.tracker.permission.denied",
		"Location permission denied",
	)

	// TrackerSubscribeFailed is emitted when the provider refuses a subscription.
	TrackerSubscribeFailed = capitan.NewSignal(
		"stride.tracker.subscribe.failed",
		"Location subscription failed",
	)
)

// Fix processing signals.
var (
	// BatchReceived is emitted for every non-empty batch handed to the Tracker.
	BatchReceived = capitan.NewSignal(
		"stride.batch.received",
		"Fix batch received",
	)

	// FixBaseline is emitted when a fix becomes the reference point because
	// none existed.
	FixBaseline = capitan.NewSignal(
		"stride.fix.baseline",
		"Baseline fix established",
	)

	// FixAccepted is emitted when a fix moves the total.
	FixAccepted = capitan.NewSignal(
		"stride.fix.accepted",
		"Fix accepted",
	)

	// FixDropped is emitted when a fix is discarded without changing state.
	FixDropped = capitan.NewSignal(
		"stride.fix.dropped",
		"Fix dropped",
	)

	// FixRejected is emitted when a fix fails coordinate validation.
	FixRejected = capitan.NewSignal(
		"stride.fix.rejected",
		"Fix failed validation",
	)

	// DisplayChanged is emitted whenever the formatted distance changes.
	DisplayChanged = capitan.NewSignal(
		"stride.display.changed",
		"Distance display updated",
	)
)

// Provider signals.
var (
	// ProviderDecodeFailed is emitted when a provider cannot decode a payload
	// into fixes. The payload is skipped.
	ProviderDecodeFailed = capitan.NewSignal(
		"stride.provider.decode.failed",
		"Provider payload decode failed",
	)

	// ProviderClosed is emitted when a provider closes its channel while the
	// Tracker is still subscribed.
	ProviderClosed = capitan.NewSignal(
		"stride.provider.closed",
		"Provider subscription closed",
	)
)
