package stride

import "github.com/zoobzio/capitan"

// Field keys for Tracker events.
var (
	// KeyState is the current state of the Tracker.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeySession is the session identifier.
	KeySession = capitan.NewStringKey("session_id")

	// KeyOldSession is the identifier of the session a reset discarded.
	KeyOldSession = capitan.NewStringKey("old_session_id")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyReason explains why a fix was dropped.
	KeyReason = capitan.NewStringKey("reason")

	// KeyDisplay is the formatted distance text.
	KeyDisplay = capitan.NewStringKey("display")

	// KeyFix is the fix rendered as "lat,lon".
	KeyFix = capitan.NewStringKey("fix")

	// KeyDistance is a distance rendered in meters with two decimals.
	KeyDistance = capitan.NewStringKey("distance")

	// KeyBatchSize is the number of fixes in a batch.
	KeyBatchSize = capitan.NewIntKey("batch_size")

	// KeyInterval is the requested update interval.
	KeyInterval = capitan.NewDurationKey("interval")

	// KeyFastestInterval is the fastest update interval the consumer accepts.
	KeyFastestInterval = capitan.NewDurationKey("fastest_interval")

	// KeyPriority is the requested provider priority.
	KeyPriority = capitan.NewStringKey("priority")

	// KeyProviderType is the type name of the provider implementation.
	KeyProviderType = capitan.NewStringKey("provider_type")
)
