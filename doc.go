/*
Package stride tracks cumulative travel distance from a subscription of
location fixes.

A Tracker owns one session: whether it is tracking, the distance covered
so far, and the last accepted fix. Start subscribes to a Provider, Stop
cancels the subscription while keeping the session, and Reset clears it.

# Basic Usage

	tracker := stride.New(stride.NewFileProvider("fixes.jsonl")).
	    OnDisplay(func(text string) { fmt.Println(text) })

	if err := tracker.Start(ctx); err != nil {
	    return err
	}
	defer tracker.Stop(ctx)

# Fix Handling

Each fix in a batch is applied in order:

  - With no reference fix, the fix becomes the baseline.
  - While idle, the fix is ignored.
  - Otherwise the great-circle distance to the reference is computed. If it
    exceeds the threshold (0.5 m by default) it is added to the total and
    the fix becomes the new reference; if not, it is dropped as jitter.

The display reads "%.2f meters" after each accepted fix and "0 meters"
after a reset.

# Providers

	NewChannelProvider   wraps an existing channel of batches
	NewFileProvider      tails a newline-delimited log of fixes
	NewReplayProvider    plays back a recording at the request interval

pkg/redis subscribes to a Redis pub/sub channel, and pkg/httpctl accepts
fixes posted over HTTP.

# Observability

Every operation emits capitan signals (TrackerStarted, FixAccepted,
FixDropped, ...) carrying typed fields such as KeySession and KeyDistance.
Hook them to log or export:

	capitan.Hook(stride.FixAccepted, func(_ context.Context, e *capitan.Event) {
	    d, _ := stride.KeyDistance.From(e)
	    log.Printf("moved %s m", d)
	})

Metrics implement MetricsProvider; embed NoOpMetricsProvider to override
only the hooks you need.

# Testing

SyncMode with NewSyncChannelProvider makes delivery deterministic: send a
batch on the channel and call Process to apply it.
*/
package stride
