package stride

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Provider produces location fixes for a subscription.
type Provider interface {
	// Subscribe begins delivering fixes according to req and returns a
	// channel of batches. Cancelling ctx ends the subscription; the
	// provider then closes the channel. Batches already in flight may
	// still be delivered after cancellation.
	Subscribe(ctx context.Context, req Request) (<-chan Batch, error)
}

// Tracker accumulates travel distance from a location subscription.
//
// All operations are serialized, so Start, Stop, Reset and OnFixes behave
// as if they ran on a single event thread. Notices, signals, metrics and
// the display callback are dispatched after the operation completes, so
// they may safely call back into the Tracker.
type Tracker struct {
	provider  Provider
	request   Request
	threshold float64
	gate      PermissionGate
	notifier  Notifier
	clock     clockz.Clock
	metrics   MetricsProvider
	onDisplay func(string)
	syncMode  bool
	failures  *failureRing

	mu      sync.Mutex
	state   State
	total   float64
	last    *GeoPoint
	display string
	session string
	track   orb.LineString
	lastErr error
	cancel  context.CancelFunc
	gen     uint64

	// For sync mode: channel of the current subscription
	changes    <-chan Batch
	changesGen uint64
}

// New creates an idle Tracker that will subscribe to provider on Start.
//
// Example:
//
//	tracker := stride.New(provider).
//	    Request(stride.DefaultRequest()).
//	    OnDisplay(func(text string) { label.SetText(text) })
//
//	if err := tracker.Start(ctx); errors.Is(err, stride.ErrPermissionDenied) {
//	    // still idle; the notifier has told the user
//	}
func New(provider Provider) *Tracker {
	return &Tracker{
		provider:  provider,
		request:   DefaultRequest(),
		threshold: DefaultThreshold,
		gate:      AlwaysGranted{},
		notifier:  noopNotifier{},
		clock:     clockz.RealClock,
		metrics:   NoOpMetricsProvider{},
		display:   ResetDisplay,
		session:   uuid.NewString(),
	}
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Request sets the subscription configuration passed to the provider.
// Default: DefaultRequest(). Must be called before Start().
func (t *Tracker) Request(req Request) *Tracker {
	t.request = req
	return t
}

// Threshold sets the minimum movement in meters for a fix to count.
// Default: 0.5. Must be called before Start().
func (t *Tracker) Threshold(meters float64) *Tracker {
	t.threshold = meters
	return t
}

// Permission sets the gate consulted by Start.
// Default: AlwaysGranted. Must be called before Start().
func (t *Tracker) Permission(gate PermissionGate) *Tracker {
	t.gate = gate
	return t
}

// Notifier sets the sink for user-visible notices.
// Must be called before Start().
func (t *Tracker) Notifier(n Notifier) *Tracker {
	t.notifier = n
	return t
}

// OnDisplay sets a callback invoked with the new text whenever the
// displayed distance changes. Must be called before Start().
func (t *Tracker) OnDisplay(fn func(string)) *Tracker {
	t.onDisplay = fn
	return t
}

// Clock sets a custom clock for time operations.
// Must be called before Start().
func (t *Tracker) Clock(clock clockz.Clock) *Tracker {
	t.clock = clock
	return t
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Start().
func (t *Tracker) Metrics(provider MetricsProvider) *Tracker {
	t.metrics = provider
	return t
}

// SyncMode disables the delivery goroutine. Batches are only applied when
// Process() is called, making tests deterministic. Must be called before Start().
func (t *Tracker) SyncMode() *Tracker {
	t.syncMode = true
	return t
}

// ErrorHistorySize sets the number of recent failures to retain.
// Use 0 (default) to only retain the most recent error via LastError().
// Must be called before Start().
func (t *Tracker) ErrorHistorySize(n int) *Tracker {
	t.failures = newFailureRing(n)
	return t
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the Tracker.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Distance returns the accumulated distance in meters.
func (t *Tracker) Distance() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// LastFix returns the current reference fix and true, or the zero value
// and false if no baseline has been established.
func (t *Tracker) LastFix() (GeoPoint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return GeoPoint{}, false
	}
	return *t.last, true
}

// Display returns the formatted distance text.
func (t *Tracker) Display() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.display
}

// SessionID returns the identifier of the current session. Reset starts a
// new session.
func (t *Tracker) SessionID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// LastError returns the last error encountered, or nil if no error occurred.
func (t *Tracker) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

// ErrorHistory returns the recent failures, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (t *Tracker) ErrorHistory() []Failure {
	return t.failures.all()
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// Start subscribes to location updates and begins tracking. It is a no-op
// while already tracking.
//
// If the permission gate refuses, the Tracker stays idle, a notice is
// produced, and ErrPermissionDenied is returned. If the provider refuses
// the subscription, the wrapped error is returned and the Tracker stays idle.
//
// The subscription outlives ctx; it ends on Stop or Reset.
func (t *Tracker) Start(ctx context.Context) error {
	fx, err := t.start(ctx)
	t.dispatch(fx)
	return err
}

func (t *Tracker) start(ctx context.Context) (effects, error) {
	var fx effects

	t.mu.Lock()
	if t.state == StateTracking {
		t.mu.Unlock()
		return fx, nil
	}
	gate, session := t.gate, t.session
	t.mu.Unlock()

	// The gate may wait on the user, so it is consulted without holding mu.
	if !gate.Granted(ctx) {
		granted, err := gate.Request(ctx)
		if err != nil || !granted {
			denied := ErrPermissionDenied
			if err != nil {
				denied = fmt.Errorf("%w: %w", ErrPermissionDenied, err)
			}
			t.mu.Lock()
			t.fail("permission", denied)
			t.mu.Unlock()
			fx.add(func() {
				capitan.Emit(ctx, TrackerPermissionDenied, KeySession.Field(session))
			})
			fx.add(func() { t.notifier.Notify(ctx, NoticePermissionDenied) })
			return fx, denied
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// Another Start may have won while permission was pending.
	if t.state == StateTracking {
		return fx, nil
	}
	session = t.session

	req := t.request
	if err := req.Validate(); err != nil {
		err = fmt.Errorf("invalid location request: %w", err)
		t.fail("request", err)
		return fx, err
	}

	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	changes, err := t.provider.Subscribe(subCtx, req)
	if err != nil {
		cancel()
		err = fmt.Errorf("failed to subscribe to location updates: %w", err)
		t.fail("subscribe", err)
		msg := err.Error()
		fx.add(func() {
			capitan.Emit(ctx, TrackerSubscribeFailed,
				KeySession.Field(session),
				KeyError.Field(msg),
			)
		})
		return fx, err
	}

	t.cancel = cancel
	t.gen++
	gen := t.gen
	t.transition(ctx, &fx, StateTracking)
	providerType := fmt.Sprintf("%T", t.provider)
	fx.add(func() {
		capitan.Emit(ctx, TrackerStarted,
			KeySession.Field(session),
			KeyProviderType.Field(providerType),
			KeyInterval.Field(req.Interval),
			KeyFastestInterval.Field(req.FastestInterval),
			KeyPriority.Field(req.Priority.String()),
		)
	})
	fx.add(func() { t.notifier.Notify(ctx, NoticeStarted) })

	if t.syncMode {
		t.changes = changes
		t.changesGen = gen
	} else {
		go t.pump(subCtx, changes, gen)
	}
	return fx, nil
}

// Stop cancels the subscription and pauses tracking. Distance and the
// reference fix are kept. It is a no-op while idle.
func (t *Tracker) Stop(ctx context.Context) {
	t.mu.Lock()
	var fx effects
	if t.state == StateTracking {
		t.unsubscribe()
		t.transition(ctx, &fx, StateIdle)
		session, total := t.session, t.total
		fx.add(func() {
			capitan.Emit(ctx, TrackerStopped,
				KeySession.Field(session),
				KeyDistance.Field(fmt.Sprintf("%.2f", total)),
			)
		})
		fx.add(func() { t.notifier.Notify(ctx, NoticeStopped) })
	}
	t.mu.Unlock()
	t.dispatch(fx)
}

// Reset cancels any subscription, returns to idle, and clears the session.
// The display becomes ResetDisplay and a new session ID is assigned. Safe
// to call in any state.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	var fx effects
	t.unsubscribe()
	t.transition(ctx, &fx, StateIdle)

	previous := t.session
	t.total = 0
	t.last = nil
	t.track = nil
	t.session = uuid.NewString()
	t.setDisplay(ctx, &fx, ResetDisplay)

	session := t.session
	fx.add(func() {
		capitan.Emit(ctx, TrackerReset,
			KeySession.Field(session),
			KeyOldSession.Field(previous),
		)
	})
	fx.add(func() { t.notifier.Notify(ctx, NoticeReset) })
	t.mu.Unlock()
	t.dispatch(fx)
}

// OnFixes applies a batch of fixes in order. Nil and empty batches are
// ignored.
//
// For each fix: with no reference fix it becomes the baseline; otherwise
// it is ignored unless tracking; otherwise it is accepted only if it is
// more than the threshold away from the reference, in which case the
// distance is added and it becomes the new reference.
func (t *Tracker) OnFixes(ctx context.Context, batch Batch) {
	t.deliver(ctx, batch, 0)
}

// deliver applies batch on behalf of subscription gen. A batch from a
// subscription that has since been replaced is treated as if the Tracker
// were idle. Zero means the caller is not a subscription.
func (t *Tracker) deliver(ctx context.Context, batch Batch, gen uint64) {
	if len(batch) == 0 {
		return
	}

	t.mu.Lock()
	var fx effects
	size, session, state := len(batch), t.session, t.state
	fx.add(func() {
		capitan.Emit(ctx, BatchReceived,
			KeySession.Field(session),
			KeyState.Field(state.String()),
			KeyBatchSize.Field(size),
		)
		t.metrics.OnBatchReceived(size)
	})

	var skip string
	switch {
	case t.state != StateTracking:
		skip = "idle"
	case gen != 0 && gen != t.gen:
		skip = "stale"
	}
	for _, fix := range batch {
		t.applyFix(ctx, &fx, fix, skip)
	}
	t.mu.Unlock()
	t.dispatch(fx)
}

// Process applies the next pending batch from the subscription.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no batch is available or the channel is closed.
//
// Stop and Reset do not detach the channel, so batches the provider
// already queued can still be drained, exactly as a late delivery would be.
func (t *Tracker) Process(ctx context.Context) bool {
	if !t.syncMode {
		return false
	}

	t.mu.Lock()
	changes, gen := t.changes, t.changesGen
	t.mu.Unlock()
	if changes == nil {
		return false
	}

	select {
	case batch, ok := <-changes:
		if !ok {
			t.mu.Lock()
			if t.changes == changes {
				t.changes = nil
			}
			t.mu.Unlock()
			return false
		}
		t.deliver(ctx, batch, gen)
		return true
	default:
		return false
	}
}

// applyFix runs the state machine for a single fix. A non-empty skip is
// the reason the fix may only establish a baseline. Caller holds mu.
func (t *Tracker) applyFix(ctx context.Context, fx *effects, fix GeoPoint, skip string) {
	start := t.clock.Now()
	session, where := t.session, fix.String()

	if err := fix.Validate(); err != nil {
		t.fail("validate", err)
		msg := err.Error()
		fx.add(func() {
			capitan.Emit(ctx, FixRejected,
				KeySession.Field(session),
				KeyFix.Field(where),
				KeyError.Field(msg),
			)
			t.metrics.OnFixDropped("invalid")
		})
		return
	}

	if t.last == nil {
		t.last = &fix
		t.track = append(t.track, fix.Point())
		fx.add(func() {
			capitan.Emit(ctx, FixBaseline,
				KeySession.Field(session),
				KeyFix.Field(where),
			)
		})
		return
	}

	if skip != "" {
		t.drop(ctx, fx, fix, skip, 0)
		return
	}

	d := Distance(*t.last, fix)
	if d <= t.threshold {
		t.drop(ctx, fx, fix, "jitter", d)
		return
	}

	t.total += d
	t.last = &fix
	t.track = append(t.track, fix.Point())
	t.setDisplay(ctx, fx, FormatDistance(t.total))

	elapsed := t.clock.Since(start)
	fx.add(func() {
		capitan.Emit(ctx, FixAccepted,
			KeySession.Field(session),
			KeyFix.Field(where),
			KeyDistance.Field(fmt.Sprintf("%.2f", d)),
		)
		t.metrics.OnFixAccepted(d, elapsed)
	})
}

func (t *Tracker) drop(ctx context.Context, fx *effects, fix GeoPoint, reason string, d float64) {
	session, where := t.session, fix.String()
	fx.add(func() {
		capitan.Emit(ctx, FixDropped,
			KeySession.Field(session),
			KeyFix.Field(where),
			KeyReason.Field(reason),
			KeyDistance.Field(fmt.Sprintf("%.2f", d)),
		)
		t.metrics.OnFixDropped(reason)
	})
}

// setDisplay stores the text and queues the display callback. Caller holds mu.
func (t *Tracker) setDisplay(ctx context.Context, fx *effects, text string) {
	t.display = text
	session := t.session
	fx.add(func() {
		capitan.Emit(ctx, DisplayChanged,
			KeySession.Field(session),
			KeyDisplay.Field(text),
		)
		if t.onDisplay != nil {
			t.onDisplay(text)
		}
	})
}

// transition updates the state and queues a state change event if changed.
// Caller holds mu.
func (t *Tracker) transition(ctx context.Context, fx *effects, to State) {
	from := t.state
	if from == to {
		return
	}
	t.state = to
	session := t.session
	fx.add(func() {
		capitan.Emit(ctx, TrackerStateChanged,
			KeySession.Field(session),
			KeyOldState.Field(from.String()),
			KeyNewState.Field(to.String()),
		)
		t.metrics.OnStateChange(from, to)
	})
}

// unsubscribe releases the active subscription, if any. Caller holds mu.
func (t *Tracker) unsubscribe() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

// fail records an error. Caller holds mu.
func (t *Tracker) fail(stage string, err error) {
	t.lastErr = err
	t.failures.push(Failure{Stage: stage, Err: err, At: t.clock.Now()})
}

// pump forwards batches from the provider until the subscription ends.
func (t *Tracker) pump(ctx context.Context, changes <-chan Batch, gen uint64) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-changes:
			if !ok {
				if ctx.Err() == nil {
					capitan.Emit(ctx, ProviderClosed,
						KeySession.Field(t.SessionID()),
						KeyProviderType.Field(fmt.Sprintf("%T", t.provider)),
					)
				}
				return
			}
			t.deliver(ctx, batch, gen)
		}
	}
}

func (t *Tracker) dispatch(fx effects) {
	for _, fn := range fx {
		fn()
	}
}

// effects are side effects collected under the lock and run after it is released.
type effects []func()

func (fx *effects) add(fn func()) {
	*fx = append(*fx, fn)
}
