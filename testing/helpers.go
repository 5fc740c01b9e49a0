// Package testing provides test utilities and helpers for stride tracker testing.
package testing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/zoobzio/stride"
)

// Walk returns n fixes heading east from start, each step meters apart
// along the parallel of start's latitude.
func Walk(start stride.GeoPoint, n int, step float64) []stride.GeoPoint {
	const metersPerDegree = 6378137.0 * math.Pi / 180
	dLon := step / (metersPerDegree * math.Cos(start.Latitude*math.Pi/180))
	out := make([]stride.GeoPoint, n)
	for i := range out {
		out[i] = stride.GeoPoint{Latitude: start.Latitude, Longitude: start.Longitude + float64(i)*dLon}
	}
	return out
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the tracker reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, tr *stride.Tracker, expected stride.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return tr.State() == expected
	})
}

// WaitForDisplay waits until the tracker shows the expected text or timeout occurs.
func WaitForDisplay(t *testing.T, tr *stride.Tracker, expected string, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return tr.Display() == expected
	})
}

// RequireState fails the test immediately if the tracker is not in the expected state.
func RequireState(t *testing.T, tr *stride.Tracker, expected stride.State) {
	t.Helper()
	if got := tr.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireDistance fails the test if the accumulated distance is further
// than tolerance meters from expected.
func RequireDistance(t *testing.T, tr *stride.Tracker, expected, tolerance float64) {
	t.Helper()
	if got := tr.Distance(); math.Abs(got-expected) > tolerance {
		t.Fatalf("expected distance %.3f±%.3f, got %.3f", expected, tolerance, got)
	}
}

// NewTestTracker creates a started tracker in sync mode fed by a buffered
// channel. Send batches on the returned channel and call Process to apply them.
func NewTestTracker(t *testing.T) (*stride.Tracker, chan<- stride.Batch) {
	t.Helper()
	ch := make(chan stride.Batch, 10)
	tr := stride.New(stride.NewSyncChannelProvider(ch)).SyncMode()
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("failed to start tracker: %v", err)
	}
	return tr, ch
}

// Feed sends each fix as its own batch and processes it.
func Feed(t *testing.T, tr *stride.Tracker, ch chan<- stride.Batch, fixes ...stride.GeoPoint) {
	t.Helper()
	ctx := context.Background()
	for _, fix := range fixes {
		ch <- stride.Batch{fix}
		if !tr.Process(ctx) {
			t.Fatalf("failed to process fix %s", fix)
		}
	}
}
