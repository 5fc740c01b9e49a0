package stride

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrPermissionDenied is returned by Start when the permission gate refuses
// access to location updates.
var ErrPermissionDenied = errors.New("location permission denied")

// PermissionGate guards access to location updates.
type PermissionGate interface {
	// Granted reports whether permission is already held.
	Granted(ctx context.Context) bool

	// Request asks for permission and reports the grant decision.
	Request(ctx context.Context) (bool, error)
}

// AlwaysGranted is a PermissionGate for environments without a permission model.
type AlwaysGranted struct{}

// Granted always returns true.
func (AlwaysGranted) Granted(context.Context) bool { return true }

// Request always grants.
func (AlwaysGranted) Request(context.Context) (bool, error) { return true, nil }

// StaticGate is a PermissionGate whose decision is set by the caller, for
// example from a settings toggle or in tests. Requests answer with the
// current decision and do not change it.
type StaticGate struct {
	granted  atomic.Bool
	requests atomic.Int32
}

// NewStaticGate creates a StaticGate with the given initial decision.
func NewStaticGate(granted bool) *StaticGate {
	g := &StaticGate{}
	g.granted.Store(granted)
	return g
}

// Set changes the decision.
func (g *StaticGate) Set(granted bool) {
	g.granted.Store(granted)
}

// Granted reports the current decision.
func (g *StaticGate) Granted(context.Context) bool {
	return g.granted.Load()
}

// Request records the attempt and reports the current decision.
func (g *StaticGate) Request(context.Context) (bool, error) {
	g.requests.Add(1)
	return g.granted.Load(), nil
}

// Requests returns how many times permission was requested.
func (g *StaticGate) Requests() int {
	return int(g.requests.Load())
}

var (
	_ PermissionGate = AlwaysGranted{}
	_ PermissionGate = (*StaticGate)(nil)
)
