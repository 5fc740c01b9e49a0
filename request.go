package stride

import (
	"errors"
	"fmt"
	"time"
)

// Default cadence requested from providers.
const (
	DefaultInterval        = 10 * time.Second
	DefaultFastestInterval = 5 * time.Second
)

// Priority tells a provider how to trade accuracy for power.
type Priority int

const (
	// PriorityHighAccuracy requests the most precise fixes available.
	PriorityHighAccuracy Priority = iota
	// PriorityBalancedPowerAccuracy requests block-level accuracy.
	PriorityBalancedPowerAccuracy
	// PriorityLowPower requests city-level accuracy.
	PriorityLowPower
	// PriorityPassive receives fixes only when another consumer requests them.
	PriorityPassive
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHighAccuracy:
		return "high_accuracy"
	case PriorityBalancedPowerAccuracy:
		return "balanced_power_accuracy"
	case PriorityLowPower:
		return "low_power"
	case PriorityPassive:
		return "passive"
	default:
		return "unknown"
	}
}

// ParsePriority converts a name produced by Priority.String back to a Priority.
func ParsePriority(s string) (Priority, error) {
	for p := PriorityHighAccuracy; p <= PriorityPassive; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

// Request is the subscription configuration handed to a Provider. The
// Tracker never interprets it.
type Request struct {
	// Interval is the target time between updates.
	Interval time.Duration
	// FastestInterval is the shortest time between updates the consumer
	// is willing to handle.
	FastestInterval time.Duration
	// Priority selects the accuracy/power trade-off.
	Priority Priority
}

// DefaultRequest returns a high accuracy request at a 10s cadence with a 5s floor.
func DefaultRequest() Request {
	return Request{
		Interval:        DefaultInterval,
		FastestInterval: DefaultFastestInterval,
		Priority:        PriorityHighAccuracy,
	}
}

// Validate checks the request is usable by a provider.
func (r Request) Validate() error {
	if r.Interval <= 0 {
		return errors.New("interval must be positive")
	}
	if r.FastestInterval <= 0 {
		return errors.New("fastest interval must be positive")
	}
	if r.FastestInterval > r.Interval {
		return fmt.Errorf("fastest interval %v exceeds interval %v", r.FastestInterval, r.Interval)
	}
	if r.Priority < PriorityHighAccuracy || r.Priority > PriorityPassive {
		return fmt.Errorf("unknown priority %d", r.Priority)
	}
	return nil
}
