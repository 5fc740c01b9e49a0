package stride

import (
	"context"
	"sync"
)

// User-visible notices produced by the Tracker.
const (
	NoticeStarted          = "Tracking Started"
	NoticeStopped          = "Tracking Stopped"
	NoticeReset            = "Tracking Reset"
	NoticePermissionDenied = "Location permission denied"
)

// Notifier delivers short user-visible notices. The channel (toast, log
// line, push message) is up to the implementation.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, message string)

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, string) {}

// NoticeRecorder is a Notifier that keeps every notice in order.
type NoticeRecorder struct {
	mu      sync.Mutex
	notices []string
}

// Notify appends the notice.
func (r *NoticeRecorder) Notify(_ context.Context, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, message)
}

// Notices returns a copy of the recorded notices.
func (r *NoticeRecorder) Notices() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.notices))
	copy(out, r.notices)
	return out
}
