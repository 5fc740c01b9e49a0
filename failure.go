package stride

import (
	"sync"
	"time"
)

// Failure is a recorded tracker error with the stage that produced it.
type Failure struct {
	Stage string
	Err   error
	At    time.Time
}

// Error implements error.
func (f Failure) Error() string {
	return f.Stage + ": " + f.Err.Error()
}

// Unwrap returns the underlying error.
func (f Failure) Unwrap() error {
	return f.Err
}

// failureRing keeps the most recent failures, oldest first.
// A nil ring discards everything.
type failureRing struct {
	mu    sync.RWMutex
	items []Failure
	head  int
	count int
}

func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{items: make([]Failure, size)}
}

func (r *failureRing) push(f Failure) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[r.head] = f
	r.head = (r.head + 1) % len(r.items)
	if r.count < len(r.items) {
		r.count++
	}
}

func (r *failureRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.items)
	r.head = 0
	r.count = 0
}

func (r *failureRing) all() []Failure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}
	size := len(r.items)
	out := make([]Failure, r.count)
	start := (r.head - r.count + size) % size
	for i := range out {
		out[i] = r.items[(start+i)%size]
	}
	return out
}
