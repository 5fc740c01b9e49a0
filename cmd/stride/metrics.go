package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zoobzio/stride"
)

// counters tallies fix outcomes for the shutdown summary.
type counters struct {
	stride.NoOpMetricsProvider
	batches  atomic.Int64
	accepted atomic.Int64
	dropped  atomic.Int64
	busy     atomic.Int64
}

func (c *counters) OnBatchReceived(_ int) { c.batches.Add(1) }

func (c *counters) OnFixAccepted(_ float64, d time.Duration) {
	c.accepted.Add(1)
	c.busy.Add(int64(d))
}

func (c *counters) OnFixDropped(_ string) { c.dropped.Add(1) }

func (c *counters) String() string {
	return fmt.Sprintf("batches=%d accepted=%d dropped=%d busy=%s",
		c.batches.Load(), c.accepted.Load(), c.dropped.Load(), time.Duration(c.busy.Load()))
}
