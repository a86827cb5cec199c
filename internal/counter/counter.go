package counter

import "sync/atomic"

// Counter is safe for concurrent use by sync workers and the render loop. It owns no goroutine,
// so view models can be created per run without cleanup.
type Counter struct {
	total atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Add(value int) {
	c.total.Add(int64(value))
}

func (c *Counter) Inc() {
	c.Add(1)
}

func (c *Counter) Count() int {
	return int(c.total.Load())
}
