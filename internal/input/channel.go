// Package input carries player actions from input sources to the main loop.
package input

import (
	"context"
	"errors"
	"sync"

	"github.com/vovakirdan/colormaze/internal/core"
)

// ErrClosed is returned by BlockingPop once the channel is closed and drained.
var ErrClosed = errors.New("input: channel closed")

// Channel is an unbounded FIFO of actions safe for any number of producers
// and consumers. Push never blocks.
type Channel struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []core.Action
	closed bool
}

// NewChannel creates an empty Channel.
func NewChannel() *Channel {
	c := &Channel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Push appends a to the queue and wakes one waiting consumer.
// Pushing to a closed channel is a no-op.
func (c *Channel) Push(a core.Action) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.queue = append(c.queue, a)
	c.cond.Signal()
}

// TryPop removes and returns the oldest action, or false when empty.
func (c *Channel) TryPop() (core.Action, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pop()
}

// BlockingPop waits until an action is available, the channel is closed
// and drained, or ctx is done.
func (c *Channel) BlockingPop(ctx context.Context) (core.Action, error) {
	// Wake every waiter when ctx ends; each re-checks its own ctx.
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cond.Broadcast()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		if a, ok := c.pop(); ok {
			return a, nil
		}
		if c.closed {
			return core.ActionNone, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return core.ActionNone, err
		}
		c.cond.Wait()
	}
}

// pop must be called with mu held.
func (c *Channel) pop() (core.Action, bool) {
	if len(c.queue) == 0 {
		return core.ActionNone, false
	}
	a := c.queue[0]
	c.queue[0] = core.ActionNone
	c.queue = c.queue[1:]
	if len(c.queue) == 0 {
		c.queue = nil
	}
	return a, true
}

// Len returns the number of queued actions.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.queue)
}

// Drain discards every queued action and returns how many were dropped.
func (c *Channel) Drain() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.queue)
	c.queue = nil
	return n
}

// Close marks the channel closed and wakes all waiting consumers. Queued
// actions remain available to TryPop and BlockingPop.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cond.Broadcast()
}
