package input

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/colormaze/internal/core"
)

func TestBackgroundProducerFIFO(t *testing.T) {
	c := NewChannel()
	sent := []core.Action{core.ActionUp, core.ActionToggle, core.ActionLeft}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for _, a := range sent {
			c.Push(a)
		}
	}()
	wg.Wait()

	for i, want := range sent {
		got, ok := c.TryPop()
		if !ok {
			t.Fatalf("TryPop() #%d returned empty", i+1)
		}
		if got != want {
			t.Errorf("TryPop() #%d = %v, expected %v", i+1, got, want)
		}
	}
	if a, ok := c.TryPop(); ok {
		t.Errorf("TryPop() on empty channel = %v, expected empty", a)
	}
}

func TestBlockingPopWaitsForPush(t *testing.T) {
	c := NewChannel()

	go func() {
		time.Sleep(20 * time.Millisecond)
		c.Push(core.ActionDown)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, err := c.BlockingPop(ctx)
	if err != nil {
		t.Fatalf("BlockingPop() failed: %v", err)
	}
	if a != core.ActionDown {
		t.Errorf("BlockingPop() = %v, expected Down", a)
	}
}

func TestBlockingPopContextDone(t *testing.T) {
	c := NewChannel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.BlockingPop(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("BlockingPop() error = %v, expected DeadlineExceeded", err)
	}
}

func TestCloseDrainsThenFails(t *testing.T) {
	c := NewChannel()
	c.Push(core.ActionRight)
	c.Close()
	c.Push(core.ActionLeft)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", c.Len())
	}

	ctx := context.Background()
	a, err := c.BlockingPop(ctx)
	if err != nil || a != core.ActionRight {
		t.Fatalf("BlockingPop() = %v, %v; expected Right, nil", a, err)
	}
	if _, err := c.BlockingPop(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("BlockingPop() error = %v, expected ErrClosed", err)
	}
}

func TestCloseWakesWaiters(t *testing.T) {
	c := NewChannel()

	errs := make(chan error, 3)
	for i := 0; i < 3; i++ {
		go func() {
			_, err := c.BlockingPop(context.Background())
			errs <- err
		}()
	}

	time.Sleep(20 * time.Millisecond)
	c.Close()

	for i := 0; i < 3; i++ {
		select {
		case err := <-errs:
			if !errors.Is(err, ErrClosed) {
				t.Errorf("waiter %d error = %v, expected ErrClosed", i, err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("waiter not woken by Close()")
		}
	}
}

func TestConcurrentProducers(t *testing.T) {
	c := NewChannel()
	const producers, perProducer = 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				c.Push(core.ActionToggle)
			}
		}()
	}

	received := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	for {
		if _, ok := c.TryPop(); ok {
			received++
			continue
		}
		select {
		case <-done:
			received += c.Drain()
			if received != producers*perProducer {
				t.Errorf("received %d actions, expected %d", received, producers*perProducer)
			}
			return
		default:
		}
	}
}
