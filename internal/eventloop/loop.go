// Package eventloop runs submitted actions one at a time on a single worker
// goroutine, in submission order.
package eventloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrQueueFull  = errors.New("event queue is full")
	ErrLoopClosed = errors.New("event loop is closed")
)

// Dispatcher executes fn on the loop and waits for it to finish.
type Dispatcher interface {
	Do(ctx context.Context, fn func()) error
}

// event states; the worker and an abandoning caller race on pending.
const (
	statePending int32 = iota
	stateRunning
	stateAbandoned
)

type event struct {
	fn    func()
	done  chan struct{}
	state *atomic.Int32
}

func (ev event) claim(to int32) bool {
	return ev.state.CompareAndSwap(statePending, to)
}

type Loop struct {
	queue chan event

	mu      sync.RWMutex
	closed  bool
	started bool

	wg sync.WaitGroup
}

func New(queueSize int) *Loop {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Loop{
		queue: make(chan event, queueSize),
	}
}

// Start launches the worker. Calling it more than once has no effect.
func (l *Loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started || l.closed {
		return
	}
	l.started = true

	l.wg.Add(1)
	go l.run()
}

func (l *Loop) run() {
	defer l.wg.Done()

	for ev := range l.queue {
		if ev.claim(stateRunning) {
			ev.fn()
		}
		close(ev.done)
	}
}

// Do enqueues fn without blocking and waits until it ran. If ctx ends before
// the worker picks fn up, fn is dropped and Do returns ctx.Err(). Once fn has
// started Do waits for it and returns nil.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	ev, err := l.enqueue(fn)
	if err != nil {
		return err
	}

	select {
	case <-ev.done:
		return nil
	case <-ctx.Done():
		if ev.claim(stateAbandoned) {
			return ctx.Err()
		}
		<-ev.done
		return nil
	}
}

func (l *Loop) enqueue(fn func()) (event, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return event{}, ErrLoopClosed
	}

	ev := event{fn: fn, done: make(chan struct{}), state: new(atomic.Int32)}
	select {
	case l.queue <- ev:
		return ev, nil
	default:
		return event{}, ErrQueueFull
	}
}

// Shutdown stops accepting events, drains the queue and waits for the worker.
func (l *Loop) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	started := l.started
	l.mu.Unlock()

	if !started {
		return nil
	}

	finished := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Dispatcher = (*Loop)(nil)
