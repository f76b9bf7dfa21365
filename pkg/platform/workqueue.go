// Package platform provides the application's single logical worker.
//
// Binding callbacks, switch events and command completions are all run on
// one WorkQueue, so handlers never observe each other concurrently.
package platform

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pion/logging"
)

// DefaultQueueCapacity is the default number of pending work items.
const DefaultQueueCapacity = 32

// Work queue errors.
var (
	ErrQueueStopped   = errors.New("platform: work queue stopped")
	ErrQueueFull      = errors.New("platform: work queue full")
	ErrAlreadyStarted = errors.New("platform: work queue already started")
	ErrNilWork        = errors.New("platform: nil work item")
)

// WorkQueueConfig configures a WorkQueue.
type WorkQueueConfig struct {
	// Capacity bounds pending items. Defaults to DefaultQueueCapacity if zero.
	Capacity int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// WorkQueue runs scheduled functions one at a time, in submission order,
// on a dedicated goroutine.
type WorkQueue struct {
	work chan func()
	done chan struct{}
	wg   sync.WaitGroup
	log  logging.LeveledLogger

	mu      sync.Mutex
	started bool
	closed  bool
}

// NewWorkQueue creates a stopped queue. Items may be scheduled before Start.
func NewWorkQueue(config WorkQueueConfig) *WorkQueue {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	q := &WorkQueue{
		work: make(chan func(), capacity),
		done: make(chan struct{}),
	}
	if config.LoggerFactory != nil {
		q.log = config.LoggerFactory.NewLogger("workqueue")
	}
	return q
}

// Start launches the worker goroutine.
func (q *WorkQueue) Start() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueStopped
	}
	if q.started {
		return ErrAlreadyStarted
	}
	q.started = true

	q.wg.Add(1)
	go q.runLoop()
	return nil
}

// ScheduleWork enqueues fn. It never blocks.
func (q *WorkQueue) ScheduleWork(fn func()) error {
	if fn == nil {
		return ErrNilWork
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueStopped
	}

	select {
	case q.work <- fn:
		return nil
	default:
		if q.log != nil {
			q.log.Warnf("dropping work item, %d pending", len(q.work))
		}
		return ErrQueueFull
	}
}

// Stop rejects further work and runs every item accepted before it, then
// returns. Items scheduled by those items are rejected with ErrQueueStopped.
func (q *WorkQueue) Stop() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueStopped
	}
	q.closed = true
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()

	// Never started: accepted items still run, on the caller.
	if n := q.drain(); n > 0 && q.log != nil {
		q.log.Debugf("ran %d pending work items on stop", n)
	}
	return nil
}

// Pending returns the number of queued items.
func (q *WorkQueue) Pending() int {
	return len(q.work)
}

func (q *WorkQueue) runLoop() {
	defer q.wg.Done()

	for {
		select {
		case <-q.done:
			if n := q.drain(); n > 0 && q.log != nil {
				q.log.Debugf("ran %d pending work items on stop", n)
			}
			return
		case fn := <-q.work:
			q.run(fn)
		}
	}
}

// drain runs the items left in the channel. ScheduleWork no longer adds
// items once closed is set, so the channel only shrinks.
func (q *WorkQueue) drain() int {
	n := 0
	for {
		select {
		case fn := <-q.work:
			q.run(fn)
			n++
		default:
			return n
		}
	}
}

// run executes one item; a panicking item is logged and the loop continues.
func (q *WorkQueue) run(fn func()) {
	defer func() {
		if r := recover(); r != nil && q.log != nil {
			q.log.Errorf("work item panicked: %v", fmt.Sprint(r))
		}
	}()
	fn()
}
