package loop

import (
	"context"
	"sync"
	"time"

	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

const maxSleepCap = 60 * time.Second

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger used for callback panics and debug traces.
func WithLogger(l logger.Logger) Option {
	return func(lp *Loop) {
		lp.log = l
	}
}

// Loop is a single-goroutine event loop running timer callbacks and tasks.
type Loop struct {
	log  logger.Logger
	now  func() time.Time
	wake chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	h          timerHeap
	queue      []func()
	seq        uint64
	running    int
	idle       chan struct{}
	idleClosed bool
	stats      Stats
}

// New creates and starts a Loop. The loop goroutine exits when ctx is
// cancelled or Close is called; pending timers are then abandoned.
func New(ctx context.Context, opts ...Option) *Loop {
	lctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		log:        logger.NewNopLogger(),
		now:        time.Now,
		wake:       make(chan struct{}, 1),
		ctx:        lctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		idle:       make(chan struct{}),
		idleClosed: true,
	}
	close(l.idle)
	for _, opt := range opts {
		opt(l)
	}
	go l.run()
	return l
}

// SetTimeout schedules fn to run on the loop after d.
func (l *Loop) SetTimeout(fn func(), d time.Duration) timers.Handle {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	l.seq++
	t := &timer{
		loop:  l,
		fn:    fn,
		at:    l.now().Add(d),
		seq:   l.seq,
		index: -1,
	}
	if l.closed() {
		t.state = stateCleared
		l.mu.Unlock()
		return t
	}
	heapPush(&l.h, t)
	l.stats.Scheduled++
	l.markBusy()
	l.mu.Unlock()

	l.notify()
	return t
}

// ClearTimeout cancels a timer returned by SetTimeout. Timers that already
// fired, were already cleared, or belong to another loop are ignored.
func (l *Loop) ClearTimeout(h timers.Handle) {
	t, ok := h.(*timer)
	if !ok || t == nil || t.loop != l {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.state != statePending {
		return
	}
	heapRemove(&l.h, t)
	t.state = stateCleared
	l.stats.Cleared++
	l.checkIdle()
}

// RunOnLoop queues fn to run on the loop goroutine. It returns false if the
// loop has been closed.
func (l *Loop) RunOnLoop(fn func()) bool {
	l.mu.Lock()
	if l.closed() {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.markBusy()
	l.mu.Unlock()

	l.notify()
	return true
}

// Drain blocks until no timer is pending and no callback or task is running.
// It returns ctx.Err() if ctx ends first and ErrClosed if the loop stops.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		l.mu.Lock()
		ch, idle := l.idle, l.idleClosed
		l.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrClosed
		}
	}
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Close stops the loop goroutine and waits for it to exit.
func (l *Loop) Close() {
	l.cancel()
	<-l.done
}

func (l *Loop) closed() bool {
	return l.ctx.Err() != nil
}

// markBusy must be called with l.mu held after adding work.
func (l *Loop) markBusy() {
	if l.idleClosed {
		l.idle = make(chan struct{})
		l.idleClosed = false
	}
}

// checkIdle must be called with l.mu held after removing work.
func (l *Loop) checkIdle() {
	if l.idleClosed || l.h.Len() > 0 || len(l.queue) > 0 || l.running > 0 {
		return
	}
	close(l.idle)
	l.idleClosed = true
}

func (l *Loop) notify() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// run is the loop goroutine. It drains queued tasks, fires every due timer,
// then sleeps until the next fire time, a wake-up, or shutdown.
func (l *Loop) run() {
	defer close(l.done)

	var sleeper *time.Timer
	defer func() {
		if sleeper != nil {
			sleeper.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if sleeper != nil {
			sleeper.Stop()
		}
		l.mu.Lock()
		next := heapPeek(&l.h)
		var dur time.Duration
		if next != nil {
			dur = next.at.Sub(l.now())
		}
		l.mu.Unlock()
		if next == nil {
			// No timers: block on wake-ups only
			return nil
		}
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		sleeper = time.NewTimer(dur)
		return sleeper.C
	}

	for {
		l.runTasks()
		l.fireDue()
		timerCh := resetTimer()

		select {
		case <-l.ctx.Done():
			return
		case <-l.wake:
		case <-timerCh:
		}
	}
}

func (l *Loop) runTasks() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.running++
		l.mu.Unlock()

		l.invoke("task", fn)

		l.mu.Lock()
		l.running--
		l.checkIdle()
		l.mu.Unlock()
	}
}

func (l *Loop) fireDue() {
	for {
		if l.closed() {
			return
		}
		l.mu.Lock()
		next := heapPeek(&l.h)
		if next == nil || next.at.After(l.now()) {
			l.mu.Unlock()
			return
		}
		t := heapPop(&l.h)
		t.state = stateFired
		l.stats.Fired++
		l.running++
		l.mu.Unlock()

		l.invoke("timer", t.fn)

		l.mu.Lock()
		l.running--
		l.checkIdle()
		l.mu.Unlock()
	}
}

// invoke runs fn, recovering and logging a panic so that one bad callback
// does not take the loop down.
func (l *Loop) invoke(kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.mu.Lock()
			l.stats.Panics++
			l.mu.Unlock()
			l.log.Error("loop: %s callback panicked: %v", kind, r)
		}
	}()
	fn()
}

var _ timers.Host = (*Loop)(nil)
