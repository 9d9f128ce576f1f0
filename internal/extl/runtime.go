package extl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"
	"github.com/spf13/afero"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

// Runtime is the client context of one page: a goja VM driven by its own
// event loop. It implements timers.Host so that a timers.Registry can
// schedule on it.
type Runtime struct {
	loop *eventloop.EventLoop
	l    logger.Logger

	mu      sync.Mutex
	pending int
	idle    chan struct{}
	closed  bool
	done    chan struct{}
}

type timer struct {
	rt      *Runtime
	t       *eventloop.Timer
	fired   bool
	cleared bool
}

// NewRuntime starts a runtime whose require() resolves modules from fsys,
// relative to root.
func NewRuntime(l logger.Logger, fsys afero.Fs, root string) *Runtime {
	if l == nil {
		l = logger.NewNopLogger()
	}
	registry := require.NewRegistry(require.WithLoader(sourceLoader(fsys, root)))
	r := &Runtime{
		loop: eventloop.NewEventLoop(
			eventloop.EnableConsole(false),
			eventloop.WithRegistry(registry),
		),
		l:    l,
		done: make(chan struct{}),
	}
	r.loop.Start()
	r.loop.RunOnLoop(func(vm *goja.Runtime) {
		_ = vm.Set("print", r.print)
	})
	return r
}

func sourceLoader(fsys afero.Fs, root string) require.SourceLoader {
	return func(p string) ([]byte, error) {
		name := path.Join(root, strings.TrimPrefix(path.Clean(p), "/"))
		data, err := afero.ReadFile(fsys, name)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, require.ModuleFileDoesNotExistError
			}
			return nil, err
		}
		return data, nil
	}
}

// Do runs fn on the loop and waits for it. Panics raised by the VM, such as
// uncaught exceptions from Go callbacks, are returned as errors. Do must not
// be called from the loop itself.
func (r *Runtime) Do(fn func(vm *goja.Runtime) error) error {
	if r.isClosed() {
		return ErrRuntimeClosed
	}
	errc := make(chan error, 1)
	ok := r.loop.RunOnLoop(func(vm *goja.Runtime) {
		errc <- call(vm, fn)
	})
	if !ok {
		return ErrRuntimeClosed
	}
	select {
	case err := <-errc:
		return err
	case <-r.done:
		return ErrRuntimeClosed
	}
}

func call(vm *goja.Runtime, fn func(vm *goja.Runtime) error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if ex, ok := rec.(*goja.Exception); ok {
				err = ex
				return
			}
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(vm)
}

// SetTimeout schedules fn on the loop after d.
func (r *Runtime) SetTimeout(fn func(), d time.Duration) timers.Handle {
	t := &timer{rt: r}
	r.mu.Lock()
	if r.closed {
		t.cleared = true
		r.mu.Unlock()
		return t
	}
	if r.pending == 0 {
		r.idle = make(chan struct{})
	}
	r.pending++
	r.mu.Unlock()
	t.t = r.loop.SetTimeout(func(vm *goja.Runtime) {
		r.fire(t, fn)
	}, d)
	return t
}

// ClearTimeout cancels h. The loop drops its own timer asynchronously, but
// once ClearTimeout returns the callback is guaranteed not to start.
func (r *Runtime) ClearTimeout(h timers.Handle) {
	t, ok := h.(*timer)
	if !ok || t == nil || t.rt != r {
		return
	}
	r.mu.Lock()
	if t.fired || t.cleared {
		r.mu.Unlock()
		return
	}
	t.cleared = true
	r.doneLocked()
	r.mu.Unlock()
	if t.t != nil {
		r.loop.ClearTimeout(t.t)
	}
}

func (r *Runtime) fire(t *timer, fn func()) {
	r.mu.Lock()
	if t.fired || t.cleared {
		r.mu.Unlock()
		return
	}
	t.fired = true
	r.mu.Unlock()

	defer func() {
		if rec := recover(); rec != nil {
			r.l.Error("client: timer callback panicked: %v", rec)
		}
		r.mu.Lock()
		r.doneLocked()
		r.mu.Unlock()
	}()
	fn()
}

func (r *Runtime) doneLocked() {
	r.pending--
	if r.pending == 0 && r.idle != nil {
		close(r.idle)
		r.idle = nil
	}
}

// Pending returns the number of timers scheduled and not yet fired or
// cleared.
func (r *Runtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Drain blocks until no timer is pending and the loop has run every job
// queued so far.
func (r *Runtime) Drain(ctx context.Context) error {
	for {
		r.mu.Lock()
		if r.closed {
			r.mu.Unlock()
			return ErrRuntimeClosed
		}
		idle := r.idle
		r.mu.Unlock()
		if idle != nil {
			select {
			case <-idle:
			case <-ctx.Done():
				return ctx.Err()
			case <-r.done:
				return ErrRuntimeClosed
			}
			continue
		}
		// flush jobs queued by the last callbacks, they may schedule more
		if err := r.Do(func(*goja.Runtime) error { return nil }); err != nil {
			return err
		}
		if r.Pending() == 0 {
			return nil
		}
	}
}

// Close terminates the loop. Pending timers never fire.
func (r *Runtime) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.done)
	r.mu.Unlock()
	r.loop.Terminate()
}

func (r *Runtime) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Runtime) print(call goja.FunctionCall) goja.Value {
	parts := make([]string, 0, len(call.Arguments))
	for _, v := range call.Arguments {
		parts = append(parts, v.String())
	}
	r.l.Info("%s", strings.Join(parts, " "))
	return goja.Undefined()
}

var _ timers.Host = (*Runtime)(nil)
