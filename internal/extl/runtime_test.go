package extl

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dop251/goja"
	"github.com/spf13/afero"
	"github.com/warpdl/pagekit/pkg/logger"
	"github.com/warpdl/pagekit/pkg/timers"
)

func newTestRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := NewRuntime(logger.NewNopLogger(), afero.NewMemMapFs(), "/")
	t.Cleanup(rt.Close)
	return rt
}

func TestRuntimeDo(t *testing.T) {
	rt := newTestRuntime(t)
	var got int64
	err := rt.Do(func(vm *goja.Runtime) error {
		v, err := vm.RunString("6 * 7")
		if err != nil {
			return err
		}
		got = v.ToInteger()
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestRuntimeDoRecoversException(t *testing.T) {
	rt := newTestRuntime(t)
	err := rt.Do(func(vm *goja.Runtime) error {
		panic(vm.NewTypeError("bad"))
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRuntimeSetTimeoutFires(t *testing.T) {
	rt := newTestRuntime(t)
	var fired int32
	start := time.Now()
	rt.SetTimeout(func() { atomic.AddInt32(&fired, 1) }, 30*time.Millisecond)
	if rt.Pending() != 1 {
		t.Fatalf("expected 1 pending, got %d", rt.Pending())
	}
	if err := rt.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if time.Since(start) < 30*time.Millisecond {
		t.Fatal("timer fired early")
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatalf("expected 1 call, got %d", fired)
	}
}

func TestRuntimeClearTimeout(t *testing.T) {
	rt := newTestRuntime(t)
	var fired int32
	h := rt.SetTimeout(func() { atomic.AddInt32(&fired, 1) }, 20*time.Millisecond)
	rt.ClearTimeout(h)
	rt.ClearTimeout(h)
	rt.ClearTimeout(nil)
	if rt.Pending() != 0 {
		t.Fatalf("expected 0 pending, got %d", rt.Pending())
	}
	time.Sleep(60 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Fatal("cleared timer fired")
	}
}

func TestRuntimeIgnoresForeignHandle(t *testing.T) {
	a := newTestRuntime(t)
	b := newTestRuntime(t)
	var fired int32
	h := a.SetTimeout(func() { atomic.AddInt32(&fired, 1) }, 10*time.Millisecond)
	b.ClearTimeout(h)
	if err := a.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if atomic.LoadInt32(&fired) != 1 {
		t.Fatal("timer cleared through another runtime")
	}
}

func TestRuntimeRegistryDebounce(t *testing.T) {
	rt := newTestRuntime(t)
	reg := timers.New(rt)
	var f, g int32
	start := time.Now()
	var gAt time.Duration
	reg.SetTimeout("x", func() { atomic.AddInt32(&f, 1) }, 100*time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	reg.SetTimeout("x", func() {
		gAt = time.Since(start)
		atomic.AddInt32(&g, 1)
	}, 100*time.Millisecond)
	if err := rt.Drain(context.Background()); err != nil {
		t.Fatalf("Drain: %v", err)
	}
	if f != 0 || g != 1 {
		t.Fatalf("f=%d g=%d", f, g)
	}
	if gAt < 110*time.Millisecond {
		t.Fatalf("g ran at %v, expected >= 110ms", gAt)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry kept %d entries", reg.Len())
	}
}

func TestRuntimeClosed(t *testing.T) {
	rt := NewRuntime(nil, afero.NewMemMapFs(), "/")
	rt.Close()
	rt.Close()
	if err := rt.Do(func(*goja.Runtime) error { return nil }); !errors.Is(err, ErrRuntimeClosed) {
		t.Fatalf("expected ErrRuntimeClosed, got %v", err)
	}
	if err := rt.Drain(context.Background()); !errors.Is(err, ErrRuntimeClosed) {
		t.Fatalf("expected ErrRuntimeClosed, got %v", err)
	}
	var fired int32
	rt.SetTimeout(func() { atomic.AddInt32(&fired, 1) }, 0)
	if rt.Pending() != 0 {
		t.Fatal("closed runtime accepted a timer")
	}
}

func TestRuntimePrintLogs(t *testing.T) {
	l := logger.NewMockLogger()
	rt := NewRuntime(l, afero.NewMemMapFs(), "/")
	defer rt.Close()
	if err := rt.Do(func(vm *goja.Runtime) error {
		_, err := vm.RunString(`print("hello", 1)`)
		return err
	}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	calls := l.InfoCalls()
	if len(calls) != 1 || calls[0] != "hello 1" {
		t.Fatalf("unexpected info calls: %v", calls)
	}
}
