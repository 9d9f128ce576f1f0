package timers

import (
	"sync"
	"time"
)

// Handle is the opaque value a Host returns from SetTimeout and accepts in
// ClearTimeout.
type Handle interface{}

// Host is a timer primitive bound to a single event loop.
//
// SetTimeout runs fn once, on the loop, no earlier than d after the call.
// ClearTimeout on a handle whose callback has not started guarantees the
// callback never runs; on any other handle it is a no-op.
type Host interface {
	SetTimeout(fn func(), d time.Duration) Handle
	ClearTimeout(h Handle)
}

type entry struct {
	h   Handle
	seq uint64
}

// Registry schedules callbacks under string keys with at most one pending
// callback per key. It is safe for concurrent use.
type Registry struct {
	host Host
	mu   sync.Mutex
	seq  uint64
	ids  map[string]entry
}

// New creates an empty Registry scheduling on host.
func New(host Host) *Registry {
	return &Registry{
		host: host,
		ids:  make(map[string]entry),
	}
}

// SetTimeout schedules fn to run after d under key. A callback still pending
// under the same key is cancelled first. Negative delays are treated as zero.
func (r *Registry) SetTimeout(key string, fn func(), d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.ids[key]; ok {
		r.host.ClearTimeout(e.h)
	}
	r.seq++
	seq := r.seq
	h := r.host.SetTimeout(func() {
		r.release(key, seq)
		fn()
	}, d)
	r.ids[key] = entry{h: h, seq: seq}
}

// release forgets key once its timer has fired, unless the key has been
// rescheduled in the meantime.
func (r *Registry) release(key string, seq uint64) {
	r.mu.Lock()
	if e, ok := r.ids[key]; ok && e.seq == seq {
		delete(r.ids, key)
	}
	r.mu.Unlock()
}

// Clear cancels the callback pending under key and reports whether there
// was one.
func (r *Registry) Clear(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.ids[key]
	if !ok {
		return false
	}
	r.host.ClearTimeout(e.h)
	delete(r.ids, key)
	return true
}

// Pending reports whether a callback is scheduled under key.
func (r *Registry) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.ids[key]
	return ok
}

// Len returns the number of keys with a pending callback.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// Keys returns the keys with a pending callback, in no particular order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.ids))
	for k := range r.ids {
		keys = append(keys, k)
	}
	return keys
}
