// Package loop provides the event loop of the render context.
//
// A Loop runs on a single goroutine and owns a min-heap of timers sorted by
// fire time (ties in scheduling order). Timer callbacks and queued tasks run
// one at a time on that goroutine, so code running on the loop never needs
// its own locking. The goroutine sleeps until the earliest timer, capped at
// 60 seconds to tolerate wall-clock steps and system sleep.
//
// Loop implements timers.Host; ClearTimeout is synchronous from any
// goroutine: once it returns, the cleared callback will not start.
package loop
