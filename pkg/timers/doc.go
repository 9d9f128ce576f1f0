// Package timers implements keyed delayed callbacks: a callback is scheduled
// under a name, and scheduling again under the same name cancels the pending
// one first (debounce).
//
// A Registry owns the name -> handle mapping and delegates the actual timing
// to a Host, which is the event loop the callbacks run on. Each execution
// context (the client-side script runtime and the Go render loop) gets its
// own Registry so that equal names in different contexts never interfere.
package timers
