package loop

import (
	"errors"
	"time"
)

// ErrClosed is returned by Drain when the loop stopped before becoming idle.
var ErrClosed = errors.New("loop closed")

type timerState uint8

const (
	statePending timerState = iota
	stateFired
	stateCleared
)

// timer is the Handle returned by Loop.SetTimeout.
type timer struct {
	loop  *Loop
	fn    func()
	at    time.Time
	seq   uint64
	index int
	state timerState
}

// Stats counts timer activity over the lifetime of a Loop.
type Stats struct {
	Scheduled uint64
	Fired     uint64
	Cleared   uint64
	Panics    uint64
}

// Pending is the number of timers scheduled but neither fired nor cleared.
func (s Stats) Pending() uint64 {
	return s.Scheduled - s.Fired - s.Cleared
}
