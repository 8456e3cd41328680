// Package timer decouples the CPU's instruction rate from the 60 Hz
// rate at which the delay and sound timers decrement. It is driven by
// a wall-clock sample supplied once per CPU step rather than by its
// own goroutine, keeping the whole VM single-threaded and cooperative.
package timer

import "time"

// Period is the nominal 60 Hz timer/frame interval.
const Period = time.Second / 60

// Driver tracks, independently for DT and ST, the wall-clock time of
// the last decrement. Each register's accumulator only ever advances
// by one Period per call, so a stalled or bursty caller (slow step
// rate, a debugger breakpoint) cannot cause more than one decrement
// per call regardless of how far the wall clock jumped in the
// meantime; the remaining backlog is paid down one call at a time.
type Driver struct {
	now     time.Time
	dtLast  time.Time
	stLast  time.Time
	started bool
}

// New returns a Driver with no wall-clock sample yet; call
// SetWallClock before the first Tick call.
func New() *Driver {
	return &Driver{}
}

// SetWallClock records the current wall-clock time. The first call
// seeds both accumulators so no decrement fires before a full Period
// has actually elapsed.
func (d *Driver) SetWallClock(now time.Time) {
	d.now = now
	if !d.started {
		d.dtLast = now
		d.stLast = now
		d.started = true
	}
}

// TickDT decrements *dt by at most one, if a Period has elapsed since
// the delay timer's last decrement. dt is clamped to [0, 255] by its
// own uint8 type and never decrements below zero.
func (d *Driver) TickDT(dt *uint8) {
	tickRegister(d.now, &d.dtLast, dt)
}

// TickST decrements *st by at most one, if a Period has elapsed since
// the sound timer's last decrement.
func (d *Driver) TickST(st *uint8) {
	tickRegister(d.now, &d.stLast, st)
}

func tickRegister(now time.Time, last *time.Time, reg *uint8) {
	if now.Sub(*last) < Period {
		return
	}
	if *reg > 0 {
		*reg--
	}
	*last = last.Add(Period)
}
