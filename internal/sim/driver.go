package sim

import "time"

// DriverState is the tick driver's run state.
type DriverState int

const (
	DriverIdle DriverState = iota
	DriverTicking
)

func (s DriverState) String() string {
	if s == DriverTicking {
		return "ticking"
	}
	return "idle"
}

// TickDriver fires a callback at a fixed interval while it is ticking.
// Time is pushed in through Advance by the host loop, so the driver never
// runs on its own goroutine and tests control time exactly.
type TickDriver struct {
	interval time.Duration
	state    DriverState
	elapsed  time.Duration
	ticks    uint64

	onTick  func()
	onState func(DriverState)
}

// NewTickDriver creates an idle driver.
func NewTickDriver(interval time.Duration, onTick func()) *TickDriver {
	return &TickDriver{
		interval: interval,
		onTick:   onTick,
	}
}

// Interval returns the tick period.
func (d *TickDriver) Interval() time.Duration {
	return d.interval
}

// SetInterval changes the tick period. The partially elapsed interval is
// kept. Non-positive values are ignored.
func (d *TickDriver) SetInterval(interval time.Duration) {
	if interval > 0 {
		d.interval = interval
	}
}

// State returns the current run state.
func (d *TickDriver) State() DriverState {
	return d.state
}

// Running reports whether the driver is ticking.
func (d *TickDriver) Running() bool {
	return d.state == DriverTicking
}

// Ticks returns how many ticks have fired since creation.
func (d *TickDriver) Ticks() uint64 {
	return d.ticks
}

// Start switches to ticking. Starting a running driver keeps its phase.
func (d *TickDriver) Start() {
	if d.state == DriverTicking {
		return
	}
	d.state = DriverTicking
	d.elapsed = 0
	d.notify()
}

// Stop switches to idle and drops any partially elapsed interval.
func (d *TickDriver) Stop() {
	if d.state == DriverIdle {
		return
	}
	d.state = DriverIdle
	d.elapsed = 0
	d.notify()
}

func (d *TickDriver) notify() {
	if d.onState != nil {
		d.onState(d.state)
	}
}

// Advance adds elapsed time and fires one tick per whole interval. A tick
// that stops the driver ends the catch-up loop. Returns the ticks fired.
func (d *TickDriver) Advance(dt time.Duration) int {
	if d.state != DriverTicking || dt <= 0 {
		return 0
	}

	d.elapsed += dt
	fired := 0
	for d.state == DriverTicking && d.elapsed >= d.interval {
		d.elapsed -= d.interval
		d.ticks++
		fired++
		if d.onTick != nil {
			d.onTick()
		}
	}
	return fired
}
