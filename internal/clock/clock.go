// Package clock allows injecting time into services so that date and cutoff
// logic can be tested deterministically.
package clock

import "time"

// Clock provides the current instant. All booking comparisons are in local
// wall-clock terms, so Now returns local time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Sleeper blocks for a duration. The simulated payment phases use it so
// tests can run without real delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

type systemSleeper struct{}

// NewSystemSleeper returns a Sleeper backed by time.Sleep.
func NewSystemSleeper() Sleeper {
	return systemSleeper{}
}

func (systemSleeper) Sleep(d time.Duration) {
	time.Sleep(d)
}
