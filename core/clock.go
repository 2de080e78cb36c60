package core

import "time"

// Clock supplies the current instant.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// Env is everything a shortcut action reads: the current instant and the
// calendar it is interpreted in. The zero Env uses the wall clock and
// time.Local.
type Env struct {
	Clock    Clock
	Calendar Calendar
}

func (e Env) Now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}
