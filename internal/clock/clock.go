package clock

import "time"

// Clock abstracts wall-clock time so elapsed-time rules can be tested.
type Clock interface {
	Now() time.Time
}

type Real struct{}

// Now returns the current time using the system clock.
func (Real) Now() time.Time {
	return time.Now()
}

// Fake is a manually driven clock.
type Fake struct {
	now time.Time
}

func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	return f.now
}

func (f *Fake) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func (f *Fake) Set(t time.Time) {
	f.now = t
}
