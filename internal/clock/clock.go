package clock

import "time"

// Clock abstracts "now" so validation and conflict logic never call the
// wall clock directly and tests can supply deterministic instants.
type Clock interface {
	Now() time.Time
}

type system struct {
	loc *time.Location
}

func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return system{loc: loc}
}

func (s system) Now() time.Time {
	return time.Now().In(s.loc)
}

// Fixed returns a clock pinned to t.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
