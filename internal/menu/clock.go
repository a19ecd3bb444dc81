package menu

import "time"

// Clock is the time source used for event timestamps and the inactivity
// timer. Production code uses SystemClock; tests inject a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}
