package clock

import "time"

// Clock is the single time source. Everything that stamps or compares
// session times takes it as a dependency so tests can drive a fixed clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads UTC at second precision, matching what the state file
// and log notes persist.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
