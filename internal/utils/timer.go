package utils

import "time"

// Timer measures elapsed wall-clock time for a single request. Create one
// with [NewTimer], which starts it immediately; read the running total with
// [Timer.Elapsed].
type Timer struct {
	startTime time.Time
}

// NewTimer creates a Timer started at the current instant.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Restart resets the start instant to now, reusing the instance for a new
// measurement.
func (t *Timer) Restart() {
	t.startTime = time.Now()
}

// Elapsed returns the wall-clock time since the timer was started. It can be
// called repeatedly; intermediate reads do not disturb the measurement.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}
