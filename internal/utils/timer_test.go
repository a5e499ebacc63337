package utils

import (
	"testing"
	"time"
)

// TestNewTimer verifies that NewTimer starts the timer immediately so that
// Elapsed reports a positive duration.
func TestNewTimer_StartsImmediately(t *testing.T) {
	timer := NewTimer()
	time.Sleep(time.Millisecond)

	if timer.Elapsed() <= 0 {
		t.Errorf("NewTimer + Elapsed: expected positive duration, got %v", timer.Elapsed())
	}
}

// TestTimer_Elapsed_Monotonic verifies that successive reads keep growing,
// i.e. intermediate reads do not disturb the measurement.
func TestTimer_Elapsed_Monotonic(t *testing.T) {
	timer := NewTimer()
	first := timer.Elapsed()
	time.Sleep(2 * time.Millisecond)
	second := timer.Elapsed()

	if second <= first {
		t.Errorf("second Elapsed() %v should exceed first Elapsed() %v", second, first)
	}
}

// TestTimer_Restart verifies that Restart resets the measurement so a
// subsequent read reports time since the restart, not since construction.
func TestTimer_Restart(t *testing.T) {
	timer := NewTimer()
	time.Sleep(5 * time.Millisecond)
	beforeRestart := timer.Elapsed()

	timer.Restart()
	afterRestart := timer.Elapsed()

	if afterRestart >= beforeRestart {
		t.Errorf("after Restart(), elapsed %v should be less than %v",
			afterRestart, beforeRestart)
	}
}
