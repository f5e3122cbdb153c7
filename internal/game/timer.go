package game

import "time"

// RoundDuration is the length of every round.
const RoundDuration = 20 * time.Second

// Remaining returns the whole seconds left in a round started at start.
// Elapsed time is truncated toward zero; a clock that reads earlier than
// start counts as no time elapsed.
func Remaining(start, now time.Time) int {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	return int(RoundDuration/time.Second) - int(elapsed/time.Second)
}
