package game

// Score counts confirmed hits in the current round.
type Score struct {
	points int
}

// Increment records one hit.
func (s *Score) Increment() { s.points++ }

// Reset clears the score for a new round.
func (s *Score) Reset() { s.points = 0 }

// Points returns the current total.
func (s *Score) Points() int { return s.points }
