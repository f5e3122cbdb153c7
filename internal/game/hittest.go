package game

// IsHit reports whether the target's finger lies within the target's square
// tolerance region. Only the required finger is considered.
func IsHit(points PointSet, target Target) bool {
	p, ok := points.Get(target.Finger)
	if !ok {
		return false
	}
	return abs(p.X-target.X) <= target.Tolerance && abs(p.Y-target.Y) <= target.Tolerance
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
