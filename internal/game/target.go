package game

import (
	rand "math/rand/v2"
)

const (
	// FieldMargin keeps targets this far from every edge of the field.
	FieldMargin = 150

	// TargetTolerance is the half-width of the square a fingertip must reach.
	TargetTolerance = 20

	// TargetRadius is the drawn size of a target; larger than the hit square.
	TargetRadius = 25

	// HotspotTolerance is the half-width of the restart hotspot's hit square.
	HotspotTolerance = 25

	// HotspotInsetX and HotspotInsetY place the hotspot relative to the
	// bottom-right corner of the field.
	HotspotInsetX = 150
	HotspotInsetY = 100

	// HighlightRadius is the drawn size of the tracked index fingertip.
	HighlightRadius = 10
)

// Target is the location the player must reach with a specific finger.
type Target struct {
	Finger    FingerID `json:"finger"`
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Tolerance int      `json:"tolerance"`
}

// TargetGenerator places a new target inside the given field.
type TargetGenerator interface {
	Generate(bounds FieldBounds) Target
}

// RandomTargets draws targets uniformly from the usable part of the field.
type RandomTargets struct {
	rng *rand.Rand
}

// NewRandomTargets returns a generator backed by rng. The RNG is required so
// target sequences are reproducible under a fixed seed.
func NewRandomTargets(rng *rand.Rand) *RandomTargets {
	if rng == nil {
		panic("rng is required for target generation")
	}
	return &RandomTargets{rng: rng}
}

// Generate picks a finger and a location in [150, W-150) x [150, H-150).
// On an axis too small for that range the target sits on the field's center.
func (g *RandomTargets) Generate(bounds FieldBounds) Target {
	bounds = bounds.normalized()
	finger := Fingers[g.rng.IntN(len(Fingers))]
	return Target{
		Finger:    finger,
		X:         g.coord(bounds.Width),
		Y:         g.coord(bounds.Height),
		Tolerance: TargetTolerance,
	}
}

func (g *RandomTargets) coord(extent int) int {
	span := extent - 2*FieldMargin
	if span <= 0 {
		return extent / 2
	}
	return FieldMargin + g.rng.IntN(span)
}

// Hotspot is the fixed restart region shown after a round ends.
type Hotspot struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Tolerance int `json:"tolerance"`
}

// HotspotFor derives the restart hotspot for the current field.
func HotspotFor(bounds FieldBounds) Hotspot {
	bounds = bounds.normalized()
	return Hotspot{
		X:         bounds.Width - HotspotInsetX,
		Y:         bounds.Height - HotspotInsetY,
		Tolerance: HotspotTolerance,
	}
}

// Target returns the hotspot as an index-finger target so it can share the
// hit test.
func (h Hotspot) Target() Target {
	return Target{Finger: Index, X: h.X, Y: h.Y, Tolerance: h.Tolerance}
}
