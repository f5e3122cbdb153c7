package game

import "fmt"

// FingerID identifies one of the five fingertips the game can ask for.
type FingerID int

const (
	Thumb FingerID = iota
	Index
	Middle
	Ring
	Pinky
)

// Fingers lists every FingerID in landmark order.
var Fingers = [...]FingerID{Thumb, Index, Middle, Ring, Pinky}

// landmarkIDs maps each finger to the tracker's fingertip landmark.
var landmarkIDs = [...]int{4, 8, 12, 16, 20}

func (f FingerID) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FingerID(%d)", int(f))
	}
	return [...]string{"Thumb", "Index", "Middle", "Ring", "Pinky"}[f]
}

// Valid reports whether f is one of the five known fingers.
func (f FingerID) Valid() bool {
	return f >= Thumb && f <= Pinky
}

// Landmark returns the tracker point identifier for the fingertip.
func (f FingerID) Landmark() int {
	if !f.Valid() {
		return -1
	}
	return landmarkIDs[f]
}

// FingerForLandmark is the inverse of Landmark.
func FingerForLandmark(id int) (FingerID, bool) {
	for i, lm := range landmarkIDs {
		if lm == id {
			return FingerID(i), true
		}
	}
	return 0, false
}
