package game

// TrackedPoint is a single identified pixel coordinate reported by the tracker.
type TrackedPoint struct {
	ID int `json:"id"`
	X  int `json:"x"`
	Y  int `json:"y"`
}

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointSet holds the fingertip positions seen in one frame. Identifiers that
// don't map to a FingerID are dropped on construction.
type PointSet struct {
	tips [len(Fingers)]Point
	seen [len(Fingers)]bool
}

// NewPointSet builds a PointSet from the tracker's per-frame output.
// Repeated identifiers overwrite earlier ones.
func NewPointSet(points []TrackedPoint) PointSet {
	var ps PointSet
	for _, p := range points {
		f, ok := FingerForLandmark(p.ID)
		if !ok {
			continue
		}
		ps.tips[f] = Point{X: p.X, Y: p.Y}
		ps.seen[f] = true
	}
	return ps
}

// Get returns the position of the fingertip, if it was tracked this frame.
func (ps PointSet) Get(f FingerID) (Point, bool) {
	if !f.Valid() || !ps.seen[f] {
		return Point{}, false
	}
	return ps.tips[f], true
}

// Len returns the number of fingertips present.
func (ps PointSet) Len() int {
	n := 0
	for _, ok := range ps.seen {
		if ok {
			n++
		}
	}
	return n
}

// Empty reports whether no fingertip was tracked.
func (ps PointSet) Empty() bool {
	return ps.Len() == 0
}

// MaxFieldExtent is the largest field width or height a host should accept
// from outside the process.
const MaxFieldExtent = 4096

// FieldBounds is the size of the play field in pixels for the current frame.
type FieldBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// normalized clamps both dimensions to at least one pixel.
func (b FieldBounds) normalized() FieldBounds {
	if b.Width < 1 {
		b.Width = 1
	}
	if b.Height < 1 {
		b.Height = 1
	}
	return b
}
