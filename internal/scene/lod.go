package scene

// Distance bands for level of detail.
const (
	NearDistance = 10.0
	MidDistance  = 20.0
	MinSegments  = 6
)

// SegmentsAt returns the sphere tessellation for an object at distance from
// the camera. Each band past the near one halves the segment count.
func SegmentsAt(base int, distance float64) int {
	segments := base
	switch {
	case distance < NearDistance:
	case distance < MidDistance:
		segments = base / 2
	default:
		segments = base / 4
	}
	if segments < MinSegments {
		return MinSegments
	}
	return segments
}
