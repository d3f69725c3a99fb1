package scene

// Point2 is a projected screen coordinate
type Point2 struct {
	X, Y float64
}

// Extent is the scene-space half width covered by the viewport
const Extent = 6.0

// Project maps a scene position onto a width x height viewport with a simple
// perspective divide along Z. Used for the static SVG backdrop.
func Project(v Vec3, width, height float64) Point2 {
	depth := 1 + v.Z/(4*Extent)
	if depth <= 0.1 {
		depth = 0.1
	}
	nx := (v.X/depth + Extent) / (2 * Extent)
	ny := (Extent - v.Y/depth) / (2 * Extent)
	return Point2{
		X: Lerp(0, width, nx),
		Y: Lerp(0, height, ny),
	}
}
