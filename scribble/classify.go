// Package scribble decides whether a pen stroke is a delete gesture.
//
// A scribble is a dense back-and-forth motion: its path is much longer than
// the diagonal of the area it covers and it changes direction many times.
// Both conditions must hold. A long smooth curve is dense but barely
// inverts; a short zigzag inverts a lot but covers too little ground.
package scribble

import (
	"math"

	"github.com/ddvk/rmscribble/geometry"
)

const (
	// MinPoints is the shortest stroke that can be a scribble.
	MinPoints = 30
	// JitterThreshold is the step in pixels an axis must move for a
	// direction change on that axis to count as an inversion.
	JitterThreshold = 2.0
	// DensityRatio is how many times longer than its bounding box diagonal
	// the path must be.
	DensityRatio = 3.0
	// MinInversions must be exceeded by the combined x and y inversions.
	MinInversions = 10
)

// Metrics are the values the classification is based on.
type Metrics struct {
	Points        int
	TotalDistance float64
	XInversions   int
	YInversions   int
	Bounds        geometry.BoundingBox
}

// Diagonal of the stroke's bounding box.
func (m Metrics) Diagonal() float64 {
	return m.Bounds.Diagonal()
}

func (m Metrics) Inversions() int {
	return m.XInversions + m.YInversions
}

// Dense reports whether the path length exceeds DensityRatio diagonals.
func (m Metrics) Dense() bool {
	return m.TotalDistance > m.Diagonal()*DensityRatio
}

// Jittery reports whether there are more than MinInversions inversions.
func (m Metrics) Jittery() bool {
	return m.Inversions() > MinInversions
}

// IsScribble applies the full predicate, including the length check.
func (m Metrics) IsScribble() bool {
	return m.Points >= MinPoints && m.Dense() && m.Jittery()
}

// Analyze walks the points once and collects the path length, the
// per-axis direction inversions and the bounding box.
func Analyze(points []geometry.Point) (Metrics, error) {
	bounds, err := geometry.ComputeBounds(points)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{
		Points: len(points),
		Bounds: bounds,
	}

	for i := 1; i < len(points); i++ {
		curr := points[i]
		prev := points[i-1]

		dx := curr.X - prev.X
		dy := curr.Y - prev.Y
		m.TotalDistance += math.Sqrt(dx*dx + dy*dy)

		if i < 2 {
			continue
		}
		pPrev := points[i-2]

		if inverted(dx, prev.X-pPrev.X) {
			m.XInversions++
		}
		if inverted(dy, prev.Y-pPrev.Y) {
			m.YInversions++
		}
	}

	return m, nil
}

// inverted reports a direction change between two consecutive steps on
// one axis. Steps of JitterThreshold pixels or less are ignored.
func inverted(step, previous float64) bool {
	return sign(step) != sign(previous) && math.Abs(step) > JitterThreshold
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Classify returns true when points form a delete scribble. Strokes shorter
// than MinPoints never do.
func Classify(points []geometry.Point) bool {
	if len(points) < MinPoints {
		return false
	}

	m, err := Analyze(points)
	if err != nil {
		return false
	}

	return m.IsScribble()
}
