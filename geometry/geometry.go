// Package geometry holds the bounding box helpers shared by the scribble
// classifier and the eraser.
package geometry

import (
	"math"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when bounds are requested for a stroke
// without points.
var ErrEmptyInput = errors.New("no points to compute bounds from")

// Point is a pen sample in document pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox is the axis aligned rectangle enclosing a stroke.
// A box built from a single point is valid and has zero width and height.
type BoundingBox struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// ComputeBounds returns the componentwise min/max over points.
func ComputeBounds(points []Point) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrEmptyInput
	}

	box := BoundingBox{
		MinX: points[0].X,
		MinY: points[0].Y,
		MaxX: points[0].X,
		MaxY: points[0].Y,
	}
	for _, p := range points[1:] {
		box.extend(p)
	}

	return box, nil
}

func (b *BoundingBox) extend(p Point) {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

func (b BoundingBox) Width() float64 {
	return b.MaxX - b.MinX
}

func (b BoundingBox) Height() float64 {
	return b.MaxY - b.MinY
}

// Diagonal is the length of the straight line spanning the box.
func (b BoundingBox) Diagonal() float64 {
	w, h := b.Width(), b.Height()
	return math.Sqrt(w*w + h*h)
}

// Expand grows the box by margin on every side.
func (b BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{
		MinX: b.MinX - margin,
		MinY: b.MinY - margin,
		MaxX: b.MaxX + margin,
		MaxY: b.MaxY + margin,
	}
}

// Contains reports whether other lies entirely inside b. Edges count as inside.
func (b BoundingBox) Contains(other BoundingBox) bool {
	return other.MinX >= b.MinX &&
		other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY &&
		other.MaxY <= b.MaxY
}

// Overlaps reports whether target sits inside the scribble area grown by
// margin. Only fully contained targets qualify: a stroke that merely
// crosses the scribbled area is left alone.
func Overlaps(scribble, target BoundingBox, margin float64) bool {
	return scribble.Expand(margin).Contains(target)
}
