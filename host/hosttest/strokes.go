package hosttest

import (
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
)

// Scribble returns a stroke element zigzagging across the given box, dense
// enough to be classified as a scribble when the box is wider than a few
// pixels.
func Scribble(id string, page int, minX, minY, maxX, maxY float64) host.Element {
	const n = 40
	points := make([]geometry.Point, 0, n)
	for i := 0; i < n; i++ {
		x := minX
		if i%2 == 1 {
			x = maxX
		}
		y := minY + (maxY-minY)*float64(i)/float64(n-1)
		points = append(points, geometry.Point{X: x, Y: y})
	}
	return host.Element{ID: id, Type: host.TypeStroke, PageNum: page, Stroke: &host.Stroke{Points: points}}
}

// Line returns a stroke element going straight from (x1, y1) to (x2, y2).
func Line(id string, page int, x1, y1, x2, y2 float64) host.Element {
	const n = 10
	points := make([]geometry.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		f := float64(i) / n
		points = append(points, geometry.Point{X: x1 + (x2-x1)*f, Y: y1 + (y2-y1)*f})
	}
	return host.Element{ID: id, Type: host.TypeStroke, PageNum: page, Stroke: &host.Stroke{Points: points}}
}
