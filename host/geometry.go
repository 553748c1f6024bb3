package host

import "github.com/ddvk/rmscribble/geometry"

// Geometry types understood by insertGeometry.
const (
	GeometryPolygon      = "GEO_polygon"
	GeometryStraightLine = "straightLine"
)

const (
	defaultPenColor = 0x9D
	defaultPenType  = 10
	defaultPenWidth = 2
)

// GeometrySpec is the payload of an insertGeometry call.
type GeometrySpec struct {
	PenColor           int              `json:"penColor"`
	PenType            int              `json:"penType"`
	PenWidth           int              `json:"penWidth"`
	Type               string           `json:"type"`
	Points             []geometry.Point `json:"points"`
	EllipseCenter      *geometry.Point  `json:"ellipseCenterPoint"`
	EllipseMajorRadius float64          `json:"ellipseMajorAxisRadius"`
	EllipseMinorRadius float64          `json:"ellipseMinorAxisRadius"`
	EllipseAngle       float64          `json:"ellipseAngle"`
}

// Geometry is what the host returns for an inserted geometry.
type Geometry struct {
	ID   string       `json:"uuid,omitempty"`
	Spec GeometrySpec `json:"geometry"`
}

// PolygonFromArea outlines box with a closed polygon.
func PolygonFromArea(box geometry.BoundingBox) GeometrySpec {
	return GeometrySpec{
		PenColor: defaultPenColor,
		PenType:  defaultPenType,
		PenWidth: defaultPenWidth,
		Type:     GeometryPolygon,
		Points: []geometry.Point{
			{X: box.MinX, Y: box.MinY},
			{X: box.MaxX, Y: box.MinY},
			{X: box.MaxX, Y: box.MaxY},
			{X: box.MinX, Y: box.MaxY},
			{X: box.MinX, Y: box.MinY},
		},
	}
}

// LineFromArea draws a straight line across box, 10px below its top edge.
func LineFromArea(box geometry.BoundingBox) GeometrySpec {
	return GeometrySpec{
		PenColor: defaultPenColor,
		PenType:  defaultPenType,
		PenWidth: defaultPenWidth,
		Type:     GeometryStraightLine,
		Points: []geometry.Point{
			{X: box.MinX, Y: box.MinY + 10},
			{X: box.MaxX, Y: box.MinY + 10},
		},
	}
}
