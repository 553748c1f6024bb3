// Package host describes the document host the scribble engine runs
// against: the elements it hands out and the calls it accepts.
package host

import (
	"context"

	"github.com/ddvk/rmscribble/geometry"
)

// ElementType is the host's element type code.
type ElementType int

const (
	TypeStroke   ElementType = 0
	TypeGeometry ElementType = 700
)

func (t ElementType) String() string {
	switch t {
	case TypeStroke:
		return "stroke"
	case TypeGeometry:
		return "geometry"
	}
	return "unknown"
}

// Stroke is the time ordered pen trace of a stroke element.
type Stroke struct {
	Points []geometry.Point `json:"points"`
}

// Element is a document object owned by the host.
type Element struct {
	ID      string      `json:"uuid"`
	Type    ElementType `json:"type"`
	PageNum int         `json:"pageNum"`
	Stroke  *Stroke     `json:"stroke,omitempty"`
}

// IsStroke reports whether the element is a stroke carrying points.
func (e Element) IsStroke() bool {
	return e.Type == TypeStroke && e.Stroke != nil
}

// Bounds of the element's stroke.
func (e Element) Bounds() (geometry.BoundingBox, error) {
	if e.Stroke == nil {
		return geometry.BoundingBox{}, geometry.ErrEmptyInput
	}
	return geometry.ComputeBounds(e.Stroke.Points)
}

// Deleter removes elements by identifier.
type Deleter interface {
	RecycleElement(ctx context.Context, id string) error
}

// Host is the set of calls the engine makes into the document host.
// Every call may fail; failures are *CallError values, or
// *DeletionFailedError for RecycleElement.
type Host interface {
	Deleter
	CurrentFilePath(ctx context.Context) (string, error)
	Elements(ctx context.Context, page int, path string) ([]Element, error)
	InsertGeometry(ctx context.Context, spec GeometrySpec) (Geometry, error)
	CreateElement(ctx context.Context, typ ElementType) (Element, error)
}
