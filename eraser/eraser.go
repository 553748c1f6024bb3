// Package eraser removes a confirmed scribble together with everything it
// was drawn over.
package eraser

import (
	"context"

	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/pkg/errors"
)

// DefaultMargin is the tolerance in pixels around the scribble area.
const DefaultMargin = 100

// Result of an erase pass.
type Result struct {
	// DeletedCount is the number of siblings removed, not counting the
	// scribble itself.
	DeletedCount int
	Deleted      []string
}

// DeleteScribbleAndOverlaps deletes every sibling whose bounds lie inside
// the scribble's bounds grown by margin, then the scribble itself.
//
// The scan stops at the first failed delete. Deletes already issued are
// not rolled back.
func DeleteScribbleAndOverlaps(ctx context.Context, d host.Deleter, scribble host.Element, siblings []host.Element, margin float64) (Result, error) {
	var res Result

	area, err := scribble.Bounds()
	if err != nil {
		return res, errors.Wrapf(err, "scribble %s", scribble.ID)
	}

	for _, target := range siblings {
		if target.ID == scribble.ID {
			continue
		}
		if !overlapping(area, target, margin) {
			continue
		}

		if err := d.RecycleElement(ctx, target.ID); err != nil {
			return res, deletionFailed(target.ID, err)
		}
		log.Trace.Printf("[scribble/delete] element %s deleted", target.ID)
		res.DeletedCount++
		res.Deleted = append(res.Deleted, target.ID)
	}

	if err := d.RecycleElement(ctx, scribble.ID); err != nil {
		return res, deletionFailed(scribble.ID, err)
	}
	log.Trace.Printf("[scribble/delete] scribble %s deleted", scribble.ID)

	return res, nil
}

func overlapping(area geometry.BoundingBox, target host.Element, margin float64) bool {
	if !target.IsStroke() {
		log.Trace.Printf("[scribble/delete] skipping %s: %s element", target.ID, target.Type)
		return false
	}
	targetArea, err := target.Bounds()
	if err != nil {
		// empty stroke
		log.Trace.Printf("[scribble/delete] skipping %s: %v", target.ID, err)
		return false
	}
	return geometry.Overlaps(area, targetArea, margin)
}

func deletionFailed(id string, err error) error {
	var de *host.DeletionFailedError
	if errors.As(err, &de) {
		return err
	}
	return &host.DeletionFailedError{ID: id, Message: err.Error()}
}
