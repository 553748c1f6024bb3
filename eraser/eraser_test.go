package eraser

import (
	"context"
	"testing"

	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	deleted []string
	failOn  map[string]error
}

func (r *recorder) RecycleElement(_ context.Context, id string) error {
	if err, ok := r.failOn[id]; ok {
		return err
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func rect(id string, minX, minY, maxX, maxY float64) host.Element {
	return host.Element{
		ID:   id,
		Type: host.TypeStroke,
		Stroke: &host.Stroke{Points: []geometry.Point{
			{X: minX, Y: minY},
			{X: maxX, Y: maxY},
		}},
	}
}

func TestDeleteScribbleAndOverlaps(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	siblings := []host.Element{
		rect("inside", 10, 10, 90, 90),
		rect("outside", 300, 300, 400, 400),
		rect("boundary", 150, 10, 200, 50),
		scribble,
	}
	rec := &recorder{}

	res, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, siblings, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, res.DeletedCount)
	assert.Equal(t, []string{"inside", "boundary"}, res.Deleted)
	assert.Equal(t, []string{"inside", "boundary", "scribble"}, rec.deleted)
}

func TestDeleteScribbleWithoutSiblings(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	rec := &recorder{}

	res, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, nil, DefaultMargin)
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)
	assert.Equal(t, []string{"scribble"}, rec.deleted)
}

func TestDeleteSkipsElementsWithoutPoints(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	siblings := []host.Element{
		{ID: "geometry", Type: host.TypeGeometry},
		{ID: "empty", Type: host.TypeStroke, Stroke: &host.Stroke{}},
		rect("inside", 10, 10, 20, 20),
	}
	rec := &recorder{}

	res, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, siblings, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedCount)
	assert.Equal(t, []string{"inside", "scribble"}, rec.deleted)
}

func TestDeleteKeepsGeometryInsideScribble(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	shape := rect("shape", 10, 10, 90, 90)
	shape.Type = host.TypeGeometry
	siblings := []host.Element{shape, rect("inside", 20, 20, 30, 30)}
	rec := &recorder{}

	res, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, siblings, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.DeletedCount)
	assert.Equal(t, []string{"inside", "scribble"}, rec.deleted)
}

func TestDeleteAbortsOnFailure(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	siblings := []host.Element{
		rect("first", 10, 10, 20, 20),
		rect("locked", 30, 30, 40, 40),
		rect("third", 50, 50, 60, 60),
	}
	rec := &recorder{failOn: map[string]error{
		"locked": &host.DeletionFailedError{ID: "locked", Message: "element is locked"},
	}}

	res, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, siblings, 0)
	require.Error(t, err)

	var de *host.DeletionFailedError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "locked", de.ID)
	assert.Equal(t, "element is locked", de.Message)

	// the first delete stays applied, nothing after the failure is attempted
	assert.Equal(t, []string{"first"}, rec.deleted)
	assert.Equal(t, 1, res.DeletedCount)
}

func TestDeleteWrapsPlainErrors(t *testing.T) {
	scribble := rect("scribble", 0, 0, 100, 100)
	rec := &recorder{failOn: map[string]error{"scribble": errors.New("connection reset")}}

	_, err := DeleteScribbleAndOverlaps(context.Background(), rec, scribble, nil, 0)

	var de *host.DeletionFailedError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "scribble", de.ID)
	assert.Equal(t, "connection reset", de.Message)
	assert.True(t, errors.Is(err, host.ErrHostCall))
}

func TestDeleteScribbleWithoutPoints(t *testing.T) {
	rec := &recorder{}
	_, err := DeleteScribbleAndOverlaps(context.Background(), rec, host.Element{ID: "x", Stroke: &host.Stroke{}}, nil, 0)
	assert.True(t, errors.Is(err, geometry.ErrEmptyInput))
	assert.Empty(t, rec.deleted)
}
