package host

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultValue(t *testing.T) {
	v, err := Ok("/note/Scribbles.note").Value(opCurrentFilePath)
	require.NoError(t, err)
	assert.Equal(t, "/note/Scribbles.note", v)
}

func TestResultValueFailure(t *testing.T) {
	_, err := Fail[string]("no file open").Value(opCurrentFilePath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrHostCall))
	assert.Equal(t, "getCurrentFilePath: no file open", err.Error())
}

func TestResultValueFallbackMessage(t *testing.T) {
	var res Result[[]Element]
	require.NoError(t, json.Unmarshal([]byte(`{"success":false}`), &res))

	_, err := res.Value(opElements)
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "getElements call failed", ce.Message)
}

func TestDeletionFailedErrorIsHostCall(t *testing.T) {
	err := errors.Wrap(&DeletionFailedError{ID: "a", Message: "locked"}, "erase")
	assert.True(t, errors.Is(err, ErrHostCall))

	var de *DeletionFailedError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "a", de.ID)
}

func TestPolygonFromArea(t *testing.T) {
	spec := PolygonFromArea(boxOf(100, 100, 500, 200))
	assert.Equal(t, GeometryPolygon, spec.Type)
	require.Len(t, spec.Points, 5)
	assert.Equal(t, spec.Points[0], spec.Points[4])
	assert.Equal(t, 500.0, spec.Points[2].X)
	assert.Equal(t, 200.0, spec.Points[2].Y)
	assert.Equal(t, 0x9D, spec.PenColor)
}

func TestLineFromArea(t *testing.T) {
	spec := LineFromArea(boxOf(0, 20, 50, 80))
	assert.Equal(t, GeometryStraightLine, spec.Type)
	require.Len(t, spec.Points, 2)
	assert.Equal(t, 30.0, spec.Points[0].Y)
	assert.Equal(t, 30.0, spec.Points[1].Y)
}
