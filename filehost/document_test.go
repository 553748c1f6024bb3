package filehost

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ddvk/rmscribble/encoding/rm"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stroke(brush rm.BrushType, xy ...float32) rm.Line {
	line := rm.Line{BrushType: brush, BrushSize: rm.Medium}
	for i := 0; i+1 < len(xy); i += 2 {
		line.Points = append(line.Points, rm.Point{X: xy[i], Y: xy[i+1], Pressure: .5, Width: 2})
	}
	return line
}

func writePage(t *testing.T, dir string, num int, lines ...rm.Line) {
	t.Helper()
	page := rm.Rm{Layers: []rm.Layer{{Lines: lines}}}
	data, err := page.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, pageFile(num)), data, 0644))
}

func pageFile(num int) string {
	return strconv.Itoa(num) + PageExt
}

func openDoc(t *testing.T) (*Document, string) {
	dir := t.TempDir()
	writePage(t, dir, 0,
		stroke(rm.FinelinerV5, 10, 10, 20, 20),
		stroke(rm.Eraser, 10, 10, 20, 20),
		stroke(rm.BallPointV5, 100, 100, 200, 200, 150, 150),
	)
	writePage(t, dir, 1, stroke(rm.FinelinerV5, 1, 1))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	doc, err := Open(dir)
	require.NoError(t, err)
	return doc, dir
}

func TestPageNumber(t *testing.T) {
	n, ok := PageNumber("/some/dir/12.rm")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = PageNumber("12.rm.bak")
	assert.False(t, ok)
	_, ok = PageNumber("cover.rm")
	assert.False(t, ok)
}

func TestOpen(t *testing.T) {
	doc, dir := openDoc(t)
	assert.Equal(t, []int{0, 1}, doc.Pages())

	path, err := doc.CurrentFilePath(context.Background())
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, path)

	elements, err := doc.Elements(context.Background(), 0, path)
	require.NoError(t, err)
	// the eraser line is not an element
	require.Len(t, elements, 2)
	assert.Equal(t, host.TypeStroke, elements[0].Type)
	assert.Equal(t, 0, elements[0].PageNum)
	assert.Len(t, elements[1].Stroke.Points, 3)
	assert.NotEqual(t, elements[0].ID, elements[1].ID)

	again, err := doc.Elements(context.Background(), 0, path)
	require.NoError(t, err)
	assert.Equal(t, elements, again)
}

func TestElementsErrors(t *testing.T) {
	doc, _ := openDoc(t)

	_, err := doc.Elements(context.Background(), 0, "/elsewhere")
	assert.True(t, errors.Is(err, host.ErrHostCall))

	_, err = doc.Elements(context.Background(), 7, doc.Dir())
	assert.True(t, errors.Is(err, host.ErrHostCall))
}

func TestRecycleAndSave(t *testing.T) {
	doc, dir := openDoc(t)
	ctx := context.Background()

	elements, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)
	require.NoError(t, doc.RecycleElement(ctx, elements[1].ID))

	err = doc.RecycleElement(ctx, elements[1].ID)
	var de *host.DeletionFailedError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, elements[1].ID, de.ID)

	require.NoError(t, doc.Save())

	reopened, err := Open(dir)
	require.NoError(t, err)
	page, ok := reopened.Page(0)
	require.True(t, ok)
	require.Len(t, page.Layers[0].Lines, 2)
	assert.Equal(t, rm.FinelinerV5, page.Layers[0].Lines[0].BrushType)
	assert.Equal(t, rm.Eraser, page.Layers[0].Lines[1].BrushType)
}

func TestInsertGeometry(t *testing.T) {
	doc, dir := openDoc(t)
	ctx := context.Background()
	doc.SetCurrentPage(2)

	spec := host.PolygonFromArea(boxOf(100, 100, 500, 200))
	g, err := doc.InsertGeometry(ctx, spec)
	require.NoError(t, err)
	assert.NotEmpty(t, g.ID)

	elements, err := doc.Elements(ctx, 2, doc.Dir())
	require.NoError(t, err)
	require.Len(t, elements, 1)
	assert.Equal(t, host.TypeGeometry, elements[0].Type)
	assert.Equal(t, spec.Points, elements[0].Stroke.Points)

	_, err = doc.InsertGeometry(ctx, host.GeometrySpec{Type: "GEO_circle"})
	assert.True(t, errors.Is(err, host.ErrHostCall))

	require.NoError(t, doc.Save())
	reopened, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, reopened.Pages())
}

func TestCreateElement(t *testing.T) {
	doc, _ := openDoc(t)
	ctx := context.Background()
	doc.SetCurrentPage(1)

	el, err := doc.CreateElement(ctx, host.TypeStroke)
	require.NoError(t, err)
	assert.Equal(t, 1, el.PageNum)
	assert.Empty(t, el.Stroke.Points)

	_, err = doc.CreateElement(ctx, host.ElementType(3))
	assert.Error(t, err)

	elements, err := doc.Elements(ctx, 1, doc.Dir())
	require.NoError(t, err)
	assert.Len(t, elements, 2)
}

func TestReloadReportsAppendedLines(t *testing.T) {
	doc, dir := openDoc(t)
	ctx := context.Background()

	before, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)

	writePage(t, dir, 0,
		stroke(rm.FinelinerV5, 10, 10, 20, 20),
		stroke(rm.Eraser, 10, 10, 20, 20),
		stroke(rm.BallPointV5, 100, 100, 200, 200, 150, 150),
		stroke(rm.MarkerV5, 5, 5, 6, 6),
	)

	added, err := doc.Reload(0)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, 5.0, added[0].Stroke.Points[0].X)

	after, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)

	// nothing changed on disk
	added, err = doc.Reload(0)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestReloadAfterRemoval(t *testing.T) {
	doc, dir := openDoc(t)

	writePage(t, dir, 0, stroke(rm.FinelinerV5, 10, 10, 20, 20))
	added, err := doc.Reload(0)
	require.NoError(t, err)
	assert.Empty(t, added)

	elements, err := doc.Elements(context.Background(), 0, doc.Dir())
	require.NoError(t, err)
	assert.Len(t, elements, 1)
}

func TestReloadKeepsUnsavedChanges(t *testing.T) {
	dir := t.TempDir()
	a := stroke(rm.FinelinerV5, 10, 10, 20, 20)
	b := stroke(rm.FinelinerV5, 500, 500, 520, 520)
	c := stroke(rm.FinelinerV5, 900, 900, 920, 920)
	writePage(t, dir, 0, a, b)

	doc, err := Open(dir)
	require.NoError(t, err)
	ctx := context.Background()

	before, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)
	require.Len(t, before, 2)
	require.NoError(t, doc.RecycleElement(ctx, before[0].ID))
	inserted, err := doc.InsertGeometry(ctx, host.PolygonFromArea(boxOf(100, 100, 500, 200)))
	require.NoError(t, err)

	// another writer appends to the copy it read before the delete
	writePage(t, dir, 0, a, b, c)

	added, err := doc.Reload(0)
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, 900.0, added[0].Stroke.Points[0].X)

	after, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)
	require.Len(t, after, 3)
	assert.Equal(t, before[1].ID, after[0].ID)
	assert.Equal(t, 500.0, after[0].Stroke.Points[0].X)
	assert.Equal(t, added[0].ID, after[1].ID)
	assert.Equal(t, inserted.ID, after[2].ID)
	assert.Equal(t, host.TypeGeometry, after[2].Type)

	require.NoError(t, doc.Save())
	saved := &rm.Rm{}
	data, err := ioutil.ReadFile(filepath.Join(dir, pageFile(0)))
	require.NoError(t, err)
	require.NoError(t, saved.UnmarshalBinary(data))
	require.Len(t, saved.Layers[0].Lines, 3)
	assert.Equal(t, float32(500), saved.Layers[0].Lines[0].Points[0].X)

	added, err = doc.Reload(0)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestReloadIgnoresOwnWrites(t *testing.T) {
	doc, _ := openDoc(t)
	ctx := context.Background()

	elements, err := doc.Elements(ctx, 0, doc.Dir())
	require.NoError(t, err)
	require.NoError(t, doc.RecycleElement(ctx, elements[0].ID))
	require.NoError(t, doc.Save())

	added, err := doc.Reload(0)
	require.NoError(t, err)
	assert.Empty(t, added)
}

func TestWatcherHandle(t *testing.T) {
	doc, dir := openDoc(t)

	var batches [][]host.Element
	w := &Watcher{doc: doc, onPenUp: func(_ context.Context, elements []host.Element) error {
		batches = append(batches, elements)
		return nil
	}}

	writePage(t, dir, 1, stroke(rm.FinelinerV5, 1, 1), stroke(rm.FinelinerV5, 2, 2, 3, 3))
	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "1.rm"), Op: fsnotify.Write})
	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "1.rm"), Op: fsnotify.Chmod})
	w.handle(context.Background(), fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write})

	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	assert.Equal(t, 1, batches[0][0].PageNum)
}

func boxOf(minX, minY, maxX, maxY float64) geometry.BoundingBox {
	return geometry.BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}
