// Package filehost serves a directory of .rm pages as a document host.
// Pages are named after their number (0.rm, 1.rm, ...). Every line of a
// page is a stroke element with an ID that is stable while the Document
// is open.
package filehost

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	"github.com/ddvk/rmscribble/encoding/rm"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const PageExt = ".rm"

var pageName = regexp.MustCompile(`^(\d+)\.rm$`)

type page struct {
	num   int
	file  string
	rm    *rm.Rm
	ids   [][]string
	kinds map[string]host.ElementType
	raw   []byte
	// saved are the IDs of the lines in raw, in file order
	saved [][]string
	dirty bool
}

// Document is a host.Host backed by .rm files.
type Document struct {
	mu      sync.Mutex
	dir     string
	pages   map[int]*page
	current int
}

// Open loads every page file found in dir.
func Open(dir string) (*Document, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	entries, err := ioutil.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrap(err, "open document")
	}

	d := &Document{dir: abs, pages: map[int]*page{}}
	for _, e := range entries {
		num, ok := PageNumber(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		p, err := loadPage(num, filepath.Join(abs, e.Name()))
		if err != nil {
			return nil, err
		}
		d.pages[num] = p
	}
	log.Trace.Printf("opened %s with %d pages", abs, len(d.pages))

	return d, nil
}

// PageNumber extracts the page number from a page file name.
func PageNumber(name string) (int, bool) {
	m := pageName.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func loadPage(num int, file string) (*page, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, err
	}
	p := &page{num: num, file: file, kinds: map[string]host.ElementType{}}
	if err := p.decode(data); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *page) decode(data []byte) error {
	page := &rm.Rm{}
	if err := page.UnmarshalBinary(data); err != nil {
		return errors.Wrapf(err, "page %s", filepath.Base(p.file))
	}
	p.rm = page
	p.raw = data
	p.ids = make([][]string, len(page.Layers))
	for i, layer := range page.Layers {
		p.ids[i] = newIDs(len(layer.Lines))
	}
	p.saved = copyIDs(p.ids)
	return nil
}

func copyIDs(ids [][]string) [][]string {
	out := make([][]string, len(ids))
	for i, layer := range ids {
		out[i] = append([]string(nil), layer...)
	}
	return out
}

func newIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.New().String()
	}
	return ids
}

// Dir is the document directory.
func (d *Document) Dir() string {
	return d.dir
}

// Pages returns the page numbers in order.
func (d *Document) Pages() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	nums := make([]int, 0, len(d.pages))
	for n := range d.pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// SetCurrentPage selects the page new geometry and elements go to,
// creating it if needed.
func (d *Document) SetCurrentPage(num int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pageLocked(num)
	d.current = num
}

func (d *Document) CurrentPage() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Document) pageLocked(num int) *page {
	p, ok := d.pages[num]
	if !ok {
		p = &page{
			num:   num,
			file:  filepath.Join(d.dir, strconv.Itoa(num)+PageExt),
			rm:    rm.New(),
			ids:   [][]string{nil},
			kinds: map[string]host.ElementType{},
			dirty: true,
		}
		d.pages[num] = p
	}
	return p
}

// Page returns a copy of the lines of page num.
func (d *Document) Page(num int) (*rm.Rm, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pages[num]
	if !ok {
		return nil, false
	}
	cp := &rm.Rm{Version: p.rm.Version, Layers: make([]rm.Layer, len(p.rm.Layers))}
	for i, l := range p.rm.Layers {
		cp.Layers[i].Lines = append([]rm.Line(nil), l.Lines...)
	}
	return cp, true
}

func (p *page) element(layer, idx int) host.Element {
	line := p.rm.Layers[layer].Lines[idx]
	id := p.ids[layer][idx]

	typ := host.TypeStroke
	if k, ok := p.kinds[id]; ok {
		typ = k
	}

	points := make([]geometry.Point, len(line.Points))
	for i, pt := range line.Points {
		points[i] = geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}
	}

	return host.Element{
		ID:      id,
		Type:    typ,
		PageNum: p.num,
		Stroke:  &host.Stroke{Points: points},
	}
}

// elements lists the visible lines.
func (p *page) elements() []host.Element {
	var out []host.Element
	for layer, lines := range p.rm.Layers {
		for i, line := range lines.Lines {
			if line.BrushType.IsEraser() {
				continue
			}
			out = append(out, p.element(layer, i))
		}
	}
	return out
}

func (p *page) find(id string) (int, int, bool) {
	for layer, ids := range p.ids {
		for i, lineID := range ids {
			if lineID == id {
				return layer, i, true
			}
		}
	}
	return 0, 0, false
}

func (d *Document) CurrentFilePath(context.Context) (string, error) {
	return d.dir, nil
}

func (d *Document) Elements(_ context.Context, num int, path string) ([]host.Element, error) {
	if path != d.dir {
		return nil, &host.CallError{Op: "getElements", Message: "unknown document " + path}
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pages[num]
	if !ok {
		return nil, &host.CallError{Op: "getElements", Message: "no page " + strconv.Itoa(num)}
	}
	return p.elements(), nil
}

func (d *Document) RecycleElement(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.pages {
		layer, i, ok := p.find(id)
		if !ok {
			continue
		}
		lines := p.rm.Layers[layer].Lines
		p.rm.Layers[layer].Lines = append(lines[:i:i], lines[i+1:]...)
		ids := p.ids[layer]
		p.ids[layer] = append(ids[:i:i], ids[i+1:]...)
		delete(p.kinds, id)
		p.dirty = true
		log.Trace.Printf("element %s deleted from page %d", id, p.num)
		return nil
	}
	return &host.DeletionFailedError{ID: id, Message: "element not found"}
}

func (d *Document) appendLine(line rm.Line, typ host.ElementType) host.Element {
	p := d.pageLocked(d.current)
	if len(p.rm.Layers) == 0 {
		p.rm.Layers = []rm.Layer{{}}
		p.ids = [][]string{nil}
	}
	last := len(p.rm.Layers) - 1
	p.rm.Layers[last].Lines = append(p.rm.Layers[last].Lines, line)
	id := uuid.New().String()
	p.ids[last] = append(p.ids[last], id)
	p.kinds[id] = typ
	p.dirty = true
	return p.element(last, len(p.ids[last])-1)
}

// InsertGeometry traces the geometry points with a fineliner on the current page.
func (d *Document) InsertGeometry(_ context.Context, spec host.GeometrySpec) (host.Geometry, error) {
	switch spec.Type {
	case host.GeometryPolygon, host.GeometryStraightLine:
	default:
		return host.Geometry{}, &host.CallError{Op: "insertGeometry", Message: "unsupported geometry " + spec.Type}
	}
	if len(spec.Points) < 2 {
		return host.Geometry{}, &host.CallError{Op: "insertGeometry", Message: "geometry needs at least two points"}
	}

	line := rm.Line{
		BrushType: rm.FinelinerV5,
		BrushSize: rm.BrushSize(spec.PenWidth),
		Points:    make([]rm.Point, len(spec.Points)),
	}
	for i, pt := range spec.Points {
		line.Points[i] = rm.Point{X: float32(pt.X), Y: float32(pt.Y), Width: float32(spec.PenWidth), Pressure: 1}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.appendLine(line, host.TypeGeometry)
	return host.Geometry{ID: el.ID, Spec: spec}, nil
}

// CreateElement appends an empty line to the current page.
func (d *Document) CreateElement(_ context.Context, typ host.ElementType) (host.Element, error) {
	if typ != host.TypeStroke && typ != host.TypeGeometry {
		return host.Element{}, &host.CallError{Op: "createElement", Message: "unsupported type " + strconv.Itoa(int(typ))}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.appendLine(rm.Line{BrushType: rm.FinelinerV5, BrushSize: rm.Medium}, typ), nil
}

// Save writes every modified page.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, p := range d.pages {
		if !p.dirty {
			continue
		}
		data, err := p.rm.MarshalBinary()
		if err != nil {
			return err
		}
		if err := writeFile(p.file, data); err != nil {
			return errors.Wrapf(err, "save page %d", p.num)
		}
		p.raw = data
		p.saved = copyIDs(p.ids)
		p.dirty = false
		log.Trace.Printf("page %d saved", p.num)
	}
	return nil
}

func writeFile(file string, data []byte) error {
	tmp, err := ioutil.TempFile(filepath.Dir(file), ".page-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), file)
}

// Reload re-reads a page file changed by someone else and returns the
// lines appended since the page was last loaded or saved. Lines already
// on disk keep their IDs. Unsaved changes survive: lines deleted in
// memory stay deleted and lines added in memory are kept after the
// file's lines. When lines were removed from the file instead, the page
// is reloaded as is, every line gets a new ID and nothing is reported.
func (d *Document) Reload(num int) ([]host.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := d.pageLocked(num)
	data, err := ioutil.ReadFile(p.file)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(data, p.raw) {
		return nil, nil
	}

	fresh := &rm.Rm{}
	if err := fresh.UnmarshalBinary(data); err != nil {
		return nil, errors.Wrapf(err, "reload page %d", num)
	}

	appended := len(fresh.Layers) >= len(p.saved)
	for i := 0; appended && i < len(p.saved); i++ {
		appended = len(fresh.Layers[i].Lines) >= len(p.saved[i])
	}

	if !appended {
		if err := p.decode(data); err != nil {
			return nil, err
		}
		p.kinds = map[string]host.ElementType{}
		p.dirty = false
		return nil, nil
	}

	live := map[string]bool{}
	for _, layer := range p.ids {
		for _, id := range layer {
			live[id] = true
		}
	}
	onDisk := map[string]bool{}
	for _, layer := range p.saved {
		for _, id := range layer {
			onDisk[id] = true
		}
	}

	merged := &rm.Rm{Version: fresh.Version, Layers: make([]rm.Layer, len(fresh.Layers))}
	ids := make([][]string, len(fresh.Layers))
	saved := make([][]string, len(fresh.Layers))
	added := map[string]bool{}
	dirty := false

	for i, layer := range fresh.Layers {
		known := 0
		if i < len(p.saved) {
			known = len(p.saved[i])
			saved[i] = append(saved[i], p.saved[i]...)
		}
		for _, id := range newIDs(len(layer.Lines) - known) {
			saved[i] = append(saved[i], id)
			added[id] = true
		}

		for j, line := range layer.Lines {
			id := saved[i][j]
			if j < known && !live[id] {
				// deleted here, not saved yet
				dirty = true
				continue
			}
			merged.Layers[i].Lines = append(merged.Layers[i].Lines, line)
			ids[i] = append(ids[i], id)
		}
	}

	for i, layer := range p.ids {
		for j, id := range layer {
			if onDisk[id] {
				continue
			}
			if len(merged.Layers) == 0 {
				merged.Layers = []rm.Layer{{}}
				ids = [][]string{nil}
			}
			dst := i
			if dst >= len(merged.Layers) {
				dst = len(merged.Layers) - 1
			}
			merged.Layers[dst].Lines = append(merged.Layers[dst].Lines, p.rm.Layers[i].Lines[j])
			ids[dst] = append(ids[dst], id)
			dirty = true
		}
	}

	p.rm = merged
	p.ids = ids
	p.saved = saved
	p.raw = data
	p.dirty = dirty

	var out []host.Element
	for _, el := range p.elements() {
		if added[el.ID] {
			out = append(out, el)
		}
	}
	return out, nil
}
