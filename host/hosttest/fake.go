// Package hosttest provides an in-memory host for tests.
package hosttest

import (
	"context"
	"fmt"
	"sync"

	"github.com/ddvk/rmscribble/host"
)

// Fake is an in-memory host.Host that records every call.
type Fake struct {
	mu sync.Mutex

	Path     string
	PathErr  error
	Pages    map[int][]host.Element
	FailOn   map[string]string
	Deleted  []string
	Inserted []host.GeometrySpec
	Created  []host.Element
	Calls    []string
	next     int
}

// NewFake returns a host with path open and the given elements on their pages.
func NewFake(path string, elements ...host.Element) *Fake {
	f := &Fake{Path: path, Pages: map[int][]host.Element{}, FailOn: map[string]string{}}
	for _, el := range elements {
		f.Pages[el.PageNum] = append(f.Pages[el.PageNum], el)
	}
	return f
}

func (f *Fake) record(call string) {
	f.Calls = append(f.Calls, call)
}

func (f *Fake) CurrentFilePath(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("getCurrentFilePath")
	if f.PathErr != nil {
		return "", f.PathErr
	}
	return f.Path, nil
}

func (f *Fake) Elements(_ context.Context, page int, path string) ([]host.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("getElements")
	if path != f.Path {
		return nil, &host.CallError{Op: "getElements", Message: fmt.Sprintf("unknown file %s", path)}
	}
	out := make([]host.Element, len(f.Pages[page]))
	copy(out, f.Pages[page])
	return out, nil
}

func (f *Fake) RecycleElement(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("recycleElement")
	if msg, ok := f.FailOn[id]; ok {
		return &host.DeletionFailedError{ID: id, Message: msg}
	}
	for page, elements := range f.Pages {
		for i, el := range elements {
			if el.ID == id {
				f.Pages[page] = append(elements[:i:i], elements[i+1:]...)
				f.Deleted = append(f.Deleted, id)
				return nil
			}
		}
	}
	return &host.DeletionFailedError{ID: id, Message: "element not found"}
}

func (f *Fake) InsertGeometry(_ context.Context, spec host.GeometrySpec) (host.Geometry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("insertGeometry")
	f.Inserted = append(f.Inserted, spec)
	f.next++
	return host.Geometry{ID: fmt.Sprintf("geometry-%d", f.next), Spec: spec}, nil
}

func (f *Fake) CreateElement(_ context.Context, typ host.ElementType) (host.Element, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("createElement")
	f.next++
	el := host.Element{ID: fmt.Sprintf("element-%d", f.next), Type: typ}
	f.Created = append(f.Created, el)
	return el, nil
}

// Remaining lists the IDs left on page.
func (f *Fake) Remaining(page int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for _, el := range f.Pages[page] {
		ids = append(ids, el.ID)
	}
	return ids
}

// CallCount returns how many times call was made.
func (f *Fake) CallCount(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == call {
			n++
		}
	}
	return n
}
