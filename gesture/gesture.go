// Package gesture lists what a scribble can be turned into. Only Delete
// does anything; the shape kinds are reserved and refuse to run.
package gesture

import (
	"context"
	"fmt"

	"github.com/ddvk/rmscribble/eraser"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/log"
	"github.com/ddvk/rmscribble/scribble"
	"github.com/pkg/errors"
)

// ErrNotImplemented is returned by the shape gestures.
var ErrNotImplemented = errors.New("gesture not implemented")

type Kind int

const (
	Delete Kind = iota
	Square
	Circle
	Triangle
	Ellipse
	Arrow
)

// Kinds in the order they are evaluated for a stroke.
var Kinds = []Kind{Delete, Square, Circle, Triangle, Ellipse, Arrow}

var kindNames = map[Kind]string{
	Delete:   "Delete",
	Square:   "Square",
	Circle:   "Circle",
	Triangle: "Triangle",
	Ellipse:  "Ellipse",
	Arrow:    "Arrow",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// SettingKey is the name of the flag enabling k, e.g. scribbleToDelete.
func (k Kind) SettingKey() string {
	return "scribbleTo" + k.String()
}

// ParseKind accepts either the kind name or its setting key.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == k.String() || s == k.SettingKey() {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown gesture %q", s)
}

// Target is the stroke a gesture is applied to.
type Target struct {
	Element host.Element
	Host    host.Host
	Margin  float64
}

// Outcome of applying a gesture.
type Outcome struct {
	Kind       Kind
	Recognized bool
	// Skipped is set when the gesture was recognized but the host could
	// not tell which document it belongs to.
	Skipped bool
	Deleted int
}

type Action interface {
	Kind() Kind
	Apply(ctx context.Context, t Target) (Outcome, error)
}

// For returns the action for k.
func For(k Kind) Action {
	if k == Delete {
		return DeleteAction{}
	}
	return Placeholder{kind: k}
}

// DeleteAction removes a scribble and everything drawn under it.
type DeleteAction struct{}

func (DeleteAction) Kind() Kind { return Delete }

func (DeleteAction) Apply(ctx context.Context, t Target) (Outcome, error) {
	out := Outcome{Kind: Delete}
	el := t.Element

	log.Trace.Printf("[scribble/delete] analyzing %s", el.ID)
	if !el.IsStroke() || !scribble.Classify(el.Stroke.Points) {
		return out, nil
	}
	out.Recognized = true
	log.Info.Printf("[scribble/delete] scribble confirmed (%s)", el.ID)

	path, err := t.Host.CurrentFilePath(ctx)
	if err != nil || path == "" {
		log.Error.Printf("[scribble/delete] failed to get current file path or path is empty: %v", err)
		out.Skipped = true
		return out, nil
	}

	siblings, err := t.Host.Elements(ctx, el.PageNum, path)
	if err != nil {
		return out, errors.Wrapf(err, "page %d of %s", el.PageNum, path)
	}

	res, err := eraser.DeleteScribbleAndOverlaps(ctx, t.Host, el, siblings, t.Margin)
	out.Deleted = res.DeletedCount
	if err != nil {
		return out, err
	}
	log.Info.Printf("[scribble/delete] removed %d elements", res.DeletedCount)

	return out, nil
}

// Placeholder stands for a shape gesture that has no implementation yet.
// It never calls the host.
type Placeholder struct {
	kind Kind
}

func (p Placeholder) Kind() Kind { return p.kind }

func (p Placeholder) Apply(context.Context, Target) (Outcome, error) {
	return Outcome{Kind: p.kind}, errors.Wrap(ErrNotImplemented, p.kind.String())
}
