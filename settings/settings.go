// Package settings holds the feature flags of the scribble engine and
// their YAML store.
package settings

import (
	"context"

	"github.com/ddvk/rmscribble/eraser"
	"github.com/ddvk/rmscribble/gesture"
)

// Settings are resolved values; every field is set.
type Settings struct {
	ScribbleToDelete   bool    `yaml:"scribbleToDelete" json:"scribbleToDelete"`
	ScribbleToSquare   bool    `yaml:"scribbleToSquare" json:"scribbleToSquare"`
	ScribbleToCircle   bool    `yaml:"scribbleToCircle" json:"scribbleToCircle"`
	ScribbleToTriangle bool    `yaml:"scribbleToTriangle" json:"scribbleToTriangle"`
	ScribbleToEllipse  bool    `yaml:"scribbleToEllipse" json:"scribbleToEllipse"`
	ScribbleToArrow    bool    `yaml:"scribbleToArrow" json:"scribbleToArrow"`
	Margin             float64 `yaml:"margin" json:"margin"`
}

// Defaults enable scribble-to-delete only.
func Defaults() Settings {
	return Settings{
		ScribbleToDelete: true,
		Margin:           eraser.DefaultMargin,
	}
}

// Overrides are stored values. A nil field keeps the default.
type Overrides struct {
	ScribbleToDelete   *bool    `yaml:"scribbleToDelete,omitempty"`
	ScribbleToSquare   *bool    `yaml:"scribbleToSquare,omitempty"`
	ScribbleToCircle   *bool    `yaml:"scribbleToCircle,omitempty"`
	ScribbleToTriangle *bool    `yaml:"scribbleToTriangle,omitempty"`
	ScribbleToEllipse  *bool    `yaml:"scribbleToEllipse,omitempty"`
	ScribbleToArrow    *bool    `yaml:"scribbleToArrow,omitempty"`
	Margin             *float64 `yaml:"margin,omitempty"`
}

// Merge applies o over base, field by field. A nil receiver returns base.
func (o *Overrides) Merge(base Settings) Settings {
	if o == nil {
		return base
	}
	s := base
	mergeBool(&s.ScribbleToDelete, o.ScribbleToDelete)
	mergeBool(&s.ScribbleToSquare, o.ScribbleToSquare)
	mergeBool(&s.ScribbleToCircle, o.ScribbleToCircle)
	mergeBool(&s.ScribbleToTriangle, o.ScribbleToTriangle)
	mergeBool(&s.ScribbleToEllipse, o.ScribbleToEllipse)
	mergeBool(&s.ScribbleToArrow, o.ScribbleToArrow)
	if o.Margin != nil {
		s.Margin = *o.Margin
	}
	return s
}

func mergeBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Set stores value for the flag enabling k.
func (o *Overrides) Set(k gesture.Kind, value bool) {
	v := value
	switch k {
	case gesture.Delete:
		o.ScribbleToDelete = &v
	case gesture.Square:
		o.ScribbleToSquare = &v
	case gesture.Circle:
		o.ScribbleToCircle = &v
	case gesture.Triangle:
		o.ScribbleToTriangle = &v
	case gesture.Ellipse:
		o.ScribbleToEllipse = &v
	case gesture.Arrow:
		o.ScribbleToArrow = &v
	}
}

// SetMargin stores the containment margin.
func (o *Overrides) SetMargin(margin float64) {
	m := margin
	o.Margin = &m
}

// IsEnabled reports whether the gesture k is switched on.
func (s Settings) IsEnabled(k gesture.Kind) bool {
	switch k {
	case gesture.Delete:
		return s.ScribbleToDelete
	case gesture.Square:
		return s.ScribbleToSquare
	case gesture.Circle:
		return s.ScribbleToCircle
	case gesture.Triangle:
		return s.ScribbleToTriangle
	case gesture.Ellipse:
		return s.ScribbleToEllipse
	case gesture.Arrow:
		return s.ScribbleToArrow
	}
	return false
}

// Enabled lists the enabled gestures in evaluation order.
func (s Settings) Enabled() []gesture.Kind {
	var kinds []gesture.Kind
	for _, k := range gesture.Kinds {
		if s.IsEnabled(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Store loads stored overrides. A nil result with no error means nothing
// has been stored yet.
type Store interface {
	Load(ctx context.Context) (*Overrides, error)
}

// Resolve loads overrides from store and merges them over the defaults.
func Resolve(ctx context.Context, store Store) (Settings, error) {
	if store == nil {
		return Defaults(), nil
	}
	o, err := store.Load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return o.Merge(Defaults()), nil
}

// Static is a Store returning fixed overrides.
type Static struct {
	Overrides *Overrides
}

func (s Static) Load(context.Context) (*Overrides, error) {
	return s.Overrides, nil
}
