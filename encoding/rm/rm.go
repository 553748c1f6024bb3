// Package rm reads and writes reMarkable lines pages (.rm files).
// Only the v3 and v5 formats are supported; v6 scene files are refused.
package rm

import "github.com/pkg/errors"

type Version int

const (
	V3 Version = iota
	V5
	V6
)

const (
	HeaderV3  = "reMarkable .lines file, version=3          "
	HeaderV5  = "reMarkable .lines file, version=5          "
	HeaderV6  = "reMarkable .lines file, version=6          "
	HeaderLen = 43
)

// ErrUnsupportedVersion is returned for pages in the v6 scene format.
var ErrUnsupportedVersion = errors.New("unsupported .rm version")

type BrushType uint32

const (
	Brush       BrushType = 0
	TiltPencil  BrushType = 1
	BallPoint   BrushType = 2
	Marker      BrushType = 3
	Fineliner   BrushType = 4
	Highlighter BrushType = 5
	Eraser      BrushType = 6
	SharpPencil BrushType = 7
	EraseArea   BrushType = 8

	BrushV5       BrushType = 12
	SharpPencilV5 BrushType = 13
	TiltPencilV5  BrushType = 14
	BallPointV5   BrushType = 15
	MarkerV5      BrushType = 16
	FinelinerV5   BrushType = 17
	HighlighterV5 BrushType = 18
)

// IsEraser reports whether lines drawn with b remove ink instead of adding it.
func (b BrushType) IsEraser() bool {
	return b == Eraser || b == EraseArea
}

type BrushColor uint32

const (
	Black BrushColor = 0
	Grey  BrushColor = 1
	White BrushColor = 2
)

type BrushSize float32

const (
	Small  BrushSize = 1.875
	Medium BrushSize = 2.0
	Large  BrushSize = 2.125
)

// Rm is one page.
type Rm struct {
	Version Version
	Layers  []Layer
}

type Layer struct {
	Lines []Line
}

// Line is a single stroke.
type Line struct {
	BrushType  BrushType
	BrushColor BrushColor
	Padding    uint32
	BrushSize  BrushSize
	// only present in v5
	Unknown float32
	Points  []Point
}

type Point struct {
	X         float32
	Y         float32
	Speed     float32
	Direction float32
	Width     float32
	Pressure  float32
}

// New returns an empty v5 page with a single layer.
func New() *Rm {
	return &Rm{Version: V5, Layers: []Layer{{}}}
}
