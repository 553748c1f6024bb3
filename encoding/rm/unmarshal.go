package rm

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// upper bounds guarding against corrupt counts
const (
	maxLayers = 256
	maxLines  = 1 << 20
	maxPoints = 1 << 20
)

// UnmarshalBinary implements encoding.UnmarshalBinary for
// transforming bytes into a Rm page
func (rm *Rm) UnmarshalBinary(data []byte) error {
	r := newReader(data)
	if err := r.checkHeader(); err != nil {
		return err
	}
	rm.Version = r.version

	if r.version == V6 {
		return ErrUnsupportedVersion
	}

	nbLayers, err := r.readCount(maxLayers, "layers")
	if err != nil {
		return err
	}

	rm.Layers = make([]Layer, nbLayers)
	for i := range rm.Layers {
		nbLines, err := r.readCount(maxLines, "lines")
		if err != nil {
			return errors.Wrapf(err, "layer %d", i)
		}

		lines := make([]Line, nbLines)
		for j := range lines {
			if lines[j], err = r.readLine(); err != nil {
				return errors.Wrapf(err, "layer %d line %d", i, j)
			}
		}
		rm.Layers[i].Lines = lines
	}

	return nil
}

type reader struct {
	*bytes.Reader
	version Version
}

func newReader(data []byte) *reader {
	// V5 is a placeholder until the header is checked
	return &reader{bytes.NewReader(data), V5}
}

func (r *reader) checkHeader() error {
	buf := make([]byte, HeaderLen)
	n, err := r.Read(buf)
	if err != nil || n != HeaderLen {
		return errors.New("wrong header size")
	}

	switch string(buf) {
	case HeaderV3:
		r.version = V3
	case HeaderV5:
		r.version = V5
	case HeaderV6:
		r.version = V6
	default:
		if strings.Contains(string(buf), "version=6") {
			r.version = V6
			return nil
		}
		return errors.New("unknown header")
	}
	return nil
}

func (r *reader) readCount(max uint32, what string) (uint32, error) {
	var nb uint32
	if err := binary.Read(r, binary.LittleEndian, &nb); err != nil {
		return 0, errors.Errorf("failed to read number of %s", what)
	}
	if nb > max {
		return 0, errors.Errorf("too many %s: %d", what, nb)
	}
	return nb, nil
}

// lineHeader is the fixed part of a line; Unknown exists from v5 on.
type lineHeader struct {
	BrushType  BrushType
	BrushColor BrushColor
	Padding    uint32
	BrushSize  BrushSize
}

func (r *reader) readLine() (Line, error) {
	var line Line
	var h lineHeader

	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return line, errors.New("failed to read line")
	}
	line.BrushType = h.BrushType
	line.BrushColor = h.BrushColor
	line.Padding = h.Padding
	line.BrushSize = h.BrushSize

	if r.version == V5 {
		if err := binary.Read(r, binary.LittleEndian, &line.Unknown); err != nil {
			return line, errors.New("failed to read line")
		}
	}

	nbPoints, err := r.readCount(maxPoints, "points")
	if err != nil {
		return line, err
	}
	if nbPoints == 0 {
		return line, nil
	}

	line.Points = make([]Point, nbPoints)
	if err := binary.Read(r, binary.LittleEndian, line.Points); err != nil {
		return line, errors.New("failed to read point")
	}

	return line, nil
}
