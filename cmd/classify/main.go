package main

import (
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ddvk/rmscribble/encoding/rm"
	"github.com/ddvk/rmscribble/eraser"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/scribble"
)

func main() {
	inputName := flag.String("i", "", "page file to classify")
	margin := flag.Float64("m", eraser.DefaultMargin, "containment margin")
	flag.Parse()

	if err := classify(*inputName, *margin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func classify(inputName string, margin float64) error {
	if inputName == "" {
		return errors.New("missing input file")
	}

	data, err := ioutil.ReadFile(inputName)
	if err != nil {
		return fmt.Errorf("can't open file %w", err)
	}

	page := rm.New()
	if err := page.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("can't read page %w", err)
	}

	type line struct {
		name   string
		bounds geometry.BoundingBox
	}
	var lines []line
	var scribbles []line

	for l, layer := range page.Layers {
		for i, ln := range layer.Lines {
			name := fmt.Sprintf("%d/%d", l, i)
			points := make([]geometry.Point, len(ln.Points))
			for j, p := range ln.Points {
				points[j] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
			}

			m, err := scribble.Analyze(points)
			if err != nil {
				fmt.Printf("%-6s empty\n", name)
				continue
			}
			lines = append(lines, line{name, m.Bounds})

			verdict := ""
			if ln.BrushType.IsEraser() {
				verdict = "eraser"
			} else if m.IsScribble() {
				verdict = "SCRIBBLE"
				scribbles = append(scribbles, line{name, m.Bounds})
			}
			fmt.Printf("%-6s points %4d  dist %8.1f  diag %7.1f  inv x %3d y %3d  %s\n",
				name, m.Points, m.TotalDistance, m.Diagonal(), m.XInversions, m.YInversions, verdict)
		}
	}

	for _, s := range scribbles {
		fmt.Printf("scribble %s would remove:", s.name)
		for _, target := range lines {
			if target.name != s.name && geometry.Overlaps(s.bounds, target.bounds, margin) {
				fmt.Printf(" %s", target.name)
			}
		}
		fmt.Println()
	}

	return nil
}
