// Package annotations exports document pages for inspection: strokes as
// they are on the page, with the area of every scribble outlined.
package annotations

import (
	"github.com/ddvk/rmscribble/encoding/rm"
	"github.com/ddvk/rmscribble/filehost"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/log"
	"github.com/ddvk/rmscribble/scribble"
	"github.com/pkg/errors"
	"github.com/unidoc/unipdf/v3/contentstream"
	"github.com/unidoc/unipdf/v3/contentstream/draw"
	"github.com/unidoc/unipdf/v3/creator"
)

const (
	DeviceHeight = 1872
	DeviceWidth  = 1404
)

var rmPageSize = creator.PageSize{445, 594}

type PdfGenerator struct {
	doc            *filehost.Document
	outputFilePath string
	options        PdfGeneratorOptions
}

type PdfGeneratorOptions struct {
	// HideScribbleAreas skips the red outline around scribbles.
	HideScribbleAreas bool
	// Margin is drawn around each scribble area when set.
	Margin float64
}

func CreatePdfGenerator(doc *filehost.Document, outputFilePath string, options PdfGeneratorOptions) *PdfGenerator {
	return &PdfGenerator{doc: doc, outputFilePath: outputFilePath, options: options}
}

func normalized(x, y float64, ratio float64) (float64, float64) {
	return x * ratio, y * ratio
}

// Generate writes one PDF page per document page.
func (p *PdfGenerator) Generate() error {
	c := creator.New()
	c.SetPageSize(rmPageSize)

	ratio := c.Width() / DeviceWidth

	for _, num := range p.doc.Pages() {
		data, ok := p.doc.Page(num)
		if !ok {
			continue
		}
		page := c.NewPage()

		scribbles := 0
		cc := contentstream.NewContentCreator()
		for _, layer := range data.Layers {
			for _, line := range layer.Lines {
				if len(line.Points) < 1 || line.BrushType.IsEraser() {
					continue
				}
				p.drawLine(cc, c.Height(), ratio, line)

				if p.options.HideScribbleAreas {
					continue
				}
				points := toPoints(line)
				if !scribble.Classify(points) {
					continue
				}
				area, err := geometry.ComputeBounds(points)
				if err != nil {
					return err
				}
				p.drawArea(cc, c.Height(), ratio, area.Expand(p.options.Margin))
				scribbles++
			}
		}

		if err := page.AppendContentStream(string(cc.Operations().Bytes())); err != nil {
			return errors.Wrapf(err, "page %d", num)
		}
		log.Trace.Printf("pdf: page %d, %d scribbles", num, scribbles)
	}

	return c.WriteToFile(p.outputFilePath)
}

func (p *PdfGenerator) drawLine(cc *contentstream.ContentCreator, height, ratio float64, line rm.Line) {
	path := draw.NewPath()
	for _, pt := range line.Points {
		x, y := normalized(float64(pt.X), float64(pt.Y), ratio)
		path = path.AppendPoint(draw.NewPoint(x, height-y))
	}

	cc.Add_q()
	cc.Add_w(float64(line.BrushSize) * ratio)
	cc.Add_RG(0, 0, 0)
	draw.DrawPathWithCreator(path, cc)
	cc.Add_S()
	cc.Add_Q()
}

func (p *PdfGenerator) drawArea(cc *contentstream.ContentCreator, height, ratio float64, area geometry.BoundingBox) {
	corners := [][2]float64{
		{area.MinX, area.MinY},
		{area.MaxX, area.MinY},
		{area.MaxX, area.MaxY},
		{area.MinX, area.MaxY},
		{area.MinX, area.MinY},
	}
	path := draw.NewPath()
	for _, corner := range corners {
		x, y := normalized(corner[0], corner[1], ratio)
		path = path.AppendPoint(draw.NewPoint(x, height-y))
	}

	cc.Add_q()
	cc.Add_w(1)
	cc.Add_RG(1.0, 0.0, 0.0)
	draw.DrawPathWithCreator(path, cc)
	cc.Add_S()
	cc.Add_Q()
}

func toPoints(line rm.Line) []geometry.Point {
	points := make([]geometry.Point, len(line.Points))
	for i, pt := range line.Points {
		points[i] = geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}
	}
	return points
}
