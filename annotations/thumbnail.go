package annotations

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/ddvk/rmscribble/encoding/rm"
	"github.com/ddvk/rmscribble/scribble"
	"github.com/nfnt/resize"
	"golang.org/x/image/vector"
)

// pen half width in device pixels, wide enough to survive downscaling
const penRadius = 2

var (
	ink         = color.Gray{Y: 0}
	scribbleInk = color.RGBA{R: 0xd0, A: 0xff}
)

// Thumbnail rasterises page at device resolution and scales it down to
// width pixels, keeping the aspect ratio. Scribbles are drawn in red.
func Thumbnail(page *rm.Rm, width uint) image.Image {
	canvas := image.NewRGBA(image.Rect(0, 0, DeviceWidth, DeviceHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	strokes := vector.NewRasterizer(DeviceWidth, DeviceHeight)
	scribbles := vector.NewRasterizer(DeviceWidth, DeviceHeight)
	for _, layer := range page.Layers {
		for _, line := range layer.Lines {
			if line.BrushType.IsEraser() || len(line.Points) == 0 {
				continue
			}
			if isScribble(line) {
				strokeLine(scribbles, line)
			} else {
				strokeLine(strokes, line)
			}
		}
	}
	strokes.Draw(canvas, canvas.Bounds(), image.NewUniform(ink), image.Point{})
	scribbles.Draw(canvas, canvas.Bounds(), image.NewUniform(scribbleInk), image.Point{})

	return resize.Resize(width, 0, canvas, resize.Bilinear)
}

// WritePNG encodes a thumbnail of page.
func WritePNG(w io.Writer, page *rm.Rm, width uint) error {
	return png.Encode(w, Thumbnail(page, width))
}

func isScribble(line rm.Line) bool {
	return scribble.Classify(toPoints(line))
}

// strokeLine adds one quad per segment plus a square at every sample.
// All shapes share the same winding so overlaps never cancel out.
func strokeLine(z *vector.Rasterizer, line rm.Line) {
	for i, p := range line.Points {
		square(z, p.X, p.Y)
		if i == 0 {
			continue
		}
		segment(z, line.Points[i-1], p)
	}
}

func square(z *vector.Rasterizer, x, y float32) {
	z.MoveTo(x-penRadius, y+penRadius)
	z.LineTo(x+penRadius, y+penRadius)
	z.LineTo(x+penRadius, y-penRadius)
	z.LineTo(x-penRadius, y-penRadius)
	z.ClosePath()
}

func segment(z *vector.Rasterizer, a, b rm.Point) {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx := float32(-dy / length * penRadius)
	ny := float32(dx / length * penRadius)

	z.MoveTo(a.X+nx, a.Y+ny)
	z.LineTo(b.X+nx, b.Y+ny)
	z.LineTo(b.X-nx, b.Y-ny)
	z.LineTo(a.X-nx, a.Y-ny)
	z.ClosePath()
}
