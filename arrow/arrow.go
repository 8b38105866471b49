// Package arrow draws arrows (shaft plus arrowhead) onto an in-memory
// raster image. The head can be a filled triangle or an open pair of
// barbs, and a solid-head shaft can terminate with round or square
// caps where it meets the head.
package arrow

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"

	"github.com/fideuardo/gaugekit/geom"
)

// Head selects the arrowhead style.
type Head int

const (
	// HeadSolid draws the head as a filled triangle; the shaft stops at
	// the base of the triangle.
	HeadSolid Head = iota
	// HeadOpen draws the full-length shaft with two stroked barbs at
	// the tip.
	HeadOpen
)

// Cap selects how a solid-head shaft terminates at its endpoints.
type Cap int

const (
	CapRound Cap = iota
	CapSquare
)

// The angle between the shaft and each side of a solid head, and
// between the shaft and each barb of an open head.
const (
	solidHeadAngle = math.Pi / 6
	openHeadAngle  = math.Pi / 4
)

// Options are passed through to the draw calls as given; the package
// performs no range validation, so a zero thickness or an out-of-range
// tip length behaves however the underlying rasterizer behaves.
type Options struct {
	TipLength float64 // head length as a fraction of total arrow length
	Color     color.Color
	Thickness float64
	Head      Head
	Cap       Cap // solid head only
}

// DefaultOptions returns the conventional thin green solid arrow with
// a round-capped shaft.
func DefaultOptions() Options {
	return Options{
		TipLength: 0.2,
		Color:     color.RGBA{0, 255, 0, 255},
		Thickness: 2,
	}
}

// Drawer owns the image arrows are drawn into. Grayscale source
// images are expanded to color at construction so arrows keep their
// configured color.
type Drawer struct {
	img *image.RGBA
}

// NewDrawer copies img into an RGBA buffer and returns a Drawer bound
// to that copy.
func NewDrawer(img image.Image) *Drawer {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Drawer{img: dst}
}

// Image returns the buffer the Drawer draws into.
func (d *Drawer) Image() *image.RGBA { return d.img }

// Draw renders one arrow from start to end.
func (d *Drawer) Draw(start, end image.Point, opt Options) {
	s := geom.XY{X: float64(start.X), Y: float64(start.Y)}
	e := geom.XY{X: float64(end.X), Y: float64(end.Y)}

	gc := draw2dimg.NewGraphicContext(d.img)
	gc.SetStrokeColor(opt.Color)
	gc.SetFillColor(opt.Color)
	gc.SetLineWidth(opt.Thickness)
	gc.SetLineCap(draw2d.ButtCap)

	if opt.Head == HeadOpen {
		d.drawOpen(gc, s, e, opt)
		return
	}

	p1, p2, base := headGeometry(s, e, opt.TipLength)

	switch opt.Cap {
	case CapSquare:
		if quad, ok := squareShaft(s, base, opt.Thickness); ok {
			fillPoly(gc, quad)
		} else {
			// Degenerate shaft; a zero-area quad would draw nothing.
			strokeLine(gc, s, base)
		}
	default:
		strokeLine(gc, s, base)
		draw2dkit.Circle(gc, s.X, s.Y, opt.Thickness/2)
		gc.Fill()
		draw2dkit.Circle(gc, base.X, base.Y, opt.Thickness/2)
		gc.Fill()
	}

	fillPoly(gc, geom.Poly{XY: []geom.XY{e, p1, p2}})
}

// drawOpen strokes the full shaft plus two barbs at the tip.
func (d *Drawer) drawOpen(gc *draw2dimg.GraphicContext, s, e geom.XY, opt Options) {
	headLen := headLength(s, e, opt.TipLength)
	angle := e.Sub(s).Angle()

	strokeLine(gc, s, e)
	strokeLine(gc, e, geom.Polar(e, -headLen, angle-openHeadAngle))
	strokeLine(gc, e, geom.Polar(e, -headLen, angle+openHeadAngle))
}

// headGeometry computes the two side points of the head triangle and
// the base center where the shaft meets the head. All three land on
// whole pixel coordinates, so a very short arrow collapses its head
// onto the start pixel and the shaft degenerates to zero length.
func headGeometry(s, e geom.XY, tipLength float64) (p1, p2, base geom.XY) {
	headLen := headLength(s, e, tipLength)
	angle := e.Sub(s).Angle()
	p1 = pixel(geom.Polar(e, -headLen, angle-solidHeadAngle))
	p2 = pixel(geom.Polar(e, -headLen, angle+solidHeadAngle))
	base = pixel(geom.Midpoint(p1, p2))
	return p1, p2, base
}

// squareShaft returns the rotated rectangle covering a square-capped
// shaft from s to base. ok is false when the shaft has zero length and
// no rectangle exists; the caller falls back to a plain line.
func squareShaft(s, base geom.XY, thickness float64) (quad geom.Poly, ok bool) {
	shaft := base.Sub(s)
	if shaft.Norm() == 0 {
		return geom.Poly{}, false
	}
	off := shaft.Unit().Perp().Scale(thickness / 2)
	return geom.Poly{XY: []geom.XY{
		s.Add(off), s.Sub(off), base.Sub(off), base.Add(off),
	}}, true
}

func pixel(pt geom.XY) geom.XY {
	return geom.XY{X: math.Trunc(pt.X), Y: math.Trunc(pt.Y)}
}

// headLength is the tip fraction of the arrow length, never less than
// one pixel.
func headLength(s, e geom.XY, tipLength float64) float64 {
	return math.Max(1, math.Round(tipLength*e.Sub(s).Norm()))
}

func strokeLine(gc *draw2dimg.GraphicContext, a, b geom.XY) {
	gc.MoveTo(a.X, a.Y)
	gc.LineTo(b.X, b.Y)
	gc.Stroke()
}

func fillPoly(gc *draw2dimg.GraphicContext, pg geom.Poly) {
	gc.MoveTo(pg.XY[0].X, pg.XY[0].Y)
	for _, p := range pg.XY[1:] {
		gc.LineTo(p.X, p.Y)
	}
	gc.Close()
	gc.Fill()
}
