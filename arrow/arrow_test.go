package arrow

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fideuardo/gaugekit/geom"
)

func whiteCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func isWhite(c color.RGBA) bool {
	return c.R > 240 && c.G > 240 && c.B > 240
}

func isRed(c color.RGBA) bool {
	return c.R > 200 && c.G < 80 && c.B < 80
}

func isGreen(c color.RGBA) bool {
	return c.G > 200 && c.R < 80 && c.B < 80
}

func isBlue(c color.RGBA) bool {
	return c.B > 200 && c.R < 80 && c.G < 80
}

// The reference arrow: 220 px long pointing left, 20% tip.
func TestHeadGeometryReferenceArrow(t *testing.T) {
	t.Parallel()

	s := geom.XY{X: 250, Y: 50}
	e := geom.XY{X: 30, Y: 50}

	require.InDelta(t, 44, headLength(s, e, 0.2), 1e-12)

	p1, p2, base := headGeometry(s, e, 0.2)

	// Side points 44 px back from the tip at 30 degrees off the shaft
	// direction, truncated onto the pixel grid: 30+44*cos(pi/6) = 68.1.
	require.Equal(t, geom.XY{X: 68, Y: 28}, p1)
	require.Equal(t, geom.XY{X: 68, Y: 72}, p2)
	require.InDelta(t, 44, p1.Sub(e).Norm(), 0.5)
	require.InDelta(t, -math.Pi/6, p1.Sub(e).Angle(), 0.01)

	// The shaft meets the head at the midpoint of the side points.
	require.Equal(t, geom.Midpoint(p1, p2), base)
	require.Equal(t, geom.XY{X: 68, Y: 50}, base)
}

func TestHeadTriangleCoverage(t *testing.T) {
	t.Parallel()

	s := geom.XY{X: 250, Y: 50}
	e := geom.XY{X: 30, Y: 50}
	p1, p2, base := headGeometry(s, e, 0.2)

	head := geom.Poly{XY: []geom.XY{e, p1, p2}}
	require.True(t, head.Centroid().In(head))
	require.True(t, geom.Midpoint(e, base).In(head))
	require.False(t, s.In(head))

	min, max := head.MinMax()
	require.InDelta(t, 30, min.X, 1e-9)
	require.InDelta(t, 50-22, min.Y, 1e-9)
	require.InDelta(t, 50+22, max.Y, 1e-9)
}

func TestSolidRoundArrow(t *testing.T) {
	t.Parallel()

	d := NewDrawer(whiteCanvas(300, 100))
	d.Draw(image.Pt(250, 50), image.Pt(30, 50), Options{
		TipLength: 0.2,
		Color:     color.RGBA{255, 0, 0, 255},
		Thickness: 8,
	})
	img := d.Image()

	// Shaft interior between base (x~68) and start.
	require.True(t, isRed(img.RGBAAt(150, 50)))
	// Head interior.
	require.True(t, isRed(img.RGBAAt(55, 50)))
	// Rounded start cap extends past the start point by thickness/2.
	require.True(t, isRed(img.RGBAAt(252, 50)))
	require.True(t, isWhite(img.RGBAAt(258, 50)))
	// Outside head and shaft: past the base, off the centerline.
	require.True(t, isWhite(img.RGBAAt(40, 70)))
}

func TestSolidSquareArrow(t *testing.T) {
	t.Parallel()

	d := NewDrawer(whiteCanvas(300, 150))
	d.Draw(image.Pt(100, 80), image.Pt(150, 80), Options{
		TipLength: 0.6,
		Color:     color.RGBA{0, 255, 0, 255},
		Thickness: 10,
		Cap:       CapSquare,
	})
	img := d.Image()

	// Shaft rectangle interior (base sits at x~124).
	require.True(t, isGreen(img.RGBAAt(105, 80)))
	require.True(t, isGreen(img.RGBAAt(105, 84)))
	// A square cap does not extend past the start point.
	require.True(t, isWhite(img.RGBAAt(97, 80)))
	// Head interior between base and tip.
	require.True(t, isGreen(img.RGBAAt(130, 80)))
}

func TestOpenArrow(t *testing.T) {
	t.Parallel()

	d := NewDrawer(whiteCanvas(300, 150))
	d.Draw(image.Pt(30, 110), image.Pt(250, 110), Options{
		TipLength: 0.2,
		Color:     color.RGBA{0, 0, 255, 255},
		Thickness: 8,
		Head:      HeadOpen,
	})
	img := d.Image()

	// The shaft runs the full length, all the way to the tip.
	require.True(t, isBlue(img.RGBAAt(150, 110)))
	require.True(t, isBlue(img.RGBAAt(245, 110)))
	// Barbs at 45 degrees, 44 px back from the tip.
	require.True(t, isBlue(img.RGBAAt(235, 95)))
	require.True(t, isBlue(img.RGBAAt(235, 125)))
	// The head is open: the region between shaft and barb stays empty.
	require.True(t, isWhite(img.RGBAAt(225, 98)))
}

// A one-pixel head collapses onto the start pixel, so the square-cap
// shaft has zero length and degenerates to a plain line.
func TestShortSquareArrowFallsBackToLine(t *testing.T) {
	t.Parallel()

	s := geom.XY{X: 50, Y: 50}
	e := geom.XY{X: 51, Y: 51}

	require.InDelta(t, 1, headLength(s, e, 0.2), 1e-12)

	p1, p2, base := headGeometry(s, e, 0.2)
	require.Equal(t, s, p1)
	require.Equal(t, s, p2)
	require.Equal(t, s, base)

	_, ok := squareShaft(s, base, 4)
	require.False(t, ok)

	d := NewDrawer(whiteCanvas(100, 100))
	require.NotPanics(t, func() {
		d.Draw(image.Pt(50, 50), image.Pt(51, 51), Options{
			TipLength: 0.2,
			Color:     color.RGBA{255, 0, 0, 255},
			Thickness: 4,
			Cap:       CapSquare,
		})
	})
}

func TestSquareShaftQuad(t *testing.T) {
	t.Parallel()

	quad, ok := squareShaft(geom.XY{X: 100, Y: 80}, geom.XY{X: 124, Y: 80}, 10)
	require.True(t, ok)
	require.True(t, geom.XY{X: 112, Y: 80}.In(quad))
	require.True(t, geom.XY{X: 112, Y: 84}.In(quad))
	require.False(t, geom.XY{X: 97, Y: 80}.In(quad))

	min, max := quad.MinMax()
	require.Equal(t, geom.XY{X: 100, Y: 75}, min)
	require.Equal(t, geom.XY{X: 124, Y: 85}, max)
}

func TestZeroLengthArrowDoesNotPanic(t *testing.T) {
	t.Parallel()

	d := NewDrawer(whiteCanvas(100, 100))
	require.NotPanics(t, func() {
		d.Draw(image.Pt(50, 50), image.Pt(50, 50), Options{
			TipLength: 0.2,
			Color:     color.RGBA{255, 0, 0, 255},
			Thickness: 4,
			Cap:       CapSquare,
		})
	})
}

func TestGrayscaleInputConverted(t *testing.T) {
	t.Parallel()

	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	for i := range gray.Pix {
		gray.Pix[i] = 100
	}

	d := NewDrawer(gray)
	require.Equal(t, color.RGBA{100, 100, 100, 255}, d.Image().RGBAAt(5, 5))
}
