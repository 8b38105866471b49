// Package gauge renders an analog needle gauge onto an in-memory
// raster image. The static dial (arc, tick marks, numeric labels and
// units text) is drawn once at construction; each Render produces the
// dial plus the needle and value readout for the current value.
//
// A Gauge is not safe for concurrent use; it is meant to be driven
// from a single rendering loop.
package gauge

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/fideuardo/gaugekit/geom"
)

var (
	// ErrInvalidInput is returned when the background buffer is not a
	// color image (grayscale and alpha-only buffers are rejected).
	ErrInvalidInput = errors.New("gauge: background image must be a color image")

	// ErrInvalidRange is returned when the configured value or angle
	// range is empty and no value-to-angle mapping exists.
	ErrInvalidRange = errors.New("gauge: empty value or angle range")
)

// Dial layout constants, in pixels.
const (
	dialMargin      = 60 // space reserved outside the arc for labels
	tickLength      = 10
	labelOffset     = 25 // labels sit this far outside the arc
	needleInset     = 30 // needle stops this far short of the arc
	hubRadius       = 6
	haloWidth       = 2
	arcLineWidth    = 2
	needleLineWidth = 3
)

// Config holds the gauge parameters fixed at construction.
type Config struct {
	Min        int
	Max        int
	MinorMarks int    // value units between tick marks
	Units      string // units label drawn under the hub
	Arch       int    // total angular span of the scale, degrees
	Phase      int    // angle at which the scale begins, degrees

	// WriteThrough copies every render back into the buffer the gauge
	// was constructed with, when that buffer is mutable. Render still
	// returns a fresh image either way.
	WriteThrough bool

	// Colors; zero values fall back to the defaults below.
	ScaleColor  color.Color
	NeedleColor color.Color
	TextColor   color.Color

	// ValueHalo, when set, draws a stroked outline of that color
	// behind the value readout so it stays legible over photographic
	// backgrounds.
	ValueHalo color.Color
}

// DefaultConfig mirrors the reference dial: 0-200 in steps of 20 over
// a half circle.
func DefaultConfig() Config {
	return Config{
		Min:        0,
		Max:        200,
		MinorMarks: 20,
		Arch:       180,
		Phase:      0,
	}
}

// Gauge is an analog needle gauge bound to a pixel buffer.
type Gauge struct {
	cfg  Config
	sink draw.Image // caller's buffer for write-through, may be nil

	center     geom.XY
	radius     float64
	rng        int     // abs(Max - Min)
	startAngle float64 // degrees
	endAngle   float64 // degrees
	factor     float64 // degrees per value unit
	invFactor  float64 // value units per degree

	value int
	angle float64 // absolute needle angle, degrees

	scaleColor  color.Color
	needleColor color.Color
	textColor   color.Color

	faces faceSet
	base  *image.RGBA // dial layer, never mutated after construction
}

// New builds a gauge over a copy of img and renders the static dial
// layer into that copy. The caller's image is only written to again if
// cfg.WriteThrough is set and img is mutable.
func New(img image.Image, cfg Config) (*Gauge, error) {
	switch img.(type) {
	case nil, *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return nil, ErrInvalidInput
	}
	if cfg.Max == cfg.Min {
		return nil, ErrInvalidRange
	}
	if cfg.Arch == 0 || cfg.MinorMarks <= 0 {
		return nil, ErrInvalidRange
	}

	faces, err := loadFaces()
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	base := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(base, base.Bounds(), img, b.Min, draw.Src)

	rng := cfg.Max - cfg.Min
	if rng < 0 {
		rng = -rng
	}

	g := &Gauge{
		cfg:         cfg,
		center:      geom.XY{X: float64(b.Dx() / 2), Y: float64(b.Dy() / 2)},
		radius:      float64(min(b.Dx(), b.Dy())/2 - dialMargin),
		rng:         rng,
		startAngle:  float64(cfg.Phase),
		endAngle:    float64(cfg.Phase + cfg.Arch),
		factor:      float64(cfg.Arch) / float64(rng),
		invFactor:   float64(rng) / float64(cfg.Arch),
		scaleColor:  defaultColor(cfg.ScaleColor, color.RGBA{200, 200, 200, 255}),
		needleColor: defaultColor(cfg.NeedleColor, color.RGBA{255, 0, 0, 255}),
		textColor:   defaultColor(cfg.TextColor, color.RGBA{255, 255, 255, 255}),
		faces:       faces,
		base:        base,
	}
	if cfg.WriteThrough {
		if dst, ok := img.(draw.Image); ok {
			g.sink = dst
		}
	}

	g.drawDial()
	g.setState(cfg.Min, g.startAngle+float64(cfg.Min)*g.factor)

	return g, nil
}

// drawDial renders the static layer into the base image: the arc, one
// tick and numeric label per MinorMarks step, and the units text.
func (g *Gauge) drawDial() {
	dc := gg.NewContextForRGBA(g.base)

	dc.SetColor(g.scaleColor)
	dc.SetLineWidth(arcLineWidth)
	dc.DrawArc(g.center.X, g.center.Y, g.radius, geom.Radians(g.startAngle), geom.Radians(g.endAngle))
	dc.Stroke()

	dc.SetFontFace(g.faces.label)
	for pos := 0; pos <= g.rng; pos += g.cfg.MinorMarks {
		rad := geom.Radians(g.startAngle + float64(pos)*g.factor)

		from := geom.Polar(g.center, g.radius-tickLength, rad)
		to := geom.Polar(g.center, g.radius, rad)
		dc.SetColor(g.scaleColor)
		dc.SetLineWidth(arcLineWidth)
		dc.DrawLine(from.X, from.Y, to.X, to.Y)
		dc.Stroke()

		label := strconv.Itoa(g.cfg.Min + pos)
		at := geom.Polar(g.center, g.radius+labelOffset, rad)
		w, h := dc.MeasureString(label)
		dc.SetColor(g.textColor)
		dc.DrawString(label, at.X-w/2, at.Y+h/2)
	}

	if g.cfg.Units != "" {
		dc.SetFontFace(g.faces.units)
		dc.SetColor(g.textColor)
		dc.DrawString(g.cfg.Units, g.center.X-30, g.center.Y+50)
	}
}

// setState is the single place the value/angle pair is written, so
// the two setters cannot leave them inconsistent with each other.
func (g *Gauge) setState(value int, angleDeg float64) {
	g.value = value
	g.angle = angleDeg
}

// SetValue moves the needle to v. Out-of-range values are silently
// clamped to [Min, Max]; a gauge should not blow up on out-of-range
// telemetry.
func (g *Gauge) SetValue(v int) {
	if v < g.cfg.Min {
		v = g.cfg.Min
	}
	if v > g.cfg.Max {
		v = g.cfg.Max
	}
	g.setState(v, g.startAngle+float64(v)*g.factor)
}

// SetAngle moves the needle to a degrees past the start of the scale
// and derives the displayed value from it. Unlike SetValue the angle
// is not clamped to the scale.
func (g *Gauge) SetAngle(a float64) {
	g.setState(int(math.Floor(a*g.invFactor))+g.cfg.Min, a+g.startAngle)
}

// Value returns the value currently displayed.
func (g *Gauge) Value() int { return g.value }

// Angle returns the needle angle in degrees past the start of the
// scale.
func (g *Gauge) Angle() float64 { return g.angle - g.startAngle }

// Render draws the needle, hub and value readout over a copy of the
// dial layer and returns the result. The dial layer itself is never
// touched, so rendering the same value twice yields identical pixels.
// With WriteThrough set, the result is also copied into the buffer
// the gauge was constructed with.
func (g *Gauge) Render() *image.RGBA {
	out := image.NewRGBA(g.base.Bounds())
	copy(out.Pix, g.base.Pix)

	dc := gg.NewContextForRGBA(out)

	rad := geom.Radians(g.angle)
	tip := geom.Polar(g.center, g.radius-needleInset, rad)
	dc.SetColor(g.needleColor)
	dc.SetLineWidth(needleLineWidth)
	dc.DrawLine(g.center.X, g.center.Y, tip.X, tip.Y)
	dc.Stroke()

	dc.DrawCircle(g.center.X, g.center.Y, hubRadius)
	dc.Fill()

	dc.SetFontFace(g.faces.value)
	readout := strconv.Itoa(g.value)
	x, y := g.center.X-30, g.center.Y+20
	if g.cfg.ValueHalo != nil {
		drawHaloString(dc, readout, x, y, g.textColor, g.cfg.ValueHalo)
	} else {
		dc.SetColor(g.textColor)
		dc.DrawString(readout, x, y)
	}

	if g.sink != nil {
		draw.Draw(g.sink, g.sink.Bounds(), out, image.Point{}, draw.Src)
	}

	return out
}

// drawHaloString draws s once per offset inside a disc of radius
// haloWidth in the halo color, then once on top in the text color.
func drawHaloString(dc *gg.Context, s string, x, y float64, textColor, haloColor color.Color) {
	dc.SetColor(haloColor)
	for dy := -float64(haloWidth); dy <= haloWidth; dy++ {
		for dx := -float64(haloWidth); dx <= haloWidth; dx++ {
			if dx*dx+dy*dy >= haloWidth*haloWidth {
				// give it rounded corners
				continue
			}
			dc.DrawString(s, x+dx, y+dy)
		}
	}
	dc.SetColor(textColor)
	dc.DrawString(s, x, y)
}

func defaultColor(c color.Color, def color.RGBA) color.Color {
	if c == nil {
		return def
	}
	return c
}
