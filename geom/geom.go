// Package geom holds the small amount of 2D geometry shared by the
// gauge and arrow widgets: Cartesian points with vector arithmetic,
// polar placement around a center, and closed polygons with a
// ray casting point-in-polygon (PNPoly) test following
// https://www.ecse.rpi.edu/Homepages/wrf/Research/Short_Notes/pnpoly.html
package geom

import "math"

// XY is a 2D point in the Cartesian plane.
type XY struct {
	X, Y float64
}

func (pt XY) Add(o XY) XY { return XY{pt.X + o.X, pt.Y + o.Y} }

func (pt XY) Sub(o XY) XY { return XY{pt.X - o.X, pt.Y - o.Y} }

func (pt XY) Scale(f float64) XY { return XY{pt.X * f, pt.Y * f} }

// Norm returns the Euclidean length of pt treated as a vector.
func (pt XY) Norm() float64 { return math.Hypot(pt.X, pt.Y) }

// Angle returns the direction of pt treated as a vector, in radians.
func (pt XY) Angle() float64 { return math.Atan2(pt.Y, pt.X) }

// Unit returns pt scaled to length 1. The zero vector is returned
// unchanged.
func (pt XY) Unit() XY {
	n := pt.Norm()
	if n == 0 {
		return pt
	}
	return pt.Scale(1 / n)
}

// Perp returns pt rotated 90 degrees counterclockwise in image
// coordinates (y grows downward).
func (pt XY) Perp() XY { return XY{-pt.Y, pt.X} }

// Polar returns the point at distance r from center in the direction
// angle, in radians measured clockwise from the positive x axis (the
// screen convention used by every draw call in this module).
func Polar(center XY, r, angle float64) XY {
	sin, cos := math.Sincos(angle)
	return XY{center.X + cos*r, center.Y + sin*r}
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b XY) XY { return XY{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Poly represents a closed polygon.  Pairs of consecutive points
// represent endpoints of segments.  The last and first point represent
// an additional segment.  That is, the last point does not need to
// repeat the first to close the polygon.
type Poly struct {
	XY []XY
}

// In returns true if pt is inside pg.
//
// Segments of the polygon are allowed to cross.  In this case they
// divide the polygon into multiple regions.  The function returns true
// for points in regions on the perimeter of the polygon.  The return
// value for interior regions is determined by a two coloring of the
// regions.
//
// If pt is exactly on a segment or vertex of pg, the method may return
// true or false.
func (pt XY) In(pg Poly) bool {
	if len(pg.XY) < 3 {
		return false
	}
	a := pg.XY[0]
	in := rayIntersectsSegment(pt, pg.XY[len(pg.XY)-1], a)
	for _, b := range pg.XY[1:] {
		if rayIntersectsSegment(pt, a, b) {
			in = !in
		}
		a = b
	}
	return in
}

// Segment intersect expression from
// https://www.ecse.rpi.edu/Homepages/wrf/Research/Short_Notes/pnpoly.html
//
// Currently the compiler inlines the function by default.
func rayIntersectsSegment(p, a, b XY) bool {
	return (a.Y > p.Y) != (b.Y > p.Y) &&
		p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X
}

// Centroid returns the area centroid of the polygon.
func (pg *Poly) Centroid() XY {
	vertices := pg.XY
	vertexCount := len(vertices)

	centroid := XY{0, 0}
	signedArea := 0.0
	x0 := 0.0
	y0 := 0.0
	x1 := 0.0
	y1 := 0.0
	a := 0.0

	// For all vertices except last
	i := 0
	for i < vertexCount-1 {
		x0 = vertices[i].X
		y0 = vertices[i].Y
		x1 = vertices[i+1].X
		y1 = vertices[i+1].Y
		a = x0*y1 - x1*y0
		signedArea += a
		centroid.X += (x0 + x1) * a
		centroid.Y += (y0 + y1) * a
		i++
	}

	// Do last vertex separately to avoid performing an expensive modulus operation in each iteration.
	x0 = vertices[i].X
	y0 = vertices[i].Y
	x1 = vertices[0].X
	y1 = vertices[0].Y
	a = x0*y1 - x1*y0
	signedArea += a
	centroid.X += (x0 + x1) * a
	centroid.Y += (y0 + y1) * a

	signedArea *= 0.5
	centroid.X /= (6.0 * signedArea)
	centroid.Y /= (6.0 * signedArea)

	return centroid
}

// MinMax returns the corners of the polygon's axis-aligned bounding
// box.
func (pg *Poly) MinMax() (min, max XY) {
	min = pg.XY[0]
	max = pg.XY[0]

	for _, v := range pg.XY {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
	}

	return
}
