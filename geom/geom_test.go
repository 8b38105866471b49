package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorOps(t *testing.T) {
	t.Parallel()

	a := XY{X: 3, Y: 4}
	b := XY{X: 1, Y: 1}

	require.Equal(t, XY{X: 4, Y: 5}, a.Add(b))
	require.Equal(t, XY{X: 2, Y: 3}, a.Sub(b))
	require.Equal(t, XY{X: 6, Y: 8}, a.Scale(2))
	require.InDelta(t, 5, a.Norm(), 1e-12)

	u := a.Unit()
	require.InDelta(t, 1, u.Norm(), 1e-12)
	require.InDelta(t, a.Angle(), u.Angle(), 1e-12)

	// Perp is a quarter turn; the dot product vanishes.
	p := a.Perp()
	require.InDelta(t, 0, a.X*p.X+a.Y*p.Y, 1e-12)

	require.Equal(t, XY{X: 2, Y: 2.5}, Midpoint(a, b))
	require.Equal(t, XY{}, XY{}.Unit())
}

func TestPolar(t *testing.T) {
	t.Parallel()

	c := XY{X: 10, Y: 20}

	right := Polar(c, 5, 0)
	require.InDelta(t, 15, right.X, 1e-12)
	require.InDelta(t, 20, right.Y, 1e-12)

	// Screen coordinates: positive angles go clockwise (y down).
	down := Polar(c, 5, math.Pi/2)
	require.InDelta(t, 10, down.X, 1e-12)
	require.InDelta(t, 25, down.Y, 1e-12)

	back := Polar(c, -5, 0)
	require.InDelta(t, 5, back.X, 1e-12)
}

func TestRadians(t *testing.T) {
	t.Parallel()

	require.InDelta(t, math.Pi, Radians(180), 1e-12)
	require.InDelta(t, -math.Pi/2, Radians(-90), 1e-12)
}

func TestPointInPoly(t *testing.T) {
	t.Parallel()

	square := Poly{XY: []XY{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}

	require.True(t, XY{X: 5, Y: 5}.In(square))
	require.False(t, XY{X: 15, Y: 5}.In(square))
	require.False(t, XY{X: 5, Y: -1}.In(square))

	// Degenerate polygons contain nothing.
	require.False(t, XY{X: 5, Y: 5}.In(Poly{XY: []XY{{0, 0}, {10, 10}}}))
}

func TestCentroid(t *testing.T) {
	t.Parallel()

	square := Poly{XY: []XY{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	c := square.Centroid()
	require.InDelta(t, 5, c.X, 1e-12)
	require.InDelta(t, 5, c.Y, 1e-12)

	triangle := Poly{XY: []XY{{0, 0}, {6, 0}, {0, 6}}}
	c = triangle.Centroid()
	require.InDelta(t, 2, c.X, 1e-12)
	require.InDelta(t, 2, c.Y, 1e-12)
}

func TestMinMax(t *testing.T) {
	t.Parallel()

	pg := Poly{XY: []XY{{3, 7}, {-2, 4}, {9, -1}}}
	min, max := pg.MinMax()
	require.Equal(t, XY{X: -2, Y: -1}, min)
	require.Equal(t, XY{X: 9, Y: 7}, max)
}
