// Package polygon deals with closed polygons built from breakpoints. It is
// used to measure the area between two versions of a curve.
//
// # BSD License
//
// # Copyright (c) Norbert Pillmayer
//
// All rights reserved.
//
// Please refer to the license file for more information.
package polygon

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the polygon tracer.
func L() tracing.Trace {
	return tracing.Select("bpcurve.polygon")
}

// Polygon is a sequence of knots. Cyclic polygons are closed implicitly,
// i.e. the last knot is connected to the first one.
type Polygon struct {
	points []bpcurve.Pair
	cycle  bool
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls:
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p bpcurve.Pair) *Polygon {
	pg.points = append(pg.points, p)
	return pg
}

// Cycle closes a polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.points)
}

// Pt returns knot i.
func (pg *Polygon) Pt(i int) bpcurve.Pair {
	return pg.points[i]
}

// Box creates a closed rectangle from two opposite corners.
func Box(a, b bpcurve.Pair) *Polygon {
	ll, ur := bpcurve.Bounds([]bpcurve.Pair{a, b})
	return NullPolygon().Knot(ll).Knot(bpcurve.P(ur.X(), ll.Y())).
		Knot(ur).Knot(bpcurve.P(ll.X(), ur.Y())).Cycle()
}

// AsString returns a polygon as a (debugging) string.
func AsString(pg *Polygon) string {
	var b strings.Builder
	for i, pt := range pg.points {
		if i > 0 {
			b.WriteString(" -- ")
		}
		b.WriteString(pt.String())
	}
	if pg.cycle {
		b.WriteString(" -- cycle")
	}
	return b.String()
}

// Area returns the (unsigned) area enclosed by a polygon, regardless of its
// orientation. Open polygons are treated as if closed.
func (pg *Polygon) Area() float64 {
	return math.Abs(shoelace(pg.points))
}

// AreaBetween returns the area enclosed between two curves, i.e. the
// integral of |f(x) - g(x)| over the range of x both curves cover. Both
// curves must be ordered by strictly ascending x.
//
// The range is cut into slabs at every breakpoint of either curve. Within a
// slab both curves are straight lines, so the area between them is a
// trapezoid, or two triangles if the curves cross inside the slab.
func AreaBetween(f, g []bpcurve.Pair) float64 {
	if len(f) < 2 || len(g) < 2 {
		return 0
	}
	x0 := math.Max(f[0].X(), g[0].X())
	xn := math.Min(f[len(f)-1].X(), g[len(g)-1].X())
	if !(x0 < xn) {
		return 0
	}
	xs := slabs(f, g, x0, xn)
	fv, gv := newCursor(f), newCursor(g)
	fa, ga := fv.at(xs[0]), gv.at(xs[0])
	area := 0.0
	for _, xb := range xs[1:] {
		fb, gb := fv.at(xb), gv.at(xb)
		area += slabArea(fa, fb, ga, gb)
		fa, ga = fb, gb
	}
	L().Debugf("area between curves of %d and %d knots over %d slabs: %g",
		len(f), len(g), len(xs)-1, area)
	return area
}

// slabArea returns the area between segments fa to fb and ga to gb, which share
// their x coordinates.
func slabArea(fa, fb, ga, gb bpcurve.Pair) float64 {
	d0, d1 := fa.Y()-ga.Y(), fb.Y()-gb.Y()
	if d0*d1 >= 0 {
		return NullPolygon().Knot(fa).Knot(fb).Knot(gb).Knot(ga).Cycle().Area()
	}
	c := fa.Lerp(fb, d0/(d0-d1)) // crossing point
	return NullPolygon().Knot(fa).Knot(c).Knot(ga).Cycle().Area() +
		NullPolygon().Knot(c).Knot(fb).Knot(gb).Cycle().Area()
}

// slabs merges the x coordinates of two curves within [x0, xn].
func slabs(f, g []bpcurve.Pair, x0, xn float64) []float64 {
	xs := []float64{x0}
	i, j := 0, 0
	for i < len(f) || j < len(g) {
		var x float64
		if j == len(g) || (i < len(f) && f[i].X() <= g[j].X()) {
			x = f[i].X()
			i++
		} else {
			x = g[j].X()
			j++
		}
		if x > xs[len(xs)-1] && x < xn {
			xs = append(xs, x)
		}
	}
	return append(xs, xn)
}

// cursor evaluates a curve at ascending x.
type cursor struct {
	curve []bpcurve.Pair
	i     int
}

func newCursor(curve []bpcurve.Pair) *cursor {
	return &cursor{curve: curve}
}

// at returns the point of the curve at x. Subsequent calls must not
// decrease x.
func (c *cursor) at(x float64) bpcurve.Pair {
	for c.i < len(c.curve)-2 && c.curve[c.i+1].X() <= x {
		c.i++
	}
	a, b := c.curve[c.i], c.curve[c.i+1]
	if x == a.X() {
		return a
	}
	if x == b.X() {
		return b
	}
	return a.Lerp(b, (x-a.X())/(b.X()-a.X()))
}

// Signed area by the shoelace formula, positive for counter-clockwise
// orientation.
func shoelace(pts []bpcurve.Pair) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	s := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		s += pts[i].X()*pts[j].Y() - pts[j].X()*pts[i].Y()
	}
	return s / 2
}

// String is a Stringer for polygons.
func (pg *Polygon) String() string {
	return fmt.Sprintf("polygon[%d]", pg.N())
}
