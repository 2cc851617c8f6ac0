/*
Package bpcurve implements breakpoints of piecewise-linear calibration
curves, together with the numeric helpers and affine transformations the
sub-packages share.

Breakpoints are pairs of (sensor value, output value). Curves made from
them are used by devices with lookup tables of fixed size. Package
editor adjusts the number of breakpoints of such a curve, package curvefile
reads and writes curve files.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bpcurve

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bpcurve'
func tracer() tracing.Trace {
	return tracing.Select("bpcurve")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// IsFinite is a predicate: is n neither NaN nor ±Inf ?
func IsFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// === Pair Data Type ========================================================

// Pair is a breakpoint (x,y). x is the sensor axis, y the output axis.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(0, 0)

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// C returns a Pair as a complex number.
func (p Pair) C() complex128 {
	return complex128(p)
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// F is a quick notation for getting float values from a pair.
func (p Pair) F() (float64, float64) {
	return real(p), imag(p)
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// IsFinite is a predicate: are both coordinates finite?
func (p Pair) IsFinite() bool {
	return IsFinite(p.X()) && IsFinite(p.Y())
}

// Equal compares two pairs within Epsilon.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Length is the euclidian length of p, taken as a vector.
func (p Pair) Length() float64 {
	return cmplx.Abs(p.C())
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Lerp returns the point at fraction t on the way from p to q.
func (p Pair) Lerp(q Pair, t float64) Pair {
	return p + (q - p).Scaled(t)
}

// === Bounding Box ==========================================================

// Bounds returns the lower left and upper right corner of the bounding box
// of a sequence of pairs. For an empty sequence both corners are Origin.
func Bounds(pts []Pair) (Pair, Pair) {
	if len(pts) == 0 {
		return Origin, Origin
	}
	minx, miny := pts[0].F()
	maxx, maxy := minx, miny
	for _, pt := range pts[1:] {
		minx, maxx = math.Min(minx, pt.X()), math.Max(maxx, pt.X())
		miny, maxy = math.Min(miny, pt.Y()), math.Max(maxy, pt.Y())
	}
	return P(minx, miny), P(maxx, maxy)
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Scaling transform. Scale a point by sx in x-direction and sy in
// y-direction.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The resulting transform applies m first,
// then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}

// FitTransform returns a transform mapping the box (ll,ur) onto the box
// (0,0)–(w,h) of a display raster. Degenerate extents are mapped to the
// middle of the raster.
func FitTransform(ll, ur Pair, w, h float64) AT {
	dx, dy := ur.X()-ll.X(), ur.Y()-ll.Y()
	sx, sy := 0.0, 0.0
	off := P(0, 0)
	if Is0(dx) {
		off = P(w/2, off.Y())
	} else {
		sx = w / dx
	}
	if Is0(dy) {
		off = P(off.X(), h/2)
	} else {
		sy = h / dy
	}
	T := Translation(-ll).Combine(Scaling(sx, sy)).Combine(Translation(off))
	tracer().Debugf("fit transform for %s–%s onto %gx%g = %s", ll, ur, w, h, T)
	return T
}
