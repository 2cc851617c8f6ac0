package editor

import (
	"fmt"
	"math"

	"github.com/npillmayer/bpcurve"
)

// removeOne takes away the center of the straightest junction of a curve.
// The argument is unchanged and a new curve is returned.
func removeOne(curve []bpcurve.Pair) ([]bpcurve.Pair, Junction, error) {
	if len(curve) < MinAnglePoints {
		return nil, Junction{}, fmt.Errorf("%w: cannot remove from %d breakpoints, minimum is %d",
			ErrBounds, len(curve), MinPoints)
	}
	ap, err := Angles(curve)
	if err != nil {
		return nil, Junction{}, err
	}
	j, _ := ap.Straightest()
	k := j.Index + 1
	out := make([]bpcurve.Pair, 0, len(curve)-1)
	out = append(out, curve[:k]...)
	out = append(out, curve[k+1:]...)
	tracer().Debugf("removed breakpoint %d %s at %s", k, curve[k], j)
	return out, j, nil
}

// insertOne replaces the center of the sharpest junction of a curve by two
// new breakpoints on the adjacent segments. The argument is unchanged and a
// new curve is returned.
func insertOne(curve []bpcurve.Pair, divider float64) ([]bpcurve.Pair, Junction, error) {
	if len(curve) < MinAnglePoints {
		return nil, Junction{}, fmt.Errorf("%w: cannot insert into %d breakpoints, at least %d required",
			ErrBounds, len(curve), MinAnglePoints)
	}
	ap, err := Angles(curve)
	if err != nil {
		return nil, Junction{}, err
	}
	j, _ := ap.Sharpest()
	a, b, c := curve[j.Index], curve[j.Index+1], curve[j.Index+2]
	p1, p2 := splitJunction(a, b, c, j.Theta, divider)
	out := make([]bpcurve.Pair, 0, len(curve)+1)
	out = append(out, curve[:j.Index+1]...) // up to A
	out = append(out, p1, p2)
	out = append(out, curve[j.Index+2:]...) // from C on
	if err := checkOrder(out[j.Index : j.Index+4]); err != nil {
		tracer().Errorf("cannot split %s with divider %g: %v", j, divider, err)
		return nil, j, fmt.Errorf("splitting breakpoint %d with divider %g: %w", j.Index+1, divider, err)
	}
	tracer().Debugf("replaced breakpoint %d %s at %s by %s and %s", j.Index+1, b, j, p1, p2)
	return out, j, nil
}

// Calculate the two breakpoints replacing b, with θ the turning angle at b.
// P1 lies on segment ab, P2 on segment bc. The offset of P2 from b is scaled
// by the ratio of the shorter to the longer segment.
func splitJunction(a, b, c bpcurve.Pair, theta, divider float64) (bpcurve.Pair, bpcurve.Pair) {
	l1, l2 := (b - a).Length(), (c - b).Length()
	ratio := 1.0
	if l1 != l2 {
		ratio = math.Min(l1, l2) / math.Max(l1, l2)
	}
	s := math.Sin(theta/2) / divider
	return a.Lerp(b, 1-s), b.Lerp(c, ratio*s)
}
