package editor

import (
	"fmt"

	"github.com/npillmayer/bpcurve"
	"go.uber.org/multierr"
)

// Validate checks a candidate curve against a policy and returns a copy of
// the curve as it is fit for editing. Rules checked are:
//
//   - all coordinates are finite
//   - x ≥ 0, if policy.NonNegativeX is set
//   - x does not decrease from one breakpoint to the next
//   - adjacent breakpoints do not share their x-coordinate
//     (depending on policy.Duplicates this is an error, or the later
//     breakpoint is dropped)
//   - at least 3 breakpoints remain
//
// As x must not decrease, two equal breakpoints anywhere within a window of
// three consecutive breakpoints are always caught by the duplicate rule.
//
// All violations are reported, combined into a single error. Each of them
// wraps ErrValidation.
func Validate(points []bpcurve.Pair, policy Policy) ([]bpcurve.Pair, error) {
	var err error
	curve := make([]bpcurve.Pair, 0, len(points))
	for i, pt := range points {
		if !pt.IsFinite() {
			err = multierr.Append(err, fmt.Errorf("%w: breakpoint %d %s is not finite", ErrValidation, i, pt))
			continue
		}
		if policy.NonNegativeX && pt.X() < 0 {
			err = multierr.Append(err, fmt.Errorf("%w: breakpoint %d %s has negative x", ErrValidation, i, pt))
		}
		if len(curve) > 0 {
			prev := curve[len(curve)-1]
			if pt.X() < prev.X() {
				err = multierr.Append(err, fmt.Errorf("%w: x not in ascending order at breakpoint %d: %g < %g",
					ErrValidation, i, pt.X(), prev.X()))
			} else if pt.X() == prev.X() {
				if policy.Duplicates == DropDuplicates {
					tracer().Infof("dropping breakpoint %d %s, x equals its predecessor %s", i, pt, prev)
					continue
				}
				err = multierr.Append(err, fmt.Errorf("%w: breakpoints %d and %d share x=%g",
					ErrValidation, i-1, i, pt.X()))
			}
		}
		curve = append(curve, pt)
	}
	if len(curve) < MinAnglePoints {
		err = multierr.Append(err, fmt.Errorf("%w: fewer than %d breakpoints (%d)",
			ErrValidation, MinAnglePoints, len(curve)))
	}
	if err != nil {
		return nil, err
	}
	return curve, nil
}

// checkOrder makes sure x increases strictly along a curve.
func checkOrder(curve []bpcurve.Pair) error {
	for i := 1; i < len(curve); i++ {
		if !curve[i].IsFinite() {
			return fmt.Errorf("%w: breakpoint %d %s is not finite", ErrDegenerateGeometry, i, curve[i])
		}
		if curve[i].X() <= curve[i-1].X() {
			return fmt.Errorf("%w: x not strictly increasing between breakpoints %d and %d (%s, %s)",
				ErrDegenerateGeometry, i-1, i, curve[i-1], curve[i])
		}
	}
	return nil
}
