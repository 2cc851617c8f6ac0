package editor

import (
	"fmt"
	"slices"

	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/bpcurve/polygon"
)

// New creates an editor without a curve, using the default section divider
// and a policy rejecting duplicate breakpoints.
func New() *Editor {
	return &Editor{divider: DefaultDivider}
}

// WithPolicy sets the validation policy for subsequent calls to Load.
func (ed *Editor) WithPolicy(policy Policy) *Editor {
	ed.policy = policy
	return ed
}

// Policy returns the validation policy of an editor.
func (ed *Editor) Policy() Policy {
	return ed.policy
}

// Load validates a curve and makes it the editor's curve, replacing any
// curve loaded before. The validated curve is kept as a snapshot to Reset to.
// Loading unlocks the section divider.
//
// If the curve does not pass validation, the editor is left unchanged and
// an error wrapping ErrValidation is returned.
func (ed *Editor) Load(points []bpcurve.Pair) error {
	curve, err := Validate(points, ed.policy)
	if err != nil {
		tracer().Errorf("curve of %d breakpoints rejected: %v", len(points), err)
		return err
	}
	ed.original = curve
	ed.working = slices.Clone(curve)
	ed.locked = false
	tracer().Infof("loaded curve of %d breakpoints", len(curve))
	return nil
}

// IsLoaded is a predicate: has a curve been loaded?
func (ed *Editor) IsLoaded() bool {
	return ed.original != nil
}

// AdjustCount changes the number of breakpoints by delta. Negative values
// remove breakpoints, positive values insert breakpoints, zero does nothing.
//
// Each single step works on the turning angles of the curve as left by the
// previous step. Either all steps succeed or the curve is left unchanged.
// The first successful adjustment locks the section divider.
//
// Errors wrap ErrBounds if the resulting count would be less than 2 or
// exceed the policy's MaxPoints (LimitPoints if unset), or if breakpoints
// are to be inserted into a curve of fewer than 3 breakpoints. Errors wrap ErrDegenerateGeometry if an
// insertion would break the ascending order of x.
func (ed *Editor) AdjustCount(delta int) error {
	if delta == 0 {
		return nil
	}
	n := len(ed.working)
	switch {
	case !ed.IsLoaded():
		return fmt.Errorf("%w: no curve loaded", ErrBounds)
	case delta < 0 && delta < MinPoints-n:
		return fmt.Errorf("%w: adjusting %d breakpoints by %d leaves less than %d",
			ErrBounds, n, delta, MinPoints)
	case delta > 0 && n < MinAnglePoints:
		return fmt.Errorf("%w: cannot insert into %d breakpoints, at least %d required",
			ErrBounds, n, MinAnglePoints)
	case delta > 0 && delta > ed.maxPoints()-n:
		return fmt.Errorf("%w: inserting %d breakpoints into %d exceeds the maximum of %d",
			ErrBounds, delta, n, ed.maxPoints())
	}
	curve := ed.working
	steps := delta
	if steps < 0 {
		steps = -steps
	}
	for i := 0; i < steps; i++ {
		var err error
		if delta < 0 {
			curve, _, err = removeOne(curve)
		} else {
			curve, _, err = insertOne(curve, ed.divider)
		}
		if err != nil {
			return fmt.Errorf("step %d of %d: %w", i+1, steps, err)
		}
	}
	ed.working = curve
	ed.locked = true
	tracer().Infof("adjusted curve by %+d to %d breakpoints", delta, len(curve))
	return nil
}

func (ed *Editor) maxPoints() int {
	if ed.policy.MaxPoints > 0 {
		return ed.policy.MaxPoints
	}
	return LimitPoints
}

// AdjustTo changes the number of breakpoints to target. See AdjustCount.
func (ed *Editor) AdjustTo(target int) error {
	if target < MinPoints {
		return fmt.Errorf("%w: cannot adjust to %d breakpoints, at least %d required",
			ErrBounds, target, MinPoints)
	}
	return ed.AdjustCount(target - ed.PointCount())
}

// Reset restores the curve as loaded and unlocks the section divider.
func (ed *Editor) Reset() {
	ed.working = slices.Clone(ed.original)
	ed.locked = false
	tracer().Debugf("reset to %d breakpoints", len(ed.working))
}

// SetDivider sets the section divider for insertions. The divider is set
// only if it is a positive number and no edit has been done since the last
// Load or Reset. SetDivider reports whether the value has been applied.
func (ed *Editor) SetDivider(divider float64) bool {
	if ed.locked {
		tracer().Infof("section divider is locked at %g, ignoring %g", ed.divider, divider)
		return false
	}
	if !bpcurve.IsFinite(divider) || divider <= 0 {
		tracer().Errorf("section divider must be positive, ignoring %g", divider)
		return false
	}
	ed.divider = divider
	return true
}

// Divider returns the current section divider.
func (ed *Editor) Divider() float64 {
	return ed.divider
}

// Locked is a predicate: is the section divider locked?
func (ed *Editor) Locked() bool {
	return ed.locked
}

// PointCount returns the number of breakpoints of the curve.
func (ed *Editor) PointCount() int {
	return len(ed.working)
}

// Points returns a copy of the curve.
func (ed *Editor) Points() []bpcurve.Pair {
	return slices.Clone(ed.working)
}

// Original returns a copy of the curve as loaded.
func (ed *Editor) Original() []bpcurve.Pair {
	return slices.Clone(ed.original)
}

// Angles returns the turning angle profile of the curve.
func (ed *Editor) Angles() (*AngleProfile, error) {
	return Angles(ed.working)
}

// Bounds returns the lower left and upper right corner of the bounding box
// of the curve.
func (ed *Editor) Bounds() (bpcurve.Pair, bpcurve.Pair) {
	return bpcurve.Bounds(ed.working)
}

// Deviation returns the area between the curve as loaded and the curve as
// edited. It is 0 for identical curves.
func (ed *Editor) Deviation() float64 {
	if slices.Equal(ed.original, ed.working) {
		return 0
	}
	return polygon.AreaBetween(ed.original, ed.working)
}
