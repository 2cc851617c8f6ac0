package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bpcurve.editor'
func tracer() tracing.Trace {
	return tracing.Select("bpcurve.editor")
}

// DefaultDivider is the section divider of a new Editor.
const DefaultDivider = 3.0

// MinPoints is the minimum number of breakpoints of a curve after an edit.
const MinPoints = 2

// MinAnglePoints is the number of breakpoints needed for a turning angle.
const MinAnglePoints = 3

// LimitPoints caps the growth of curves whose policy sets no MaxPoints.
const LimitPoints = 1 << 20

var (
	// ErrValidation indicates a curve not fit for editing.
	ErrValidation = errors.New("invalid curve")
	// ErrDegenerateGeometry indicates an edit with undefined or order-violating geometry.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrBounds indicates an edit which would leave the allowed range of breakpoint counts.
	ErrBounds = errors.New("breakpoint count out of bounds")
)

// DuplicatePolicy decides how validation treats adjacent breakpoints with
// equal x.
type DuplicatePolicy int

const (
	// RejectDuplicates makes duplicates a validation error.
	RejectDuplicates DuplicatePolicy = iota
	// DropDuplicates silently drops the later of two breakpoints with equal x.
	DropDuplicates
)

func (dp DuplicatePolicy) String() string {
	switch dp {
	case RejectDuplicates:
		return "reject"
	case DropDuplicates:
		return "drop"
	}
	return fmt.Sprintf("DuplicatePolicy(%d)", int(dp))
}

// ParseDuplicatePolicy returns the policy for its name, as returned by
// String.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reject", "":
		return RejectDuplicates, nil
	case "drop":
		return DropDuplicates, nil
	}
	return RejectDuplicates, fmt.Errorf("unknown duplicate policy %q", s)
}

// Policy collects the rules a curve has to obey to be loaded by an editor.
type Policy struct {
	Duplicates   DuplicatePolicy // treatment of adjacent breakpoints with equal x
	NonNegativeX bool            // sensor values must not be negative
	MaxPoints    int             // upper limit for growing a curve; 0 = LimitPoints
}

// Editor holds a curve of breakpoints and adjusts the number of breakpoints.
// Create editors with New.
type Editor struct {
	working  []bpcurve.Pair // the curve being edited
	original []bpcurve.Pair // snapshot of the curve as loaded
	divider  float64        // section divider for insertions
	locked   bool           // divider is locked after the first edit
	policy   Policy
}

// Junction is an inner breakpoint of a curve, identified by the index of
// the first of the three breakpoints forming it, together with its
// turning angle in radians.
type Junction struct {
	Index int
	Theta float64
}

func (j Junction) String() string {
	return fmt.Sprintf("junction[%d]=%.4f°", j.Index, j.Theta/bpcurve.Deg2Rad)
}
