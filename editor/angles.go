package editor

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/bpcurve"
)

// AngleProfile holds the turning angles of all junctions of a curve.
// Profiles are snapshots: they are not updated when the curve changes.
type AngleProfile struct {
	junctions []Junction   // junction j at position j
	sorted    *treemap.Map // Junction → nothing, ordered by (θ, index)
}

// Order junctions by turning angle, then by index.
func byThetaThenIndex(a, b interface{}) int {
	ja, jb := a.(Junction), b.(Junction)
	switch {
	case ja.Theta < jb.Theta:
		return -1
	case ja.Theta > jb.Theta:
		return 1
	}
	return utils.IntComparator(ja.Index, jb.Index)
}

// Angles computes the turning angle profile of a curve. For each window of
// three consecutive breakpoints j, j+1, j+2 the profile holds the interior
// angle at breakpoint j+1, in the range (0…π].
//
// A curve needs at least 3 breakpoints to have a profile. Windows where
// both segments have zero length have no defined angle and result in an
// error wrapping ErrDegenerateGeometry.
func Angles(curve []bpcurve.Pair) (*AngleProfile, error) {
	if len(curve) < MinAnglePoints {
		return nil, fmt.Errorf("%w: %d breakpoints, turning angles need at least %d",
			ErrBounds, len(curve), MinAnglePoints)
	}
	ap := &AngleProfile{
		junctions: make([]Junction, 0, len(curve)-2),
		sorted:    treemap.NewWith(byThetaThenIndex),
	}
	for j := 0; j+2 < len(curve); j++ {
		theta, err := turningAngle(curve[j], curve[j+1], curve[j+2])
		if err != nil {
			return nil, fmt.Errorf("%w at junction %d", err, j)
		}
		junction := Junction{Index: j, Theta: theta}
		ap.junctions = append(ap.junctions, junction)
		ap.sorted.Put(junction, nil)
	}
	return ap, nil
}

// Interior angle at b between segments ab and bc.
//
// The angle between v1 and v2 is arg(v2·conj(v1)) = atan2(v1×v2, v1·v2),
// which lies in (-π…π]. Folding it gives π for collinear segments and
// values near 0 for segments (nearly) reversing direction.
func turningAngle(a, b, c bpcurve.Pair) (float64, error) {
	v1, v2 := b-a, c-b
	if v1 == 0 && v2 == 0 {
		return 0, fmt.Errorf("%w: segments around %s have zero length", ErrDegenerateGeometry, b)
	}
	theta := math.Pi - math.Abs(cmplx.Phase(v2.C()*cmplx.Conj(v1.C())))
	if theta == 0 {
		theta = math.Pi // degenerate fold counts as straight
	}
	return theta, nil
}

// N returns the number of junctions.
func (ap *AngleProfile) N() int {
	return len(ap.junctions)
}

// At returns junction j.
func (ap *AngleProfile) At(j int) Junction {
	return ap.junctions[j]
}

// Junctions returns all junctions in index order.
func (ap *AngleProfile) Junctions() []Junction {
	j := make([]Junction, len(ap.junctions))
	copy(j, ap.junctions)
	return j
}

// Sorted returns all junctions ordered by increasing turning angle. Junctions
// with equal angles are ordered by index.
func (ap *AngleProfile) Sorted() []Junction {
	keys := ap.sorted.Keys()
	j := make([]Junction, len(keys))
	for i, k := range keys {
		j[i] = k.(Junction)
	}
	return j
}

// Sharpest returns the junction with the smallest turning angle. Among
// junctions of equal angle the one with the lowest index is returned.
func (ap *AngleProfile) Sharpest() (Junction, bool) {
	k, _ := ap.sorted.Min()
	if k == nil {
		return Junction{}, false
	}
	return k.(Junction), true
}

// Straightest returns the junction with the largest turning angle. Among
// junctions of equal angle the one with the lowest index is returned.
func (ap *AngleProfile) Straightest() (Junction, bool) {
	k, _ := ap.sorted.Max()
	if k == nil {
		return Junction{}, false
	}
	// the maximum key is the highest index of its angle; step back to the lowest
	first, _ := ap.sorted.Ceiling(Junction{Index: -1, Theta: k.(Junction).Theta})
	return first.(Junction), true
}
