package editor

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, curve []bpcurve.Pair) *Editor {
	t.Helper()
	ed := New()
	if err := ed.Load(curve); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return ed
}

func assertAscending(t *testing.T, curve []bpcurve.Pair) {
	t.Helper()
	for i := 1; i < len(curve); i++ {
		if curve[i].X() <= curve[i-1].X() {
			t.Fatalf("x not strictly increasing at %d: %s, %s", i, curve[i-1], curve[i])
		}
	}
}

// A wavy curve without ties between junction angles.
func wave(n int) []bpcurve.Pair {
	c := make([]bpcurve.Pair, n)
	for i := range c {
		x := float64(i)
		c[i] = bpcurve.P(x, math.Sin(0.7*x)*(1+x/5))
	}
	return c
}

func TestRemoveFirstOfTies(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, zigzag())
	require.NoError(t, ed.AdjustCount(-1))
	want := []bpcurve.Pair{bpcurve.P(0, 0), bpcurve.P(2, 0), bpcurve.P(3, 1), bpcurve.P(4, 0)}
	if diff := cmp.Diff(want, ed.Points()); diff != "" {
		t.Errorf("removal (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, ed.PointCount())
}

func TestRemovalTakesStraightestJunction(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, wave(25))
	for ed.PointCount() > MinPoints {
		before := ed.Points()
		ap := mustAngles(t, before)
		best := ap.At(0)
		for _, j := range ap.Junctions() {
			if j.Theta > best.Theta {
				best = j
			}
		}
		require.NoError(t, ed.AdjustCount(-1))
		want := append(append([]bpcurve.Pair{}, before[:best.Index+1]...), before[best.Index+2:]...)
		if diff := cmp.Diff(want, ed.Points()); diff != "" {
			t.Fatalf("removal at %d breakpoints (-want +got):\n%s", len(before), diff)
		}
		assertAscending(t, ed.Points())
	}
	assert.ErrorIs(t, ed.AdjustCount(-1), ErrBounds)
	assert.Equal(t, MinPoints, ed.PointCount())
	assert.ErrorIs(t, ed.AdjustCount(1), ErrBounds)
}

func TestInsertionGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, []bpcurve.Pair{bpcurve.P(0, 0), bpcurve.P(1, 1), bpcurve.P(3, -1)})
	require.NoError(t, ed.AdjustCount(1))
	pts := ed.Points()
	require.Len(t, pts, 4)
	s := math.Sin(math.Pi/4) / DefaultDivider
	assert.Equal(t, bpcurve.P(0, 0), pts[0])
	assert.InDelta(t, 1-s, pts[1].X(), 1e-12)
	assert.InDelta(t, 1-s, pts[1].Y(), 1e-12)
	assert.InDelta(t, 1+s, pts[2].X(), 1e-12) // ratio 0.5 on the longer segment
	assert.InDelta(t, 1-s, pts[2].Y(), 1e-12)
	assert.Equal(t, bpcurve.P(3, -1), pts[3])
}

func TestInsertionNearVerticalStep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	curve := []bpcurve.Pair{bpcurve.P(0, 0), bpcurve.P(10, 0), bpcurve.P(10.001, 10), bpcurve.P(20, 10)}
	ed := mustLoad(t, curve)
	ap, err := ed.Angles()
	require.NoError(t, err)
	sharp, _ := ap.Sharpest()
	assert.InDelta(t, math.Pi/2, sharp.Theta, 1e-3)
	require.NoError(t, ed.AdjustCount(1))
	pts := ed.Points()
	require.Len(t, pts, 5)
	assertAscending(t, pts)
	a, b, c := curve[sharp.Index], curve[sharp.Index+1], curve[sharp.Index+2]
	assert.NotContains(t, pts, b)
	assert.Greater(t, pts[sharp.Index+1].X(), a.X())
	assert.Less(t, pts[sharp.Index+1].X(), b.X())
	assert.Greater(t, pts[sharp.Index+2].X(), b.X())
	assert.Less(t, pts[sharp.Index+2].X(), c.X())
}

func TestInsertionRejectsOrderViolation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	curve := []bpcurve.Pair{bpcurve.P(0, 0), bpcurve.P(10, 0), bpcurve.P(10.001, 10), bpcurve.P(20, 10)}
	ed := mustLoad(t, curve)
	require.True(t, ed.SetDivider(0.5))
	err := ed.AdjustCount(1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
	if diff := cmp.Diff(curve, ed.Points()); diff != "" {
		t.Errorf("failed insertion changed the curve (-want +got):\n%s", diff)
	}
	assert.False(t, ed.Locked(), "failed edit must not lock the divider")
	assert.True(t, ed.SetDivider(DefaultDivider))
	assert.NoError(t, ed.AdjustCount(1))
}

func TestGrowingKeepsOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, zigzag())
	for i := 0; i < 30; i++ {
		require.NoError(t, ed.AdjustCount(1))
		assertAscending(t, ed.Points())
	}
	assert.Equal(t, 35, ed.PointCount())
	first, last := ed.Points()[0], ed.Points()[34]
	assert.Equal(t, bpcurve.P(0, 0), first)
	assert.Equal(t, bpcurve.P(4, 0), last)
}

func TestAdjustBatch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	single := mustLoad(t, wave(12))
	for i := 0; i < 4; i++ {
		require.NoError(t, single.AdjustCount(-1))
	}
	batch := mustLoad(t, wave(12))
	require.NoError(t, batch.AdjustCount(-4))
	if diff := cmp.Diff(single.Points(), batch.Points()); diff != "" {
		t.Errorf("batch differs from single steps (-single +batch):\n%s", diff)
	}
	require.NoError(t, batch.AdjustTo(10))
	assert.Equal(t, 10, batch.PointCount())
	require.NoError(t, batch.AdjustCount(0))
	assert.Equal(t, 10, batch.PointCount())
}

func TestAdjustBounds(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.ErrorIs(t, New().AdjustCount(1), ErrBounds)
	ed := mustLoad(t, zigzag())
	assert.ErrorIs(t, ed.AdjustCount(-4), ErrBounds)
	assert.Equal(t, 5, ed.PointCount())
	assert.NoError(t, ed.AdjustCount(-3))
	assert.Equal(t, 2, ed.PointCount())

	capped := New().WithPolicy(Policy{MaxPoints: 6})
	require.NoError(t, capped.Load(zigzag()))
	assert.ErrorIs(t, capped.AdjustCount(2), ErrBounds)
	assert.NoError(t, capped.AdjustCount(1))
	assert.Equal(t, 6, capped.PointCount())
}

func TestAdjustCountOverflow(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	capped := New().WithPolicy(Policy{MaxPoints: 200})
	require.NoError(t, capped.Load(wave(14)))
	assert.ErrorIs(t, capped.AdjustCount(math.MaxInt), ErrBounds)
	assert.ErrorIs(t, capped.AdjustCount(math.MaxInt-13), ErrBounds)
	assert.ErrorIs(t, capped.AdjustCount(math.MinInt), ErrBounds)
	assert.ErrorIs(t, capped.AdjustTo(math.MinInt), ErrBounds)
	assert.Equal(t, 14, capped.PointCount())
	assert.False(t, capped.Locked())

	ed := mustLoad(t, wave(14))
	assert.ErrorIs(t, ed.AdjustCount(math.MaxInt), ErrBounds)
	assert.ErrorIs(t, ed.AdjustCount(math.MaxInt-14), ErrBounds)
	assert.ErrorIs(t, ed.AdjustTo(LimitPoints+1), ErrBounds)
	assert.ErrorIs(t, ed.AdjustTo(1), ErrBounds)
	assert.Equal(t, 14, ed.PointCount())
}

func TestLoadRejectsInvalid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, zigzag())
	assert.ErrorIs(t, ed.Load(curveFromX(0, 1)), ErrValidation)
	assert.ErrorIs(t, ed.Load(curveFromX(0, 1, 1, 2)), ErrValidation)
	assert.Equal(t, 5, ed.PointCount(), "rejected curve must not replace the loaded one")
	assert.False(t, New().IsLoaded())
	assert.True(t, ed.IsLoaded())
}

func TestReset(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	curve := wave(10)
	ed := mustLoad(t, curve)
	require.NoError(t, ed.AdjustCount(3))
	require.NoError(t, ed.AdjustCount(-3))
	ed.Reset()
	if diff := cmp.Diff(curve, ed.Points()); diff != "" {
		t.Errorf("reset (-want +got):\n%s", diff)
	}
	ed.Reset()
	if diff := cmp.Diff(curve, ed.Points()); diff != "" {
		t.Errorf("second reset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(curve, ed.Original()); diff != "" {
		t.Errorf("original snapshot changed (-want +got):\n%s", diff)
	}
	pts := ed.Points()
	pts[0] = bpcurve.P(-100, -100)
	assert.Equal(t, curve[0], ed.Points()[0], "Points must return a copy")
}

func TestDividerLock(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, zigzag())
	assert.Equal(t, DefaultDivider, ed.Divider())
	assert.False(t, ed.SetDivider(0))
	assert.False(t, ed.SetDivider(-2))
	assert.False(t, ed.SetDivider(math.NaN()))
	assert.True(t, ed.SetDivider(4))
	assert.True(t, ed.SetDivider(5))
	require.NoError(t, ed.AdjustCount(-1))
	assert.True(t, ed.Locked())
	assert.False(t, ed.SetDivider(2))
	assert.Equal(t, 5.0, ed.Divider())
	ed.Reset()
	assert.False(t, ed.Locked())
	assert.True(t, ed.SetDivider(2))
	require.NoError(t, ed.AdjustCount(1))
	require.NoError(t, ed.Load(zigzag()))
	assert.False(t, ed.Locked())
}

// valueAt interpolates a curve at x, for x within the curve's range.
func valueAt(curve []bpcurve.Pair, x float64) float64 {
	i := 1
	for i < len(curve)-1 && curve[i].X() < x {
		i++
	}
	a, b := curve[i-1], curve[i]
	return a.Y() + (b.Y()-a.Y())*(x-a.X())/(b.X()-a.X())
}

// Midpoint rule for the integral of |f-g| over the range of f.
func integrateAbsDiff(f, g []bpcurve.Pair, samples int) float64 {
	x0, xn := f[0].X(), f[len(f)-1].X()
	h := (xn - x0) / float64(samples)
	sum := 0.0
	for k := 0; k < samples; k++ {
		x := x0 + (float64(k)+0.5)*h
		sum += math.Abs(valueAt(f, x) - valueAt(g, x))
	}
	return sum * h
}

func TestDeviationOfEditedWave(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, delta := range []int{-10, -3, 3, 6, 7, 8, 9, 10} {
		ed := mustLoad(t, wave(14))
		require.NoError(t, ed.AdjustCount(delta), "delta %d", delta)
		want := integrateAbsDiff(ed.Original(), ed.Points(), 1<<17)
		got := ed.Deviation()
		assert.Greater(t, got, 0.0, "delta %d", delta)
		assert.InDelta(t, want, got, 1e-5, "delta %d", delta)
	}
}

func TestDeviation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ed := mustLoad(t, zigzag())
	assert.Equal(t, 0.0, ed.Deviation())
	require.NoError(t, ed.AdjustCount(-1))
	assert.InDelta(t, 1.0, ed.Deviation(), 1e-6) // triangle (0,0),(1,1),(2,0)
	ed.Reset()
	assert.Equal(t, 0.0, ed.Deviation())
	ll, ur := ed.Bounds()
	assert.Equal(t, bpcurve.P(0, 0), ll)
	assert.Equal(t, bpcurve.P(4, 1), ur)
}
