package polygon

import (
	"testing"

	"github.com/npillmayer/bpcurve"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pg := NullPolygon().Knot(bpcurve.P(0, 0)).Knot(bpcurve.P(1, 3)).Knot(bpcurve.P(3, 0)).Cycle()
	L().Infof("pg = %s", AsString(pg))
	if pg.N() != 3 {
		t.Fail()
	}
	assert.Equal(t, "(0,0) -- (1,3) -- (3,0) -- cycle", AsString(pg))
	assert.InDelta(t, 4.5, pg.Area(), 1e-9)
}

func TestBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	box := Box(bpcurve.P(0, 5), bpcurve.P(4, 1))
	L().Infof("box = %s", AsString(box))
	if box.N() != 4 {
		t.Fail()
	}
	assert.InDelta(t, 16.0, box.Area(), 1e-9)
	assert.True(t, box.IsCycle())
}

func TestAreaBetween(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	P := bpcurve.P
	hat := []bpcurve.Pair{P(0, 0), P(1, 1), P(2, 0)}
	flat := []bpcurve.Pair{P(0, 0), P(2, 0)}
	assert.InDelta(t, 1.0, AreaBetween(hat, flat), 1e-12)
	assert.InDelta(t, 1.0, AreaBetween(flat, hat), 1e-12)
	assert.Equal(t, 0.0, AreaBetween(hat, hat))
	// crossing diagonals give two triangles of area 1
	up := []bpcurve.Pair{P(0, 0), P(2, 2)}
	down := []bpcurve.Pair{P(0, 2), P(2, 0)}
	assert.InDelta(t, 2.0, AreaBetween(up, down), 1e-12)
	// shared vertices and edges
	f := []bpcurve.Pair{P(0, 0), P(1, 1), P(3, 1), P(4, 0)}
	g := []bpcurve.Pair{P(0, 0), P(1, 1), P(2, 0), P(3, 1), P(4, 0)}
	assert.InDelta(t, 1.0, AreaBetween(f, g), 1e-12)
	g = []bpcurve.Pair{P(0, 0), P(1, 1), P(2, 1), P(3, 1), P(4, 0)}
	assert.InDelta(t, 0.0, AreaBetween(f, g), 1e-12)
	// two crossings inside slabs
	tent := []bpcurve.Pair{P(0, 0), P(2, 2), P(4, 0)}
	level := []bpcurve.Pair{P(0, 1), P(4, 1)}
	assert.InDelta(t, 2.0, AreaBetween(tent, level), 1e-12)
	assert.Equal(t, 0.0, AreaBetween(tent[:1], level))
}
