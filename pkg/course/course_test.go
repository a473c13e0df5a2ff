package course_test

import (
	"math"
	"testing"

	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionArcLength(t *testing.T) {
	a := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	b := course.NewSegment(geom.NewLine(geom.NewPoint(10, 10), geom.NewPoint(20, 10)))
	tr := course.NewTransition(a, b, geom.Polyline{
		geom.NewPoint(10, 0),
		geom.NewPoint(10, 5),
		geom.NewPoint(10, 10),
	})

	assert.InDelta(t, 10.0, tr.ArcLength(), 1e-9)
	assert.Equal(t, geom.NewPoint(10, 0), tr.StartPoint())
	assert.Equal(t, geom.NewPoint(10, 10), tr.EndPoint())
}

func TestGraphFindClosestSegmentPicksNearestWithinTolerance(t *testing.T) {
	near := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	far := course.NewSegment(geom.NewLine(geom.NewPoint(0, 100), geom.NewPoint(10, 100)))
	g := course.NewGraph([]*course.Segment{near, far})

	got, ok := g.FindClosestSegment(geom.NewPose(5, 1, 0), math.Pi/8, 2.0)

	require.True(t, ok)
	assert.Same(t, near, got)
}

func TestGraphFindClosestSegmentRejectsOutOfToleranceDistance(t *testing.T) {
	near := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	g := course.NewGraph([]*course.Segment{near})

	_, ok := g.FindClosestSegment(geom.NewPose(5, 10, 0), math.Pi/8, 1.0)

	assert.False(t, ok)
}

func TestGraphFindClosestSegmentRejectsOutOfToleranceAngle(t *testing.T) {
	near := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	g := course.NewGraph([]*course.Segment{near})

	_, ok := g.FindClosestSegment(geom.NewPose(5, 0.1, math.Pi/2), math.Pi/8, 2.0)

	assert.False(t, ok)
}

func TestGraphFindClosestSegmentAcceptsOppositeHeading(t *testing.T) {
	near := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	g := course.NewGraph([]*course.Segment{near})

	got, ok := g.FindClosestSegment(geom.NewPose(5, 0.1, math.Pi), math.Pi/8, 2.0)

	require.True(t, ok)
	assert.Same(t, near, got)
}
