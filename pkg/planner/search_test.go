package planner

import (
	"math"
	"testing"

	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario 1: one segment S from (0,0) to (10,0), start_pt=(2,0), end_pt=(7,0).
func TestSameSegmentShortcut(t *testing.T) {
	seg := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	state := newSearchState(DefaultConfig(), seg, seg, geom.NewPoint(2, 0), geom.NewPoint(7, 0))

	middle := state.sameSegmentPath()

	require.Len(t, middle, 2)
	assert.Equal(t, geom.NewPose(2, 0, 0), middle[0])
	assert.Equal(t, geom.NewPose(7, 0, 0), middle[1])
}

// scenario 2: S1: (0,0)->(5,0), S2: (5,1)->(10,1), one forward transition T
// with path=[(5,0),(5,0.5),(5,1)] and arc_length 1.0. start on S1 at (1,0),
// end on S2 at (9,1); the single candidate travels T forward throughout, so
// reconstruction emits the arc with no turning stub.
func TestTwoSegmentForwardReconstruction(t *testing.T) {
	s1 := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(5, 0)))
	s2 := course.NewSegment(geom.NewLine(geom.NewPoint(5, 1), geom.NewPoint(10, 1)))
	tr := course.NewTransition(s1, s2, geom.Polyline{
		geom.NewPoint(5, 0),
		geom.NewPoint(5, 0.5),
		geom.NewPoint(5, 1),
	})
	s1.AddForwardTransition(tr)

	state := newSearchState(DefaultConfig(), s1, s2, geom.NewPoint(1, 0), geom.NewPoint(9, 1))
	middle := state.search([]*course.Segment{s1, s2})

	require.Len(t, middle, 4)
	assert.Equal(t, geom.NewPose(1, 0, 0), middle[0])
	assert.Equal(t, geom.NewPose(5, 0.5, math.Pi/2), middle[1])
	assert.Equal(t, geom.NewPose(5, 1, math.Pi/2), middle[2])
	assert.Equal(t, geom.NewPose(9, 1, 0), middle[3])
	assert.InDelta(t, 8.0, state.nodes[tr].Cost, 1e-9)
}

// scenario 6: no transition links start_segment to end_segment.
func TestInfeasibleGraphReturnsNoCandidate(t *testing.T) {
	s1 := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(5, 0)))
	s2 := course.NewSegment(geom.NewLine(geom.NewPoint(5, 1), geom.NewPoint(10, 1)))

	state := newSearchState(DefaultConfig(), s1, s2, geom.NewPoint(1, 0), geom.NewPoint(9, 1))
	middle := state.search([]*course.Segment{s1, s2})

	assert.Empty(t, middle)
}

// Curve cost (4.3.3): forward is the plain arc length, backward scales it by
// the backward-penalty factor.
func TestNodeCurveCostAppliesBackwardPenalty(t *testing.T) {
	s1 := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(5, 0)))
	s2 := course.NewSegment(geom.NewLine(geom.NewPoint(5, 1), geom.NewPoint(10, 1)))
	tr := course.NewTransition(s1, s2, geom.Polyline{geom.NewPoint(5, 0), geom.NewPoint(5, 2)})

	forward := &Node{Transition: tr, CurveForward: true}
	backward := &Node{Transition: tr, CurveForward: false}

	assert.InDelta(t, 2.0, forward.curveCost(2.5), 1e-9)
	assert.InDelta(t, 5.0, backward.curveCost(2.5), 1e-9)
}

// Direction-change term (4.3.3): a single turn adds turning_straight+turn_penalty
// once, when the effective direction flips relative to the predecessor.
func TestStraightCostSingleTurn(t *testing.T) {
	seg := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	tr := course.NewTransition(seg, seg, geom.Polyline{geom.NewPoint(5, 0), geom.NewPoint(9, 0)})
	state := newSearchState(DefaultConfig(), seg, seg, geom.NewPoint(2, 0), geom.NewPoint(0, 0))

	n := &Node{Transition: tr, CurveForward: true, NextSegment: seg}

	cost := state.straightCost(n, geom.NewPoint(5, 0), geom.NewPoint(2, 0))

	// base: backward penalty * 3 (segment_forward is false: (2,0)-(5,0) opposes
	// the segment tangent), plus one turn (prev_forward, computed from start_pt
	// to the node's entry point at (5,0), is forward and so disagrees).
	assert.InDelta(t, 2.5*3+(0.7+5.0), cost, 1e-9)
}

// Direction-change term (4.3.3): a double turn arises when the effective
// direction does not flip but the curve itself runs against it, costing
// twice the single-turn penalty.
func TestStraightCostDoubleTurn(t *testing.T) {
	seg := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	tr := course.NewTransition(seg, seg, geom.Polyline{geom.NewPoint(5, 0), geom.NewPoint(9, 0)})
	state := newSearchState(DefaultConfig(), seg, seg, geom.NewPoint(2, 0), geom.NewPoint(0, 0))

	n := &Node{Transition: tr, CurveForward: false, NextSegment: seg}

	cost := state.straightCost(n, geom.NewPoint(5, 0), geom.NewPoint(9, 0))

	assert.InDelta(t, 4.0+2*(0.7+5.0), cost, 1e-9)
}

// Arc fidelity (§8): forward emits path[1:], backward emits the reverse of
// path[:len-1].
func TestArcFidelityForwardAndBackward(t *testing.T) {
	s1 := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(5, 0)))
	s2 := course.NewSegment(geom.NewLine(geom.NewPoint(5, 1), geom.NewPoint(10, 1)))
	tr := course.NewTransition(s1, s2, geom.Polyline{
		geom.NewPoint(5, 0), geom.NewPoint(5, 0.5), geom.NewPoint(5, 1),
	})
	state := newSearchState(DefaultConfig(), s1, s2, geom.NewPoint(0, 0), geom.NewPoint(0, 0))

	forward := state.insertCurveSegment(nil, &Node{Transition: tr, CurveForward: true})
	require.Len(t, forward, 2)
	assert.Equal(t, geom.NewPoint(5, 0.5), forward[0].Pos)
	assert.Equal(t, geom.NewPoint(5, 1), forward[1].Pos)

	backward := state.insertCurveSegment(nil, &Node{Transition: tr, CurveForward: false})
	require.Len(t, backward, 2)
	assert.Equal(t, geom.NewPoint(5, 0.5), backward[0].Pos)
	assert.Equal(t, geom.NewPoint(5, 0), backward[1].Pos)
}

// Appendix concatenation (§8, §4.5).
func TestConcatenate(t *testing.T) {
	start := []geom.Pose{geom.NewPose(0, 0, 0)}
	middle := []geom.Pose{geom.NewPose(1, 0, 0)}
	end := []geom.Pose{geom.NewPose(2, 0, 0)}

	assert.Equal(t, []geom.Pose{start[0], middle[0], end[0]}, concatenate(start, middle, end))
	assert.Equal(t, middle, concatenate(nil, middle, nil))
}

// Cost monotonicity (§8): with a non-negative backward penalty >= 1 and a
// non-negative turn penalty, every cost term straightCost/curveCost can add
// is non-negative, so a relaxed successor's cost never drops below its
// predecessor's.
func TestCostTermsAreNonNegative(t *testing.T) {
	cfg := DefaultConfig()
	require.GreaterOrEqual(t, cfg.BackwardPenalty, 1.0)
	require.GreaterOrEqual(t, cfg.TurnPenalty, 0.0)
	require.GreaterOrEqual(t, cfg.TurningStraight, 0.0)

	seg := course.NewSegment(geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0)))
	tr := course.NewTransition(seg, seg, geom.Polyline{geom.NewPoint(0, 0), geom.NewPoint(1, 0)})
	state := newSearchState(cfg, seg, seg, geom.NewPoint(0, 0), geom.NewPoint(0, 0))

	n := &Node{Transition: tr, CurveForward: false, NextSegment: seg}
	assert.GreaterOrEqual(t, n.curveCost(cfg.BackwardPenalty), 0.0)
	assert.GreaterOrEqual(t, state.straightCost(n, geom.NewPoint(0, 0), geom.NewPoint(5, 0)), 0.0)
}
