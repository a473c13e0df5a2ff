package planner

import (
	"math"

	"github.com/jfrascon/gerona/pkg/geom"
)

// epsilon mirrors std::numeric_limits<double>::epsilon(), the threshold
// below which an "effective segment length" is treated as zero.
const epsilon = 2.220446049250313e-16

// reconstruct converts a head-to-tail node chain into a dense pose
// sequence: the segment endpoints, the transition arc samples (possibly
// reversed), and the short straight maneuvers a direction change forces.
func (s *SearchState) reconstruct(chain []*Node) []geom.Pose {
	out := make([]geom.Pose, 0, len(chain)*4+2)
	out = append(out, s.firstPose())

	segForward := s.isStartSegmentForward(chain[0])

	for _, u := range chain {
		if s.effectiveLengthOfNextSegment(u) < epsilon {
			out = s.insertCurveSegment(out, u)
			continue
		}

		nextForward := s.isNextSegmentForward(u)

		switch {
		case nextForward == segForward && u.CurveForward == nextForward:
			out = s.insertCurveSegment(out, u)

		case nextForward == segForward:
			// Double turn: the effective direction is unchanged but the arc
			// runs against it, so the vehicle must pivot twice.
			var stub geom.Point
			if u.CurveForward {
				stub = u.Transition.Path.Front()
			} else {
				stub = u.Transition.Path.Back()
			}
			out = s.extendWithStraightTurningSegment(out, stub)
			out = s.insertCurveSegment(out, u)
			if u.CurveForward {
				out = s.extendAlongTargetSegment(out, u)
			} else {
				out = s.extendAlongSourceSegment(out, u)
			}

		case segForward && u.CurveForward:
			out = s.insertCurveSegment(out, u)
			out = s.extendAlongTargetSegment(out, u)

		case segForward:
			out = s.extendAlongTargetSegment(out, u)
			out = s.insertCurveSegment(out, u)

		case u.CurveForward:
			out = s.extendAlongSourceSegment(out, u)
			out = s.insertCurveSegment(out, u)

		default:
			out = s.insertCurveSegment(out, u)
			out = s.extendAlongSourceSegment(out, u)
		}

		segForward = nextForward
	}

	out = append(out, s.lastPose())
	return out
}

func (s *SearchState) firstPose() geom.Pose {
	return geom.Pose{Pos: s.startPt, Theta: s.startSegment.Line.Yaw()}
}

func (s *SearchState) lastPose() geom.Pose {
	return geom.Pose{Pos: s.endPt, Theta: s.endSegment.Line.Yaw()}
}

// insertCurveSegment emits a transition's arc: path[1..] in traversal order
// when driven forward, the reverse when driven backward, each pose oriented
// along the local chord.
func (s *SearchState) insertCurveSegment(out []geom.Pose, u *Node) []geom.Pose {
	path := u.Transition.Path
	if u.CurveForward {
		for j := 1; j < len(path); j++ {
			delta := geom.Sub(path[j], path[j-1])
			out = append(out, geom.Pose{Pos: path[j], Theta: geom.Yaw(delta)})
		}
	} else {
		for j := len(path) - 2; j >= 0; j-- {
			delta := geom.Sub(path[j], path[j+1])
			out = append(out, geom.Pose{Pos: path[j], Theta: geom.Yaw(delta)})
		}
	}
	return out
}

// extendAlongTargetSegment emits one pose past the arc's end, offset along
// the target segment's tangent by the turning-stub length.
func (s *SearchState) extendAlongTargetSegment(out []geom.Pose, u *Node) []geom.Pose {
	yaw := u.Transition.Target.Line.Yaw()
	pt := geom.Add(u.Transition.Path.Back(), rotateByYaw(s.cfg.TurningStraight, yaw))
	return append(out, geom.Pose{Pos: pt, Theta: yaw})
}

// extendAlongSourceSegment emits one pose before the arc's start, offset
// along the source segment's reversed tangent by the turning-stub length.
func (s *SearchState) extendAlongSourceSegment(out []geom.Pose, u *Node) []geom.Pose {
	yaw := u.Transition.Source.Line.Yaw() + math.Pi
	pt := geom.Add(u.Transition.Path.Front(), rotateByYaw(s.cfg.TurningStraight, yaw))
	return append(out, geom.Pose{Pos: pt, Theta: yaw})
}

// extendWithStraightTurningSegment emits the pivot stub used on a double
// turn: target plus one stub-length step past it, oriented toward target.
func (s *SearchState) extendWithStraightTurningSegment(out []geom.Pose, target geom.Point) []geom.Pose {
	prev := out[len(out)-1].Pos
	dir := geom.Sub(target, prev)
	pos := geom.Add(target, geom.Scale(geom.Unit(dir), s.cfg.TurningStraight))
	return append(out, geom.Pose{Pos: pos, Theta: geom.Yaw(dir)})
}

func rotateByYaw(length, yaw float64) geom.Point {
	return geom.NewPoint(length*math.Cos(yaw), length*math.Sin(yaw))
}
