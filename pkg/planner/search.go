// Package planner implements the cost-minimising search over a course graph
// of segments and transitions, and the trajectory reconstruction that turns
// the winning node chain into a dense pose sequence.
package planner

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/jfrascon/gerona/pkg/apperr"
	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
)

// closestSegmentAngularTolerance and closestSegmentDistanceTolerance are the
// fixed tolerances the planner passes to CourseProvider.FindClosestSegment
// when anchoring an appendix terminus onto the course graph.
const (
	closestSegmentAngularTolerance  = math.Pi / 8
	closestSegmentDistanceTolerance = 0.5
)

// ErrNoCandidate is returned (alongside whatever appendix-only path could
// still be assembled) when the search queue empties without any node
// reaching the end segment.
var ErrNoCandidate = errors.New("planner: no candidate reached the end segment")

// SearchState is the per-call mutable state of one findPath invocation: the
// node arena, the open set, and the best candidate found so far. It is
// never shared across concurrent calls.
type SearchState struct {
	cfg Config

	startSegment, endSegment *course.Segment
	startPt, endPt           geom.Point

	nodes map[*course.Transition]*Node
	arena []*Node
	queue *priorityQueue[*Node]

	bestPath []geom.Pose
	minCost  float64
}

func newSearchState(cfg Config, startSegment, endSegment *course.Segment, startPt, endPt geom.Point) *SearchState {
	return &SearchState{
		cfg:          cfg,
		startSegment: startSegment,
		endSegment:   endSegment,
		startPt:      startPt,
		endPt:        endPt,
		nodes:        make(map[*course.Transition]*Node),
		queue:        newPriorityQueue[*Node](),
		minCost:      math.Inf(1),
	}
}

// initNodes builds one node per transition: a transition in a segment's
// forward_transitions becomes a forward node (next segment: Target), one in
// backward_transitions a backward node (next segment: Source). Nodes are
// keyed by transition, so a transition is not given a node for the
// opposite direction of the list that holds it.
func (s *SearchState) initNodes(segments []*course.Segment) {
	for _, seg := range segments {
		for _, t := range seg.ForwardTransitions {
			s.addNode(t, true, t.Target)
		}
		for _, t := range seg.BackwardTransitions {
			s.addNode(t, false, t.Source)
		}
	}
}

func (s *SearchState) addNode(t *course.Transition, curveForward bool, nextSegment *course.Segment) {
	n := &Node{
		Index:        len(s.arena),
		Transition:   t,
		CurveForward: curveForward,
		NextSegment:  nextSegment,
		Cost:         math.Inf(1),
	}
	s.arena = append(s.arena, n)
	s.nodes[t] = n
}

// enqueueStartingNodes seeds the queue with every transition leaving
// start_segment, costed as the straight-line stretch from start_pt to the
// transition's entry point on start_segment.
func (s *SearchState) enqueueStartingNodes() {
	for _, t := range s.startSegment.ForwardTransitions {
		s.enqueueStartingNode(t)
	}
	for _, t := range s.startSegment.BackwardTransitions {
		s.enqueueStartingNode(t)
	}
}

func (s *SearchState) enqueueStartingNode(t *course.Transition) {
	n := s.nodes[t]
	n.Cost = s.straightCost(n, s.startPt, n.EntryPoint())
	n.entry = s.queue.Insert(n, n.Cost)
}

// search runs the relaxed Dijkstra main loop and returns the best
// reconstructed middle path (nil if no candidate reached end_segment).
func (s *SearchState) search(segments []*course.Segment) []geom.Pose {
	s.initNodes(segments)
	s.enqueueStartingNodes()

	for !s.queue.Empty() {
		u := s.queue.ExtractMin().Elem()
		u.entry = nil

		if u.NextSegment == s.endSegment {
			s.finalizeCandidate(u)
			continue
		}

		for _, t := range u.NextSegment.ForwardTransitions {
			s.relax(u, t)
		}
		for _, t := range u.NextSegment.BackwardTransitions {
			s.relax(u, t)
		}
	}

	return s.bestPath
}

func (s *SearchState) relax(u *Node, t *course.Transition) {
	v := s.nodes[t]

	startOnNext := s.findStartPointOnNextSegment(u)
	endOnNext := endPointOnTransition(u.CurveForward, t)
	newCost := u.Cost + u.curveCost(s.cfg.BackwardPenalty) + s.straightCost(u, startOnNext, endOnNext)

	if newCost < v.Cost {
		v.Prev = u
		u.Next = v
		v.Cost = newCost

		if v.entry != nil {
			s.queue.DecreaseKey(v.entry, newCost)
		} else {
			v.entry = s.queue.Insert(v, newCost)
		}
	}
}

// finalizeCandidate closes out a node reaching end_segment: adds the final
// straight stretch to end_pt, and if this beats the best candidate so far,
// walks the prev chain into a head-to-tail list and reconstructs it.
func (s *SearchState) finalizeCandidate(u *Node) {
	u.Cost += s.straightCost(u, s.findStartPointOnNextSegment(u), s.endPt)

	log.Printf("planner: candidate signature=%s cost=%.3f", u.Signature(), u.Cost)

	if u.Cost >= s.minCost {
		return
	}
	s.minCost = u.Cost

	var chain []*Node
	for tmp := u; tmp != nil; tmp = tmp.Prev {
		chain = append([]*Node{tmp}, chain...)
		if tmp.Prev != nil {
			tmp.Prev.Next = tmp
		}
	}

	log.Printf("planner: candidate signature=%s cost=%.3f", chain[0].Signature(), u.Cost)

	s.bestPath = s.reconstruct(chain)
}

// sameSegmentPath implements the 4.3.7 shortcut when start and end lie on
// the same segment: no search, just the two anchor poses.
func (s *SearchState) sameSegmentPath() []geom.Pose {
	return []geom.Pose{s.firstPose(), s.lastPose()}
}

// --- cost functions ---

func (s *SearchState) straightCost(u *Node, from, to geom.Point) float64 {
	segForward := s.isSegmentForward(u.NextSegment, from, to)
	dist := geom.Dist(from, to)

	cost := dist
	if !segForward {
		cost = s.cfg.BackwardPenalty * dist
	}

	switch prevForward := s.isPreviousSegmentForward(u); {
	case prevForward != segForward:
		cost += s.cfg.TurningStraight + s.cfg.TurnPenalty
	case u.CurveForward != segForward:
		cost += 2 * (s.cfg.TurningStraight + s.cfg.TurnPenalty)
	}
	return cost
}

// --- entry/exit points on segments ---

// endPointOnTransition is where the vehicle must arrive, on the segment
// preceding t, to enter arc t: t's near end if curveForward, far end
// otherwise.
func endPointOnTransition(curveForward bool, t *course.Transition) geom.Point {
	if curveForward {
		return t.Path.Front()
	}
	return t.Path.Back()
}

// startPointOnTransition is where traversing t deposits the vehicle, on
// t's far segment: t's far end if curveForward, near end otherwise.
func startPointOnTransition(curveForward bool, t *course.Transition) geom.Point {
	if curveForward {
		return t.Path.Back()
	}
	return t.Path.Front()
}

func (s *SearchState) findStartPointOnNextSegment(n *Node) geom.Point {
	if n.NextSegment == s.startSegment {
		return s.startPt
	}
	return startPointOnTransition(n.CurveForward, n.Transition)
}

func (s *SearchState) findEndPointOnNextSegment(n *Node) geom.Point {
	switch {
	case n.NextSegment == s.endSegment:
		return s.endPt
	case n.Next == nil:
		if n.CurveForward {
			return n.NextSegment.Line.End
		}
		return n.NextSegment.Line.Start
	default:
		return endPointOnTransition(n.Next.CurveForward, n.Next.Transition)
	}
}

// --- directionality helpers ---

func (s *SearchState) isSegmentForward(segment *course.Segment, from, to geom.Point) bool {
	dir := segment.Line.Direction()
	move := geom.Sub(to, from)
	if geom.Norm(move) < 0.1 {
		log.Printf("planner: effective segment size is small: %.4f", geom.Norm(move))
	}
	return geom.Dot(dir, move) >= 0
}

func (s *SearchState) isStartSegmentForward(n *Node) bool {
	return s.isSegmentForward(s.startSegment, s.startPt, n.EntryPoint())
}

func (s *SearchState) isNextSegmentForward(n *Node) bool {
	return s.isSegmentForward(n.NextSegment, s.findStartPointOnNextSegment(n), s.findEndPointOnNextSegment(n))
}

func (s *SearchState) isPreviousSegmentForward(n *Node) bool {
	if n.Prev != nil {
		return s.isNextSegmentForward(n.Prev)
	}
	return s.isStartSegmentForward(n)
}

func (s *SearchState) effectiveLengthOfNextSegment(n *Node) float64 {
	return geom.Dist(s.findStartPointOnNextSegment(n), s.findEndPointOnNextSegment(n))
}

// --- top-level planner ---

// Planner wires a course graph, a map provider, and the two appendix
// resolver strategies into the find_path operation.
type Planner struct {
	course    course.CourseProvider
	mapSource course.MapProvider
	resolvers [2]course.AppendixResolver
	cfg       Config
}

// NewPlanner builds a Planner. resolvers must hold exactly two strategies,
// tried in order: a forward-only resolver, then one that also allows
// in-place turning.
func NewPlanner(cp course.CourseProvider, mp course.MapProvider, resolvers [2]course.AppendixResolver, cfg Config) *Planner {
	return &Planner{course: cp, mapSource: mp, resolvers: resolvers, cfg: cfg}
}

// FindPath resolves start and end appendices, anchors them onto the course
// graph, and returns the concatenated start_appendix ⊕ reconstructed_middle
// ⊕ end_appendix. An empty result with a nil error never happens: failure
// is always reported through the returned error, even when the caller also
// receives a partial (appendix-only) path per the "no candidate found"
// policy below.
func (p *Planner) FindPath(ctx context.Context, start, end geom.Pose) ([]geom.Pose, error) {
	grid, err := p.mapSource.Get(ctx)
	if err != nil {
		log.Printf("planner: map unavailable: %v", err)
		return nil, apperr.WrapErrorf(err, apperr.ErrInternalServerError, "map unavailable")
	}

	startAppendix, err := p.resolveAppendix(ctx, grid, start, course.ApproachStart)
	if err != nil {
		return nil, err
	}
	if len(startAppendix) == 0 {
		log.Printf("planner: cannot connect to start without turning or with turning")
		return nil, apperr.WrapErrorf(nil, apperr.ErrNotFound, "appendix unreachable for start pose")
	}
	startAnchor := startAppendix[len(startAppendix)-1]

	startSegment, ok := p.course.FindClosestSegment(startAnchor, closestSegmentAngularTolerance, closestSegmentDistanceTolerance)
	if !ok {
		log.Printf("planner: cannot find a path for start pose %v", startAnchor.Pos)
		return nil, apperr.WrapErrorf(nil, apperr.ErrNotFound, "no closest segment for start pose")
	}
	startPt := startSegment.Line.NearestPointTo(startAnchor.Pos)

	endAppendixRaw, err := p.resolveAppendix(ctx, grid, end, course.ApproachEnd)
	if err != nil {
		return nil, err
	}
	if len(endAppendixRaw) == 0 {
		log.Printf("planner: cannot connect to end without turning or with turning")
		return nil, apperr.WrapErrorf(nil, apperr.ErrNotFound, "appendix unreachable for end pose")
	}
	endAppendix := reversePoses(endAppendixRaw)
	endAnchor := endAppendix[0]

	endSegment, ok := p.course.FindClosestSegment(endAnchor, closestSegmentAngularTolerance, closestSegmentDistanceTolerance)
	if !ok {
		log.Printf("planner: cannot find a path for end pose %v", endAnchor.Pos)
		return nil, apperr.WrapErrorf(nil, apperr.ErrNotFound, "no closest segment for end pose")
	}
	endPt := endSegment.Line.NearestPointTo(endAnchor.Pos)

	state := newSearchState(p.cfg, startSegment, endSegment, startPt, endPt)

	var middle []geom.Pose
	var searchErr error
	if startSegment == endSegment {
		middle = state.sameSegmentPath()
	} else {
		middle = state.search(p.course.Segments())
		if len(middle) == 0 {
			log.Printf("planner: search queue emptied without reaching the end segment")
			searchErr = ErrNoCandidate
		}
	}

	return concatenate(startAppendix, middle, endAppendix), searchErr
}

func (p *Planner) resolveAppendix(ctx context.Context, grid *course.OccupancyGrid, pose geom.Pose, role course.ApproachRole) ([]geom.Pose, error) {
	for _, resolver := range p.resolvers {
		poses, err := resolver.Resolve(ctx, grid, pose, role)
		if err != nil {
			return nil, apperr.WrapErrorf(err, apperr.ErrInternalServerError, "appendix resolver failed")
		}
		if len(poses) > 0 {
			return poses, nil
		}
	}
	return nil, nil
}

func reversePoses(poses []geom.Pose) []geom.Pose {
	out := make([]geom.Pose, len(poses))
	for i, p := range poses {
		out[len(poses)-1-i] = p
	}
	return out
}

// concatenate implements 4.5: start ⊕ middle ⊕ end, returning middle
// unchanged when both appendices are empty.
func concatenate(start, middle, end []geom.Pose) []geom.Pose {
	if len(start) == 0 && len(end) == 0 {
		return middle
	}
	out := make([]geom.Pose, 0, len(start)+len(middle)+len(end))
	out = append(out, start...)
	out = append(out, middle...)
	out = append(out, end...)
	return out
}
