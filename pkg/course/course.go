// Package course holds the course graph the planner searches: segments
// (straight stretches of the drivable line) linked by transitions (the
// curved stretches connecting one segment to the next), plus a spatial
// index used to snap an arbitrary pose onto the network.
package course

import (
	"github.com/jfrascon/gerona/pkg/geom"
)

// Segment is a straight stretch of the course. ForwardTransitions and
// BackwardTransitions are the ordered lists of transitions a vehicle
// travelling the segment in its forward (Line.Start->Line.End) or backward
// direction can take onto the next segment.
type Segment struct {
	Line                geom.Line
	ForwardTransitions  []*Transition
	BackwardTransitions []*Transition
}

// NewSegment builds a Segment over line with no transitions yet. Transitions
// are attached afterwards with AddForwardTransition/AddBackwardTransition,
// since a transition's Source and Target segments must already exist.
func NewSegment(line geom.Line) *Segment {
	return &Segment{Line: line}
}

// AddForwardTransition appends t to the segment's forward transition list.
func (s *Segment) AddForwardTransition(t *Transition) {
	s.ForwardTransitions = append(s.ForwardTransitions, t)
}

// AddBackwardTransition appends t to the segment's backward transition list.
func (s *Segment) AddBackwardTransition(t *Transition) {
	s.BackwardTransitions = append(s.BackwardTransitions, t)
}

// Transition is the curved stretch of course connecting Source to Target.
// Path is the sampled polyline of the arc, always ordered from Source's side
// to Target's side.
type Transition struct {
	Source *Segment
	Target *Segment
	Path   geom.Polyline
}

// NewTransition builds a Transition between source and target over path.
// path must contain at least two points.
func NewTransition(source, target *Segment, path geom.Polyline) *Transition {
	return &Transition{Source: source, Target: target, Path: path}
}

// ArcLength is the transition's arc length, the sum of consecutive
// point-to-point distances along Path. Computed on demand rather than
// cached, mirroring how the reference planner calls transition->arc_length()
// as a plain accessor at each use site.
func (t *Transition) ArcLength() float64 {
	return t.Path.ArcLength()
}

// StartPoint is the transition's first path point, on Source's line.
func (t *Transition) StartPoint() geom.Point {
	return t.Path.Front()
}

// EndPoint is the transition's last path point, on Target's line.
func (t *Transition) EndPoint() geom.Point {
	return t.Path.Back()
}
