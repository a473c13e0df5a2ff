package planner

import (
	"fmt"

	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
)

// Node is the search-space vertex: one directed traversal of a transition.
// Index is its stable arena identity (its position in SearchState.arena).
// The priority queue orders by Cost alone and does not read Index, so the
// extraction order of two nodes with equal cost is not defined; both stay
// queued, since heap entries are held by pointer.
type Node struct {
	Index int

	Transition   *course.Transition
	CurveForward bool
	NextSegment  *course.Segment

	Cost float64
	Prev *Node
	Next *Node

	entry *Entry[*Node]
}

// EntryPoint is where the vehicle enters this node's transition arc: the
// arc's first point (on Source) if driven forward, its last (on Target) if
// driven backward.
func (n *Node) EntryPoint() geom.Point {
	if n.CurveForward {
		return n.Transition.StartPoint()
	}
	return n.Transition.EndPoint()
}

// ExitPoint is where the transition arc deposits the vehicle: its last
// point if driven forward, its first if driven backward.
func (n *Node) ExitPoint() geom.Point {
	if n.CurveForward {
		return n.Transition.EndPoint()
	}
	return n.Transition.StartPoint()
}

// curveCost is the cost of traversing n's transition arc: the arc length,
// scaled by backwardPenalty when driven backward.
func (n *Node) curveCost(backwardPenalty float64) float64 {
	if n.CurveForward {
		return n.Transition.ArcLength()
	}
	return backwardPenalty * n.Transition.ArcLength()
}

// Signature renders a debug string describing the candidate's turn pattern:
// one symbol per node, '>' for a forward arc traversal, '<' for backward.
// It carries no weight in cost or path selection -- a logging aid only.
func (n *Node) Signature() string {
	sig := ""
	for cur := n; cur != nil; cur = cur.Next {
		if cur.CurveForward {
			sig += ">"
		} else {
			sig += "<"
		}
	}
	return sig
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(curveForward=%v, cost=%.3f)", n.CurveForward, n.Cost)
}
