package course

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/jfrascon/gerona/pkg/util"
)

// rtreeDimension is the dimensionality of the spatial index: planar x, y.
const rtreeDimension = 2

// closestSegmentCandidates is how many nearest bounding boxes are pulled
// from the index before the exact projection/tolerance test narrows them
// down to one. A handful is plenty -- segments rarely overlap heavily
// enough for the true closest line to sit outside the first few boxes.
const closestSegmentCandidates = 8

// Graph is a CourseProvider backed by an rtreego spatial index over segment
// bounding boxes, so FindClosestSegment does not have to scan every
// segment of a large course.
type Graph struct {
	segments []*Segment
	index    *rtreego.Rtree
}

// segmentLeaf adapts a *Segment to rtreego.Spatial.
type segmentLeaf struct {
	segment *Segment
	rect    rtreego.Rect
}

func (l *segmentLeaf) Bounds() rtreego.Rect {
	return l.rect
}

func segmentRect(s *Segment) rtreego.Rect {
	minX := math.Min(s.Line.Start.X, s.Line.End.X)
	minY := math.Min(s.Line.Start.Y, s.Line.End.Y)
	maxX := math.Max(s.Line.Start.X, s.Line.End.X)
	maxY := math.Max(s.Line.Start.Y, s.Line.End.Y)

	// rtreego rejects zero-length sides, so pad a degenerate (point-like)
	// segment out to a tiny box.
	const epsilon = 1e-6
	if maxX-minX < epsilon {
		maxX = minX + epsilon
	}
	if maxY-minY < epsilon {
		maxY = minY + epsilon
	}

	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
	if err != nil {
		// NewRect only fails on non-positive lengths, which the padding
		// above rules out.
		panic(err)
	}
	return rect
}

// NewGraph builds a Graph indexing segments for nearest-segment lookup.
func NewGraph(segments []*Segment) *Graph {
	index := rtreego.NewTree(rtreeDimension, 2, 5)
	for _, s := range segments {
		index.Insert(&segmentLeaf{segment: s, rect: segmentRect(s)})
	}
	return &Graph{segments: segments, index: index}
}

// Segments returns every segment of the graph.
func (g *Graph) Segments() []*Segment {
	return g.segments
}

// FindClosestSegment implements CourseProvider.FindClosestSegment.
func (g *Graph) FindClosestSegment(pose geom.Pose, angularTolerance, distanceTolerance float64) (*Segment, bool) {
	if len(g.segments) == 0 {
		return nil, false
	}

	k := closestSegmentCandidates
	if k > len(g.segments) {
		k = len(g.segments)
	}
	neighbors := g.index.NearestNeighbors(k, rtreego.Point{pose.Pos.X, pose.Pos.Y})

	type candidate struct {
		segment *Segment
		dist    float64
	}
	candidates := make([]candidate, 0, len(neighbors))
	for _, n := range neighbors {
		leaf := n.(*segmentLeaf)
		proj := leaf.segment.Line.NearestPointTo(pose.Pos)
		candidates = append(candidates, candidate{segment: leaf.segment, dist: geom.Dist(pose.Pos, proj)})
	}

	candidates = util.QuickSortG(candidates, func(a, b candidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})

	for _, c := range candidates {
		if c.dist > distanceTolerance {
			continue
		}
		if angularDistanceUndirected(c.segment.Line.Yaw(), pose.Theta) > angularTolerance {
			continue
		}
		return c.segment, true
	}
	return nil, false
}

// angularDistanceUndirected returns the smallest angle between a and b
// treating both as undirected lines (a segment can be driven in either
// direction), so a heading exactly opposite the line's tangent still
// counts as aligned.
func angularDistanceUndirected(a, b float64) float64 {
	d := math.Mod(a-b, math.Pi)
	if d < 0 {
		d += math.Pi
	}
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}
