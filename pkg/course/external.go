package course

import (
	"context"

	"github.com/jfrascon/gerona/pkg/geom"
)

// OccupancyGrid is the planar occupancy grid the appendix resolvers plan
// over: Cells is row-major, Resolution is the metres-per-cell edge length,
// and Origin is the world position of cell (0,0).
type OccupancyGrid struct {
	Cells      []int8
	Width      int
	Height     int
	Resolution float64
	Origin     geom.Point
}

// At returns the occupancy value of the cell at (col, row), or -1 (unknown)
// if out of bounds.
func (g *OccupancyGrid) At(col, row int) int8 {
	if col < 0 || row < 0 || col >= g.Width || row >= g.Height {
		return -1
	}
	return g.Cells[row*g.Width+col]
}

// MapProvider supplies the occupancy grid the appendix resolvers search.
// Fetching the grid is allowed to fail -- the map service backing it may be
// temporarily unavailable -- which the planner surfaces as a "map
// unavailable" error carrying apperr.ErrInternalServerError.
type MapProvider interface {
	Get(ctx context.Context) (*OccupancyGrid, error)
}

// CourseProvider is the course graph a search runs over, plus the
// nearest-segment lookup used to enter and leave it.
type CourseProvider interface {
	// Segments returns every segment of the course graph.
	Segments() []*Segment

	// FindClosestSegment returns the segment whose line pose is the closest
	// admissible match for pose: the orthogonal projection of pose.Pos onto
	// the segment's line must fall within distanceTolerance, and the
	// segment's undirected orientation must fall within angularTolerance of
	// pose.Theta. Candidates are tried in increasing distance order; the
	// first that passes both tests is returned. ok is false if no segment
	// passes.
	FindClosestSegment(pose geom.Pose, angularTolerance, distanceTolerance float64) (segment *Segment, ok bool)
}

// ApproachRole distinguishes the two ends of a requested path: the
// appendix that gets the vehicle from its actual start pose onto the
// course graph, and the one that gets it from the graph to its actual end
// pose.
type ApproachRole int

const (
	// ApproachStart is the appendix leading the vehicle onto the course
	// graph from its requested start pose.
	ApproachStart ApproachRole = iota
	// ApproachEnd is the appendix leading the vehicle off the course graph
	// onto its requested end pose.
	ApproachEnd
)

// AppendixResolver computes the short free-space stretch ("appendix")
// connecting an arbitrary pose to the course graph. Two strategies are
// tried in order by the planner -- a forward-only resolver first, then one
// that also allows turning maneuvers -- so an implementation should return
// a definite "no path" result (nil, nil) rather than an error when it
// simply could not find one; error is reserved for resolver-internal
// failure.
type AppendixResolver interface {
	Resolve(ctx context.Context, grid *OccupancyGrid, pose geom.Pose, role ApproachRole) ([]geom.Pose, error)
}
