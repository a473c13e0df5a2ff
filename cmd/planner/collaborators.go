package main

import (
	"context"

	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
)

// staticMapProvider serves a single occupancy grid fixed at startup, for a
// binary with no live map service to hit.
type staticMapProvider struct {
	grid *course.OccupancyGrid
}

func (p *staticMapProvider) Get(ctx context.Context) (*course.OccupancyGrid, error) {
	return p.grid, nil
}

// emptyOccupancyGrid returns a grid with every cell free, for a deployment
// with no obstacle map of its own.
func emptyOccupancyGrid(width, height int, resolution float64, origin geom.Point) *course.OccupancyGrid {
	return &course.OccupancyGrid{
		Cells:      make([]int8, width*height),
		Width:      width,
		Height:     height,
		Resolution: resolution,
		Origin:     origin,
	}
}

// alignedApproachResolver is the forward-only strategy: it succeeds only
// when pose already sits within the course graph's own snap tolerances, i.e.
// no appendix maneuver is needed at all. It never inspects grid, since by
// construction it never drives through free space.
type alignedApproachResolver struct {
	course            course.CourseProvider
	angularTolerance  float64
	distanceTolerance float64
}

func (r *alignedApproachResolver) Resolve(ctx context.Context, grid *course.OccupancyGrid, pose geom.Pose, role course.ApproachRole) ([]geom.Pose, error) {
	if _, ok := r.course.FindClosestSegment(pose, r.angularTolerance, r.distanceTolerance); ok {
		return []geom.Pose{pose}, nil
	}
	return nil, nil
}

// directApproachResolver is the turning-allowed fallback: it always
// succeeds, connecting pose to itself. A real deployment replaces this with
// a grid-based Reeds-Shepp/A* expansion through the occupancy grid -- out of
// scope here per the course-constrained-search specification's own
// non-goals -- but the planner must still receive *some* terminus to anchor
// the search on, so the identity appendix is the honest placeholder: zero
// length, always reachable, no claim of obstacle avoidance.
type directApproachResolver struct{}

func (directApproachResolver) Resolve(ctx context.Context, grid *course.OccupancyGrid, pose geom.Pose, role course.ApproachRole) ([]geom.Pose, error) {
	return []geom.Pose{pose}, nil
}
