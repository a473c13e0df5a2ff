package main

import (
	"context"
	"log"

	"github.com/jfrascon/gerona/pkg/cache"
	"github.com/jfrascon/gerona/pkg/geom"
)

// pathFinder is the subset of *planner.Planner cachingPlanner wraps.
type pathFinder interface {
	FindPath(ctx context.Context, start, end geom.Pose) ([]geom.Pose, error)
}

// cachingPlanner checks the result cache before delegating to the
// underlying planner, and fills it on a successful search. A cache miss is
// not an error -- it just means the search runs. Any other cache failure,
// on Get or Put, is logged and never returned to the caller; the search
// result is returned as if there were no cache.
type cachingPlanner struct {
	finder pathFinder
	cache  *cache.Cache
}

func (p *cachingPlanner) FindPath(ctx context.Context, start, end geom.Pose) ([]geom.Pose, error) {
	if cached, err := p.cache.Get(ctx, start, end); err == nil {
		return cached, nil
	} else if err != cache.ErrNotFound {
		log.Printf("planner: cache get failed: %v", err)
	}

	path, err := p.finder.FindPath(ctx, start, end)
	if err != nil {
		return path, err
	}

	if err := p.cache.Put(ctx, start, end, path); err != nil {
		log.Printf("planner: cache put failed: %v", err)
	}
	return path, nil
}
