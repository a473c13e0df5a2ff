package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jfrascon/gerona/pkg/cache"
	"github.com/jfrascon/gerona/pkg/config"
	"github.com/jfrascon/gerona/pkg/course"
	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/jfrascon/gerona/pkg/planner"
	"github.com/jfrascon/gerona/pkg/server/rest"
)

var courseFile = flag.String("course", "course.json", "course graph file, JSON segments+transitions")

func main() {
	cfg := config.FromFlags()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	segments, err := course.LoadSegmentsFile(*courseFile)
	if err != nil {
		log.Fatal(err)
	}
	graph := course.NewGraph(segments)

	grid := emptyOccupancyGrid(1, 1, 1.0, geom.NewPoint(0, 0))
	mapSource := &staticMapProvider{grid: grid}

	// The aligned resolver reuses the same closest-segment tolerances the
	// planner itself anchors appendices with, so a pose already on the
	// course graph never falls through to the turning-allowed fallback.
	resolvers := [2]course.AppendixResolver{
		&alignedApproachResolver{course: graph, angularTolerance: math.Pi / 8, distanceTolerance: 0.5},
		directApproachResolver{},
	}

	opts := badger.DefaultOptions(cfg.DBPath)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	resultCache := cache.New(db, cfg.CacheTTL)
	defer resultCache.Close()

	p := planner.NewPlanner(graph, mapSource, resolvers, cfg.PlannerConfig())
	finder := &cachingPlanner{finder: p, cache: resultCache}

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)
	r := rest.Router(finder, m, cfg.UseRateLimit)

	fmt.Printf("\ncourse-constrained path planner ready\n")
	fmt.Printf("server started at %s\n", cfg.ListenAddr)

	log.Fatal(http.ListenAndServe(cfg.ListenAddr, r))
}
