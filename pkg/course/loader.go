package course

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jfrascon/gerona/pkg/geom"
)

// segmentSpec and transitionSpec are the on-disk JSON shape of a course
// graph.
type segmentSpec struct {
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`
}

// OnSegment selects which of the two endpoint segments the transition is
// registered against: "source" makes it a forward transition of Source,
// "target" makes it a backward transition of Target. A transition usable in
// both directions needs two entries, one per direction, since each Node
// carries a fixed curve_forward flag for its whole lifetime.
type transitionSpec struct {
	Source    int          `json:"source"`
	Target    int          `json:"target"`
	Path      [][2]float64 `json:"path"`
	OnSegment string       `json:"on_segment"`
}

type courseSpec struct {
	Segments    []segmentSpec    `json:"segments"`
	Transitions []transitionSpec `json:"transitions"`
}

// LoadSegments decodes a course graph from JSON, returning the segment slice
// ready to hand to NewGraph.
func LoadSegments(r io.Reader) ([]*Segment, error) {
	var spec courseSpec
	if err := json.NewDecoder(r).Decode(&spec); err != nil {
		return nil, fmt.Errorf("course: decode: %w", err)
	}

	segments := make([]*Segment, len(spec.Segments))
	for i, s := range spec.Segments {
		segments[i] = NewSegment(geom.NewLine(
			geom.NewPoint(s.Start[0], s.Start[1]),
			geom.NewPoint(s.End[0], s.End[1]),
		))
	}

	for i, t := range spec.Transitions {
		if t.Source < 0 || t.Source >= len(segments) || t.Target < 0 || t.Target >= len(segments) {
			return nil, fmt.Errorf("course: transition %d references an out-of-range segment", i)
		}
		if len(t.Path) < 2 {
			return nil, fmt.Errorf("course: transition %d has fewer than two path points", i)
		}

		path := make(geom.Polyline, len(t.Path))
		for j, p := range t.Path {
			path[j] = geom.NewPoint(p[0], p[1])
		}

		transition := NewTransition(segments[t.Source], segments[t.Target], path)

		switch t.OnSegment {
		case "source", "":
			segments[t.Source].AddForwardTransition(transition)
		case "target":
			segments[t.Target].AddBackwardTransition(transition)
		default:
			return nil, fmt.Errorf("course: transition %d has invalid on_segment %q", i, t.OnSegment)
		}
	}

	return segments, nil
}

// LoadSegmentsFile opens path and decodes it with LoadSegments.
func LoadSegmentsFile(path string) ([]*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("course: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadSegments(f)
}
