package geom_test

import (
	"math"
	"testing"

	"github.com/jfrascon/gerona/pkg/geom"
	"github.com/stretchr/testify/assert"
)

func TestLineNearestPointTo(t *testing.T) {
	line := geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(10, 0))

	got := line.NearestPointTo(geom.NewPoint(4, 3))

	assert.InDelta(t, 4.0, got.X, 1e-9)
	assert.InDelta(t, 0.0, got.Y, 1e-9)
}

func TestLineYaw(t *testing.T) {
	line := geom.NewLine(geom.NewPoint(0, 0), geom.NewPoint(0, 5))

	assert.InDelta(t, math.Pi/2, line.Yaw(), 1e-9)
}

func TestPolylineArcLength(t *testing.T) {
	pl := geom.Polyline{geom.NewPoint(0, 0), geom.NewPoint(3, 0), geom.NewPoint(3, 4)}

	assert.InDelta(t, 7.0, pl.ArcLength(), 1e-9)
	assert.Equal(t, geom.NewPoint(0, 0), pl.Front())
	assert.Equal(t, geom.NewPoint(3, 4), pl.Back())
}

func TestDotAndNorm(t *testing.T) {
	a := geom.NewPoint(3, 4)

	assert.InDelta(t, 5.0, geom.Norm(a), 1e-9)
	assert.InDelta(t, 25.0, geom.Dot(a, a), 1e-9)
}
