// Package geom holds the planar geometry primitives the course planner is
// built on: points, poses, straight lines with nearest-point projection, and
// the polylines used to represent transition arcs.
//
// All quantities are planar world coordinates (metres) and radians, never
// latitude/longitude: this package uses github.com/golang/geo/r2 for plain
// Cartesian points, the sibling of the spherical s2 package.
package geom

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a planar point in world coordinates.
type Point = r2.Point

// NewPoint builds a Point from its coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns a+b.
func Add(a, b Point) Point {
	return Point{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a-b.
func Sub(a, b Point) Point {
	return Point{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns p scaled by s.
func Scale(p Point, s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of a and b.
func Dot(a, b Point) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Norm returns the Euclidean length of p.
func Norm(p Point) float64 {
	return math.Hypot(p.X, p.Y)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Point) float64 {
	return Norm(Sub(a, b))
}

// Unit returns p scaled to unit length. Returns the zero point if p is the
// zero vector.
func Unit(p Point) Point {
	n := Norm(p)
	if n == 0 {
		return Point{}
	}
	return Scale(p, 1/n)
}

// Yaw returns atan2(p.Y, p.X), the heading of vector p.
func Yaw(p Point) float64 {
	return math.Atan2(p.Y, p.X)
}

// Pose is a planar position plus orientation, in radians.
type Pose struct {
	Pos   Point
	Theta float64
}

// NewPose builds a Pose from explicit coordinates.
func NewPose(x, y, theta float64) Pose {
	return Pose{Pos: Point{X: x, Y: y}, Theta: theta}
}
