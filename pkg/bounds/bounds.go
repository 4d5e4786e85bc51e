// Package bounds tracks the valid coordinate extent of augmentable data.
//
// A Bounds is an ordered list of per-axis intervals describing the region an
// item's data can address. Coordinates are continuous and zero-based, matching
// the Go image.Rectangle convention: an interval [lo, hi) has Length hi-lo.
// Bounds values are never mutated in place; every operation returns a fresh
// value so an item and its bounds can be swapped atomically.
package bounds

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Interval is the extent of one axis.
type Interval struct {
	Lo, Hi float64
}

// Length returns the extent of the interval.
func (iv Interval) Length() float64 {
	return iv.Hi - iv.Lo
}

// Bounds is an axis-aligned N-dimensional extent, one interval per axis.
// Axis 0 is X (width), axis 1 is Y (height).
type Bounds []Interval

// New creates a Bounds from per-axis intervals.
func New(intervals ...Interval) Bounds {
	return Bounds(intervals)
}

// FromSizes creates a zero-based Bounds with the given per-axis lengths.
func FromSizes(sizes ...float64) Bounds {
	b := make(Bounds, len(sizes))
	for i, s := range sizes {
		b[i] = Interval{0, s}
	}
	return b
}

// FromRect converts an image rectangle to a 2D Bounds.
func FromRect(r image.Rectangle) Bounds {
	return Bounds{
		{float64(r.Min.X), float64(r.Max.X)},
		{float64(r.Min.Y), float64(r.Max.Y)},
	}
}

// Dims returns the number of axes.
func (b Bounds) Dims() int {
	return len(b)
}

// Lengths returns the per-axis extents.
func (b Bounds) Lengths() []float64 {
	ls := make([]float64, len(b))
	for i, iv := range b {
		ls[i] = iv.Length()
	}
	return ls
}

// Min returns the minimum corner of a 2D bounds.
func (b Bounds) Min() Point {
	return Point{b[0].Lo, b[1].Lo}
}

// Center returns the midpoint of a 2D bounds.
func (b Bounds) Center() Point {
	return Point{(b[0].Lo + b[0].Hi) / 2, (b[1].Lo + b[1].Hi) / 2}
}

// Corners returns the four corners of a 2D bounds in clockwise order
// starting from the minimum corner.
func (b Bounds) Corners() []Point {
	return []Point{
		{b[0].Lo, b[1].Lo},
		{b[0].Hi, b[1].Lo},
		{b[0].Hi, b[1].Hi},
		{b[0].Lo, b[1].Hi},
	}
}

// Rect converts a 2D bounds to an image rectangle, rounding each edge to the
// nearest integer.
func (b Bounds) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(b[0].Lo)), int(math.Round(b[1].Lo)),
		int(math.Round(b[0].Hi)), int(math.Round(b[1].Hi)),
	)
}

// Clone returns a copy that shares no storage with b.
func (b Bounds) Clone() Bounds {
	out := make(Bounds, len(b))
	copy(out, b)
	return out
}

// Equal reports whether two bounds have the same axes within tol.
func (b Bounds) Equal(o Bounds, tol float64) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if math.Abs(b[i].Lo-o[i].Lo) > tol || math.Abs(b[i].Hi-o[i].Hi) > tol {
			return false
		}
	}
	return true
}

// String formats the bounds as [lo,hi)x[lo,hi)...
func (b Bounds) String() string {
	parts := make([]string, len(b))
	for i, iv := range b {
		parts[i] = fmt.Sprintf("[%g,%g)", iv.Lo, iv.Hi)
	}
	return strings.Join(parts, "x")
}

// Enclose returns the minimal bounds containing all of the given points.
func Enclose(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{{0, 0}, {0, 0}}
	}
	b := Bounds{{pts[0].X, pts[0].X}, {pts[0].Y, pts[0].Y}}
	for _, p := range pts[1:] {
		b[0].Lo = math.Min(b[0].Lo, p.X)
		b[0].Hi = math.Max(b[0].Hi, p.X)
		b[1].Lo = math.Min(b[1].Lo, p.Y)
		b[1].Hi = math.Max(b[1].Hi, p.Y)
	}
	return b
}

// OffsetCrop returns a window of exactly target lengths positioned inside (or,
// when the target exceeds the current extent, around) b. offsets gives the
// fractional placement of the remaining slack per axis: 0 aligns the window
// with the minimum edge, 0.5 centers it, 1 aligns with the maximum edge.
//
// When every target length equals the current extent the input bounds are
// returned unchanged, so no-op crops introduce no floating point drift.
// Window edges are rounded doubles, so the stored extent can differ from the
// target by up to one ulp of the edge coordinates.
func OffsetCrop(target []float64, b Bounds, offsets []float64) (Bounds, error) {
	if len(target) != len(b) || len(offsets) != len(b) {
		return nil, fmt.Errorf("bounds: offset crop with %d target axes and %d offsets on %d-dimensional bounds",
			len(target), len(offsets), len(b))
	}
	noop := true
	for i, t := range target {
		if t <= 0 {
			return nil, fmt.Errorf("bounds: non-positive crop target %g on axis %d", t, i)
		}
		if t != b[i].Length() {
			noop = false
		}
	}
	if noop {
		return b, nil
	}
	out := make(Bounds, len(b))
	for i, t := range target {
		slack := b[i].Length() - t
		lo := b[i].Lo + offsets[i]*slack
		hi := lo + t
		// Re-derive the low edge from the high one; Hi-Lo then matches
		// the target even when lo itself is not representable.
		out[i] = Interval{hi - t, hi}
	}
	return out, nil
}
