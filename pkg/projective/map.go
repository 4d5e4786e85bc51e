// Package projective provides the composable 2D geometric map used by the
// augmentation engine.
//
// A Map pairs a forward affine transform with its inverse so that composition
// and bounds back-projection never need to re-invert. The matrix
// representation is golang.org/x/image/math/f64.Aff3, which is what the
// x/image resampler consumes directly.
package projective

import (
	"fmt"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/menta2k/augment/pkg/bounds"
)

// Map is an immutable, invertible coordinate transform. The zero value is not
// valid; use Identity or one of the constructors.
type Map struct {
	fwd, inv f64.Aff3
}

// Identity returns the map that leaves every point unchanged.
func Identity() Map {
	id := f64.Aff3{1, 0, 0, 0, 1, 0}
	return Map{fwd: id, inv: id}
}

// FromAff3 builds a Map from a forward affine matrix, computing its inverse.
// It fails if the matrix is singular.
func FromAff3(m f64.Aff3) (Map, error) {
	inv, ok := invert(m)
	if !ok {
		return Map{}, fmt.Errorf("projective: singular matrix %v", m)
	}
	return Map{fwd: m, inv: inv}, nil
}

// Translation returns the map shifting points by (dx, dy).
func Translation(dx, dy float64) Map {
	return Map{
		fwd: f64.Aff3{1, 0, dx, 0, 1, dy},
		inv: f64.Aff3{1, 0, -dx, 0, 1, -dy},
	}
}

// Scaling returns the map scaling points about the origin. Both factors must
// be non-zero; callers validate target sizes before constructing maps.
func Scaling(sx, sy float64) Map {
	return Map{
		fwd: f64.Aff3{sx, 0, 0, 0, sy, 0},
		inv: f64.Aff3{1 / sx, 0, 0, 0, 1 / sy, 0},
	}
}

// Rotation returns the map rotating points about the origin by the given
// angle in radians.
func Rotation(radians float64) Map {
	sin, cos := math.Sincos(radians)
	return Map{
		fwd: f64.Aff3{cos, -sin, 0, sin, cos, 0},
		inv: f64.Aff3{cos, sin, 0, -sin, cos, 0},
	}
}

// Reflection returns the map reflecting points so that Reflection(180)
// flips the X axis and Reflection(90) flips the Y axis. The matrix entries
// are rounded to 12 decimal digits to cancel trigonometric artifacts, which
// keeps double application an exact involution for the axis flips.
func Reflection(degrees float64) Map {
	sin, cos := math.Sincos(2 * degrees * math.Pi / 180)
	a, b := round12(-cos), round12(sin)
	// The matrix is symmetric and self-inverse.
	m := f64.Aff3{a, b, 0, b, -a, 0}
	return Map{fwd: m, inv: m}
}

// About conjugates m with a translation so its effect is anchored at c
// instead of the origin: translate c to the origin, apply m, translate back.
func (m Map) About(c bounds.Point) Map {
	return Translation(c.X, c.Y).Mul(m).Mul(Translation(-c.X, -c.Y))
}

// Mul composes two maps: the returned map applies n first, then m.
// Composition is associative but not commutative.
func (m Map) Mul(n Map) Map {
	return Map{
		fwd: mul(m.fwd, n.fwd),
		inv: mul(n.inv, m.inv),
	}
}

// Inverse returns the map undoing m.
func (m Map) Inverse() Map {
	return Map{fwd: m.inv, inv: m.fwd}
}

// Apply maps a point through the forward transform.
func (m Map) Apply(p bounds.Point) bounds.Point {
	return bounds.Point{
		X: m.fwd[0]*p.X + m.fwd[1]*p.Y + m.fwd[2],
		Y: m.fwd[3]*p.X + m.fwd[4]*p.Y + m.fwd[5],
	}
}

// Aff3 returns the forward matrix in the x/image representation.
func (m Map) Aff3() f64.Aff3 {
	return m.fwd
}

// IsIdentity reports whether m is exactly the identity map.
func (m Map) IsIdentity() bool {
	return m.fwd == f64.Aff3{1, 0, 0, 0, 1, 0}
}

// String formats the forward matrix rows.
func (m Map) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g]",
		m.fwd[0], m.fwd[1], m.fwd[2], m.fwd[3], m.fwd[4], m.fwd[5])
}

// TransformBounds maps every corner of a 2D bounds through m and returns the
// minimal enclosing bounds. It fails for bounds of any other dimensionality,
// since the map is strictly two-dimensional.
func TransformBounds(m Map, b bounds.Bounds) (bounds.Bounds, error) {
	if b.Dims() != 2 {
		return nil, fmt.Errorf("projective: cannot transform %d-dimensional bounds with a 2D map", b.Dims())
	}
	corners := b.Corners()
	mapped := make([]bounds.Point, len(corners))
	for i, c := range corners {
		mapped[i] = m.Apply(c)
	}
	return bounds.Enclose(mapped), nil
}

func mul(a, b f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		a[0]*b[0] + a[1]*b[3], a[0]*b[1] + a[1]*b[4], a[0]*b[2] + a[1]*b[5] + a[2],
		a[3]*b[0] + a[4]*b[3], a[3]*b[1] + a[4]*b[4], a[3]*b[2] + a[4]*b[5] + a[5],
	}
}

func invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return f64.Aff3{}, false
	}
	id := 1 / det
	inv := f64.Aff3{
		m[4] * id, -m[1] * id, 0,
		-m[3] * id, m[0] * id, 0,
	}
	inv[2] = -(inv[0]*m[2] + inv[1]*m[5])
	inv[5] = -(inv[3]*m[2] + inv[4]*m[5])
	return inv, true
}

func round12(v float64) float64 {
	return math.Round(v*1e12) / 1e12
}
