package transform

import (
	"fmt"
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

type reflection struct {
	degrees float64
}

// Reflect mirrors the data about the midpoint of its bounds. The angle
// parameterizes the reflection axis so that Reflect(180) flips the X axis
// and Reflect(90) flips the Y axis. Reflections are deterministic; there is
// no sampling step.
func Reflect(degrees float64) Projective {
	return &reflection{degrees: degrees}
}

// FlipX mirrors the data horizontally.
func FlipX() Projective { return Reflect(180) }

// FlipY mirrors the data vertically.
func FlipY() Projective { return Reflect(90) }

func (t *reflection) Sample(*rand.Rand) State { return nil }

func (t *reflection) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	return projective.Reflection(t.degrees).About(b.Center()), nil
}

func (t *reflection) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}

type zoom struct {
	dist Distribution
}

// Zoom samples a scale ratio uniformly from [lo, hi] and scales uniformly
// about the bounds center. Ratios above 1 magnify.
func Zoom(lo, hi float64) Projective {
	return &zoom{dist: Uniform{Low: lo, High: hi}}
}

// ZoomDist zooms by a ratio drawn from the given distribution.
func ZoomDist(d Distribution) Projective {
	return &zoom{dist: d}
}

func (t *zoom) Sample(rng *rand.Rand) State {
	return t.dist.Sample(rng)
}

func (t *zoom) Project(b bounds.Bounds, s State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	r := stateFloat(s, 1)
	if r <= 0 {
		return projective.Map{}, fmt.Errorf("%w: zoom ratio %g", ErrBadTarget, r)
	}
	return projective.Scaling(r, r).About(b.Center()), nil
}

func (t *zoom) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}

type translate struct {
	dx, dy float64
}

// Translate shifts the data by a fixed offset.
func Translate(dx, dy float64) Projective {
	return &translate{dx: dx, dy: dy}
}

func (t *translate) Sample(*rand.Rand) State { return nil }

func (t *translate) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	return projective.Translation(t.dx, t.dy), nil
}

func (t *translate) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}

type pinOrigin struct{}

// PinOrigin translates the data so the minimum corner of its bounds lands
// on the coordinate origin. Cropped regions otherwise keep their window
// offset, which breaks consumers that assume zero-based indexing, so chains
// ending in a crop should end in PinOrigin. Compose keeps it as an explicit
// final step because its shift must be computed from the bounds left behind
// by every preceding step, crop windows included.
func PinOrigin() Projective { return pinOrigin{} }

func (pinOrigin) Sample(*rand.Rand) State { return nil }

func (pinOrigin) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	return projective.Translation(-b[0].Lo, -b[1].Lo), nil
}

func (pinOrigin) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}

func (pinOrigin) Deferred() {}
