package transform

import (
	"math"
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

type rotate struct {
	dist Distribution
}

// Rotate samples an angle uniformly from [-maxDegrees, maxDegrees] and
// rotates the data in place about the midpoint of its bounds. Rotation is
// defined only for two dimensions.
func Rotate(maxDegrees float64) Projective {
	d := math.Abs(maxDegrees)
	return &rotate{dist: Uniform{Low: -d, High: d}}
}

// RotateDist rotates by an angle in degrees drawn from the given
// distribution.
func RotateDist(d Distribution) Projective {
	return &rotate{dist: d}
}

func (t *rotate) Sample(rng *rand.Rand) State {
	return t.dist.Sample(rng)
}

func (t *rotate) Project(b bounds.Bounds, s State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	deg := stateFloat(s, 0)
	return projective.Rotation(deg * math.Pi / 180).About(b.Center()), nil
}

func (t *rotate) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}
