// Package transform implements the projective transform composition and
// bounds-propagation engine.
//
// A Transform describes a spatial operation (scale, rotate, crop, ...) whose
// random parameters, if any, are sampled once per top-level Apply call and
// shared across every sub-item of the call. Transforms that reduce to a
// single geometric map additionally implement Projective, which lets Compose
// collapse whole chains into one map so pixel data is resampled exactly once.
//
// Cropping transforms clip bounds independently of their map and PinOrigin
// must see the bounds of everything applied before it, so both act as
// composition barriers. The Cropping and Deferred marker interfaces carry
// that property, and user-defined transform variants participate in the
// special-case composition rules by implementing them.
package transform

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

var (
	// ErrDimension is returned when a transform defined for a specific
	// dimensionality is applied to bounds of a different dimension.
	ErrDimension = errors.New("transform: dimension mismatch")

	// ErrBadTarget is returned for zero or negative target sizes, before
	// any map is constructed.
	ErrBadTarget = errors.New("transform: degenerate target size")
)

// State is the random parameter set sampled for one Apply call. It is
// generated once at the top of the call and passed down immutably, so an
// image and its annotations always observe identical draws. Deterministic
// transforms use a nil State; composite transforms use a []State with one
// entry per sub-transform, in order.
type State any

// Transform is anything that can be applied to an item.
type Transform interface {
	// Sample draws the transform's random parameters from rng. A nil rng
	// uses the process-wide source. Deterministic transforms return nil.
	Sample(rng *rand.Rand) State
}

// Projective is a transform expressible as a single composable geometric
// map plus a bounds rule.
type Projective interface {
	Transform

	// Project builds the geometric map for the given input bounds and
	// sampled state.
	Project(b bounds.Bounds, s State) (projective.Map, error)

	// ProjectBounds computes the bounds resulting from applying the
	// transform to b. For pure transforms this is the image of b under m;
	// cropping transforms ignore m and clip instead.
	ProjectBounds(m projective.Map, b bounds.Bounds, s State) (bounds.Bounds, error)
}

// Cropping marks projective transforms whose bounds step is not a function
// of their map: they clip or pad to a target window. Compose never folds
// across a Cropping transform.
type Cropping interface {
	Projective
	Cropping()
}

// Deferred marks projective transforms that must be evaluated against the
// fully finalized bounds of everything before them, crop windows included.
// Compose keeps them as explicit trailing steps instead of folding them
// into a shared map.
type Deferred interface {
	Projective
	Deferred()
}

type identity struct{}

// Identity returns the transform that leaves items unchanged.
func Identity() Projective { return identity{} }

func (identity) Sample(*rand.Rand) State { return nil }

func (identity) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	return projective.Identity(), nil
}

func (identity) ProjectBounds(_ projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return b, nil
}

func check2D(b bounds.Bounds) error {
	if b.Dims() != 2 {
		return fmt.Errorf("%w: need 2-dimensional bounds, got %d axes", ErrDimension, b.Dims())
	}
	return nil
}

// pureBounds is the bounds rule shared by every non-cropping transform.
func pureBounds(m projective.Map, b bounds.Bounds) (bounds.Bounds, error) {
	return projective.TransformBounds(m, b)
}

func stateFloat(s State, def float64) float64 {
	if f, ok := s.(float64); ok {
		return f
	}
	return def
}
