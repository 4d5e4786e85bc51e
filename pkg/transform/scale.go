package transform

import (
	"fmt"
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

type scaleFixed struct {
	w, h float64
}

// ScaleFixed scales each axis independently so the bounds become exactly
// w by h. Applying it to bounds that already have that extent is a no-op:
// the projection is the identity map and no floating point drift is
// introduced.
func ScaleFixed(w, h int) Projective {
	return &scaleFixed{w: float64(w), h: float64(h)}
}

func (t *scaleFixed) Sample(*rand.Rand) State { return nil }

func (t *scaleFixed) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.w <= 0 || t.h <= 0 {
		return projective.Map{}, fmt.Errorf("%w: scale to %gx%g", ErrBadTarget, t.w, t.h)
	}
	lx, ly := b[0].Length(), b[1].Length()
	if lx == t.w && ly == t.h {
		return projective.Identity(), nil
	}
	return projective.Scaling(t.w/lx, t.h/ly).About(b.Min()), nil
}

func (t *scaleFixed) ProjectBounds(_ projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	// Snapped to the exact target rather than corner-mapped.
	return bounds.Bounds{
		{Lo: b[0].Lo, Hi: b[0].Lo + t.w},
		{Lo: b[1].Lo, Hi: b[1].Lo + t.h},
	}, nil
}

type scaleRatio struct {
	rx, ry float64
}

// ScaleRatio scales each axis by a fixed multiplicative ratio, with no
// target-size snapping.
func ScaleRatio(rx, ry float64) Projective {
	return &scaleRatio{rx: rx, ry: ry}
}

func (t *scaleRatio) Sample(*rand.Rand) State { return nil }

func (t *scaleRatio) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.rx <= 0 || t.ry <= 0 {
		return projective.Map{}, fmt.Errorf("%w: scale ratios %gx%g", ErrBadTarget, t.rx, t.ry)
	}
	return projective.Scaling(t.rx, t.ry).About(b.Min()), nil
}

func (t *scaleRatio) ProjectBounds(m projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	return pureBounds(m, b)
}

type scaleKeepAspect struct {
	w, h float64
}

// ScaleKeepAspect scales uniformly so that every axis reaches at least its
// minimum length: the ratio is the maximum of the per-axis ratios, which
// means the shortest resulting side equals its minimum and the aspect ratio
// is preserved. Bounds that already match the minimum lengths pass through
// untouched.
func ScaleKeepAspect(minW, minH int) Projective {
	return &scaleKeepAspect{w: float64(minW), h: float64(minH)}
}

func (t *scaleKeepAspect) Sample(*rand.Rand) State { return nil }

func (t *scaleKeepAspect) ratio(b bounds.Bounds) float64 {
	return max(t.w/b[0].Length(), t.h/b[1].Length())
}

func (t *scaleKeepAspect) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.w <= 0 || t.h <= 0 {
		return projective.Map{}, fmt.Errorf("%w: scale to minimum %gx%g", ErrBadTarget, t.w, t.h)
	}
	if b[0].Length() == t.w && b[1].Length() == t.h {
		return projective.Identity(), nil
	}
	r := t.ratio(b)
	return projective.Scaling(r, r).About(b.Min()), nil
}

func (t *scaleKeepAspect) ProjectBounds(_ projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	lx, ly := b[0].Length(), b[1].Length()
	if lx == t.w && ly == t.h {
		return b, nil
	}
	r := t.ratio(b)
	nx, ny := lx*r, ly*r
	// Snap the binding axis exactly to its minimum length.
	if t.w/lx >= t.h/ly {
		nx = t.w
	} else {
		ny = t.h
	}
	return bounds.Bounds{
		{Lo: b[0].Lo, Hi: b[0].Lo + nx},
		{Lo: b[1].Lo, Hi: b[1].Lo + ny},
	}, nil
}
