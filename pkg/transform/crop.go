package transform

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

// Anchor selects where a crop window sits inside the current bounds.
type Anchor int

const (
	// AnchorOrigin aligns the window with the minimum corner.
	AnchorOrigin Anchor = iota
	// AnchorCenter centers the window.
	AnchorCenter
	// AnchorRandom places the window at a position sampled uniformly
	// within the bounds.
	AnchorRandom
)

func (a Anchor) sample(rng *rand.Rand) State {
	if a == AnchorRandom {
		return [2]float64{randFloat(rng), randFloat(rng)}
	}
	return nil
}

func (a Anchor) offsets(s State) []float64 {
	switch a {
	case AnchorCenter:
		return []float64{0.5, 0.5}
	case AnchorRandom:
		if off, ok := s.([2]float64); ok {
			return off[:]
		}
	}
	return []float64{0, 0}
}

type crop struct {
	w, h   float64
	anchor Anchor
}

// Crop clips the bounds to a window of exactly w by h placed per the anchor
// policy. The projection is the identity: cropping never moves coordinates,
// it only narrows the valid region; the data subsetting happens when the
// transform is applied.
func Crop(w, h int, anchor Anchor) Projective {
	return &crop{w: float64(w), h: float64(h), anchor: anchor}
}

// CenterCrop clips to a centered window of w by h.
func CenterCrop(w, h int) Projective { return Crop(w, h, AnchorCenter) }

// RandomCrop clips to a randomly placed window of w by h.
func RandomCrop(w, h int) Projective { return Crop(w, h, AnchorRandom) }

func (t *crop) Sample(rng *rand.Rand) State { return t.anchor.sample(rng) }

func (t *crop) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.w <= 0 || t.h <= 0 {
		return projective.Map{}, fmt.Errorf("%w: crop to %gx%g", ErrBadTarget, t.w, t.h)
	}
	return projective.Identity(), nil
}

func (t *crop) ProjectBounds(_ projective.Map, b bounds.Bounds, s State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	return bounds.OffsetCrop([]float64{t.w, t.h}, b, t.anchor.offsets(s))
}

func (t *crop) Cropping() {}

type cropRatio struct {
	rx, ry float64
	anchor Anchor
}

// CropRatio clips to a window sized as a fraction of the current extent,
// placed per the anchor policy.
func CropRatio(rx, ry float64, anchor Anchor) Projective {
	return &cropRatio{rx: rx, ry: ry, anchor: anchor}
}

func (t *cropRatio) Sample(rng *rand.Rand) State { return t.anchor.sample(rng) }

func (t *cropRatio) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.rx <= 0 || t.ry <= 0 {
		return projective.Map{}, fmt.Errorf("%w: crop ratios %gx%g", ErrBadTarget, t.rx, t.ry)
	}
	return projective.Identity(), nil
}

func (t *cropRatio) ProjectBounds(_ projective.Map, b bounds.Bounds, s State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	target := []float64{t.rx * b[0].Length(), t.ry * b[1].Length()}
	return bounds.OffsetCrop(target, b, t.anchor.offsets(s))
}

func (t *cropRatio) Cropping() {}

type cropIndices struct {
	rect image.Rectangle
}

// CropIndices clips to an explicit index window.
func CropIndices(r image.Rectangle) Projective {
	return &cropIndices{rect: r}
}

func (t *cropIndices) Sample(*rand.Rand) State { return nil }

func (t *cropIndices) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.rect.Empty() {
		return projective.Map{}, fmt.Errorf("%w: empty crop window %v", ErrBadTarget, t.rect)
	}
	return projective.Identity(), nil
}

func (t *cropIndices) ProjectBounds(_ projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	return bounds.FromRect(t.rect), nil
}

func (t *cropIndices) Cropping() {}

type padDivisible struct {
	by float64
}

// PadDivisible widens the bounds so each extent is the smallest multiple of
// by not below the current extent, keeping the minimum corner fixed. The
// padded region is filled at apply time.
func PadDivisible(by int) Projective {
	return &padDivisible{by: float64(by)}
}

func (t *padDivisible) Sample(*rand.Rand) State { return nil }

func (t *padDivisible) Project(b bounds.Bounds, _ State) (projective.Map, error) {
	if err := check2D(b); err != nil {
		return projective.Map{}, err
	}
	if t.by <= 0 {
		return projective.Map{}, fmt.Errorf("%w: pad to multiples of %g", ErrBadTarget, t.by)
	}
	return projective.Identity(), nil
}

func (t *padDivisible) ProjectBounds(_ projective.Map, b bounds.Bounds, _ State) (bounds.Bounds, error) {
	if err := check2D(b); err != nil {
		return nil, err
	}
	target := []float64{
		math.Ceil(b[0].Length()/t.by) * t.by,
		math.Ceil(b[1].Length()/t.by) * t.by,
	}
	return bounds.OffsetCrop(target, b, []float64{0, 0})
}

func (t *padDivisible) Cropping() {}
