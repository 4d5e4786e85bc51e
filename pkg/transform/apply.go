package transform

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"golang.org/x/image/draw"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/item"
	"github.com/menta2k/augment/pkg/projective"
)

type options struct {
	rng      *rand.Rand
	state    State
	hasState bool
	fill     color.Color
	interp   draw.Interpolator
}

// Option configures one Apply or ApplyInto call.
type Option func(*options)

// WithRand supplies the random source used to sample the transform's
// parameters. Without it the process-wide source is used. The sampled
// state, not the source, is what gets shared across sub-items.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithState skips sampling and applies the transform with the given
// pre-sampled state. Composite transforms expect a []State with one entry
// per sub-transform.
func WithState(s State) Option {
	return func(o *options) { o.state = s; o.hasState = true }
}

// WithFill sets the color used for image regions mapped from outside the
// source, such as corners exposed by a rotation. Defaults to opaque black.
// Masks always fill with the background class regardless of this option.
func WithFill(c color.Color) Option {
	return func(o *options) { o.fill = c }
}

// WithInterpolator overrides the resampling kernel used for Image items.
// Defaults to Catmull-Rom. Masks always use nearest-neighbor so no
// in-between class values appear.
func WithInterpolator(q draw.Interpolator) Option {
	return func(o *options) { o.interp = q }
}

func newOptions(opts []Option) *options {
	o := &options{
		fill:   color.NRGBA{A: 0xff},
		interp: draw.CatmullRom,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Apply transforms an item. Random parameters are sampled exactly once and
// threaded through every nested sub-transform and every sub-item of a Many,
// so related items always receive identical draws. The returned item wraps
// fresh data and freshly computed bounds; the input is never mutated.
func Apply(t Transform, it item.Item, opts ...Option) (item.Item, error) {
	o := newOptions(opts)
	s := o.state
	if !o.hasState {
		s = t.Sample(o.rng)
	}
	return applyState(t, it, s, o)
}

// ApplyInto is the buffer-reusing counterpart of Apply: it writes the result
// into dst, which must have been allocated (see item.NewBuffer) for the
// transform's output shape. A mismatched buffer fails with an error wrapping
// item.ErrShapeMismatch; nothing is partially written on failure paths that
// can be detected up front. Intended for tight loops where per-call
// allocation would dominate.
func ApplyInto(dst item.Item, t Transform, it item.Item, opts ...Option) error {
	o := newOptions(opts)
	s := o.state
	if !o.hasState {
		s = t.Sample(o.rng)
	}
	if p, ok := t.(Projective); ok {
		if done, err := warpInto(dst, p, it, s, o); done {
			return err
		}
	}
	res, err := applyState(t, it, s, o)
	if err != nil {
		return err
	}
	return item.CopyInto(dst, res)
}

func applyState(t Transform, it item.Item, s State, o *options) (item.Item, error) {
	if many, ok := it.(*item.Many); ok {
		out := make([]item.Item, len(many.Items))
		for i, sub := range many.Items {
			r, err := applyState(t, sub, s, o)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return item.NewMany(out...), nil
	}
	switch tt := t.(type) {
	case *sequence:
		ss := subStates(s, len(tt.steps))
		var err error
		for i, step := range tt.steps {
			it, err = applyState(step, it, ss[i], o)
			if err != nil {
				return nil, err
			}
		}
		return it, nil
	case Projective:
		return applyProjective(tt, it, s, o)
	default:
		return nil, fmt.Errorf("transform: %T cannot be applied", t)
	}
}

func applyProjective(p Projective, it item.Item, s State, o *options) (item.Item, error) {
	// Category satisfies Item in both value and pointer form; both pass
	// through untouched.
	switch it.(type) {
	case *item.Category, item.Category:
		return it, nil
	}
	b := it.Bounds()
	if b == nil {
		return nil, fmt.Errorf("transform: %T carries no bounds to project", it)
	}
	m, err := p.Project(b, s)
	if err != nil {
		return nil, err
	}
	nb, err := p.ProjectBounds(m, b, s)
	if err != nil {
		return nil, err
	}
	switch v := it.(type) {
	case *item.Keypoints:
		return item.NewKeypoints(mapPoints(m, v.Points), nb), nil
	case *item.Polygon:
		return item.NewPolygon(mapPoints(m, v.Points), nb), nil
	case *item.BoundingBox:
		enc := bounds.Enclose(mapPoints(m, boxCorners(v)))
		return item.NewBoundingBox(
			bounds.Point{X: enc[0].Lo, Y: enc[1].Lo},
			bounds.Point{X: enc[0].Hi, Y: enc[1].Hi},
			nb,
		), nil
	case *item.Image:
		dst := image.NewNRGBA(nb.Rect())
		warp(dst, m, v.Pix, o.interp, o.fill)
		return item.FromNRGBA(dst), nil
	case *item.MaskBinary:
		dst := image.NewGray(nb.Rect())
		warp(dst, m, v.Mask, draw.NearestNeighbor, nil)
		return item.NewMaskBinary(dst), nil
	case *item.MaskMulti:
		dst := image.NewGray(nb.Rect())
		warp(dst, m, v.Mask, draw.NearestNeighbor, nil)
		return item.NewMaskMulti(dst, v.Classes), nil
	case *item.ArrayItem:
		dst, err := item.AllocRaster(v.Data, nb.Rect())
		if err != nil {
			return nil, err
		}
		warp(dst, m, v.Data, draw.NearestNeighbor, nil)
		return item.NewArray(dst), nil
	default:
		return nil, fmt.Errorf("transform: unsupported item %T", it)
	}
}

// warp resamples src into dst through the forward map. The resampler is the
// external x/image interpolator; dst regions the source never reaches keep
// the fill.
func warp(dst draw.Image, m projective.Map, src image.Image, interp draw.Interpolator, fill color.Color) {
	if fill != nil {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)
	}
	interp.Transform(dst, m.Aff3(), src, src.Bounds(), draw.Src, nil)
}

// warpInto resamples raster items directly into a pre-allocated buffer,
// avoiding the intermediate allocation of the generic path. Returns false
// when the dst/item pair is not a raster fast path.
func warpInto(dst item.Item, p Projective, it item.Item, s State, o *options) (bool, error) {
	type raster struct {
		pix    []uint8
		stride int
		rect   image.Rectangle
		gray   bool
	}
	var d raster
	switch v := dst.(type) {
	case *item.Image:
		d = raster{v.Pix.Pix, v.Pix.Stride, v.Pix.Rect, false}
	case *item.MaskBinary:
		d = raster{v.Mask.Pix, v.Mask.Stride, v.Mask.Rect, true}
	case *item.MaskMulti:
		d = raster{v.Mask.Pix, v.Mask.Stride, v.Mask.Rect, true}
	default:
		return false, nil
	}
	var src image.Image
	var interp draw.Interpolator
	var fill color.Color
	switch v := it.(type) {
	case *item.Image:
		if d.gray {
			return false, nil
		}
		src, interp, fill = v.Pix, o.interp, o.fill
	case *item.MaskBinary:
		if !d.gray {
			return false, nil
		}
		src, interp, fill = v.Mask, draw.NearestNeighbor, color.Gray{}
	case *item.MaskMulti:
		if !d.gray {
			return false, nil
		}
		src, interp, fill = v.Mask, draw.NearestNeighbor, color.Gray{}
	default:
		return false, nil
	}
	b := bounds.FromRect(src.Bounds())
	m, err := p.Project(b, s)
	if err != nil {
		return true, err
	}
	nb, err := p.ProjectBounds(m, b, s)
	if err != nil {
		return true, err
	}
	r := nb.Rect()
	if r.Dx() != d.rect.Dx() || r.Dy() != d.rect.Dy() {
		return true, fmt.Errorf("%w: buffer is %dx%d, output bounds are %dx%d",
			item.ErrShapeMismatch, d.rect.Dx(), d.rect.Dy(), r.Dx(), r.Dy())
	}
	// Reinterpret the buffer's storage at the output window so the warp
	// lands at the right coordinates without copying.
	var view draw.Image
	if d.gray {
		view = &image.Gray{Pix: d.pix, Stride: d.stride, Rect: r}
	} else {
		view = &image.NRGBA{Pix: d.pix, Stride: d.stride, Rect: r}
	}
	warp(view, m, src, interp, fill)
	// The buffer now holds data addressed at the output window; move its
	// rectangle there so Bounds reflects the result.
	switch v := dst.(type) {
	case *item.Image:
		v.Pix.Rect = r
	case *item.MaskBinary:
		v.Mask.Rect = r
	case *item.MaskMulti:
		v.Mask.Rect = r
		if sm, ok := it.(*item.MaskMulti); ok {
			v.Classes = sm.Classes
		}
	}
	return true, nil
}

func mapPoints(m projective.Map, pts []bounds.Point) []bounds.Point {
	out := make([]bounds.Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

func boxCorners(b *item.BoundingBox) []bounds.Point {
	return []bounds.Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}
