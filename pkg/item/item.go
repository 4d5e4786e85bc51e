// Package item defines the typed containers the augmentation engine operates
// on. Every item pairs a data payload with the bounds describing its valid
// coordinate extent; raster items derive their bounds from the pixel storage
// so the two can never disagree.
package item

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/menta2k/augment/pkg/bounds"
)

// Item is one piece of augmentable data.
type Item interface {
	// Bounds returns the valid coordinate extent of the item's data.
	// Items without a spatial extent (Category) return nil.
	Bounds() bounds.Bounds
}

// ArrayItem is a generic raster payload. It holds any mutable image type and
// is resampled with nearest-neighbor interpolation and zero fill.
type ArrayItem struct {
	Data draw.Image
}

// NewArray wraps a raster in an ArrayItem.
func NewArray(data draw.Image) *ArrayItem {
	return &ArrayItem{Data: data}
}

func (a *ArrayItem) Bounds() bounds.Bounds {
	return bounds.FromRect(a.Data.Bounds())
}

// Image is a color raster. Construction normalizes any image.Image to NRGBA
// so the apply engine works on a single pixel layout.
type Image struct {
	Pix *image.NRGBA
}

// NewImage clones src into a zero-based NRGBA image item.
func NewImage(src image.Image) *Image {
	return &Image{Pix: imaging.Clone(src)}
}

// FromNRGBA wraps an existing NRGBA raster without copying. The raster's
// rectangle, including any crop offset, becomes the item's bounds.
func FromNRGBA(pix *image.NRGBA) *Image {
	return &Image{Pix: pix}
}

func (im *Image) Bounds() bounds.Bounds {
	return bounds.FromRect(im.Pix.Bounds())
}

// MaskBinary is a per-pixel boolean mask stored as a Gray raster with values
// 0 and 255. It is resampled with nearest-neighbor interpolation and false
// fill so no intermediate gray levels appear.
type MaskBinary struct {
	Mask *image.Gray
}

// NewMaskBinary wraps a gray raster as a binary mask.
func NewMaskBinary(mask *image.Gray) *MaskBinary {
	return &MaskBinary{Mask: mask}
}

func (m *MaskBinary) Bounds() bounds.Bounds {
	return bounds.FromRect(m.Mask.Bounds())
}

// MaskMulti is a per-pixel class mask. Each pixel holds a class index in
// [0, Classes); class 0 is the background used to fill extrapolated regions.
type MaskMulti struct {
	Mask    *image.Gray
	Classes int
}

// NewMaskMulti wraps a gray raster holding class indices.
func NewMaskMulti(mask *image.Gray, classes int) *MaskMulti {
	return &MaskMulti{Mask: mask, Classes: classes}
}

func (m *MaskMulti) Bounds() bounds.Bounds {
	return bounds.FromRect(m.Mask.Bounds())
}

// Keypoints is an ordered set of 2D points inside an explicit frame. The
// frame carries the coordinate extent since the points alone do not.
type Keypoints struct {
	Points []bounds.Point
	Frame  bounds.Bounds
}

// NewKeypoints creates a keypoint set within the given frame.
func NewKeypoints(pts []bounds.Point, frame bounds.Bounds) *Keypoints {
	return &Keypoints{Points: pts, Frame: frame}
}

func (k *Keypoints) Bounds() bounds.Bounds {
	return k.Frame
}

// Polygon is a closed point sequence inside an explicit frame.
type Polygon struct {
	Points []bounds.Point
	Frame  bounds.Bounds
}

// NewPolygon creates a polygon within the given frame.
func NewPolygon(pts []bounds.Point, frame bounds.Bounds) *Polygon {
	return &Polygon{Points: pts, Frame: frame}
}

func (p *Polygon) Bounds() bounds.Bounds {
	return p.Frame
}

// BoundingBox is an axis-aligned box inside an explicit frame. Transforming
// it maps all four corners and re-encloses them, so rotations produce the
// minimal axis-aligned box containing the rotated original.
type BoundingBox struct {
	Min, Max bounds.Point
	Frame    bounds.Bounds
}

// NewBoundingBox creates a box from its min and max corners.
func NewBoundingBox(min, max bounds.Point, frame bounds.Bounds) *BoundingBox {
	return &BoundingBox{Min: min, Max: max, Frame: frame}
}

func (b *BoundingBox) Bounds() bounds.Bounds {
	return b.Frame
}

// Category is a plain label with no spatial extent. Transforms pass it
// through untouched.
type Category struct {
	Label int
}

func (Category) Bounds() bounds.Bounds {
	return nil
}

// Many bundles sub-items that must be transformed in lockstep: an image and
// its keypoint annotations receive identical random parameters.
type Many struct {
	Items []Item
}

// NewMany bundles items for lockstep transformation.
func NewMany(items ...Item) *Many {
	return &Many{Items: items}
}

// Bounds returns the bounds of the first spatial sub-item.
func (m *Many) Bounds() bounds.Bounds {
	for _, it := range m.Items {
		if b := it.Bounds(); b != nil {
			return b
		}
	}
	return nil
}
