package item

import (
	"errors"
	"fmt"
	"image"

	"github.com/menta2k/augment/pkg/bounds"
)

// ErrShapeMismatch is returned when a destination buffer cannot hold the data
// being copied into it. Copies never silently truncate.
var ErrShapeMismatch = errors.New("item: shape mismatch")

// NewBuffer allocates a fresh item shaped like it, with zeroed storage.
// Allocate one buffer per distinct shape before entering a repeat-apply loop
// and reuse it across calls.
func NewBuffer(it Item) (Item, error) {
	switch v := it.(type) {
	case *ArrayItem:
		dst, err := AllocRaster(v.Data, v.Data.Bounds())
		if err != nil {
			return nil, err
		}
		return &ArrayItem{Data: dst}, nil
	case *Image:
		return &Image{Pix: image.NewNRGBA(v.Pix.Bounds())}, nil
	case *MaskBinary:
		return &MaskBinary{Mask: image.NewGray(v.Mask.Bounds())}, nil
	case *MaskMulti:
		return &MaskMulti{Mask: image.NewGray(v.Mask.Bounds()), Classes: v.Classes}, nil
	case *Keypoints:
		return &Keypoints{Points: make([]bounds.Point, 0, len(v.Points))}, nil
	case *Polygon:
		return &Polygon{Points: make([]bounds.Point, 0, len(v.Points))}, nil
	case *BoundingBox:
		return &BoundingBox{}, nil
	case *Category:
		return &Category{}, nil
	case *Many:
		bufs := make([]Item, len(v.Items))
		for i, sub := range v.Items {
			b, err := NewBuffer(sub)
			if err != nil {
				return nil, err
			}
			bufs[i] = b
		}
		return &Many{Items: bufs}, nil
	default:
		return nil, fmt.Errorf("item: cannot allocate buffer for %T", it)
	}
}

// CopyInto copies src's data and bounds into dst, which must have been
// allocated for an item of the same kind and shape. Raster payloads are
// copied by position; a size mismatch fails with ErrShapeMismatch.
func CopyInto(dst, src Item) error {
	switch s := src.(type) {
	case *ArrayItem:
		d, ok := dst.(*ArrayItem)
		if !ok {
			return kindMismatch(dst, src)
		}
		return copyRaster(d.Data, s.Data)
	case *Image:
		d, ok := dst.(*Image)
		if !ok {
			return kindMismatch(dst, src)
		}
		if !sameSize(d.Pix.Bounds(), s.Pix.Bounds()) {
			return sizeMismatch(d.Pix.Bounds(), s.Pix.Bounds())
		}
		copyPix(d.Pix.Pix, d.Pix.Stride, s.Pix.Pix, s.Pix.Stride, s.Pix.Bounds().Dy())
		return nil
	case *MaskBinary:
		d, ok := dst.(*MaskBinary)
		if !ok {
			return kindMismatch(dst, src)
		}
		if !sameSize(d.Mask.Bounds(), s.Mask.Bounds()) {
			return sizeMismatch(d.Mask.Bounds(), s.Mask.Bounds())
		}
		copyPix(d.Mask.Pix, d.Mask.Stride, s.Mask.Pix, s.Mask.Stride, s.Mask.Bounds().Dy())
		return nil
	case *MaskMulti:
		d, ok := dst.(*MaskMulti)
		if !ok {
			return kindMismatch(dst, src)
		}
		if !sameSize(d.Mask.Bounds(), s.Mask.Bounds()) {
			return sizeMismatch(d.Mask.Bounds(), s.Mask.Bounds())
		}
		copyPix(d.Mask.Pix, d.Mask.Stride, s.Mask.Pix, s.Mask.Stride, s.Mask.Bounds().Dy())
		d.Classes = s.Classes
		return nil
	case *Keypoints:
		d, ok := dst.(*Keypoints)
		if !ok {
			return kindMismatch(dst, src)
		}
		d.Points = append(d.Points[:0], s.Points...)
		d.Frame = s.Frame.Clone()
		return nil
	case *Polygon:
		d, ok := dst.(*Polygon)
		if !ok {
			return kindMismatch(dst, src)
		}
		d.Points = append(d.Points[:0], s.Points...)
		d.Frame = s.Frame.Clone()
		return nil
	case *BoundingBox:
		d, ok := dst.(*BoundingBox)
		if !ok {
			return kindMismatch(dst, src)
		}
		d.Min, d.Max = s.Min, s.Max
		d.Frame = s.Frame.Clone()
		return nil
	case *Category:
		d, ok := dst.(*Category)
		if !ok {
			return kindMismatch(dst, src)
		}
		d.Label = s.Label
		return nil
	case *Many:
		d, ok := dst.(*Many)
		if !ok {
			return kindMismatch(dst, src)
		}
		if len(d.Items) != len(s.Items) {
			return fmt.Errorf("%w: %d buffered sub-items, %d transformed", ErrShapeMismatch, len(d.Items), len(s.Items))
		}
		for i := range s.Items {
			if err := CopyInto(d.Items[i], s.Items[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("item: cannot copy %T", src)
	}
}

func kindMismatch(dst, src Item) error {
	return fmt.Errorf("%w: cannot copy %T into %T", ErrShapeMismatch, src, dst)
}

func sizeMismatch(d, s image.Rectangle) error {
	return fmt.Errorf("%w: buffer is %dx%d, result is %dx%d",
		ErrShapeMismatch, d.Dx(), d.Dy(), s.Dx(), s.Dy())
}

func sameSize(a, b image.Rectangle) bool {
	return a.Dx() == b.Dx() && a.Dy() == b.Dy()
}

func copyPix(dst []uint8, dstStride int, src []uint8, srcStride, rows int) {
	if dstStride == srcStride {
		copy(dst, src)
		return
	}
	n := min(dstStride, srcStride)
	for y := 0; y < rows; y++ {
		copy(dst[y*dstStride:y*dstStride+n], src[y*srcStride:y*srcStride+n])
	}
}
