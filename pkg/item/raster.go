package item

import (
	"fmt"
	"image"
	"image/draw"
)

// AllocRaster allocates a fresh raster of the same concrete type as like,
// covering r. The supported payload types are the mutable stdlib images; the
// engine has nothing sensible to do with an unknown raster layout.
func AllocRaster(like draw.Image, r image.Rectangle) (draw.Image, error) {
	switch like.(type) {
	case *image.NRGBA:
		return image.NewNRGBA(r), nil
	case *image.RGBA:
		return image.NewRGBA(r), nil
	case *image.Gray:
		return image.NewGray(r), nil
	case *image.Gray16:
		return image.NewGray16(r), nil
	case *image.Alpha:
		return image.NewAlpha(r), nil
	case *image.NRGBA64:
		return image.NewNRGBA64(r), nil
	default:
		return nil, fmt.Errorf("item: unsupported raster type %T", like)
	}
}

func copyRaster(dst, src draw.Image) error {
	db, sb := dst.Bounds(), src.Bounds()
	if db.Dx() != sb.Dx() || db.Dy() != sb.Dy() {
		return sizeMismatch(db, sb)
	}
	if fmt.Sprintf("%T", dst) != fmt.Sprintf("%T", src) {
		return kindMismatchRaster(dst, src)
	}
	off := sb.Min.Sub(db.Min)
	draw.Draw(dst, db, src, db.Min.Add(off), draw.Src)
	return nil
}

func kindMismatchRaster(dst, src draw.Image) error {
	return fmt.Errorf("%w: cannot copy %T raster into %T", ErrShapeMismatch, src, dst)
}
