package bounds

import (
	"image"
	"math"
	"testing"
)

func TestIntervalLength(t *testing.T) {
	iv := Interval{Lo: 3, Hi: 10}
	if iv.Length() != 7 {
		t.Errorf("expected length 7, got %g", iv.Length())
	}
}

func TestFromRectRoundtrip(t *testing.T) {
	r := image.Rect(5, 10, 105, 60)
	b := FromRect(r)

	if b.Dims() != 2 {
		t.Fatalf("expected 2 axes, got %d", b.Dims())
	}
	if b[0].Lo != 5 || b[0].Hi != 105 || b[1].Lo != 10 || b[1].Hi != 60 {
		t.Errorf("unexpected bounds %s", b)
	}
	if b.Rect() != r {
		t.Errorf("expected rect %v back, got %v", r, b.Rect())
	}
}

func TestCenterAndMin(t *testing.T) {
	b := New(Interval{10, 30}, Interval{0, 40})

	if c := b.Center(); c.X != 20 || c.Y != 20 {
		t.Errorf("expected center (20,20), got (%g,%g)", c.X, c.Y)
	}
	if m := b.Min(); m.X != 10 || m.Y != 0 {
		t.Errorf("expected min (10,0), got (%g,%g)", m.X, m.Y)
	}
}

func TestEnclose(t *testing.T) {
	pts := []Point{{3, 7}, {-1, 2}, {5, 4}}
	b := Enclose(pts)

	want := Bounds{{-1, 5}, {2, 7}}
	if !b.Equal(want, 0) {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestOffsetCropCentered(t *testing.T) {
	b := FromSizes(10, 10)
	out, err := OffsetCrop([]float64{4, 4}, b, []float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}

	want := Bounds{{3, 7}, {3, 7}}
	if !out.Equal(want, 1e-12) {
		t.Errorf("expected %s, got %s", want, out)
	}
}

func TestOffsetCropEdgeAligned(t *testing.T) {
	b := FromSizes(10, 10)

	lo, err := OffsetCrop([]float64{4, 4}, b, []float64{0, 0})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}
	if !lo.Equal(Bounds{{0, 4}, {0, 4}}, 1e-12) {
		t.Errorf("expected origin-aligned window, got %s", lo)
	}

	hi, err := OffsetCrop([]float64{4, 4}, b, []float64{1, 1})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}
	if !hi.Equal(Bounds{{6, 10}, {6, 10}}, 1e-12) {
		t.Errorf("expected max-aligned window, got %s", hi)
	}
}

func TestOffsetCropNoop(t *testing.T) {
	b := New(Interval{2.5, 12.5}, Interval{0, 7})
	out, err := OffsetCrop(b.Lengths(), b, []float64{0.3, 0.8})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}

	// Exact pass-through, not a recomputed window.
	for i := range b {
		if out[i] != b[i] {
			t.Errorf("axis %d changed from %v to %v", i, b[i], out[i])
		}
	}
}

func TestOffsetCropFractionalOffset(t *testing.T) {
	// An offset whose window edge is not exactly representable must still
	// produce a window of the requested extent.
	b := FromSizes(100, 100)
	out, err := OffsetCrop([]float64{40, 40}, b, []float64{0.7199826688373035, 0.3333333333333333})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}
	for axis := 0; axis < 2; axis++ {
		if got := out[axis].Length(); math.Abs(got-40) > 1e-12 {
			t.Errorf("axis %d extent is %.17g, want 40", axis, got)
		}
		if out[axis].Lo < -1e-9 || out[axis].Hi > 100+1e-9 {
			t.Errorf("window %s escapes the bounds", out)
		}
	}
}

func TestOffsetCropPads(t *testing.T) {
	b := FromSizes(10, 10)
	out, err := OffsetCrop([]float64{12, 12}, b, []float64{0, 0})
	if err != nil {
		t.Fatalf("OffsetCrop failed: %v", err)
	}
	if !out.Equal(Bounds{{0, 12}, {0, 12}}, 1e-12) {
		t.Errorf("expected padded window, got %s", out)
	}
}

func TestOffsetCropBadTarget(t *testing.T) {
	b := FromSizes(10, 10)
	if _, err := OffsetCrop([]float64{0, 4}, b, []float64{0, 0}); err == nil {
		t.Error("expected error for zero target")
	}
	if _, err := OffsetCrop([]float64{4}, b, []float64{0, 0}); err == nil {
		t.Error("expected error for axis count mismatch")
	}
}

func TestEqualTolerance(t *testing.T) {
	a := FromSizes(10, 10)
	b := Bounds{{1e-13, 10}, {0, 10 - 1e-13}}
	if !a.Equal(b, 1e-12) {
		t.Error("expected equality within tolerance")
	}
	if a.Equal(b, 0) {
		t.Error("expected inequality at zero tolerance")
	}
	if a.Equal(FromSizes(10), 1) {
		t.Error("expected inequality for different dimensionality")
	}
}
