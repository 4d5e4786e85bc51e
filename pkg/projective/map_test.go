package projective

import (
	"math"
	"testing"

	"golang.org/x/image/math/f64"

	"github.com/menta2k/augment/pkg/bounds"
)

func pointsClose(a, b bounds.Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() should report IsIdentity")
	}
	p := bounds.Point{X: 3.5, Y: -2}
	if m.Apply(p) != p {
		t.Errorf("identity moved %v to %v", p, m.Apply(p))
	}
}

func TestTranslationAndScaling(t *testing.T) {
	p := bounds.Point{X: 2, Y: 3}

	if got := Translation(10, -5).Apply(p); got != (bounds.Point{X: 12, Y: -2}) {
		t.Errorf("translation gave %v", got)
	}
	if got := Scaling(2, 0.5).Apply(p); got != (bounds.Point{X: 4, Y: 1.5}) {
		t.Errorf("scaling gave %v", got)
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	m := Rotation(math.Pi / 2)
	got := m.Apply(bounds.Point{X: 1, Y: 0})
	if !pointsClose(got, bounds.Point{X: 0, Y: 1}, 1e-12) {
		t.Errorf("quarter turn gave %v", got)
	}
}

func TestMulOrder(t *testing.T) {
	// Mul applies the right operand first.
	m := Translation(10, 0).Mul(Scaling(2, 2))
	got := m.Apply(bounds.Point{X: 3, Y: 4})
	if got != (bounds.Point{X: 16, Y: 8}) {
		t.Errorf("expected scale-then-translate (16,8), got %v", got)
	}
}

func TestMulAssociative(t *testing.T) {
	a := Rotation(0.3)
	b := Scaling(1.5, 0.75).About(bounds.Point{X: 4, Y: -1})
	c := Translation(-2, 7)

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))

	pts := []bounds.Point{{X: 0, Y: 0}, {X: 13, Y: 5}, {X: -6, Y: 2.5}}
	for _, p := range pts {
		if !pointsClose(left.Apply(p), right.Apply(p), 1e-9) {
			t.Errorf("associativity broken at %v: %v vs %v", p, left.Apply(p), right.Apply(p))
		}
	}
}

func TestInverseRoundtrip(t *testing.T) {
	maps := []Map{
		Translation(3, -8),
		Scaling(2.5, 0.4),
		Rotation(1.1).About(bounds.Point{X: 50, Y: 20}),
		Rotation(0.7).Mul(Scaling(3, 3)).Mul(Translation(1, 2)),
	}
	pts := []bounds.Point{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: -7, Y: 33}}
	for _, m := range maps {
		inv := m.Inverse()
		for _, p := range pts {
			got := inv.Apply(m.Apply(p))
			if !pointsClose(got, p, 1e-9) {
				t.Errorf("map %s: roundtrip of %v gave %v", m, p, got)
			}
		}
	}
}

func TestAbout(t *testing.T) {
	c := bounds.Point{X: 5, Y: 5}
	m := Scaling(2, 2).About(c)

	// The anchor is a fixed point.
	if got := m.Apply(c); !pointsClose(got, c, 1e-12) {
		t.Errorf("anchor moved to %v", got)
	}
	if got := m.Apply(bounds.Point{X: 6, Y: 5}); !pointsClose(got, bounds.Point{X: 7, Y: 5}, 1e-12) {
		t.Errorf("expected (7,5), got %v", got)
	}
}

func TestReflectionAxisFlips(t *testing.T) {
	p := bounds.Point{X: 2, Y: 3}

	// 180 degrees flips X, 90 degrees flips Y, exactly.
	if got := Reflection(180).Apply(p); got != (bounds.Point{X: -2, Y: 3}) {
		t.Errorf("Reflection(180) gave %v", got)
	}
	if got := Reflection(90).Apply(p); got != (bounds.Point{X: 2, Y: -3}) {
		t.Errorf("Reflection(90) gave %v", got)
	}
}

func TestReflectionInvolution(t *testing.T) {
	for _, deg := range []float64{90, 180, 45, 30, 135} {
		m := Reflection(deg)
		mm := m.Mul(m)
		p := bounds.Point{X: 7, Y: -4}
		if got := mm.Apply(p); !pointsClose(got, p, 1e-9) {
			t.Errorf("Reflection(%g) applied twice moved %v to %v", deg, p, got)
		}
	}
}

func TestFromAff3Singular(t *testing.T) {
	if _, err := FromAff3(f64.Aff3{1, 2, 0, 2, 4, 0}); err == nil {
		t.Error("expected error for singular matrix")
	}
	m, err := FromAff3(f64.Aff3{2, 0, 1, 0, 3, -1})
	if err != nil {
		t.Fatalf("FromAff3 failed: %v", err)
	}
	p := bounds.Point{X: 4, Y: 2}
	if got := m.Inverse().Apply(m.Apply(p)); !pointsClose(got, p, 1e-12) {
		t.Errorf("computed inverse broken: %v", got)
	}
}

func TestTransformBounds(t *testing.T) {
	b := bounds.FromSizes(100, 50)

	got, err := TransformBounds(Translation(10, 20), b)
	if err != nil {
		t.Fatalf("TransformBounds failed: %v", err)
	}
	want := bounds.Bounds{{Lo: 10, Hi: 110}, {Lo: 20, Hi: 70}}
	if !got.Equal(want, 1e-12) {
		t.Errorf("expected %s, got %s", want, got)
	}

	// A quarter turn about the center swaps the extents in place.
	got, err = TransformBounds(Rotation(math.Pi/2).About(b.Center()), b)
	if err != nil {
		t.Fatalf("TransformBounds failed: %v", err)
	}
	want = bounds.Bounds{{Lo: 25, Hi: 75}, {Lo: -25, Hi: 75}}
	if !got.Equal(want, 1e-9) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestTransformBoundsDimension(t *testing.T) {
	if _, err := TransformBounds(Identity(), bounds.FromSizes(10)); err == nil {
		t.Error("expected error for 1-dimensional bounds")
	}
}
