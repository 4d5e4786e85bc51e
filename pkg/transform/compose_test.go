package transform

import (
	"math/rand"
	"testing"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/item"
)

func TestComposeEmpty(t *testing.T) {
	c := Compose()
	p, ok := c.(Projective)
	if !ok {
		t.Fatal("empty composition should be projective")
	}
	m, err := p.Project(bounds.FromSizes(10, 10), nil)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	if !m.IsIdentity() {
		t.Errorf("expected identity, got %s", m)
	}
}

func TestComposeSingle(t *testing.T) {
	sc := ScaleFixed(20, 20)
	if Compose(sc) != sc {
		t.Error("single-transform composition should be the transform itself")
	}
}

func TestComposePureCollapses(t *testing.T) {
	c := Compose(ScaleRatio(2, 2), Translate(5, -3), Reflect(180))
	cc, ok := c.(*composed)
	if !ok {
		t.Fatalf("expected *composed, got %T", c)
	}
	if len(cc.tfms) != 3 {
		t.Errorf("expected 3 folded transforms, got %d", len(cc.tfms))
	}
}

func TestComposeAssociative(t *testing.T) {
	a, b, c := ScaleRatio(2, 2), Reflect(180), Translate(5, -3)
	left := Compose(Compose(a, b), c).(Projective)
	right := Compose(a, Compose(b, c)).(Projective)

	in := bounds.FromSizes(100, 80)
	lm, err := left.Project(in, left.Sample(nil))
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	rm, err := right.Project(in, right.Sample(nil))
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	for _, p := range []bounds.Point{{X: 0, Y: 0}, {X: 100, Y: 80}, {X: 37, Y: 11}} {
		if lp, rp := lm.Apply(p), rm.Apply(p); lp != rp {
			t.Errorf("groupings disagree at %v: %v vs %v", p, lp, rp)
		}
	}
}

func TestComposeFoldedMapMatchesStepwise(t *testing.T) {
	// One folded map must equal applying the chain transform by transform.
	tfms := []Projective{ScaleFixed(200, 200), Reflect(90), Translate(7, 3)}
	c := Compose(tfms[0], tfms[1], tfms[2]).(Projective)

	in := bounds.FromSizes(100, 50)
	folded, err := c.Project(in, c.Sample(nil))
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}

	p := bounds.Point{X: 30, Y: 20}
	cur := in
	for _, tf := range tfms {
		m, err := tf.Project(cur, nil)
		if err != nil {
			t.Fatalf("Project failed: %v", err)
		}
		p = m.Apply(p)
		cur, err = tf.ProjectBounds(m, cur, nil)
		if err != nil {
			t.Fatalf("ProjectBounds failed: %v", err)
		}
	}

	if got := folded.Apply(bounds.Point{X: 30, Y: 20}); got != p {
		t.Errorf("folded map gave %v, stepwise gave %v", got, p)
	}
}

func TestComposeCropTracksWindow(t *testing.T) {
	c := Compose(ScaleRatio(2, 2), CenterCrop(60, 60))
	cr, ok := c.(*cropped)
	if !ok {
		t.Fatalf("expected *cropped, got %T", c)
	}

	in := bounds.FromSizes(100, 100)
	s := cr.Sample(rand.New(rand.NewSource(1)))
	m, err := cr.Project(in, s)
	if err != nil {
		t.Fatalf("Project failed: %v", err)
	}
	// The crop contributes nothing to the map.
	if got := m.Apply(bounds.Point{X: 10, Y: 10}); got != (bounds.Point{X: 20, Y: 20}) {
		t.Errorf("map should be the scale alone, got %v at (10,10)", got)
	}

	nb, err := cr.ProjectBounds(m, in, s)
	if err != nil {
		t.Fatalf("ProjectBounds failed: %v", err)
	}
	// Scaled to 200x200, then a centered 60x60 window.
	want := bounds.Bounds{{Lo: 70, Hi: 130}, {Lo: 70, Hi: 130}}
	if !nb.Equal(want, 1e-9) {
		t.Errorf("expected %s, got %s", want, nb)
	}
}

func TestComposePureIntoCropped(t *testing.T) {
	// A pure transform composed before an existing crop pair folds into
	// the pair's inner map instead of forcing a sequence.
	pre := Compose(ScaleRatio(2, 2), CenterCrop(60, 60))
	c := Compose(Reflect(180), pre)
	if _, ok := c.(*cropped); !ok {
		t.Fatalf("expected *cropped, got %T", c)
	}
}

func TestComposePinOriginSequence(t *testing.T) {
	c := Compose(CenterCrop(60, 60), PinOrigin())
	sq, ok := c.(*sequence)
	if !ok {
		t.Fatalf("expected *sequence, got %T", c)
	}
	if len(sq.steps) != 2 {
		t.Errorf("expected 2 steps, got %d", len(sq.steps))
	}
}

func TestComposeMultipleCropsSequential(t *testing.T) {
	c := Compose(CenterCrop(80, 80), CenterCrop(40, 40))
	sq, ok := c.(*sequence)
	if !ok {
		t.Fatalf("expected *sequence, got %T", c)
	}

	in := bounds.FromSizes(100, 100)
	res, err := Apply(c, item.NewKeypoints(nil, in), WithState(sq.Sample(nil)))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	// First window [10,90)^2, second centered inside it: [30,70)^2.
	want := bounds.Bounds{{Lo: 30, Hi: 70}, {Lo: 30, Hi: 70}}
	if !res.Bounds().Equal(want, 1e-9) {
		t.Errorf("expected %s, got %s", want, res.Bounds())
	}
}

func TestComposeAfterCropIsSequential(t *testing.T) {
	c := Compose(CenterCrop(60, 60), ScaleRatio(2, 2))
	if _, ok := c.(*sequence); !ok {
		t.Fatalf("expected *sequence, got %T", c)
	}
}

func TestComposePresetShape(t *testing.T) {
	c := RandomResizeCrop(224, 224)
	sq, ok := c.(*sequence)
	if !ok {
		t.Fatalf("expected *sequence, got %T", c)
	}
	if len(sq.steps) != 2 {
		t.Fatalf("expected crop pair plus pin step, got %d steps", len(sq.steps))
	}
	if _, ok := sq.steps[0].(*cropped); !ok {
		t.Errorf("expected leading *cropped step, got %T", sq.steps[0])
	}
	if _, ok := sq.steps[1].(pinOrigin); !ok {
		t.Errorf("expected trailing pin step, got %T", sq.steps[1])
	}
}

func TestComposePrefixFoldsIntoPreset(t *testing.T) {
	// A rotation composed before a resize-crop preset folds into the
	// preset's inner map: still one resampling pass before the pin step.
	c := Compose(Rotate(15), RandomResizeCrop(224, 224))
	sq, ok := c.(*sequence)
	if !ok {
		t.Fatalf("expected *sequence, got %T", c)
	}
	if len(sq.steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(sq.steps))
	}
	cr, ok := sq.steps[0].(*cropped)
	if !ok {
		t.Fatalf("expected leading *cropped step, got %T", sq.steps[0])
	}
	if _, ok := cr.inner.(*composed); !ok {
		t.Errorf("expected rotation folded into the inner chain, got %T", cr.inner)
	}
}

func TestSequenceExplicit(t *testing.T) {
	s := Sequence(ScaleFixed(50, 50), Translate(1, 1))
	if _, ok := s.(Projective); ok {
		t.Error("explicit sequences must not collapse into a single map")
	}
}
