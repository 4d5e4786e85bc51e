package transform

import (
	"math/rand"

	"github.com/menta2k/augment/pkg/bounds"
	"github.com/menta2k/augment/pkg/projective"
)

// Compose combines transforms applied left to right into the cheapest
// equivalent form:
//
//   - pure projective transforms collapse into a single folded map, so
//     chains of them are associative and resample pixel data exactly once;
//   - a chain ending in a Cropping transform keeps the crop tracked
//     separately from the folded map, since its window is not a function of
//     the map;
//   - a Deferred transform (PinOrigin), a second crop, or anything placed
//     after a crop becomes an explicit sequential step, because it must be
//     evaluated against the finalized bounds of everything before it.
func Compose(tfms ...Transform) Transform {
	if len(tfms) == 0 {
		return Identity()
	}
	var acc Transform
	for _, t := range tfms {
		acc = compose2(acc, t)
	}
	return acc
}

func compose2(a, b Transform) Transform {
	if a == nil {
		return b
	}
	if bs, ok := b.(*sequence); ok {
		for _, step := range bs.steps {
			a = compose2(a, step)
		}
		return a
	}
	bp, ok := b.(Projective)
	if !ok {
		return appendStep(a, b)
	}
	if as, ok := a.(*sequence); ok {
		// Try folding into the trailing step; barriers inside it keep
		// the result sequential.
		n := len(as.steps)
		merged := compose2(as.steps[n-1], bp)
		steps := append([]Transform{}, as.steps[:n-1]...)
		if ms, ok := merged.(*sequence); ok {
			steps = append(steps, ms.steps...)
		} else {
			steps = append(steps, merged)
		}
		return &sequence{steps: steps}
	}
	ap, ok := a.(Projective)
	if !ok {
		return appendStep(a, b)
	}
	if bc, ok := bp.(*cropped); ok {
		if inner, ok := compose2(ap, bc.inner).(Projective); ok && !isBarrier(inner) {
			return &cropped{inner: inner, crop: bc.crop}
		}
		return appendStep(a, b)
	}
	if _, ok := bp.(Deferred); ok {
		return &sequence{steps: []Transform{ap, bp}}
	}
	if _, ok := bp.(Cropping); ok {
		if isBarrier(ap) {
			return &sequence{steps: []Transform{ap, bp}}
		}
		return &cropped{inner: ap, crop: bp}
	}
	if isBarrier(ap) {
		return &sequence{steps: []Transform{ap, bp}}
	}
	return &composed{tfms: flatten(ap, bp)}
}

func appendStep(a, b Transform) Transform {
	if as, ok := a.(*sequence); ok {
		return &sequence{steps: append(append([]Transform{}, as.steps...), b)}
	}
	return &sequence{steps: []Transform{a, b}}
}

func flatten(a, b Projective) []Projective {
	var out []Projective
	if ac, ok := a.(*composed); ok {
		out = append(out, ac.tfms...)
	} else {
		out = append(out, a)
	}
	if bc, ok := b.(*composed); ok {
		out = append(out, bc.tfms...)
	} else {
		out = append(out, b)
	}
	return out
}

func isBarrier(p Projective) bool {
	if _, ok := p.(Cropping); ok {
		return true
	}
	_, ok := p.(Deferred)
	return ok
}

// composed is an ordered chain of pure projective transforms collapsed into
// one map. Each sub-transform's map is built against the running bounds left
// by its predecessors, then folded into the total.
type composed struct {
	tfms []Projective
}

func (c *composed) Sample(rng *rand.Rand) State {
	ss := make([]State, len(c.tfms))
	for i, t := range c.tfms {
		ss[i] = t.Sample(rng)
	}
	return ss
}

func (c *composed) Project(b bounds.Bounds, s State) (projective.Map, error) {
	ss := subStates(s, len(c.tfms))
	total := projective.Identity()
	cur := b
	for i, t := range c.tfms {
		m, err := t.Project(cur, ss[i])
		if err != nil {
			return projective.Map{}, err
		}
		cur, err = t.ProjectBounds(m, cur, ss[i])
		if err != nil {
			return projective.Map{}, err
		}
		total = m.Mul(total)
	}
	return total, nil
}

func (c *composed) ProjectBounds(_ projective.Map, b bounds.Bounds, s State) (bounds.Bounds, error) {
	ss := subStates(s, len(c.tfms))
	cur := b
	for i, t := range c.tfms {
		m, err := t.Project(cur, ss[i])
		if err != nil {
			return nil, err
		}
		cur, err = t.ProjectBounds(m, cur, ss[i])
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// cropped pairs a projective transform with a trailing crop. The map is the
// inner transform's map alone; the crop clips the running bounds after the
// inner bounds are computed, never before.
type cropped struct {
	inner Projective
	crop  Projective
}

func (c *cropped) Sample(rng *rand.Rand) State {
	return []State{c.inner.Sample(rng), c.crop.Sample(rng)}
}

func (c *cropped) Project(b bounds.Bounds, s State) (projective.Map, error) {
	ss := subStates(s, 2)
	return c.inner.Project(b, ss[0])
}

func (c *cropped) ProjectBounds(m projective.Map, b bounds.Bounds, s State) (bounds.Bounds, error) {
	ss := subStates(s, 2)
	ib, err := c.inner.ProjectBounds(m, b, ss[0])
	if err != nil {
		return nil, err
	}
	return c.crop.ProjectBounds(projective.Identity(), ib, ss[1])
}

func (c *cropped) Cropping() {}

// sequence applies transforms one after another with no map folding. Each
// step is fully evaluated, bounds and data, before the next begins.
type sequence struct {
	steps []Transform
}

// Sequence chains transforms as explicit sequential steps, bypassing map
// folding entirely. Compose produces sequences on its own where required;
// constructing one directly forces stepwise evaluation.
func Sequence(steps ...Transform) Transform {
	return &sequence{steps: steps}
}

func (q *sequence) Sample(rng *rand.Rand) State {
	ss := make([]State, len(q.steps))
	for i, t := range q.steps {
		ss[i] = t.Sample(rng)
	}
	return ss
}

func subStates(s State, n int) []State {
	if ss, ok := s.([]State); ok && len(ss) == n {
		return ss
	}
	return make([]State, n)
}
