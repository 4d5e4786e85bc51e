// Package augment provides geometric data augmentation for structured
// visual data: images, keypoint sets, polygons, bounding boxes and pixel
// masks.
//
// Transforms are composable geometric maps. Chains of pure transforms are
// collapsed into a single map so pixel data is resampled exactly once, and
// random parameters are sampled once per application and shared across
// every related item, so an image and its annotations always move together.
//
// Basic usage:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/menta2k/augment"
//		"github.com/menta2k/augment/pkg/bounds"
//		"github.com/menta2k/augment/pkg/item"
//		"github.com/menta2k/augment/pkg/transform"
//	)
//
//	func main() {
//		pipe := augment.NewPipeline(
//			transform.Rotate(15),
//			transform.RandomResizeCrop(224, 224),
//		).Seed(42)
//
//		img := item.NewImage(loadSomeImage())
//		pts := item.NewKeypoints(somePoints, img.Bounds())
//
//		out, err := pipe.Apply(item.NewMany(img, pts))
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(out.Bounds())
//	}
//
// The package consists of four main components:
//
// 1. Bounds (pkg/bounds): the valid coordinate extent of an item's data
// 2. Projective (pkg/projective): the composable, invertible 2D map
// 3. Item (pkg/item): typed (data, bounds) containers
// 4. Transform (pkg/transform): transform variants, composition and apply
package augment

import (
	"math/rand"

	"github.com/menta2k/augment/pkg/item"
	"github.com/menta2k/augment/pkg/transform"
)

// Version of the augment library
const Version = "1.0.0"

// Pipeline bundles a composed transform with a random source and per-call
// options. A Pipeline is not safe for concurrent use because of its random
// source; run one Pipeline per worker and they share nothing.
type Pipeline struct {
	tfm  transform.Transform
	rng  *rand.Rand
	opts []transform.Option
}

// NewPipeline composes the given transforms into one pipeline. With no
// arguments the pipeline is the identity.
func NewPipeline(tfms ...transform.Transform) *Pipeline {
	return &Pipeline{tfm: transform.Compose(tfms...)}
}

// Seed gives the pipeline a deterministic random source and returns the
// pipeline for chaining. Without a seed the process-wide source is used.
func (p *Pipeline) Seed(seed int64) *Pipeline {
	p.rng = rand.New(rand.NewSource(seed))
	return p
}

// Options appends apply options (fill color, interpolator) used on every
// application and returns the pipeline for chaining.
func (p *Pipeline) Options(opts ...transform.Option) *Pipeline {
	p.opts = append(p.opts, opts...)
	return p
}

// Transform returns the composed transform the pipeline applies.
func (p *Pipeline) Transform() transform.Transform {
	return p.tfm
}

// Apply transforms an item, sampling fresh random parameters for this call
// and sharing them across all of the item's parts.
func (p *Pipeline) Apply(it item.Item) (item.Item, error) {
	return transform.Apply(p.tfm, it, p.callOpts()...)
}

// ApplyInto transforms an item into a pre-allocated buffer, for tight loops
// where per-call allocation would dominate. The buffer is exclusively the
// caller's for the duration of the call.
func (p *Pipeline) ApplyInto(dst item.Item, it item.Item) error {
	return transform.ApplyInto(dst, p.tfm, it, p.callOpts()...)
}

func (p *Pipeline) callOpts() []transform.Option {
	opts := make([]transform.Option, 0, len(p.opts)+1)
	opts = append(opts, p.opts...)
	if p.rng != nil {
		opts = append(opts, transform.WithRand(p.rng))
	}
	return opts
}
