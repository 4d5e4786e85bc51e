package transform

import "math/rand"

// Distribution is the random source contract used for parameter sampling:
// given a random number generator it returns one sampled value. Transforms
// accept a Distribution so callers can swap the uniform defaults for
// whatever sampling policy their pipeline needs.
type Distribution interface {
	Sample(rng *rand.Rand) float64
}

// Uniform samples uniformly from [Low, High).
type Uniform struct {
	Low, High float64
}

func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Low + randFloat(rng)*(u.High-u.Low)
}

// Normal samples from a normal distribution.
type Normal struct {
	Mean, Stddev float64
}

func (n Normal) Sample(rng *rand.Rand) float64 {
	if rng == nil {
		return n.Mean + rand.NormFloat64()*n.Stddev
	}
	return n.Mean + rng.NormFloat64()*n.Stddev
}

// Const always returns the same value. Useful for pinning a transform's
// parameter in tests or fixed pipelines.
type Const float64

func (c Const) Sample(*rand.Rand) float64 { return float64(c) }

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
