// SPDX-License-Identifier: MIT

// Package rng centralizes deterministic random streams for the synthesis
// pipeline.
//
// Goals:
//   - Determinism: same seed ⇒ identical synthetic tables.
//   - A single factory; no time-based sources anywhere in the engine.
//   - Independent substreams per replicate via ReplicateSeed / Derive.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. A run owns its *rand.Rand; use
//     Derive to hand a separate stream to anything running concurrently.
package rng

import (
	"math"
	"math/rand"
)

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// poissonNormalCutoff is the mean above which Poisson draws use the normal
// approximation instead of Knuth's product method.
const poissonNormalCutoff = 30.0

// New returns a deterministic *rand.Rand.
// Policy: seed == 0 ⇒ DefaultSeed; otherwise the seed is used verbatim.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// ReplicateSeed returns the seed for replicate k (0-based): seed+k.
// Replicate 0 reproduces a single run with the same seed.
func ReplicateSeed(seed int64, k int) int64 {
	if seed == 0 {
		seed = DefaultSeed
	}

	return seed + int64(k)
}

// deriveSeed mixes a parent seed and a stream identifier with a
// SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// Derive creates an independent stream from base and a stream id.
// base.Int63() is consumed once, so repeated ids still give distinct children.
// A nil base derives from DefaultSeed.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}

	return rand.New(rand.NewSource(deriveSeed(parent, stream)))
}

// Normal draws from N(mean, sd²).
func Normal(r *rand.Rand, mean, sd float64) float64 {
	return mean + sd*r.NormFloat64()
}

// Bernoulli reports true with probability p.
func Bernoulli(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Uniform draws from the open interval (0, 1), never returning 0.
func Uniform(r *rand.Rand) float64 {
	for {
		if u := r.Float64(); u > 0 {
			return u
		}
	}
}

// Poisson draws a Poisson(lambda) count. lambda ≤ 0 returns 0.
//
// Knuth's multiplication method below poissonNormalCutoff, rounded normal
// approximation (floored at 0) above it.
func Poisson(r *rand.Rand, lambda float64) int {
	if lambda <= 0 || math.IsNaN(lambda) {
		return 0
	}
	if lambda >= poissonNormalCutoff {
		v := math.Round(lambda + math.Sqrt(lambda)*r.NormFloat64())
		if v < 0 {
			return 0
		}

		return int(v)
	}
	limit := math.Exp(-lambda)
	k := 0
	p := r.Float64()
	for p > limit {
		k++
		p *= r.Float64()
	}

	return k
}

// Gamma draws from Gamma(shape, scale) with the Marsaglia–Tsang method.
// shape < 1 uses the boost Gamma(shape+1)·U^{1/shape}.
func Gamma(r *rand.Rand, shape, scale float64) float64 {
	if shape <= 0 || scale <= 0 {
		return 0
	}
	if shape < 1 {
		return Gamma(r, shape+1, scale) * math.Pow(Uniform(r), 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := Uniform(r)
		if u < 1-0.0331*x*x*x*x || math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// NegBinomial draws an over-dispersed count with the given mean and
// variance through the gamma–Poisson mixture. variance ≤ mean degrades to Poisson(mean).
func NegBinomial(r *rand.Rand, mean, variance float64) int {
	if variance <= mean {
		return Poisson(r, mean)
	}
	// size k = mean² / (variance - mean); λ ~ Gamma(k, mean/k).
	k := mean * mean / (variance - mean)

	return Poisson(r, Gamma(r, k, mean/k))
}

// Shuffle performs an in-place Fisher–Yates shuffle of the index slice.
func Shuffle(r *rand.Rand, a []int) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// ShuffleFloats performs an in-place Fisher–Yates shuffle of a.
func ShuffleFloats(r *rand.Rand, a []float64) {
	for i := len(a) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// Perm returns a permutation of 0..n-1. n ≤ 0 returns an empty slice.
func Perm(r *rand.Rand, n int) []int {
	if n <= 0 {
		return []int{}
	}
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(r, p)

	return p
}
