// Package rng is the process-wide (really: per-worker) RNG facade named in spec.md §3:
// a seeded Mersenne Twister plus uniform/normal/exponential/Poisson primitives and the
// derived samplers the source and transport packages consume (unit sphere direction,
// deflection cone, acolinearity, truncated Gaussian, truncated double-exponential).
//
// Every sampler documents how many Uniform01 draws it consumes so that swapping the
// underlying generator for another of the same API does not change a worker's sampled
// sequence length, per spec.md §9 ("RNG determinism").
package rng

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator is a single worker's RNG stream. It is not safe for concurrent use —
// per spec.md §5, one Generator belongs to exactly one worker.
type Generator struct {
	src *mt19937
}

// New seeds a Generator the way spec.md §5 requires per worker:
// seed + rank*threads + threadIdx. Callers compute that sum and pass it here.
func New(seed uint64) *Generator {
	return &Generator{src: newMT19937(uint32(seed))}
}

// Int63 and Seed/Uint64 satisfy rand.Source64 so distuv distributions can use this
// generator as their entropy source.
func (g *Generator) Int63() int64  { return int64(g.src.Uint64() >> 1) }
func (g *Generator) Seed(s int64)  { g.src.Seed(uint32(s)) }
func (g *Generator) Uint64() uint64 { return g.src.Uint64() }

// Uniform01 draws one uniform sample in [0,1). One Uniform32 draw consumed.
func (g *Generator) Uniform01() float64 {
	return float64(g.src.Uint32()) / (1 << 32)
}

// Normal draws one N(mean, sigma) sample. Consumes 2 Uniform01-equivalent draws
// (distuv.Normal's Box-Muller-free inverse-CDF implementation draws exactly one
// Source.Uint64, i.e. two Uniform32 draws via Int63).
func (g *Generator) Normal(mean, sigma float64) float64 {
	d := distuv.Normal{Mu: mean, Sigma: sigma, Src: g}
	return d.Rand()
}

// Exponential draws one sample from an exponential distribution with the given rate.
func (g *Generator) Exponential(rate float64) float64 {
	d := distuv.Exponential{Rate: rate, Src: g}
	return d.Rand()
}

// Poisson draws one sample from a Poisson distribution with the given mean.
func (g *Generator) Poisson(lambda float64) float64 {
	d := distuv.Poisson{Lambda: lambda, Src: g}
	return d.Rand()
}
