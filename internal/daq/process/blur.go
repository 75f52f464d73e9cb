package process

import (
	"math"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/rng"
)

const sigmaToFWHM = 2.3548200450309493 // 2*sqrt(2*ln(2))

// EnergyBlur perturbs each non-dropped event's energy by a Gaussian-FWHM fraction f,
// per spec.md §4.4.2. Ready = end always: Blur is a pure in-place transform.
type EnergyBlur struct {
	FWHMFraction float64
	Rng          *rng.Generator
}

func (b *EnergyBlur) Name() string { return "blur.energy" }

func (b *EnergyBlur) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	events := buf.Slice()
	for i := begin; i < end; i++ {
		if events[i].Dropped {
			continue
		}
		g := b.Rng.Normal(0, 1)
		events[i].Energy *= 1 + b.FWHMFraction/sigmaToFWHM*g
	}
	return end
}

func (b *EnergyBlur) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	b.Process(buf, begin, end, stats)
}

// EnergyBlurAtReference scales the FWHM fraction by sqrt(Eref/E) before applying the
// same Gaussian perturbation, per spec.md §4.4.2.
type EnergyBlurAtReference struct {
	FWHMFraction    float64
	ReferenceEnergy float64
	Rng             *rng.Generator
}

func (b *EnergyBlurAtReference) Name() string { return "blur.energy_at_reference" }

func (b *EnergyBlurAtReference) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	events := buf.Slice()
	for i := begin; i < end; i++ {
		if events[i].Dropped || events[i].Energy <= 0 {
			continue
		}
		f := b.FWHMFraction * math.Sqrt(b.ReferenceEnergy/events[i].Energy)
		g := b.Rng.Normal(0, 1)
		events[i].Energy *= 1 + f/sigmaToFWHM*g
	}
	return end
}

func (b *EnergyBlurAtReference) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	b.Process(buf, begin, end, stats)
}

// TimeBlur perturbs each non-dropped event's time by a Gaussian-FWHM tau, rejecting
// draws with |delta| > TauMax, per spec.md §4.4.2. A TimeBlur is always followed in the
// chain by another Sort with window 2*TauMax (daqcfg.BuildModel wires this).
type TimeBlur struct {
	FWHM   float64 // seconds
	TauMax float64 // seconds
	Rng    *rng.Generator
}

func (b *TimeBlur) Name() string { return "blur.time" }

func (b *TimeBlur) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	events := buf.Slice()
	sigma := b.FWHM / sigmaToFWHM
	for i := begin; i < end; i++ {
		if events[i].Dropped {
			continue
		}
		for {
			delta := b.Rng.Normal(0, sigma)
			if math.Abs(delta) <= b.TauMax {
				events[i].Time += delta
				break
			}
		}
	}
	return end
}

func (b *TimeBlur) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	b.Process(buf, begin, end, stats)
}
