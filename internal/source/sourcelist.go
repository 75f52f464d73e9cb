package source

import (
	"fmt"

	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/transport"
	"github.com/grayscene/gray/internal/vecmath"
)

// SourceList holds the simulation's sources and the shared time bookkeeping of
// spec.md §4.3 "SourceList": a default isotope prototype plus named overrides, the
// [startTime, startTime+simTime] window, and the time-split search used to partition
// work across workers.
type SourceList struct {
	Sources []Source

	isotopes       map[string]Isotope
	defaultIsotope string

	startTime float64
	simTime   float64

	currentTime float64
	splitEnd    float64 // this worker's slice ends here; set by AdjustTimeForSplit
}

// NewSourceList returns an empty list with no isotope prototypes registered.
func NewSourceList() *SourceList {
	return &SourceList{isotopes: make(map[string]Isotope)}
}

// RegisterIsotope stores an isotope prototype by name, per spec.md §4.3 "Holds isotope
// prototypes by name; a 'default' isotope is stamped onto each source unless
// overridden."
func (sl *SourceList) RegisterIsotope(name string, iso Isotope, isDefault bool) {
	sl.isotopes[name] = iso
	if isDefault {
		sl.defaultIsotope = name
	}
}

// Isotope resolves a name to its registered prototype, falling back to the default
// when name is empty.
func (sl *SourceList) Isotope(name string) (Isotope, error) {
	if name == "" {
		name = sl.defaultIsotope
	}
	iso, ok := sl.isotopes[name]
	if !ok {
		return Isotope{}, fmt.Errorf("source: unknown isotope %q", name)
	}
	return iso, nil
}

func (sl *SourceList) SetSimulationTime(t float64) {
	sl.simTime = t
	sl.splitEnd = sl.startTime + t
}
func (sl *SourceList) SetStartTime(t0 float64) {
	sl.startTime = t0
	sl.currentTime = t0
	sl.splitEnd = t0 + sl.simTime
}

// totalExpectedPhotons is spec.md §4.3's ExpectedPhotons(t0, dt) summed over the
// list's positive (non-subtractive) sources, the population whose inter-decay
// intervals actually drive the Poisson clock.
func (sl *SourceList) totalExpectedPhotons(start, dt float64, positiveOnly bool) float64 {
	var total float64
	for _, s := range sl.Sources {
		g, ok := s.(*GeomSource)
		if positiveOnly && ok && g.Activity0 < 0 {
			continue
		}
		total += s.GetExpectedPhotons(start, dt)
	}
	return total
}

// totalActivity is the rate parameter of the next inter-decay draw: the sum of every
// positive source's instantaneous activity at time t.
func (sl *SourceList) totalActivity(t float64, positiveOnly bool) float64 {
	var total float64
	for _, s := range sl.Sources {
		g, ok := s.(*GeomSource)
		if positiveOnly && ok && g.Activity0 < 0 {
			continue
		}
		total += s.GetActivity(t)
	}
	return total
}

// SearchSplitTime binary-searches for t such that
// ExpectedPhotons(startTime, t-startTime) = frac * ExpectedPhotons(startTime, simTime),
// per spec.md §4.3 and the testable property of §8 scenario E.
func (sl *SourceList) SearchSplitTime(frac float64) float64 {
	total := sl.totalExpectedPhotons(sl.startTime, sl.simTime, true)
	target := frac * total

	lo, hi := sl.startTime, sl.startTime+sl.simTime
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		got := sl.totalExpectedPhotons(sl.startTime, mid-sl.startTime, true)
		if got < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// AdjustTimeForSplit partitions [startTime, startTime+simTime] into `world` disjoint
// intervals of equal expected photon count and restricts this list to the rank-th one,
// per spec.md §4.3.
func (sl *SourceList) AdjustTimeForSplit(rank, world int) {
	if world <= 1 {
		return
	}
	begin := sl.startTime
	if rank > 0 {
		begin = sl.SearchSplitTime(float64(rank) / float64(world))
	}
	end := sl.startTime + sl.simTime
	if rank < world-1 {
		end = sl.SearchSplitTime(float64(rank+1) / float64(world))
	}
	sl.startTime = begin
	sl.simTime = end - begin
	sl.currentTime = begin
	sl.splitEnd = end
}

// SimulationIncomplete is true while current time has not yet reached this worker's
// end time, per spec.md §4.3.
func (sl *SourceList) SimulationIncomplete() bool { return sl.currentTime < sl.splitEnd }

// Decay advances simulated time by a random inter-decay interval drawn from an
// exponential with rate equal to the total positive activity at the current time,
// rejection-tests the sampled point against every negative source (retrying the whole
// draw on veto), and returns the decay, per spec.md §4.3.
func (sl *SourceList) Decay(photonID int, r *rng.Generator) *transport.NuclearDecay {
	for {
		rate := sl.totalActivity(sl.currentTime, true)
		if rate <= 0 {
			sl.currentTime = sl.splitEnd
			return nil
		}
		sl.currentTime += r.Exponential(rate)
		if sl.currentTime >= sl.splitEnd {
			return nil
		}

		src := sl.pickSource(rate, r)
		if src == nil {
			continue
		}
		decay := src.Decay(photonID, sl.currentTime, r)
		if sl.vetoed(decay.EmissionPos) {
			continue
		}
		return decay
	}
}

// pickSource draws a positive source weighted by its instantaneous activity.
func (sl *SourceList) pickSource(totalRate float64, r *rng.Generator) Source {
	target := r.Uniform01() * totalRate
	var acc float64
	for _, s := range sl.Sources {
		if g, ok := s.(*GeomSource); ok && g.Activity0 < 0 {
			continue
		}
		acc += s.GetActivity(sl.currentTime)
		if acc >= target {
			return s
		}
	}
	return nil
}

func (sl *SourceList) vetoed(pos vecmath.VectorR3) bool {
	for _, s := range sl.Sources {
		g, ok := s.(*GeomSource)
		if !ok || g.Activity0 >= 0 {
			continue
		}
		if s.Inside(pos) {
			return true
		}
	}
	return false
}
