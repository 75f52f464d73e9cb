package source

import (
	"math"
	"testing"

	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/vecmath"
)

func sphereGeomSource(activity, halfLife float64) *GeomSource {
	return &GeomSource{
		BaseSource: BaseSource{
			Activity0: activity,
			Isotope:   Isotope{HalfLife: halfLife, Kind: Positron},
		},
		Sampler: SphereSampler{Center: vecmath.VectorR3{}, Radius: 1},
		Center:  vecmath.VectorR3{},
	}
}

// TestActivityIntegration is spec.md §8 property 7.
func TestActivityIntegration(t *testing.T) {
	a0 := 3.7e10 // 1 Ci in decays/s
	halfLife := 1.0
	src := sphereGeomSource(a0, halfLife)
	lambda := math.Ln2 / halfLife

	t0, dt := 0.2, 0.5
	got := src.GetExpectedDecays(t0, dt)
	want := a0 / lambda * (math.Exp(-lambda*t0) - math.Exp(-lambda*(t0+dt)))
	if math.Abs(got-want) > 1e-6*math.Abs(want) {
		t.Errorf("GetExpectedDecays(%v,%v) = %v, want %v", t0, dt, got, want)
	}
}

func TestActivityIntegrationInfiniteHalfLife(t *testing.T) {
	a0 := 1000.0
	src := sphereGeomSource(a0, math.Inf(1))
	got := src.GetExpectedDecays(0.3, 0.7)
	want := a0 * 0.7
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("GetExpectedDecays with infinite half-life = %v, want %v", got, want)
	}
}

// TestSphereSourceActivityScenarioD is spec.md §8 scenario D.
func TestSphereSourceActivityScenarioD(t *testing.T) {
	const oneCi = 3.7e10
	src := sphereGeomSource(oneCi, 1.0)

	if got := src.GetActivity(0); math.Abs(got-oneCi) > 1e-6*oneCi {
		t.Errorf("activity at t=0 = %v, want %v", got, oneCi)
	}
	if got := src.GetActivity(1); math.Abs(got-0.5*oneCi) > 1e-6*oneCi {
		t.Errorf("activity at t=1s = %v, want %v", got, 0.5*oneCi)
	}
	if got := src.GetActivity(1000); got > 1e-6*oneCi {
		t.Errorf("activity at t->inf = %v, want ~0", got)
	}
}

// TestSearchSplitTimeScenarioE is spec.md §8 scenario E.
func TestSearchSplitTimeScenarioE(t *testing.T) {
	sl := NewSourceList()
	sl.Sources = []Source{sphereGeomSource(3.7e10, 1.0)}
	sl.SetStartTime(0)
	sl.SetSimulationTime(2)

	split := sl.SearchSplitTime(0.5)
	if split >= 1.0 {
		t.Fatalf("split time %v, want < 1s", split)
	}

	first := sl.totalExpectedPhotons(0, split, true)
	second := sl.totalExpectedPhotons(split, 2-split, true)
	if math.Abs(first-second) > 1e-5*first {
		t.Errorf("ExpectedPhotons(0,%v)=%v != ExpectedPhotons(%v,%v)=%v", split, first, split, 2-split, second)
	}
}

// TestNegativeSourceVeto checks the rejection contract of spec.md §4.3: a decay whose
// point falls inside a negative-activity source is never returned.
func TestNegativeSourceVeto(t *testing.T) {
	positive := sphereGeomSource(1e6, math.Inf(1))
	negative := &GeomSource{
		BaseSource: BaseSource{Activity0: -1e9, Isotope: Isotope{HalfLife: math.Inf(1), Kind: Positron}},
		Sampler:    SphereSampler{Center: vecmath.VectorR3{}, Radius: 0.5},
	}
	sl := NewSourceList()
	sl.Sources = []Source{positive, negative}
	sl.SetStartTime(0)
	sl.SetSimulationTime(1000)

	r := rng.New(7)
	for i := 0; i < 200; i++ {
		decay := sl.Decay(i, r)
		if decay == nil {
			break
		}
		if negative.Inside(decay.EmissionPos) {
			t.Fatalf("decay %d landed inside the negative source veto region", i)
		}
	}
}
