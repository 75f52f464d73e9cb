package material

import (
	"math"
	"testing"

	"github.com/grayscene/gray/internal/rng"
)

func flatTable(y float64) Table {
	return Table{X: []float64{0, 2}, Y: []float64{y, y}}
}

func TestTotalAttenuationSumsComponents(t *testing.T) {
	g := NewGammaStats("water", flatTable(0.01), flatTable(0.02), flatTable(0.005), flatTable(1), flatTable(1))
	got := g.TotalAttenuation(0.511)
	want := 0.01 + 0.02 + 0.005
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("TotalAttenuation = %v, want %v", got, want)
	}
}

func TestInteractionDistanceDisabled(t *testing.T) {
	g := NewGammaStats("vacuum", flatTable(0.01), flatTable(0), flatTable(0), flatTable(1), flatTable(1))
	g.EnableInteractions = false
	r := rng.New(1)
	d := g.InteractionDistance(0.511, r)
	if !math.IsInf(d, 1) {
		t.Errorf("expected +Inf distance when interactions disabled, got %v", d)
	}
}

func TestChooseInteractionAllPhotoelectric(t *testing.T) {
	g := NewGammaStats("lead", flatTable(1), flatTable(0), flatTable(0), flatTable(1), flatTable(1))
	r := rng.New(5)
	for i := 0; i < 100; i++ {
		if k := g.ChooseInteraction(0.1, r); k != Photoelectric {
			t.Fatalf("expected Photoelectric, got %v", k)
		}
	}
}

func TestComptonAngleWithinRange(t *testing.T) {
	g := NewGammaStats("water", flatTable(0.01), flatTable(0.02), flatTable(0.005), flatTable(1), flatTable(1))
	r := rng.New(3)
	for i := 0; i < 200; i++ {
		c := g.SampleComptonAngle(0.511, r)
		if c < -1.0001 || c > 1.0001 {
			t.Fatalf("cos(theta) out of range: %v", c)
		}
	}
}
