package worker_test

import (
	"context"
	"math"
	"testing"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/kdtree"
	"github.com/grayscene/gray/internal/logging"
	"github.com/grayscene/gray/internal/material"
	"github.com/grayscene/gray/internal/runconfig"
	"github.com/grayscene/gray/internal/scene"
	"github.com/grayscene/gray/internal/source"
	"github.com/grayscene/gray/internal/transport"
	"github.com/grayscene/gray/internal/vecmath"
	"github.com/grayscene/gray/internal/worker"
)

// vacuumSphere is a detector-shaped sphere whose material never interacts, so every
// traced photon exits cleanly and the only recorded events are decay markers.
func vacuumSphere(radius float64, detID int) *scene.Sphere {
	mat := &material.GammaStats{Name: "vacuum"} // EnableInteractions defaults false
	return &scene.Sphere{
		BaseViewable: scene.BaseViewable{Mat: mat, Det: detID},
		Center:       vecmath.VectorR3{},
		Radius:       radius,
	}
}

func buildTestScene(t *testing.T) *scene.Scene {
	t.Helper()
	sc := scene.New(logging.Nop{})
	sc.AddViewable(vacuumSphere(50, -1))
	if err := sc.Build(kdtree.BuildOptions{}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return sc
}

func buildTestSourceList(t *testing.T) *source.SourceList {
	t.Helper()
	sl := source.NewSourceList()
	sl.Sources = []source.Source{&source.GeomSource{
		BaseSource: source.BaseSource{
			Activity0: 1e4,
			Isotope:   source.Isotope{HalfLife: math.Inf(1), Kind: source.Positron},
		},
		Sampler: source.PointSampler{Pos: vecmath.VectorR3{}},
		Center:  vecmath.VectorR3{},
	}}
	return sl
}

func TestWorkerRunCompletesAndCountsDecays(t *testing.T) {
	sc := buildTestScene(t)
	sl := buildTestSourceList(t)
	sl.SetStartTime(0)
	sl.SetSimulationTime(0.01)

	cfg := &runconfig.Config{Seed: 7, Threads: 1, Rank: 0, World: 1}
	w := worker.New(cfg, 0, sl, sc, daq.NewModel(), transport.LoggingPolicy{LogDecays: true, LogErrors: true}, logging.Nop{})

	stats, err := w.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Decays == 0 {
		t.Fatal("expected at least one decay to be simulated")
	}
	if stats.Transport.NoPhotonsTraced != 2*stats.Decays {
		t.Errorf("photons traced = %d, want %d (2 per positron decay)", stats.Transport.NoPhotonsTraced, 2*stats.Decays)
	}
	if stats.Daq.NoEvents == 0 {
		t.Error("expected decay-marker events to reach the DAQ buffer")
	}
}

func TestRunPoolFansOutAcrossThreads(t *testing.T) {
	sc := buildTestScene(t)
	cfg := &runconfig.Config{Seed: 3, Threads: 4, Rank: 0, World: 1, StartTime: 0, SimulationTime: 0.01}

	stats, err := worker.RunPool(context.Background(), cfg, sc,
		func(int) *source.SourceList {
			sl := buildTestSourceList(t)
			return sl
		},
		func(int) *daq.Model { return daq.NewModel() },
		transport.LoggingPolicy{LogDecays: true, LogErrors: true},
		logging.Nop{},
	)
	if err != nil {
		t.Fatalf("RunPool: %v", err)
	}
	if len(stats) != cfg.Threads {
		t.Fatalf("got %d worker stats, want %d", len(stats), cfg.Threads)
	}
	for i, s := range stats {
		if s.Decays == 0 {
			t.Errorf("worker %d produced no decays", i)
		}
	}
}
