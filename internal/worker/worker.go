// Package worker is the per-simulation-thread run loop spec.md §5 describes in prose
// without naming a module. Grounded on the teacher's App.Run/module-install shape
// (app.go, app_builder.go) generalized from an ECS frame loop to a
// decay/ray-trace/DAQ-flush loop.
package worker

import (
	"context"
	"fmt"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/logging"
	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/runconfig"
	"github.com/grayscene/gray/internal/scene"
	"github.com/grayscene/gray/internal/source"
	"github.com/grayscene/gray/internal/transport"
)

// flushThreshold is the soft cap of spec.md §5 "periodic ProcessSingles/
// ProcessCoincidences/ClearComplete once the buffer exceeds a soft cap": large enough
// that a merge/coincidence window rarely spans two flushes, small enough the buffer
// never grows unbounded across a long run.
const flushThreshold = 4096

// Stats is one worker's final tally: the photon-transport counters plus the DAQ
// model's aggregated processor stats and the number of decays actually simulated.
type Stats struct {
	Decays    int
	Transport transport.GammaRayTraceStats
	Daq       daq.Stats
}

// Worker bundles one fully independent {SourceList, Scene, DaqModel} replica plus its
// own RNG stream, per spec.md §5 "Shared-resource policy": no shared mutable state
// across workers besides the immutable Scene/material tables.
type Worker struct {
	Rank      int
	ThreadIdx int
	Sources   *source.SourceList
	Scene     *scene.Scene
	Daq       *daq.Model
	Rng       *rng.Generator
	Policy    transport.LoggingPolicy
	Log       logging.Logger
}

// New builds a Worker with the seed convention of spec.md §5:
// seed + rank*threads + threadIdx.
func New(cfg *runconfig.Config, threadIdx int, sl *source.SourceList, sc *scene.Scene, model *daq.Model, policy transport.LoggingPolicy, log logging.Logger) *Worker {
	return &Worker{
		Rank:      cfg.Rank,
		ThreadIdx: threadIdx,
		Sources:   sl,
		Scene:     sc,
		Daq:       model,
		Rng:       rng.New(cfg.WorkerSeed(threadIdx)),
		Policy:    policy,
		Log:       log,
	}
}

// Run alternates "decay -> ray-trace -> append to DAQ buffer" with periodic
// singles/coincidence processing, per spec.md §2 "Control flow per simulation thread"
// and §5. It returns when SimulationIncomplete() goes false or an unrecoverable error
// (trace depth, empty stack while error logging is disabled, or geometry overlap) is
// raised, per spec.md §5 "Cancellation / timeouts. None."
func (w *Worker) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	photonID := 0

	for w.Sources.SimulationIncomplete() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		decay := w.Sources.Decay(photonID, w.Rng)
		if decay == nil {
			continue
		}
		photonID++
		stats.Decays++

		if w.Scene.TestOverlap(decay.EmissionPos) {
			return stats, fmt.Errorf("worker %d/%d: geometry overlap at decay %d", w.Rank, w.ThreadIdx, stats.Decays)
		}

		mats, err := w.Scene.MaterialStackAt(decay.EmissionPos)
		if err != nil {
			return stats, fmt.Errorf("worker %d/%d: material stack at decay %d: %w", w.Rank, w.ThreadIdx, stats.Decays, err)
		}
		stack := transport.NewMaterialStack(mats)

		events := transport.GammaRayTrace(w.Scene, decay, stack, w.Rng, w.Policy, &stats.Transport)
		for _, ev := range events {
			w.Daq.Buffer.Append(ev)
		}

		if !w.Policy.LogErrors {
			if stats.Transport.NoEmptyStackErrors > 0 || stats.Transport.NoTraceDepthErrors > 0 {
				return stats, fmt.Errorf("worker %d/%d: unrecoverable transport error at decay %d", w.Rank, w.ThreadIdx, stats.Decays)
			}
		}

		if w.Daq.Buffer.Len() > flushThreshold {
			w.Daq.ProcessSingles()
			w.Daq.ProcessCoincidences()
			w.Daq.ClearComplete()
		}
	}

	w.Daq.StopSingles()
	w.Daq.StopCoincidences()
	w.Daq.ClearComplete()

	stats.Daq = w.Daq.Stats()
	w.Log.Infof("worker %d/%d: %d decays, %d photons traced", w.Rank, w.ThreadIdx, stats.Decays, stats.Transport.NoPhotonsTraced)
	return stats, nil
}
