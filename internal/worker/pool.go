package worker

import (
	"context"
	"sync"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/logging"
	"github.com/grayscene/gray/internal/runconfig"
	"github.com/grayscene/gray/internal/scene"
	"github.com/grayscene/gray/internal/source"
	"github.com/grayscene/gray/internal/transport"
)

// NewSourceListFunc and NewDaqModelFunc build one worker's fully-independent replicas,
// per spec.md §5 "Source lists are cloned per worker ... DAQ processor objects are
// owned by each worker's DaqModel." The caller supplies these because the
// SourceList/Daq construction needs the parsed scene/process-file state that lives
// outside this package's scope.
type NewSourceListFunc func(threadIdx int) *source.SourceList
type NewDaqModelFunc func(threadIdx int) *daq.Model

// RunPool fans cfg.Threads workers out over a shared, immutable Scene, each with its
// own SourceList/DaqModel replica and RNG stream, per spec.md §5
// "Scheduling is worker-parallel across simulation threads ... Workers never share
// mutable state." It blocks until every worker has finished, then returns the
// per-worker stats and the first non-nil worker error in thread order.
func RunPool(ctx context.Context, cfg *runconfig.Config, sc *scene.Scene, newSources NewSourceListFunc, newDaq NewDaqModelFunc, policy transport.LoggingPolicy, log logging.Logger) ([]Stats, error) {
	stats := make([]Stats, cfg.Threads)
	errs := make([]error, cfg.Threads)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Threads; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()

			sl := newSources(i)
			sl.SetStartTime(cfg.StartTime)
			sl.SetSimulationTime(cfg.SimulationTime)
			sl.AdjustTimeForSplit(cfg.Rank*cfg.Threads+i, cfg.World*cfg.Threads)

			model := newDaq(i)
			w := New(cfg, i, sl, sc, model, policy, log)
			s, err := w.Run(ctx)
			stats[i] = s
			errs[i] = err
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}
