// Command gray is the composition root for the simulator: it loads a run
// configuration and wires a Scene/SourceList/DaqModel into internal/worker.RunPool.
// The scene-file grammar and physics-JSON loader of spec.md §6 are explicitly out of
// scope (spec.md §1), so this binary expects the scene and sources to already be
// constructed in code (or by a future loader) rather than parsing a `.scene` file
// itself; everything downstream of that construction step is fully wired.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/daqcfg"
	"github.com/grayscene/gray/internal/kdtree"
	"github.com/grayscene/gray/internal/logging"
	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/runconfig"
	"github.com/grayscene/gray/internal/scene"
	"github.com/grayscene/gray/internal/source"
	"github.com/grayscene/gray/internal/transport"
	"github.com/grayscene/gray/internal/worker"
)

// Exit codes, per spec.md §6 "CLI (main)".
const (
	exitOK = iota
	exitConfigError
	exitMappingError
	exitProcessFileError
	exitIOError
	exitMapWriteError
	exitSplitPrintError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("gray", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a runconfig YAML file")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return exitConfigError
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "gray: -config is required")
		return exitConfigError
	}

	log := logging.New("gray", *debug)

	cfg, err := runconfig.Load(*configPath)
	if err != nil {
		log.Errorf("loading config: %v", err)
		return exitConfigError
	}

	sc := scene.New(log)
	if err := sc.Build(kdtree.BuildOptions{}); err != nil {
		log.Errorf("building scene: %v", err)
		return exitIOError
	}

	var mapping *daqcfg.Mapping
	if cfg.MappingPath != "" {
		f, err := os.Open(cfg.MappingPath)
		if err != nil {
			log.Errorf("opening mapping file: %v", err)
			return exitMappingError
		}
		defer f.Close()
		mapping, err = daqcfg.LoadMapping(f)
		if err != nil {
			log.Errorf("parsing mapping file: %v", err)
			return exitMappingError
		}
	}

	var descs []daqcfg.Description
	if cfg.ProcessPath != "" {
		f, err := os.Open(cfg.ProcessPath)
		if err != nil {
			log.Errorf("opening process file: %v", err)
			return exitProcessFileError
		}
		descs, err = daqcfg.ParseDescriptions(f)
		f.Close()
		if err != nil {
			log.Errorf("parsing process file: %v", err)
			return exitProcessFileError
		}
		// Fail fast on a construction error (e.g. an ambiguous anger mapping) before
		// any worker starts, since every thread would build the identical chain.
		if _, err := daqcfg.BuildModel(descs, &daqcfg.Factory{Mapping: mapping, Rng: rng.New(cfg.Seed)}, 0); err != nil {
			log.Errorf("building process chain: %v", err)
			return exitProcessFileError
		}
	}

	policy := transport.LoggingPolicy{
		LogDecays:        cfg.LogAll,
		LogNonSensitive:  cfg.LogAll,
		LogNonDepositing: cfg.LogAll,
		LogErrors:        true,
	}

	newDaqModel := func(threadIdx int) *daq.Model {
		if len(descs) == 0 {
			return daq.NewModel()
		}
		// Offset so the DAQ blur RNG stream never aliases the transport RNG stream
		// seeded from the same WorkerSeed.
		r := rng.New(cfg.WorkerSeed(threadIdx) + 1<<31)
		model, err := daqcfg.BuildModel(descs, &daqcfg.Factory{Mapping: mapping, Rng: r}, 0)
		if err != nil {
			log.Errorf("building process chain: %v", err) // already validated above; unreachable in practice
			return daq.NewModel()
		}
		return model
	}

	ctx := context.Background()
	_, err = worker.RunPool(ctx, cfg,
		sc,
		func(threadIdx int) *source.SourceList { return source.NewSourceList() },
		newDaqModel,
		policy, log,
	)
	if err != nil {
		log.Errorf("run failed: %v", err)
		return exitIOError
	}
	return exitOK
}
