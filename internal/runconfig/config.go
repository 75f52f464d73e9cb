// Package runconfig is the YAML-based run configuration spec.md §6's CLI surface
// reduces to a flat struct: scene/process/mapping paths, the RNG seed, thread count,
// cluster-mode rank/world, and the write-toggle flags. Flag parsing and the
// scene-file/process-file grammars themselves stay out of scope (spec.md §1/§6); this
// package only owns the thing a worker pool actually needs to start.
package runconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config mirrors spec.md §6 "CLI (main)" one field per reads-a/toggles-a bullet.
type Config struct {
	ScenePath   string `yaml:"scene"`
	PhysicsPath string `yaml:"physics"`
	MappingPath string `yaml:"mapping_file,omitempty"`
	ProcessPath string `yaml:"process_file,omitempty"`

	Seed    uint64 `yaml:"seed"`
	Threads int    `yaml:"threads"`
	Rank    int    `yaml:"rank"`
	World   int    `yaml:"world"`

	SimulationTime float64 `yaml:"time"`
	StartTime      float64 `yaml:"start_time"`

	WritePos       bool `yaml:"write_pos"`
	WriteMap       bool `yaml:"write_map"`
	PrintSplits    bool `yaml:"print_splits"`
	RunOverlapTest bool `yaml:"run_overlap_test"`

	LogPositron bool `yaml:"log_positron"`
	LogAll      bool `yaml:"log_all"`
}

// Load reads and validates a YAML run configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runconfig: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("runconfig: parsing %s: %w", path, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.Threads <= 0 {
		c.Threads = 1
	}
	if c.World <= 0 {
		c.World = 1
	}
	if c.Rank < 0 || c.Rank >= c.World {
		return fmt.Errorf("runconfig: rank %d out of range for world %d", c.Rank, c.World)
	}
	if c.ScenePath == "" {
		return fmt.Errorf("runconfig: scene path is required")
	}
	if c.SimulationTime <= 0 {
		return fmt.Errorf("runconfig: simulation time must be positive")
	}
	return nil
}

// WorkerSeed computes the per-worker MT19937 seed of spec.md §5:
// seed + rank*threads + threadIdx.
func (c *Config) WorkerSeed(threadIdx int) uint64 {
	return c.Seed + uint64(c.Rank*c.Threads) + uint64(threadIdx)
}
