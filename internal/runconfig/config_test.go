package runconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsAndNormalize(t *testing.T) {
	path := writeTempConfig(t, `
scene: phantom.scene
seed: 42
time: 10
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Threads != 1 || cfg.World != 1 || cfg.Rank != 0 {
		t.Errorf("defaults = threads=%d world=%d rank=%d, want 1/1/0", cfg.Threads, cfg.World, cfg.Rank)
	}
}

func TestLoadMissingScenePath(t *testing.T) {
	path := writeTempConfig(t, "seed: 1\ntime: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a missing scene path")
	}
}

func TestLoadRankOutOfRange(t *testing.T) {
	path := writeTempConfig(t, "scene: s.scene\ntime: 1\nrank: 3\nworld: 2\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for rank >= world")
	}
}

func TestWorkerSeed(t *testing.T) {
	cfg := &Config{Seed: 100, Rank: 2, Threads: 4}
	if got, want := cfg.WorkerSeed(3), uint64(100+2*4+3); got != want {
		t.Errorf("WorkerSeed(3) = %d, want %d", got, want)
	}
}
