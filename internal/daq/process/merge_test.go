package process_test

import (
	"testing"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/daq/process"
)

func sameComponent(int) int { return 0 }

func scenarioABuffer() *daq.EventBuffer {
	buf := daq.NewEventBuffer()
	for _, e := range []struct {
		t float64
		e float64
	}{{0, 1}, {0.99, 2}, {3, 3}, {4, 4}} {
		ev := daq.NewInteraction()
		ev.Time = e.t
		ev.Energy = e.e
		buf.Append(ev)
	}
	return buf
}

func TestMergeFirstScenarioA(t *testing.T) {
	buf := scenarioABuffer()
	m := &process.Merge{Window: 1.0, Mode: process.MergeFirst, Component: sameComponent}
	var stats daq.ProcessStats
	ready := m.Process(buf, 0, buf.Len(), &stats)
	if ready != buf.Len()-1 {
		t.Fatalf("ready = %d, want %d", ready, buf.Len()-1)
	}
	m.Stop(buf, ready, buf.Len(), &stats)

	wantDropped := []bool{false, true, false, false}
	wantEnergy := []float64{3, 2, 3, 4}
	for i := 0; i < buf.Len(); i++ {
		ev := buf.At(i)
		if ev.Dropped != wantDropped[i] {
			t.Errorf("event %d dropped = %v, want %v", i, ev.Dropped, wantDropped[i])
		}
		if ev.Energy != wantEnergy[i] {
			t.Errorf("event %d energy = %v, want %v", i, ev.Energy, wantEnergy[i])
		}
	}
	if stats.NoKept != 3 || stats.NoDropped != 1 {
		t.Errorf("no_kept=%d no_dropped=%d, want 3/1", stats.NoKept, stats.NoDropped)
	}
}

func TestMergeMaxScenarioB(t *testing.T) {
	buf := scenarioABuffer()
	m := &process.Merge{Window: 1.0, Mode: process.MergeMax, Component: sameComponent}
	var stats daq.ProcessStats
	ready := m.Process(buf, 0, buf.Len(), &stats)
	m.Stop(buf, ready, buf.Len(), &stats)

	wantDropped := []bool{true, false, false, false}
	wantEnergy := []float64{1, 3, 3, 4}
	for i := 0; i < buf.Len(); i++ {
		ev := buf.At(i)
		if ev.Dropped != wantDropped[i] {
			t.Errorf("event %d dropped = %v, want %v", i, ev.Dropped, wantDropped[i])
		}
		if ev.Energy != wantEnergy[i] {
			t.Errorf("event %d energy = %v, want %v", i, ev.Energy, wantEnergy[i])
		}
	}
}

func TestMergeOutsideWindowNoneDropped(t *testing.T) {
	buf := daq.NewEventBuffer()
	for _, tm := range []float64{0, 5, 10, 15} {
		ev := daq.NewInteraction()
		ev.Time = tm
		ev.Energy = 1
		buf.Append(ev)
	}
	m := &process.Merge{Window: 1.0, Mode: process.MergeFirst, Component: sameComponent}
	var stats daq.ProcessStats
	m.Stop(buf, 0, buf.Len(), &stats)
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i).Dropped {
			t.Errorf("event %d unexpectedly dropped", i)
		}
	}
}
