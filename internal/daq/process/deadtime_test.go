package process_test

import (
	"testing"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/daq/process"
)

func TestDeadtimeNonParalyzableInvariant(t *testing.T) {
	buf := daq.NewEventBuffer()
	for _, tm := range []float64{0, 0.5e-7, 1.5e-7, 3.0e-7, 3.05e-7} {
		ev := daq.NewInteraction()
		ev.Time = tm
		buf.Append(ev)
	}
	d := &process.Deadtime{Tau: 2e-7, Mode: process.NonParalyzable, Component: sameComponent}
	var stats daq.ProcessStats
	d.Stop(buf, 0, buf.Len(), &stats)

	var lastAccepted float64
	first := true
	for i := 0; i < buf.Len(); i++ {
		ev := buf.At(i)
		if ev.Dropped {
			continue
		}
		if !first && ev.Time-lastAccepted < d.Tau {
			t.Fatalf("accepted event at %v within tau of previous accepted at %v", ev.Time, lastAccepted)
		}
		lastAccepted = ev.Time
		first = false
	}
}

func TestDeadtimeParalyzableDroppedHasPredecessorWithinTau(t *testing.T) {
	buf := daq.NewEventBuffer()
	for _, tm := range []float64{0, 0.5e-7, 1.0e-7, 1.5e-7, 5.0e-7} {
		ev := daq.NewInteraction()
		ev.Time = tm
		buf.Append(ev)
	}
	d := &process.Deadtime{Tau: 2e-7, Mode: process.Paralyzable, Component: sameComponent}
	var stats daq.ProcessStats
	d.Stop(buf, 0, buf.Len(), &stats)

	for i := 1; i < buf.Len(); i++ {
		if !buf.At(i).Dropped {
			continue
		}
		if buf.At(i).Time-buf.At(i-1).Time >= d.Tau {
			t.Fatalf("dropped event %d has no predecessor within tau", i)
		}
	}
}
