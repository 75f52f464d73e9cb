package process_test

import (
	"testing"

	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/daq/process"
)

func TestCoincScenarioC(t *testing.T) {
	buf := daq.NewEventBuffer()
	for i, tm := range []float64{0, 5e-9, 100e-9, 103e-9} {
		ev := daq.NewInteraction()
		ev.Time = tm
		ev.DetID = i // distinct detectors
		buf.Append(ev)
	}
	c := &process.Coinc{Window: 10e-9, RejectMultiples: true}
	var stats daq.ProcessStats
	c.Stop(buf, 0, buf.Len(), &stats)

	if stats.NoCoincEvents != 2 {
		t.Errorf("no_coinc_events = %d, want 2", stats.NoCoincEvents)
	}
	if stats.NoCoincPairEvents != 4 {
		t.Errorf("no_coinc_pair_events = %d, want 4", stats.NoCoincPairEvents)
	}
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i).CoincID < 0 {
			t.Errorf("event %d CoincID = %d, want >= 0", i, buf.At(i).CoincID)
		}
	}
}

func TestCoincSingleTaggedDropped(t *testing.T) {
	buf := daq.NewEventBuffer()
	for i, tm := range []float64{0, 1.0} {
		ev := daq.NewInteraction()
		ev.Time = tm
		ev.DetID = i
		buf.Append(ev)
	}
	c := &process.Coinc{Window: 10e-9}
	var stats daq.ProcessStats
	c.Stop(buf, 0, buf.Len(), &stats)

	if stats.NoCoincSingleEvents != 2 {
		t.Errorf("no_coinc_single_events = %d, want 2", stats.NoCoincSingleEvents)
	}
	if stats.NoDropped != 2 {
		t.Errorf("no_dropped = %d, want 2", stats.NoDropped)
	}
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i).CoincID != -2 {
			t.Errorf("event %d CoincID = %d, want -2", i, buf.At(i).CoincID)
		}
	}
}
