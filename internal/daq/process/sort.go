// Package process implements the DAQ pipeline stages of spec.md §4.4.1-§4.4.6: Sort,
// Blur, Filter, Merge, Deadtime and Coinc, each an independent daq.Process.
package process

import "github.com/grayscene/gray/internal/daq"

// Sort insertion-sorts a near-time-ordered range by event time, per spec.md §4.4.1.
// Insertion sort is chosen (as the teacher's and original's comments note) because the
// input is nearly sorted already — any out-of-order window is bounded by MaxWaitTime.
type Sort struct {
	MaxWaitTime float64 // seconds
}

func (s *Sort) Name() string { return "sort" }

func (s *Sort) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	events := buf.Slice()
	for i := begin + 1; i < end; i++ {
		key := events[i]
		j := i - 1
		for j >= begin && events[j].Time > key.Time {
			events[j+1] = events[j]
			j--
		}
		events[j+1] = key
	}

	if end == begin {
		return begin
	}
	newest := events[end-1].Time
	ready := begin
	for i := begin; i < end; i++ {
		if newest-events[i].Time >= s.MaxWaitTime {
			ready = i + 1
		} else {
			break
		}
	}
	for i := begin; i < ready; i++ {
		if !events[i].Dropped {
			stats.NoKept++
		}
	}
	return ready
}

func (s *Sort) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	events := buf.Slice()
	for i := begin + 1; i < end; i++ {
		key := events[i]
		j := i - 1
		for j >= begin && events[j].Time > key.Time {
			events[j+1] = events[j]
			j--
		}
		events[j+1] = key
	}
	for i := begin; i < end; i++ {
		if !events[i].Dropped {
			stats.NoKept++
		}
	}
}
