package process

import "github.com/grayscene/gray/internal/daq"

// Filter drops events whose energy falls outside [Low, High], per spec.md §4.4.3;
// High <= 0 means there is no upper bound.
// Ready = end always.
type Filter struct {
	Low  float64
	High float64
}

func (f *Filter) Name() string { return "filter" }

func (f *Filter) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	events := buf.Slice()
	for i := begin; i < end; i++ {
		if events[i].Dropped {
			continue
		}
		if events[i].Energy < f.Low || (f.High > 0 && events[i].Energy > f.High) {
			events[i].Dropped = true
			stats.NoDropped++
			stats.NoFiltered++
		} else {
			stats.NoKept++
		}
	}
	return end
}

func (f *Filter) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	f.Process(buf, begin, end, stats)
}
