package process

import "github.com/grayscene/gray/internal/daq"

// Coinc implements the prompt/delayed coincidence sorter of spec.md §4.4.6. A Coinc
// processor is stateless across calls: every invocation resets coinc_id to -1 over its
// whole view and re-derives every group from scratch, per spec.md §4.4 "Coincidence
// fan-out" — it is run in parallel with, not chained after, the singles processors.
type Coinc struct {
	Window          float64
	WindowOffset    float64 // 0 for prompt, nonzero for delayed
	Paralyzable     bool
	RejectMultiples bool
}

func (c *Coinc) Name() string { return "coinc" }

func (c *Coinc) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	return c.run(buf, begin, end, stats, false)
}

func (c *Coinc) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	c.run(buf, begin, end, stats, true)
}

func (c *Coinc) run(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats, final bool) int {
	events := buf.Slice()
	for i := begin; i < end; i++ {
		events[i].CoincID = -1
	}

	ready := end
	for i := begin; i < end; i++ {
		e := events[i]
		if e.Dropped || e.CoincID != -1 {
			continue
		}
		lower := e.Time + c.WindowOffset
		upper := lower + c.Window

		group := []int{i}
		j := i + 1
		truncated := false
		for {
			found := -1
			for ; j < end; j++ {
				if events[j].Dropped || events[j].CoincID != -1 {
					continue
				}
				if events[j].Time > upper {
					break
				}
				found = j
				break
			}
			if found == -1 {
				if j >= end && !final {
					truncated = true
				}
				break
			}
			group = append(group, found)
			events[found].CoincID = -3 // provisional: reserved, classified below
			j = found + 1
			if c.Paralyzable {
				upper = events[found].Time + c.WindowOffset + c.Window
			}
		}

		if truncated {
			for _, k := range group {
				if k != i {
					events[k].CoincID = -1
				}
			}
			ready = i
			break
		}

		n := len(group)
		switch {
		case n == 1:
			stats.NoCoincSingleEvents++
			events[i].CoincID = -2
			stats.NoDropped++
		case n == 2:
			id := stats.NoCoincEvents
			stats.NoCoincEvents++
			for _, k := range group {
				events[k].CoincID = id
			}
			stats.NoCoincPairEvents += n
			stats.NoKept += n
		default:
			stats.NoCoincMultiplesEvents += n
			if c.RejectMultiples {
				for _, k := range group {
					events[k].CoincID = -2
				}
				stats.NoDropped += n
			} else {
				id := stats.NoCoincEvents
				stats.NoCoincEvents++
				for _, k := range group {
					events[k].CoincID = id
				}
				stats.NoKept += n
			}
		}
	}

	if final {
		return end
	}
	return ready
}
