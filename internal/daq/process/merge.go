package process

import (
	"fmt"

	"github.com/grayscene/gray/internal/daq"
)

// MergeMode selects the tie-break rule of spec.md §4.4.4.
type MergeMode int

const (
	MergeFirst MergeMode = iota
	MergeMax
	MergeAnger
)

// ComponentOf projects a detector id to a coarser component id (e.g. block), the
// lookup table spec.md §4.4.4 describes as coming from the mapping file.
type ComponentOf func(detID int) int

// BlockCoord projects a detector id to one of the three orthogonal block-coordinate
// maps (bx, by, bz) the anger-logic centroid needs.
type BlockCoord func(detID int) int

// Merge combines events from the same component within Window, per spec.md §4.4.4.
type Merge struct {
	Window    float64
	Mode      MergeMode
	Component ComponentOf

	// Anger-only fields.
	BX, BY, BZ BlockCoord
	reverse    map[[3]int]int // (bx,by,bz) -> det id, built by NewAngerMerge
}

func (m *Merge) Name() string { return "merge" }

// NewAngerMerge builds the reverse (bx,by,bz)->detID map once at construction from the
// four lookup tables, per spec.md §4.4.4; ambiguous mappings (two detectors sharing a
// coordinate triple) are rejected immediately rather than silently picking one.
func NewAngerMerge(window float64, component ComponentOf, bx, by, bz BlockCoord, detIDs []int) (*Merge, error) {
	reverse := make(map[[3]int]int, len(detIDs))
	for _, d := range detIDs {
		key := [3]int{bx(d), by(d), bz(d)}
		if existing, ok := reverse[key]; ok && existing != d {
			return nil, fmt.Errorf("merge: ambiguous anger coordinate %v maps to both detector %d and %d", key, existing, d)
		}
		reverse[key] = d
	}
	return &Merge{Window: window, Mode: MergeAnger, Component: component, BX: bx, BY: by, BZ: bz, reverse: reverse}, nil
}

type mergeGroup struct {
	start, winner int
	sum           float64
	wx, wy, wz    float64 // anger: energy-weighted coordinate sums
}

func (m *Merge) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	return m.run(buf, begin, end, stats, false)
}

func (m *Merge) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	m.run(buf, begin, end, stats, true)
}

func (m *Merge) run(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats, final bool) int {
	events := buf.Slice()
	open := map[int]*mergeGroup{}

	addToGroup := func(g *mergeGroup, i int) {
		g.sum += events[i].Energy
		if m.Mode == MergeAnger {
			g.wx += events[i].Energy * float64(m.BX(events[i].DetID))
			g.wy += events[i].Energy * float64(m.BY(events[i].DetID))
			g.wz += events[i].Energy * float64(m.BZ(events[i].DetID))
		}
		switch m.Mode {
		case MergeFirst:
			events[i].Dropped = true
			stats.NoMerged++
		case MergeMax, MergeAnger:
			if events[i].Energy > events[g.winner].Energy {
				events[g.winner].Dropped = true
				g.winner = i
			} else {
				events[i].Dropped = true
			}
			stats.NoMerged++
		}
	}

	finalizeGroup := func(g *mergeGroup) {
		events[g.winner].Energy = g.sum
		if m.Mode == MergeAnger && g.sum > 0 {
			key := [3]int{
				roundNearest(g.wx / g.sum),
				roundNearest(g.wy / g.sum),
				roundNearest(g.wz / g.sum),
			}
			if d, ok := m.reverse[key]; ok {
				events[g.winner].DetID = d
			}
		}
	}

	for i := begin; i < end; i++ {
		if events[i].Dropped {
			continue
		}
		comp := m.Component(events[i].DetID)
		g, ok := open[comp]
		if ok && events[i].Time-events[g.start].Time < m.Window {
			addToGroup(g, i)
			continue
		}
		if ok {
			finalizeGroup(g)
		}
		newGroup := &mergeGroup{start: i, winner: i, sum: events[i].Energy}
		if m.Mode == MergeAnger {
			newGroup.wx = events[i].Energy * float64(m.BX(events[i].DetID))
			newGroup.wy = events[i].Energy * float64(m.BY(events[i].DetID))
			newGroup.wz = events[i].Energy * float64(m.BZ(events[i].DetID))
		}
		open[comp] = newGroup
	}

	if end == begin {
		return begin
	}

	if final {
		for _, g := range open {
			finalizeGroup(g)
		}
		for i := begin; i < end; i++ {
			if events[i].Dropped {
				stats.NoDropped++
			} else {
				stats.NoKept++
			}
		}
		return end
	}

	newest := events[end-1].Time
	ready := end
	for _, g := range open {
		if newest-events[g.start].Time < m.Window {
			if g.start < ready {
				ready = g.start
			}
		} else {
			finalizeGroup(g)
		}
	}
	for i := begin; i < ready; i++ {
		if events[i].Dropped {
			stats.NoDropped++
		} else {
			stats.NoKept++
		}
	}
	return ready
}

func roundNearest(x float64) int {
	if x >= 0 {
		return int(x + 0.5)
	}
	return -int(-x + 0.5)
}
