package process

import "github.com/grayscene/gray/internal/daq"

// DeadtimeMode selects between the two recovery models of spec.md §4.4.5.
type DeadtimeMode int

const (
	// NonParalyzable: an event arriving during the dead window is dropped and does not
	// extend the window. The window always ends Tau after the last *accepted* event.
	NonParalyzable DeadtimeMode = iota
	// Paralyzable: every event, accepted or not, restarts the Tau window. Back-to-back
	// arrivals faster than Tau can suppress a component indefinitely.
	Paralyzable
)

// Deadtime drops events that arrive within Tau of the component's last live window edge,
// per spec.md §4.4.5. Component is the same detector->component projection Merge uses.
type Deadtime struct {
	Tau       float64
	Mode      DeadtimeMode
	Component ComponentOf

	busyUntil map[int]float64
}

func (d *Deadtime) Name() string { return "deadtime" }

func (d *Deadtime) Process(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) int {
	if d.busyUntil == nil {
		d.busyUntil = make(map[int]float64)
	}
	events := buf.Slice()
	for i := begin; i < end; i++ {
		if events[i].Dropped {
			continue
		}
		comp := d.Component(events[i].DetID)
		until, busy := d.busyUntil[comp]
		switch d.Mode {
		case NonParalyzable:
			if busy && events[i].Time < until {
				events[i].Dropped = true
				stats.NoDropped++
				stats.NoDeadtimed++
				continue
			}
			d.busyUntil[comp] = events[i].Time + d.Tau
		case Paralyzable:
			if busy && events[i].Time < until {
				events[i].Dropped = true
				stats.NoDropped++
				stats.NoDeadtimed++
			} else {
				stats.NoKept++
			}
			d.busyUntil[comp] = events[i].Time + d.Tau
			continue
		}
		stats.NoKept++
	}
	return end
}

func (d *Deadtime) Stop(buf *daq.EventBuffer, begin, end int, stats *daq.ProcessStats) {
	d.Process(buf, begin, end, stats)
}
