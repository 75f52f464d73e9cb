package daq

// Model owns the contiguous event buffer plus the ordered singles Process chain and
// the parallel coincidence Process set, per spec.md §3/§4.4.
type Model struct {
	Buffer *EventBuffer

	singles       []Process
	singlesStats  []ProcessStats
	readyDistance []int // per singles processor

	coinc      []Process
	coincStats []ProcessStats
	coincReady []int // per coincidence processor

	cleared int // events erased from the buffer head by ClearComplete so far
}

func NewModel() *Model {
	return &Model{Buffer: NewEventBuffer()}
}

// AddSingles appends a singles processor to the end of the chain. When
// daqcfg.BuildModel is given an initialSortWindow > 0, it adds a time-sort process
// first, per spec.md §4.4 "Construction".
func (m *Model) AddSingles(p Process) {
	m.singles = append(m.singles, p)
	m.singlesStats = append(m.singlesStats, ProcessStats{})
	m.readyDistance = append(m.readyDistance, 0)
}

func (m *Model) AddCoincidence(p Process) {
	m.coinc = append(m.coinc, p)
	m.coincStats = append(m.coincStats, ProcessStats{})
	m.coincReady = append(m.coincReady, 0)
}

// singlesReady is the minimum readyDistance over every singles processor: the prefix
// every singles processor agrees is finalized.
func (m *Model) singlesReady() int {
	if len(m.readyDistance) == 0 {
		return m.Buffer.Len()
	}
	min := m.readyDistance[0]
	for _, d := range m.readyDistance[1:] {
		if d < min {
			min = d
		}
	}
	return min
}

// ProcessSingles iterates the singles chain in order, applying each processor to the
// prefix its predecessor has declared ready, per spec.md §4.4 "DaqModel::process_
// singles()": a process never sees events before its immediate input's ready boundary.
func (m *Model) ProcessSingles() {
	upstreamReady := m.Buffer.Len()
	for i, p := range m.singles {
		begin := m.readyDistance[i]
		end := upstreamReady
		if end > m.Buffer.Len() {
			end = m.Buffer.Len()
		}
		if end < begin {
			end = begin
		}
		ready := p.Process(m.Buffer, begin, end, &m.singlesStats[i])
		m.readyDistance[i] = ready
		upstreamReady = ready
	}
}

// StopSingles finalizes every pending event through every singles processor, used when
// the simulation ends and no more input will ever arrive.
func (m *Model) StopSingles() {
	end := m.Buffer.Len()
	for i, p := range m.singles {
		begin := m.readyDistance[i]
		p.Stop(m.Buffer, begin, end, &m.singlesStats[i])
		m.readyDistance[i] = end
	}
}

// ProcessCoincidences applies every coincidence processor to [0, singlesReady), per
// spec.md §4.4 "Coincidence fan-out". Coincidence processors are stateless across
// calls and only stamp CoincID; they never mutate the stream otherwise.
func (m *Model) ProcessCoincidences() {
	end := m.singlesReady()
	for i, p := range m.coinc {
		ready := p.Process(m.Buffer, 0, end, &m.coincStats[i])
		m.coincReady[i] = ready
	}
}

func (m *Model) StopCoincidences() {
	end := m.singlesReady()
	for i, p := range m.coinc {
		p.Stop(m.Buffer, 0, end, &m.coincStats[i])
		m.coincReady[i] = end
	}
}

// minCoincReady returns the least-advanced coincidence processor's ready distance,
// folded together with singlesReady; only elements before this point may be erased.
func (m *Model) minCoincReady() int {
	min := m.singlesReady()
	for _, d := range m.coincReady {
		if d < min {
			min = d
		}
	}
	return min
}

// ClearComplete erases [0, minCoincReady) from the buffer's head and shifts every
// stored offset accordingly, per spec.md §4.4 "clear_complete".
func (m *Model) ClearComplete() {
	n := m.minCoincReady()
	if n <= 0 {
		return
	}
	m.Buffer.Erase(n)
	m.cleared += n
	for i := range m.readyDistance {
		m.readyDistance[i] -= n
		if m.readyDistance[i] < 0 {
			m.readyDistance[i] = 0
		}
	}
	for i := range m.coincReady {
		m.coincReady[i] -= n
		if m.coincReady[i] < 0 {
			m.coincReady[i] = 0
		}
	}
}

// Stats aggregates across every singles and coincidence processor, per
// spec.md §4.4.7.
type Stats struct {
	NoEvents    int
	NoKept      int
	NoDropped   int
	NoMerged    int
	NoFiltered  int
	NoDeadtimed int

	Coincidence []ProcessStats
}

func (m *Model) Stats() Stats {
	s := Stats{NoEvents: m.cleared + m.Buffer.Len()}
	for _, ps := range m.singlesStats {
		s.NoKept += ps.NoKept
		s.NoDropped += ps.NoDropped
		s.NoMerged += ps.NoMerged
		s.NoFiltered += ps.NoFiltered
		s.NoDeadtimed += ps.NoDeadtimed
	}
	s.Coincidence = append(s.Coincidence, m.coincStats...)
	return s
}
