package daq

// EventBuffer is the single growable contiguous sequence of Interaction shared by
// every singles processor, per spec.md §3 "Event buffer". Processors never insert or
// erase elements directly — only DaqModel.ClearComplete releases memory, and only from
// the head.
type EventBuffer struct {
	events []Interaction
}

func NewEventBuffer() *EventBuffer { return &EventBuffer{} }

func (b *EventBuffer) Len() int { return len(b.events) }

func (b *EventBuffer) Append(e Interaction) { b.events = append(b.events, e) }

func (b *EventBuffer) At(i int) *Interaction { return &b.events[i] }

// Slice exposes the live backing slice for processors that want to read/write ranges
// directly (e.g. Sort's in-place insertion sort).
func (b *EventBuffer) Slice() []Interaction { return b.events }

// Erase removes the half-open prefix [0, n) from the head of the buffer, the only
// place memory is released, per spec.md §4.4 "Event buffer"/"clear_complete".
func (b *EventBuffer) Erase(n int) {
	if n <= 0 {
		return
	}
	if n >= len(b.events) {
		b.events = b.events[:0]
		return
	}
	copy(b.events, b.events[n:])
	b.events = b.events[:len(b.events)-n]
}
