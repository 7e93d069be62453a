package engine

// Event is one entry in the game's chronological record. Entries are
// immutable once written.
type Event struct {
	Day     int    `json:"day"`
	Hour    int    `json:"hour"`
	Message string `json:"message"`
}

// EventLog is the append-only record of state-changing occurrences.
// No component removes entries; consumers read copies.
type EventLog struct {
	entries []Event
}

// Append adds an entry stamped with the given day and hour
func (l *EventLog) Append(day, hour int, message string) {
	l.entries = append(l.entries, Event{Day: day, Hour: hour, Message: message})
}

// Len returns the number of entries
func (l *EventLog) Len() int {
	return len(l.entries)
}

// All returns a copy of the full log in chronological order
func (l *EventLog) All() []Event {
	out := make([]Event, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns a copy of the most recent n entries in chronological order.
// n <= 0 or n >= Len returns the whole log.
func (l *EventLog) Tail(n int) []Event {
	if n <= 0 || n >= len(l.entries) {
		return l.All()
	}
	out := make([]Event, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
