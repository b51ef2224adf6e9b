package session

// DefaultHistorySize is the number of entries a History keeps unless
// configured otherwise.
const DefaultHistorySize = 20

// History is a bounded list of calculation records, oldest first. When it is
// full, adding an entry drops the oldest one.
type History struct {
	entries []string
	max     int
}

// NewHistory creates a history holding at most max entries. A history with
// max <= 0 records nothing.
func NewHistory(max int) *History {
	if max < 0 {
		max = 0
	}
	return &History{max: max}
}

// Add records an entry.
func (h *History) Add(entry string) {
	if h.max == 0 {
		return
	}
	if len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, entry)
}

// Entries returns a copy of the recorded entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Cap returns the maximum number of entries.
func (h *History) Cap() int {
	return h.max
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}
