package router

import "fmt"

// History is an in-memory history stack with a cursor, standing in for the
// browser's session history.
type History struct {
	entries   []string
	index     int
	listeners []func(path string)
}

// NewHistory returns a History holding a single entry for initial.
func NewHistory(initial string) *History {
	if initial == "" {
		initial = "/"
	}
	return &History{entries: []string{initial}}
}

// Current returns the current entry's path.
func (h *History) Current() string { return h.entries[h.index] }

// Index returns the cursor position.
func (h *History) Index() int { return h.index }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Push adds path after the cursor, dropping any forward entries.
func (h *History) Push(path string) {
	h.entries = append(h.entries[:h.index+1], path)
	h.index = len(h.entries) - 1
}

// OnRouteChange registers fn to run after Back or Forward moves the cursor.
func (h *History) OnRouteChange(fn func(path string)) {
	h.listeners = append(h.listeners, fn)
}

// Back moves one entry back. It reports false at the oldest entry.
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	h.notify()
	return true
}

// Forward moves one entry forward. It reports false at the newest entry.
func (h *History) Forward() bool {
	if h.index == len(h.entries)-1 {
		return false
	}
	h.index++
	h.notify()
	return true
}

// Restore replaces the stack with a saved session. Listeners are kept and
// not notified.
func (h *History) Restore(entries []string, index int) error {
	if len(entries) == 0 {
		return fmt.Errorf("restore history: no entries")
	}
	if index < 0 || index >= len(entries) {
		return fmt.Errorf("restore history: index %d out of range (%d entries)", index, len(entries))
	}
	h.entries = append([]string(nil), entries...)
	h.index = index
	return nil
}

func (h *History) notify() {
	path := h.Current()
	for _, fn := range h.listeners {
		fn(path)
	}
}
