package lnrouter

// History is the platform navigation API the Router drives.
//
// Push and Replace never notify listeners.  Back and Forward, and any
// change the platform makes on its own (browser back/forward buttons),
// notify listeners with the new path once it is current.
type History interface {
	Path() string
	Push(path string, state map[string]interface{})
	Replace(path string, state map[string]interface{})
	Back()
	Forward()
	Listen(f func(path string)) (release func())
}

// HistoryEntry is one entry of a MemoryHistory.
type HistoryEntry struct {
	Path  string
	State map[string]interface{}
}

// MemoryHistory is an in-process History with a back/forward stack.
// It is what the terminal front end and the tests route over.
type MemoryHistory struct {
	entries   []HistoryEntry
	index     int
	listeners []*historyListener
}

type historyListener struct {
	f func(path string)
}

// NewMemoryHistory returns a history holding the single entry start.
func NewMemoryHistory(start string) *MemoryHistory {
	return &MemoryHistory{
		entries: []HistoryEntry{{Path: start}},
	}
}

// Path implements History.
func (h *MemoryHistory) Path() string {
	return h.entries[h.index].Path
}

// Push implements History.  Entries after the current one are discarded.
func (h *MemoryHistory) Push(path string, state map[string]interface{}) {
	h.entries = append(h.entries[:h.index+1], HistoryEntry{Path: path, State: state})
	h.index++
}

// Replace implements History.
func (h *MemoryHistory) Replace(path string, state map[string]interface{}) {
	h.entries[h.index] = HistoryEntry{Path: path, State: state}
}

// Back implements History.  It has no effect on the first entry.
func (h *MemoryHistory) Back() {
	if h.index == 0 {
		return
	}
	h.index--
	h.notify()
}

// Forward implements History.  It has no effect on the last entry.
func (h *MemoryHistory) Forward() {
	if h.index >= len(h.entries)-1 {
		return
	}
	h.index++
	h.notify()
}

// Visit simulates the user editing the location directly: the path is
// pushed and listeners are told about it.
func (h *MemoryHistory) Visit(path string) {
	h.Push(path, nil)
	h.notify()
}

// Listen implements History.
func (h *MemoryHistory) Listen(f func(path string)) (release func()) {
	l := &historyListener{f: f}
	h.listeners = append(h.listeners, l)
	return func() {
		for i, l2 := range h.listeners {
			if l2 == l {
				h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int { return len(h.entries) }

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int { return h.index }

// Entries returns a copy of all entries, oldest first.
func (h *MemoryHistory) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// CanGoBack reports whether Back would change the current entry.
func (h *MemoryHistory) CanGoBack() bool { return h.index > 0 }

// CanGoForward reports whether Forward would change the current entry.
func (h *MemoryHistory) CanGoForward() bool { return h.index < len(h.entries)-1 }

func (h *MemoryHistory) notify() {
	p := h.Path()
	// copy so a listener may release itself while being called
	ls := append([]*historyListener(nil), h.listeners...)
	for _, l := range ls {
		l.f(p)
	}
}
