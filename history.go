package sketch

// DefaultMaxHistory is the number of snapshots retained when no bound is given.
const DefaultMaxHistory = 50

// History is a bounded, linear undo/redo timeline of canvas snapshots.
// The cursor marks the snapshot currently shown on the canvas.
// A History is not safe for concurrent use.
type History struct {
	snapshots []Snapshot
	cursor    int
	max       int
	persister Persister
}

// HistoryOption customizes a History.
type HistoryOption func(*History)

// WithPersister registers the strategy invoked after every state transition.
func WithPersister(p Persister) HistoryOption {
	return func(h *History) { h.persister = p }
}

// NewHistory creates an empty timeline holding at most max snapshots.
func NewHistory(max int, opts ...HistoryOption) *History {
	if max <= 0 {
		max = DefaultMaxHistory
	}
	h := &History{
		snapshots: make([]Snapshot, 0, max),
		cursor:    -1,
		max:       max,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Commit appends a snapshot after the cursor, pruning the redo branch
// and evicting the oldest entry once the bound is exceeded.
func (h *History) Commit(s Snapshot) {
	if h.cursor < len(h.snapshots)-1 {
		// Clear the dropped tail so the snapshots can be collected.
		for i := h.cursor + 1; i < len(h.snapshots); i++ {
			h.snapshots[i] = nil
		}
		h.snapshots = h.snapshots[:h.cursor+1]
	}
	h.snapshots = append(h.snapshots, s)
	h.cursor = len(h.snapshots) - 1

	if len(h.snapshots) > h.max {
		h.snapshots[0] = nil
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
	h.persist()
}

// Undo moves the cursor one step back and returns the snapshot found there.
// It reports false when there is nothing to undo.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	h.persist()

	return h.snapshots[h.cursor], true
}

// Redo moves the cursor one step forward and returns the snapshot found there.
// It reports false when there is nothing to redo.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	h.persist()

	return h.snapshots[h.cursor], true
}

// CanUndo reports whether an older snapshot is reachable.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a newer snapshot is reachable.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Reset replaces the whole timeline with a single snapshot.
func (h *History) Reset(s Snapshot) {
	for i := range h.snapshots {
		h.snapshots[i] = nil
	}
	h.snapshots = append(h.snapshots[:0], s)
	h.cursor = 0
	h.persist()
}

// Current returns the snapshot under the cursor.
func (h *History) Current() (Snapshot, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.snapshots[h.cursor], true
}

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor returns the current position, -1 for an empty timeline.
func (h *History) Cursor() int { return h.cursor }

// Max returns the timeline bound.
func (h *History) Max() int { return h.max }

// State splits the timeline around the cursor.
func (h *History) State() State {
	var st State
	if h.cursor < 0 {
		return st
	}
	st.Current = h.snapshots[h.cursor]
	st.Undo = append(make([]Snapshot, 0, h.cursor), h.snapshots[:h.cursor]...)
	st.Redo = append(make([]Snapshot, 0, len(h.snapshots)-h.cursor-1), h.snapshots[h.cursor+1:]...)

	return st
}

// Load rebuilds the timeline from a persisted state without triggering
// the persister. The current snapshot is always kept: if the state exceeds
// the bound the oldest undo entries go first, then the farthest redo entries.
func (h *History) Load(st State) bool {
	if len(st.Current) == 0 {
		return false
	}
	undo, redo := st.Undo, st.Redo
	if over := len(undo) + 1 + len(redo) - h.max; over > 0 {
		n := min(over, len(undo))
		undo = undo[n:]
		over -= n
		if over > 0 {
			redo = redo[:len(redo)-over]
		}
	}

	snapshots := make([]Snapshot, 0, h.max)
	snapshots = append(snapshots, undo...)
	snapshots = append(snapshots, st.Current)
	snapshots = append(snapshots, redo...)

	h.snapshots = snapshots
	h.cursor = len(undo)

	return true
}

func (h *History) persist() {
	if h.persister != nil {
		h.persister.Persist(h.State())
	}
}
