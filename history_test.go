package sketch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// snap returns a distinguishable fake snapshot. The history never decodes them.
func snap(name string) Snapshot {
	return Snapshot(name)
}

type recordingPersister struct {
	states []State
	load   State
	ok     bool
}

func (r *recordingPersister) Persist(st State) { r.states = append(r.states, st) }

func (r *recordingPersister) Load() (State, bool) { return r.load, r.ok }

func (r *recordingPersister) last() State { return r.states[len(r.states)-1] }

func TestHistory_Empty(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(0)
	assert.Equal(DefaultMaxHistory, h.Max())
	assert.Equal(-1, h.Cursor())
	assert.Equal(0, h.Len())
	assert.False(h.CanUndo())
	assert.False(h.CanRedo())

	_, ok := h.Undo()
	assert.False(ok)
	_, ok = h.Redo()
	assert.False(ok)
	_, ok = h.Current()
	assert.False(ok)
	assert.Equal(State{}, h.State())
}

func TestHistory_ResetCommitUndo(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(50)
	h.Reset(snap("A"))
	h.Commit(snap("B"))
	h.Commit(snap("C"))

	s, ok := h.Undo()
	assert.True(ok)
	assert.Equal(snap("B"), s)
	assert.True(h.CanUndo())
	assert.True(h.CanRedo())

	s, ok = h.Undo()
	assert.True(ok)
	assert.Equal(snap("A"), s)
	assert.False(h.CanUndo())

	_, ok = h.Undo()
	assert.False(ok)
	assert.Equal(0, h.Cursor())

	s, ok = h.Redo()
	assert.True(ok)
	assert.Equal(snap("B"), s)
	s, ok = h.Redo()
	assert.True(ok)
	assert.Equal(snap("C"), s)
	_, ok = h.Redo()
	assert.False(ok)
}

func TestHistory_Eviction(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(2)
	h.Reset(snap("A"))
	h.Commit(snap("B"))
	h.Commit(snap("C"))

	assert.Equal(2, h.Len())
	assert.Equal(1, h.Cursor())

	s, ok := h.Undo()
	assert.True(ok)
	assert.Equal(snap("B"), s)

	_, ok = h.Undo()
	assert.False(ok, "A was evicted")
}

func TestHistory_BoundRetention(t *testing.T) {
	assert := assert.New(t)

	const max = 5
	h := NewHistory(max)
	h.Reset(snap("s0"))
	for i := 1; i < 20; i++ {
		h.Commit(snap(fmt.Sprintf("s%d", i)))
		assert.LessOrEqual(h.Len(), max)
		assert.Equal(h.Len()-1, h.Cursor())
	}

	// The retained snapshots are the latest ones, oldest first.
	var undone []Snapshot
	for h.CanUndo() {
		s, _ := h.Undo()
		undone = append(undone, s)
	}
	assert.Equal([]Snapshot{snap("s18"), snap("s17"), snap("s16"), snap("s15")}, undone)
}

func TestHistory_BranchPruning(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(10)
	h.Reset(snap("A"))
	h.Commit(snap("B"))
	h.Commit(snap("C"))
	h.Undo()
	h.Undo()

	h.Commit(snap("D"))
	assert.False(h.CanRedo(), "redo branch is dropped by a commit")
	assert.Equal(2, h.Len())
	assert.Equal(State{
		Current: snap("D"),
		Undo:    []Snapshot{snap("A")},
		Redo:    []Snapshot{},
	}, h.State())

	_, ok := h.Redo()
	assert.False(ok)
}

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(10)
	h.Reset(snap("A"))
	for _, s := range []string{"B", "C", "D"} {
		h.Commit(snap(s))
	}

	for k := 1; k <= 3; k++ {
		for i := 0; i < k; i++ {
			_, ok := h.Undo()
			assert.True(ok)
		}
		var last Snapshot
		for i := 0; i < k; i++ {
			s, ok := h.Redo()
			assert.True(ok)
			last = s
		}
		assert.Equal(snap("D"), last)
		assert.Equal(3, h.Cursor())
	}
}

func TestHistory_CanUndoRedo(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(10)
	h.Reset(snap("A"))
	assert.False(h.CanUndo())
	assert.False(h.CanRedo())

	h.Commit(snap("B"))
	assert.Equal(h.Cursor() > 0, h.CanUndo())
	assert.Equal(h.Cursor() < h.Len()-1, h.CanRedo())

	h.Undo()
	assert.False(h.CanUndo())
	assert.True(h.CanRedo())
}

func TestHistory_Reset(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(10)
	h.Reset(snap("A"))
	h.Commit(snap("B"))
	h.Commit(snap("C"))
	h.Undo()

	h.Reset(snap("X"))
	assert.Equal(1, h.Len())
	assert.Equal(0, h.Cursor())
	cur, ok := h.Current()
	assert.True(ok)
	assert.Equal(snap("X"), cur)
	assert.False(h.CanUndo())
	assert.False(h.CanRedo())
}

func TestHistory_Persister(t *testing.T) {
	assert := assert.New(t)

	p := &recordingPersister{}
	h := NewHistory(10, WithPersister(p))

	h.Reset(snap("A"))
	h.Commit(snap("B"))
	assert.Len(p.states, 2)

	h.Undo()
	assert.Len(p.states, 3)
	assert.Equal(State{
		Current: snap("A"),
		Undo:    []Snapshot{},
		Redo:    []Snapshot{snap("B")},
	}, p.last())

	// Failed moves do not persist.
	h.Undo()
	assert.Len(p.states, 3)

	h.Redo()
	h.Redo()
	assert.Len(p.states, 4)
	assert.Equal(snap("B"), p.last().Current)
}

func TestHistory_Load(t *testing.T) {
	assert := assert.New(t)

	p := &recordingPersister{}
	h := NewHistory(10, WithPersister(p))

	assert.False(h.Load(State{Undo: []Snapshot{snap("A")}}))

	st := State{
		Current: snap("B"),
		Undo:    []Snapshot{snap("A")},
		Redo:    []Snapshot{snap("C")},
	}
	assert.True(h.Load(st))
	assert.Empty(p.states, "loading does not persist")
	assert.Equal(3, h.Len())
	assert.Equal(1, h.Cursor())
	assert.Equal(st, h.State())

	s, ok := h.Redo()
	assert.True(ok)
	assert.Equal(snap("C"), s)
}

func TestHistory_LoadOverBound(t *testing.T) {
	assert := assert.New(t)

	h := NewHistory(3)
	assert.True(h.Load(State{
		Current: snap("C"),
		Undo:    []Snapshot{snap("A"), snap("B")},
		Redo:    []Snapshot{snap("D")},
	}))
	assert.Equal(State{
		Current: snap("C"),
		Undo:    []Snapshot{snap("B")},
		Redo:    []Snapshot{snap("D")},
	}, h.State())

	h = NewHistory(2)
	assert.True(h.Load(State{
		Current: snap("A"),
		Redo:    []Snapshot{snap("B"), snap("C"), snap("D")},
	}))
	assert.Equal(2, h.Len())
	assert.Equal(0, h.Cursor())
	assert.Equal(State{
		Current: snap("A"),
		Undo:    []Snapshot{},
		Redo:    []Snapshot{snap("B")},
	}, h.State())
}
