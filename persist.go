package sketch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log/slog"
	"time"

	"github.com/esimov/sketch/store"
)

// DefaultStoreKey is the key holding the persisted canvas state.
const DefaultStoreKey = "canvasState"

// persistTimeout bounds a single store round trip.
const persistTimeout = 5 * time.Second

// State is the persisted form of a timeline: the snapshot on screen,
// the snapshots reachable with undo (oldest first) and the ones reachable
// with redo (nearest first).
type State struct {
	Current Snapshot   `json:"current"`
	Undo    []Snapshot `json:"undo"`
	Redo    []Snapshot `json:"redo"`
}

// Persister is the durability strategy used by History.
// Persist is best-effort and must not fail the caller.
// Load reports false when no usable state exists.
type Persister interface {
	Persist(State)
	Load() (State, bool)
}

// NopPersister keeps nothing.
type NopPersister struct{}

func (NopPersister) Persist(State)       {}
func (NopPersister) Load() (State, bool) { return State{}, false }

// StorePersister saves the timeline as a JSON string in a key-value store.
type StorePersister struct {
	Store  store.Store
	Key    string
	Logger *slog.Logger
}

// NewStorePersister creates a persister writing under key.
func NewStorePersister(s store.Store, key string, logger *slog.Logger) *StorePersister {
	if key == "" {
		key = DefaultStoreKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StorePersister{Store: s, Key: key, Logger: logger}
}

// Persist encodes and stores the state. When the value does not fit the
// store quota the oldest undo entries are dropped first, then the farthest
// redo entries, until only the current image is left. Failures are logged
// and dropped.
func (p *StorePersister) Persist(st State) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	trimmed := 0
	for {
		data, err := json.Marshal(st)
		if err != nil {
			p.Logger.Warn("encode canvas state", "error", err)
			return
		}
		err = p.Store.Set(ctx, p.Key, string(data))
		if err == nil {
			if trimmed > 0 {
				p.Logger.Warn("canvas history trimmed to fit the store quota", "key", p.Key,
					"dropped", trimmed, "bytes", len(data))
			}
			p.Logger.Debug("canvas state persisted", "key", p.Key, "bytes", len(data),
				"undo", len(st.Undo), "redo", len(st.Redo))
			return
		}
		if !errors.Is(err, store.ErrQuotaExceeded) || !trimState(&st) {
			p.Logger.Warn("persist canvas state", "key", p.Key, "bytes", len(data), "error", err)
			return
		}
		trimmed++
	}
}

// trimState drops one history entry, the oldest undo snapshot if any,
// otherwise the farthest redo one. It reports false when only the
// current snapshot is left.
func trimState(st *State) bool {
	switch {
	case len(st.Undo) > 0:
		st.Undo = st.Undo[1:]
	case len(st.Redo) > 0:
		st.Redo = st.Redo[:len(st.Redo)-1]
	default:
		return false
	}
	return true
}

// Load reads the stored state. Missing or malformed values report false.
func (p *StorePersister) Load() (State, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, err := p.Store.Get(ctx, p.Key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			p.Logger.Warn("load canvas state", "key", p.Key, "error", err)
		}
		return State{}, false
	}
	st, dropped, err := decodeState([]byte(raw))
	if err != nil {
		p.Logger.Warn("discarding stored canvas state", "key", p.Key, "error", err)
		return State{}, false
	}
	if dropped > 0 {
		p.Logger.Warn("discarding unreadable history entries", "key", p.Key, "dropped", dropped)
	}
	return st, true
}

// decodeState parses and validates a persisted state. An unreadable current
// image rejects the whole state; unreadable undo or redo entries are left
// out and counted in dropped.
func decodeState(data []byte) (st State, dropped int, err error) {
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, 0, fmt.Errorf("malformed state: %w", err)
	}
	if len(st.Current) == 0 {
		return State{}, 0, errors.New("state has no current image")
	}
	if err := checkSnapshot(st.Current); err != nil {
		return State{}, 0, fmt.Errorf("current image: %w", err)
	}

	var n int
	st.Undo, n = validSnapshots(st.Undo)
	dropped += n
	st.Redo, n = validSnapshots(st.Redo)
	dropped += n

	return st, dropped, nil
}

// validSnapshots filters out the entries that do not decode as PNG images.
func validSnapshots(list []Snapshot) ([]Snapshot, int) {
	valid := make([]Snapshot, 0, len(list))
	for _, s := range list {
		if checkSnapshot(s) == nil {
			valid = append(valid, s)
		}
	}
	return valid, len(list) - len(valid)
}

// checkSnapshot verifies the snapshot header decodes as a PNG.
func checkSnapshot(s Snapshot) error {
	_, err := png.DecodeConfig(bytes.NewReader(s))
	return err
}
