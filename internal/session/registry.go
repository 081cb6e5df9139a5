package session

import (
	"sync"
	"sync/atomic"

	"github.com/deonlabs/clean-session/pkg/wire"
)

// Registry is the process-wide session table (spec §3's SessionRegistry),
// adapted from the outer tier of the two-tier RWMutex map-of-locked-structs
// discipline a websocket hub uses to fan events out to per-room
// subscriber sets: a shared mutex guards the top-level map, and each
// entry (State here, a room subscription there) carries its own lock for
// everything beneath it.
type Registry struct {
	mu       sync.RWMutex
	sessions map[wire.SessionID]*State

	nextID uint64
}

// NewRegistry returns an empty registry with its SessionID allocator
// starting at 1 (spec §4.5).
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[wire.SessionID]*State)}
}

// allocateID hands out the next SessionID. Strictly increasing and
// race-free across concurrent HostSession calls (spec testable property 1).
func (r *Registry) allocateID() wire.SessionID {
	return wire.SessionID(atomic.AddUint64(&r.nextID, 1))
}

// host allocates a SessionID, creates an empty State, and inserts it.
func (r *Registry) host(typ wire.SessionType, playerCount uint8) (wire.SessionID, *State) {
	sid := r.allocateID()
	st := newState(typ, playerCount)

	r.mu.Lock()
	r.sessions[sid] = st
	r.mu.Unlock()

	return sid, st
}

func (r *Registry) get(sid wire.SessionID) (*State, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.sessions[sid]
	return st, ok
}

// list snapshots every session's descriptor. The registry lock is held only
// long enough to copy the slice of states; each State's own snapshot then
// takes its own lock (spec §5's "lock scope is minimized").
func (r *Registry) list() []wire.SessionData {
	r.mu.RLock()
	ids := make([]wire.SessionID, 0, len(r.sessions))
	states := make([]*State, 0, len(r.sessions))
	for sid, st := range r.sessions {
		ids = append(ids, sid)
		states = append(states, st)
	}
	r.mu.RUnlock()

	out := make([]wire.SessionData, len(ids))
	for i, sid := range ids {
		out[i] = states[i].snapshot(sid)
	}
	return out
}

// evict removes sid from the registry. Called once the game loop ends, so
// a session never lingers once it can produce no further events (spec §9's
// "Unbounded maps" open question, resolved here in favor of eviction).
func (r *Registry) evict(sid wire.SessionID) {
	r.mu.Lock()
	delete(r.sessions, sid)
	r.mu.Unlock()
}
