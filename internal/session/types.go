// Package session implements the session coordinator: registry, admission,
// quorum detection, and the per-session game loop (spec §3, §4.4).
package session

import (
	"sync"

	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

// UserData is the per-user state a session holds between join and teardown.
type UserData struct {
	Name string
}

// State is one session's mutable state: the joined-user set, join order (so
// the game loop polls in a deterministic, host-defined sequence), and the
// conduit registered by each user's ServerEvents stream. State's own lock is
// the inner tier of the two-tier discipline described in spec §5; Registry's
// lock is the outer tier.
type State struct {
	mu sync.RWMutex

	PlayerCount uint8
	Type        wire.SessionType

	order    []wire.UserID
	users    map[wire.UserID]UserData
	conduits map[wire.UserID]*conduit.Conduit
	started  bool
}

func newState(typ wire.SessionType, playerCount uint8) *State {
	return &State{
		PlayerCount: playerCount,
		Type:        typ,
		users:       make(map[wire.UserID]UserData),
		conduits:    make(map[wire.UserID]*conduit.Conduit),
	}
}

// join inserts uid under name. Returns ErrUserAlreadyInSession if uid is
// already present; otherwise it reports whether this join is the one that
// makes the session ready to start (see maybeStart).
func (s *State) join(uid wire.UserID, name string) (order []wire.UserID, users map[wire.UserID]UserData, conduits map[wire.UserID]*conduit.Conduit, started bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[uid]; ok {
		return nil, nil, nil, false, wire.ErrUserAlreadyInSession
	}
	s.users[uid] = UserData{Name: name}
	s.order = append(s.order, uid)
	order, users, conduits, started = s.maybeStart()
	return order, users, conduits, started, nil
}

// registerConduit attaches c to uid. Registration is intentionally
// order-independent relative to join: a real client always calls
// JoinSession to completion before it opens its ServerEvents stream (the
// call that registers its conduit), so the join that completes quorum
// routinely arrives with that same user's conduit still unregistered.
// Starting is therefore gated on maybeStart from both sides: whichever of
// "the last join" or "the last registration" happens second is the one
// that actually starts the session.
func (s *State) registerConduit(uid wire.UserID, c *conduit.Conduit) (order []wire.UserID, users map[wire.UserID]UserData, conduits map[wire.UserID]*conduit.Conduit, started bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conduits[uid] = c
	return s.maybeStart()
}

// snapshot returns a copy of (sid, type, user names in join order) for
// ListSessions, taken entirely under a shared lock (spec §5).
func (s *State) snapshot(sid wire.SessionID) wire.SessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.order))
	for _, uid := range s.order {
		names = append(names, s.users[uid].Name)
	}
	return wire.SessionData{SessionID: sid, Type: s.Type, Users: names}
}

// maybeStart marks the session started and returns the order/users/conduits
// to hand to the game loop, but only when quorum is reached AND every
// joined user's conduit has been registered: it reports ok=false otherwise.
// Callers must hold s.mu. The conduit map is moved out (spec §4.3
// "Ownership of conduits") and the session's own map is cleared so the RPC
// layer cannot race a late RegisterConduit against an in-flight round.
func (s *State) maybeStart() (order []wire.UserID, users map[wire.UserID]UserData, conduits map[wire.UserID]*conduit.Conduit, ok bool) {
	if s.started || len(s.users) != int(s.PlayerCount) {
		return nil, nil, nil, false
	}
	for _, uid := range s.order {
		if _, ok := s.conduits[uid]; !ok {
			return nil, nil, nil, false
		}
	}
	s.started = true

	order = append([]wire.UserID(nil), s.order...)
	users = make(map[wire.UserID]UserData, len(s.users))
	for uid, ud := range s.users {
		users[uid] = ud
	}
	conduits = s.conduits
	s.conduits = make(map[wire.UserID]*conduit.Conduit)
	return order, users, conduits, true
}
