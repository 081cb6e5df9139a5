package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

// Coordinator implements rpc.Domain: it is the session-coordinator side of
// the RPC surface (spec §4.4), speaking only domain types.
type Coordinator struct {
	registry *Registry
	log      zerolog.Logger
	rng      RandSource
}

// NewCoordinator builds a coordinator with its own SessionRegistry and the
// production math/rand-backed RandSource.
func NewCoordinator(log zerolog.Logger) *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		log:      log,
		rng:      newMathRand(),
	}
}

// NewCoordinatorWithRand builds a coordinator with an injected RandSource,
// so tests can stub S3/S4-style deterministic rounds (spec §8).
func NewCoordinatorWithRand(log zerolog.Logger, rng RandSource) *Coordinator {
	return &Coordinator{
		registry: NewRegistry(),
		log:      log,
		rng:      rng,
	}
}

func (c *Coordinator) HostSession(_ context.Context, typ wire.SessionType, playerCount uint8) (wire.SessionData, error) {
	sid, st := c.registry.host(typ, playerCount)
	return st.snapshot(sid), nil
}

func (c *Coordinator) ListSessions(_ context.Context) ([]wire.SessionData, error) {
	return c.registry.list(), nil
}

// JoinSession implements spec §4.4's admission rule. The game loop is
// spawned exactly once per session (spec testable property 3), but not
// necessarily from this call: a real client joins to completion before it
// ever registers a conduit, so the join that completes quorum usually does
// not itself start the session — see State.maybeStart.
func (c *Coordinator) JoinSession(_ context.Context, sid wire.SessionID, uid wire.UserID, userName string) error {
	st, ok := c.registry.get(sid)
	if !ok {
		return wire.ErrSessionNotFound
	}

	order, users, conduits, started, err := st.join(uid, userName)
	if err != nil {
		return err
	}
	c.startIfReady(sid, st, order, users, conduits, started)
	return nil
}

// StartSession is the forward-compatibility hook spec §4.4 describes:
// quorum alone drives the transition, so this only validates the session
// exists and otherwise does nothing.
func (c *Coordinator) StartSession(_ context.Context, sid wire.SessionID) error {
	if _, ok := c.registry.get(sid); !ok {
		return wire.ErrSessionNotFound
	}
	return nil
}

// RegisterConduit attaches a user's event conduit to its session. Because a
// real client opens its ServerEvents stream only after JoinSession returns,
// this call is routinely the one that actually starts the session for the
// quorum-completing user — see State.maybeStart.
func (c *Coordinator) RegisterConduit(_ context.Context, sid wire.SessionID, uid wire.UserID, cd *conduit.Conduit) error {
	st, ok := c.registry.get(sid)
	if !ok {
		return wire.ErrSessionNotFound
	}
	order, users, conduits, started := st.registerConduit(uid, cd)
	c.startIfReady(sid, st, order, users, conduits, started)
	return nil
}

func (c *Coordinator) startIfReady(
	sid wire.SessionID,
	st *State,
	order []wire.UserID,
	users map[wire.UserID]UserData,
	conduits map[wire.UserID]*conduit.Conduit,
	started bool,
) {
	if !started {
		return
	}
	go runGameLoop(c.log, sid, st.Type, order, users, conduits, c.rng, func() {
		c.registry.evict(sid)
	})
}
