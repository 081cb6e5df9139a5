package session_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deonlabs/clean-session/internal/session"
	"github.com/deonlabs/clean-session/pkg/wire"
)

func newCoordinator() *session.Coordinator {
	return session.NewCoordinator(zerolog.Nop())
}

// S1: host a 1-player coin session; ListSessions reflects it with no users.
func TestHostSessionThenListIsEmpty(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeCoin, 1)
	require.NoError(t, err)
	require.Equal(t, wire.SessionData{SessionID: 1, Type: wire.SessionTypeCoin, Users: []string{}}, sd)

	all, err := c.ListSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, []wire.SessionData{sd}, all)
}

// S2: after a join, ListSessions reflects the joined user's name.
func TestJoinSessionAddsUserToListing(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeCoin, 1)
	require.NoError(t, err)

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 7, "a"))

	all, err := c.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, []string{"a"}, all[0].Users)
}

// Testable property 2: a second join with the same uid fails.
func TestJoinSessionRejectsDuplicateUser(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeCoin, 2)
	require.NoError(t, err)

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 7, "a"))
	err = c.JoinSession(ctx, sd.SessionID, 7, "a-again")
	require.ErrorIs(t, err, wire.ErrUserAlreadyInSession)
}

// S6: joining a non-existent session fails SessionNotFound.
func TestJoinSessionUnknownSessionFails(t *testing.T) {
	c := newCoordinator()
	err := c.JoinSession(context.Background(), 999, 1, "a")
	require.ErrorIs(t, err, wire.ErrSessionNotFound)
}

// Testable property 1: SIDs are distinct and strictly increasing.
func TestHostSessionAllocatesStrictlyIncreasingIDs(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	var last wire.SessionID
	for i := 0; i < 20; i++ {
		sd, err := c.HostSession(ctx, wire.SessionTypeDice, 1)
		require.NoError(t, err)
		require.Greater(t, sd.SessionID, last)
		last = sd.SessionID
	}
}

// Registration is order-independent relative to join (see types.go's
// registerConduit): a client may open its ServerEvents stream before its
// JoinSession call is observed to complete.
func TestRegisterConduitSucceedsBeforeJoin(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeDice, 2)
	require.NoError(t, err)

	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 1, nil))
}

func TestRegisterConduitUnknownSessionFails(t *testing.T) {
	c := newCoordinator()
	err := c.RegisterConduit(context.Background(), 999, 1, nil)
	require.ErrorIs(t, err, wire.ErrSessionNotFound)
}

func TestStartSessionIsNoOpHookOnExistingSession(t *testing.T) {
	c := newCoordinator()
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeDice, 1)
	require.NoError(t, err)
	require.NoError(t, c.StartSession(ctx, sd.SessionID))
}

func TestStartSessionUnknownSessionFails(t *testing.T) {
	c := newCoordinator()
	err := c.StartSession(context.Background(), 999)
	require.ErrorIs(t, err, wire.ErrSessionNotFound)
}
