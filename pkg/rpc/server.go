package rpc

import (
	"context"
	"sync"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rs/zerolog"

	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

// Domain is the session-coordinator side of the RPC surface: everything
// below speaks domain types, never wire types. The coordinator implements
// this; it never sees the routing table Adapter owns.
type Domain interface {
	HostSession(ctx context.Context, typ wire.SessionType, playerCount uint8) (wire.SessionData, error)
	ListSessions(ctx context.Context) ([]wire.SessionData, error)
	JoinSession(ctx context.Context, sid wire.SessionID, uid wire.UserID, userName string) error
	StartSession(ctx context.Context, sid wire.SessionID) error
	RegisterConduit(ctx context.Context, sid wire.SessionID, uid wire.UserID, c *conduit.Conduit) error
}

// route is one (session, user)'s inbound channel plus a closed flag.
// RespondToServerEvent and ServerEvents's teardown both take Adapter.mu
// before touching closed, so a send can never race a close: whichever of
// "deliver the response" or "tear down the route" acquires the lock first
// completes before the other runs.
type route struct {
	ch     chan wire.ClientResponse
	closed bool
}

// Adapter implements the wire-facing CleanServer on top of a Domain. It
// owns the routing table that is the only coupling between the
// ServerEvents stream and RespondToServerEvent (spec §4.3); the
// coordinator never sees this table.
type Adapter struct {
	domain Domain
	log    zerolog.Logger

	mu      sync.Mutex
	routing map[wire.EventRegister]*route
}

// NewAdapter builds the RPC-facing adapter over a Domain implementation.
func NewAdapter(domain Domain, log zerolog.Logger) *Adapter {
	return &Adapter{
		domain:  domain,
		log:     log,
		routing: make(map[wire.EventRegister]*route),
	}
}

func internalError(err error) error {
	return status.Error(codes.Internal, err.Error())
}

func (a *Adapter) HostSession(ctx context.Context, in *wire.WireHostInfo) (*wire.WireSessionData, error) {
	hi, err := wire.HostInfoFromWire(*in)
	if err != nil {
		return nil, internalError(err)
	}
	sd, err := a.domain.HostSession(ctx, hi.Type, hi.PlayerCount)
	if err != nil {
		return nil, internalError(err)
	}
	out := sd.ToWire()
	return &out, nil
}

func (a *Adapter) ListSessions(ctx context.Context, _ *wire.WireEmpty) (*wire.WireSessions, error) {
	data, err := a.domain.ListSessions(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	out := wire.Sessions{Data: data}.ToWire()
	return &out, nil
}

func (a *Adapter) JoinSession(ctx context.Context, in *wire.WireJoinInfo) (*wire.WireEmpty, error) {
	ji := wire.JoinInfoFromWire(*in)
	if err := a.domain.JoinSession(ctx, ji.SessionID, ji.UserID, ji.UserName); err != nil {
		return nil, internalError(err)
	}
	return &wire.WireEmpty{}, nil
}

func (a *Adapter) StartSession(ctx context.Context, in *wire.WireStartInfo) (*wire.WireEmpty, error) {
	si := wire.StartInfoFromWire(*in)
	if err := a.domain.StartSession(ctx, si.SessionID); err != nil {
		return nil, internalError(err)
	}
	return &wire.WireEmpty{}, nil
}

// ServerEvents allocates the conduit for the caller's (session, user),
// registers the inbound route, hands the conduit to the domain, and pumps outbound
// prompts onto the stream until the conduit's outbound queue or the stream
// itself closes.
func (a *Adapter) ServerEvents(in *wire.WireEventRegister, stream ServerEventsServer) error {
	er := wire.EventRegisterFromWire(*in)
	c := conduit.New()
	r := &route{ch: c.Inbound}

	a.mu.Lock()
	a.routing[er] = r
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		r.closed = true
		delete(a.routing, er)
		a.mu.Unlock()
		c.CloseInbound()
	}()

	if err := a.domain.RegisterConduit(stream.Context(), er.SessionID, er.UserID, c); err != nil {
		return internalError(err)
	}

	for {
		select {
		case <-stream.Context().Done():
			return stream.Context().Err()
		case req, ok := <-c.Outbound:
			if !ok {
				return nil
			}
			out := wire.ServerRequestToWire(req)
			if err := stream.Send(&out); err != nil {
				a.log.Error().Err(err).Interface("register", er).Msg("failed to deliver server event to client")
				return err
			}
		}
	}
}

func (a *Adapter) RespondToServerEvent(_ context.Context, in *wire.WireClientEventResponse) (*wire.WireEmpty, error) {
	cer, err := wire.ClientEventResponseFromWire(*in)
	if err != nil {
		return nil, internalError(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	r, ok := a.routing[cer.Register]
	if !ok || r.closed {
		return nil, internalError(wire.ErrUserNotInSession)
	}

	r.ch <- cer.Response
	return &wire.WireEmpty{}, nil
}
