package rpc

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"

	"github.com/rs/zerolog"

	"github.com/deonlabs/clean-session/pkg/wire"
)

// ServerEventHandler is the client-side capability set a caller of
// ListenEvents implements to react to each prompt variant (spec §4.3). It
// mirrors conduit's request-response/fire-and-forget split: methods that
// return a value produce the matching response; JoinInfo/Winner/Error
// return only an error because they are fire-and-forget prompts.
type ServerEventHandler interface {
	JoinInfo(ctx context.Context, sid wire.SessionID, uid wire.UserID, userName string) error
	Ping(ctx context.Context, text string) (string, error)
	RollDice(ctx context.Context, sides, count uint8) ([]uint8, error)
	FlipCoin(ctx context.Context, count uint8) ([]wire.Coin, error)
	Winner(ctx context.Context, uid wire.UserID, userName string) error
	TryAgain(ctx context.Context) (bool, error)
	Error(ctx context.Context, text string) error
}

// Client is the domain-facing client: thin wrappers around the four
// unary request RPCs (host, list, join, start) plus the streamed-event driver described in spec
// §4.3's CleanClient.
type Client struct {
	wire CleanClient
	log  zerolog.Logger
}

// NewClient wraps an established gRPC connection.
func NewClient(cc *grpc.ClientConn, log zerolog.Logger) *Client {
	return &Client{wire: NewCleanClient(cc), log: log}
}

func (c *Client) HostSession(ctx context.Context, typ wire.SessionType, playerCount uint8) (wire.SessionData, error) {
	in := wire.HostInfo{Type: typ, PlayerCount: playerCount}.ToWire()
	out, err := c.wire.HostSession(ctx, &in)
	if err != nil {
		return wire.SessionData{}, err
	}
	return wire.SessionDataFromWire(*out)
}

func (c *Client) ListSessions(ctx context.Context) ([]wire.SessionData, error) {
	out, err := c.wire.ListSessions(ctx, &wire.WireEmpty{})
	if err != nil {
		return nil, err
	}
	sessions, err := wire.SessionsFromWire(*out)
	if err != nil {
		return nil, err
	}
	return sessions.Data, nil
}

func (c *Client) JoinSession(ctx context.Context, sid wire.SessionID, uid wire.UserID, userName string) error {
	in := wire.JoinInfo{SessionID: sid, UserID: uid, UserName: userName}.ToWire()
	_, err := c.wire.JoinSession(ctx, &in)
	return err
}

func (c *Client) StartSession(ctx context.Context, sid wire.SessionID) error {
	in := wire.StartInfo{SessionID: sid}.ToWire()
	_, err := c.wire.StartSession(ctx, &in)
	return err
}

// ListenEvents opens the ServerEvents stream for (sid, uid), dispatches
// every incoming prompt to handler, and posts the handler's response back
// through RespondToServerEvent tagged with the original EventRegister. A
// handler error is converted to a ClientError response so the server-side
// conduit surfaces it instead of blocking forever. ListenEvents blocks
// until the stream ends or ctx is canceled.
func (c *Client) ListenEvents(ctx context.Context, sid wire.SessionID, uid wire.UserID, handler ServerEventHandler) error {
	er := wire.EventRegister{SessionID: sid, UserID: uid}
	in := er.ToWire()
	stream, err := c.wire.ServerEvents(ctx, &in)
	if err != nil {
		return err
	}

	for {
		wireReq, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		req, err := wire.ServerRequestFromWire(*wireReq)
		if err != nil {
			c.log.Error().Err(err).Msg("received malformed server request")
			continue
		}

		resp, hasResp, handleErr := dispatch(ctx, req, handler)
		if handleErr != nil {
			resp, hasResp = wire.ClientErrorResponse{Text: handleErr.Error()}, true
		}
		if !hasResp {
			continue
		}

		wireResp := wire.ClientEventResponse{Register: er, Response: resp}.ToWire()
		if _, err := c.wire.RespondToServerEvent(ctx, &wireResp); err != nil {
			c.log.Error().Err(err).Msg("failed to respond to server event")
			return err
		}
	}
}

func dispatch(ctx context.Context, req wire.ServerRequest, handler ServerEventHandler) (wire.ClientResponse, bool, error) {
	switch v := req.(type) {
	case wire.UserJoined:
		return nil, false, handler.JoinInfo(ctx, v.SessionID, v.UserID, v.UserName)
	case wire.Ping:
		text, err := handler.Ping(ctx, v.Text)
		if err != nil {
			return nil, false, err
		}
		return wire.Pong{Text: text}, true, nil
	case wire.RollDice:
		nums, err := handler.RollDice(ctx, v.Sides, v.Count)
		if err != nil {
			return nil, false, err
		}
		return wire.DiceGuess{Numbers: nums}, true, nil
	case wire.FlipCoin:
		coins, err := handler.FlipCoin(ctx, v.Count)
		if err != nil {
			return nil, false, err
		}
		return wire.CoinGuess{Coins: coins}, true, nil
	case wire.Winner:
		return nil, false, handler.Winner(ctx, v.UserID, v.UserName)
	case wire.TryAgain:
		again, err := handler.TryAgain(ctx)
		if err != nil {
			return nil, false, err
		}
		return wire.Again{Value: again}, true, nil
	case wire.ServerErrorPrompt:
		return nil, false, handler.Error(ctx, v.Text)
	default:
		return nil, false, wire.ErrInvalidServerRequest
	}
}
