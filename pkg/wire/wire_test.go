package wire_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deonlabs/clean-session/pkg/wire"
)

func TestSessionTypeRoundTrip(t *testing.T) {
	for _, st := range []wire.SessionType{wire.SessionTypeDice, wire.SessionTypeCoin} {
		got, err := wire.SessionTypeFromWire(st.ToWire())
		require.NoError(t, err)
		require.Equal(t, st, got)
	}
}

func TestSessionTypeFromWireRejectsUnknown(t *testing.T) {
	_, err := wire.SessionTypeFromWire(99)
	require.ErrorIs(t, err, wire.ErrInvalidSessionType)
}

func TestCoinFromWireRejectsUnknown(t *testing.T) {
	_, err := wire.CoinFromWire(7)
	require.ErrorIs(t, err, wire.ErrInvalidCoinValue)
}

func TestSessionDataRoundTrip(t *testing.T) {
	sd := wire.SessionData{SessionID: 1, Type: wire.SessionTypeCoin, Users: []string{"a", "b"}}
	got, err := wire.SessionDataFromWire(sd.ToWire())
	require.NoError(t, err)
	require.Equal(t, sd, got)
}

func TestServerRequestRoundTrip(t *testing.T) {
	cases := []wire.ServerRequest{
		wire.UserJoined{SessionID: 1, UserID: 2, UserName: "a"},
		wire.Ping{Text: "hi"},
		wire.RollDice{Sides: 6, Count: 2},
		wire.FlipCoin{Count: 3},
		wire.Winner{UserID: 2, UserName: "a"},
		wire.TryAgain{},
		wire.ServerErrorPrompt{Text: "oops"},
	}
	for _, sr := range cases {
		got, err := wire.ServerRequestFromWire(wire.ServerRequestToWire(sr))
		require.NoError(t, err)
		require.Equal(t, sr, got)
	}
}

func TestServerRequestFromWireRejectsEmptyPayload(t *testing.T) {
	_, err := wire.ServerRequestFromWire(wire.WireServerRequest{Kind: 0})
	require.ErrorIs(t, err, wire.ErrInvalidServerRequest)
}

func TestClientResponseRoundTrip(t *testing.T) {
	cases := []wire.ClientResponse{
		wire.Pong{Text: "pong"},
		wire.DiceGuess{Numbers: []uint8{1, 2, 3}},
		wire.CoinGuess{Coins: []wire.Coin{wire.CoinHeads, wire.CoinTails}},
		wire.Again{Value: true},
		wire.ClientErrorResponse{Text: "bad"},
	}
	for _, cr := range cases {
		got, err := wire.ClientResponseFromWire(wire.ClientResponseToWire(cr))
		require.NoError(t, err)
		require.Equal(t, cr, got)
	}
}

func TestClientResponseFromWireRejectsEmptyPayload(t *testing.T) {
	_, err := wire.ClientResponseFromWire(wire.WireClientResponse{Kind: 2})
	require.ErrorIs(t, err, wire.ErrInvalidClientResponse)
}

func TestClientResponseFromWireRejectsUnknownKind(t *testing.T) {
	_, err := wire.ClientResponseFromWire(wire.WireClientResponse{Kind: 99})
	require.ErrorIs(t, err, wire.ErrInvalidClientResponse)
}
