package conduit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

func TestRollDiceCorrelatesMatchingResponse(t *testing.T) {
	c := conduit.New()

	go func() {
		prompt := <-c.Outbound
		require.Equal(t, wire.RollDice{Sides: 6, Count: 2}, prompt)
		c.Inbound <- wire.DiceGuess{Numbers: []uint8{3, 5}}
	}()

	got, err := c.RollDice(6, 2)
	require.NoError(t, err)
	require.Equal(t, []uint8{3, 5}, got)
}

func TestRollDiceRejectsMismatchedVariant(t *testing.T) {
	c := conduit.New()

	go func() {
		<-c.Outbound
		c.Inbound <- wire.CoinGuess{Coins: []wire.Coin{wire.CoinHeads}}
	}()

	_, err := c.RollDice(6, 2)
	require.ErrorIs(t, err, wire.ErrInvalidClientResponse)
}

func TestClientErrorResponseFailsTheCall(t *testing.T) {
	c := conduit.New()

	go func() {
		<-c.Outbound
		c.Inbound <- wire.ClientErrorResponse{Text: "boom"}
	}()

	_, err := c.TryAgain()
	require.Error(t, err)
	var ce *wire.ClientError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "boom", ce.Text)
}

func TestClosedInboundSurfacesDisconnect(t *testing.T) {
	c := conduit.New()

	go func() {
		<-c.Outbound
		c.CloseInbound()
	}()

	_, err := c.Ping("hello")
	require.ErrorIs(t, err, wire.ErrClientDisconnected)
}

func TestFireAndForgetPromptsDoNotBlockOnReply(t *testing.T) {
	c := conduit.New()
	done := make(chan struct{})
	go func() {
		c.UserJoined(1, 7, "a")
		c.WinnerAnnounce(7, "a")
		c.Error("trouble")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("fire-and-forget prompts blocked")
	}

	require.Equal(t, wire.UserJoined{SessionID: 1, UserID: 7, UserName: "a"}, <-c.Outbound)
	require.Equal(t, wire.Winner{UserID: 7, UserName: "a"}, <-c.Outbound)
	require.Equal(t, wire.ServerErrorPrompt{Text: "trouble"}, <-c.Outbound)
}
