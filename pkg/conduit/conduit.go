// Package conduit implements the per-user bidirectional event conduit: an
// outbound queue of server prompts and an inbound queue of client
// responses, plus a correlated send-then-receive primitive for the prompts
// that expect a reply. Grounded in the teacher's channel-driven
// registration plumbing (Hub.register/Hub.unregister/Hub.subscribe in
// pkg/wsserver/server.go), generalized from fire-and-forget registration
// events to request/response correlation.
package conduit

import (
	"github.com/deonlabs/clean-session/pkg/wire"
)

// QueueCapacity is the bounded capacity of both the outbound and inbound
// queues (spec §4.2).
const QueueCapacity = 100

// Conduit is one joined user's live callback channel: prompts flow out to
// the client over Outbound; the matching responses flow back in over
// Inbound. Exactly one caller may be awaiting the inbound queue at a time
// (enforced by the coordinator's sequential per-user rounds, not by this
// type).
type Conduit struct {
	Outbound chan wire.ServerRequest
	Inbound  chan wire.ClientResponse
}

// New allocates a conduit with the queue capacities spec.md §4.2 requires.
func New() *Conduit {
	return &Conduit{
		Outbound: make(chan wire.ServerRequest, QueueCapacity),
		Inbound:  make(chan wire.ClientResponse, QueueCapacity),
	}
}

// await performs steps 2-6 of the request-response protocol: dequeue one
// inbound value, fail on a reported client error, fail on a closed queue,
// and hand back whatever arrived for the caller to type-assert.
func (c *Conduit) await() (wire.ClientResponse, error) {
	r, ok := <-c.Inbound
	if !ok {
		return nil, wire.ErrClientDisconnected
	}
	if ce, isErr := r.(wire.ClientErrorResponse); isErr {
		return nil, &wire.ClientError{Text: ce.Text}
	}
	return r, nil
}

// Ping sends a Ping prompt and awaits the matching Pong.
func (c *Conduit) Ping(text string) (string, error) {
	c.Outbound <- wire.Ping{Text: text}
	r, err := c.await()
	if err != nil {
		return "", err
	}
	pong, ok := r.(wire.Pong)
	if !ok {
		return "", wire.ErrInvalidClientResponse
	}
	return pong.Text, nil
}

// RollDice sends a RollDice prompt and awaits the matching DiceGuess.
func (c *Conduit) RollDice(sides, count uint8) ([]uint8, error) {
	c.Outbound <- wire.RollDice{Sides: sides, Count: count}
	r, err := c.await()
	if err != nil {
		return nil, err
	}
	dg, ok := r.(wire.DiceGuess)
	if !ok {
		return nil, wire.ErrInvalidClientResponse
	}
	return dg.Numbers, nil
}

// FlipCoin sends a FlipCoin prompt and awaits the matching CoinGuess.
func (c *Conduit) FlipCoin(count uint8) ([]wire.Coin, error) {
	c.Outbound <- wire.FlipCoin{Count: count}
	r, err := c.await()
	if err != nil {
		return nil, err
	}
	cg, ok := r.(wire.CoinGuess)
	if !ok {
		return nil, wire.ErrInvalidClientResponse
	}
	return cg.Coins, nil
}

// TryAgain sends a TryAgain prompt and awaits the matching Again.
func (c *Conduit) TryAgain() (bool, error) {
	c.Outbound <- wire.TryAgain{}
	r, err := c.await()
	if err != nil {
		return false, err
	}
	again, ok := r.(wire.Again)
	if !ok {
		return false, wire.ErrInvalidClientResponse
	}
	return again.Value, nil
}

// UserJoined sends the fire-and-forget join notification.
func (c *Conduit) UserJoined(sid wire.SessionID, uid wire.UserID, userName string) {
	c.Outbound <- wire.UserJoined{SessionID: sid, UserID: uid, UserName: userName}
}

// WinnerAnnounce sends the fire-and-forget winner notification.
func (c *Conduit) WinnerAnnounce(uid wire.UserID, userName string) {
	c.Outbound <- wire.Winner{UserID: uid, UserName: userName}
}

// Error sends the fire-and-forget error notification.
func (c *Conduit) Error(text string) {
	c.Outbound <- wire.ServerErrorPrompt{Text: text}
}

// CloseInbound closes the inbound queue. The RPC layer calls this when the
// client's stream goes away; a coordinator goroutine blocked in await()
// then observes the closed queue and fails with ErrClientDisconnected
// instead of hanging forever.
func (c *Conduit) CloseInbound() {
	close(c.Inbound)
}
