package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deonlabs/clean-session/internal/session"
	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

// driveOneRound services one user's conduit for exactly one round: it acks
// the priming ping, answers the round prompt with the supplied guess, waits
// for the winner notification (reporting it on winnerCh), and answers
// try_again with again. It returns after try_again, matching S3-S5 which
// only exercise a single round.
func driveOneRound(c *conduit.Conduit, diceGuess []uint8, coinGuess []wire.Coin, again bool, winnerCh chan<- wire.Winner) {
	for {
		req := <-c.Outbound
		switch v := req.(type) {
		case wire.Ping:
			c.Inbound <- wire.Pong{Text: v.Text}
		case wire.RollDice:
			c.Inbound <- wire.DiceGuess{Numbers: diceGuess}
		case wire.FlipCoin:
			c.Inbound <- wire.CoinGuess{Coins: coinGuess}
		case wire.Winner:
			winnerCh <- v
		case wire.TryAgain:
			c.Inbound <- wire.Again{Value: again}
			return
		case wire.ServerErrorPrompt:
			return
		}
	}
}

// S3: coin game, count=2, truth=[Heads,Heads]; the sole user guesses
// [Heads,Tails] (score 1) and wins by default.
func TestCoinRoundSoleCandidateWins(t *testing.T) {
	rng := stubRand{coinCount: 2, coinTruth: []wire.Coin{wire.CoinHeads, wire.CoinHeads}}
	c := session.NewCoordinatorWithRand(zerolog.Nop(), rng)
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeCoin, 1)
	require.NoError(t, err)

	cd := conduit.New()
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 7, cd))

	winnerCh := make(chan wire.Winner, 1)
	go driveOneRound(cd, nil, []wire.Coin{wire.CoinHeads, wire.CoinTails}, false, winnerCh)

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 7, "a"))

	select {
	case w := <-winnerCh:
		require.Equal(t, wire.Winner{UserID: 7, UserName: "a"}, w)
	case <-time.After(time.Second):
		t.Fatal("winner was never announced")
	}
}

// S4: dice game, sides=6, count=2, truth=[3,5]; both users guess [3,5]
// (score 2 each) so the last polled user (B, join order second) wins.
func TestDiceRoundTieGoesToLastPolled(t *testing.T) {
	rng := stubRand{sides: 6, diceCount: 2, diceTruth: []uint8{3, 5}}
	c := session.NewCoordinatorWithRand(zerolog.Nop(), rng)
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeDice, 2)
	require.NoError(t, err)

	cdA := conduit.New()
	cdB := conduit.New()
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 1, cdA))
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 2, cdB))
	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 1, "A"))

	winnerCh := make(chan wire.Winner, 2)
	go driveOneRound(cdA, []uint8{3, 5}, nil, false, winnerCh)
	go driveOneRound(cdB, []uint8{3, 5}, nil, false, winnerCh)

	// The second join completes quorum and spawns the game loop.
	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 2, "B"))

	select {
	case w := <-winnerCh:
		require.Equal(t, wire.Winner{UserID: 2, UserName: "B"}, w)
	case <-time.After(time.Second):
		t.Fatal("winner was never announced")
	}
}

// Mirrors cmd/clean-client's real call order: JoinSession runs to
// completion before ListenEvents (and so RegisterConduit) is ever called,
// even for the participant whose join completes quorum. Before
// State.maybeStart existed, this ordering made every single-player session
// unplayable: tryStart snapshotted the (empty) conduit map synchronously
// inside the quorum-completing join, so the game loop always started with
// no conduit for its only user.
func TestJoinSessionThenRegisterConduitStartsSoleCandidate(t *testing.T) {
	rng := stubRand{coinCount: 1, coinTruth: []wire.Coin{wire.CoinHeads}}
	c := session.NewCoordinatorWithRand(zerolog.Nop(), rng)
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeCoin, 1)
	require.NoError(t, err)

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 7, "a"))

	cd := conduit.New()
	winnerCh := make(chan wire.Winner, 1)
	go driveOneRound(cd, nil, []wire.Coin{wire.CoinHeads}, false, winnerCh)

	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 7, cd))

	select {
	case w := <-winnerCh:
		require.Equal(t, wire.Winner{UserID: 7, UserName: "a"}, w)
	case <-time.After(time.Second):
		t.Fatal("winner was never announced")
	}
}

// Same real-client call order (join to completion, then register), but for
// the two-player case where the second user's join is the one that
// completes quorum — the exact scenario that used to race a conduit
// snapshot taken inside JoinSession against a RegisterConduit call that
// could only ever arrive afterward.
func TestDiceRoundQuorumCompletingUserJoinsBeforeRegisteringConduit(t *testing.T) {
	rng := stubRand{sides: 6, diceCount: 2, diceTruth: []uint8{3, 5}}
	c := session.NewCoordinatorWithRand(zerolog.Nop(), rng)
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeDice, 2)
	require.NoError(t, err)

	winnerCh := make(chan wire.Winner, 2)

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 1, "A"))
	cdA := conduit.New()
	go driveOneRound(cdA, []uint8{3, 5}, nil, false, winnerCh)
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 1, cdA))

	// B's join completes quorum; its conduit is registered only afterward,
	// exactly as cmd/clean-client's joinSession does.
	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 2, "B"))
	cdB := conduit.New()
	go driveOneRound(cdB, []uint8{3, 5}, nil, false, winnerCh)
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 2, cdB))

	select {
	case w := <-winnerCh:
		require.Equal(t, wire.Winner{UserID: 2, UserName: "B"}, w)
	case <-time.After(time.Second):
		t.Fatal("winner was never announced")
	}
}

// S5: user A replies try_again=true, user B replies try_again=false; the
// loop must not start a second round (no second priming ping for either
// user), so only one winner announcement is ever produced.
func TestTryAgainFalseFromAnyUserEndsTheLoop(t *testing.T) {
	rng := stubRand{sides: 6, diceCount: 2, diceTruth: []uint8{1, 1}}
	c := session.NewCoordinatorWithRand(zerolog.Nop(), rng)
	ctx := context.Background()

	sd, err := c.HostSession(ctx, wire.SessionTypeDice, 2)
	require.NoError(t, err)

	cdA := conduit.New()
	cdB := conduit.New()
	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 1, "A"))
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 1, cdA))
	require.NoError(t, c.RegisterConduit(ctx, sd.SessionID, 2, cdB))

	winnerCh := make(chan wire.Winner, 2)
	doneA := make(chan struct{})
	doneB := make(chan struct{})
	go func() { driveOneRound(cdA, []uint8{1}, nil, true, winnerCh); close(doneA) }()
	go func() { driveOneRound(cdB, []uint8{1}, nil, false, winnerCh); close(doneB) }()

	require.NoError(t, c.JoinSession(ctx, sd.SessionID, 2, "B"))

	<-doneA
	<-doneB

	// Exactly one winner announcement per user for the single round played.
	require.Len(t, winnerCh, 2)

	// Nothing further arrives: the loop ended instead of priming a second
	// round (which would enqueue another Ping on each conduit).
	select {
	case req := <-cdA.Outbound:
		t.Fatalf("unexpected second round prompt: %#v", req)
	case <-time.After(100 * time.Millisecond):
	}
}
