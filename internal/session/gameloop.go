package session

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deonlabs/clean-session/pkg/conduit"
	"github.com/deonlabs/clean-session/pkg/wire"
)

// runGameLoop drives one session's rounds to completion (spec §4.4). It is
// spawned as a detached goroutine, never awaited by the RPC handler, once
// quorum is reached and every joined user has registered a conduit: by
// whichever JoinSession or RegisterConduit call completes that condition.
// A quorum-completing join does not start it while a joined user's conduit
// is still missing (see State.maybeStart). onEnd is called exactly once, whatever
// the outcome, so the caller can evict the session from the registry.
func runGameLoop(
	log zerolog.Logger,
	sid wire.SessionID,
	typ wire.SessionType,
	order []wire.UserID,
	users map[wire.UserID]UserData,
	conduits map[wire.UserID]*conduit.Conduit,
	rng RandSource,
	onEnd func(),
) {
	defer onEnd()
	log = log.With().Uint64("session_id", uint64(sid)).Logger()

	for {
		for _, uid := range order {
			c, ok := conduits[uid]
			if !ok {
				broadcastError(log, order, conduits, wire.ErrClientUnreachable)
				return
			}
			reply, err := c.Ping("Game start")
			if err != nil {
				broadcastError(log, order, conduits, err)
				return
			}
			log.Debug().Uint64("user_id", uint64(uid)).Str("reply", reply).Msg("priming ping acknowledged")
		}

		winnerUID, err := playRound(typ, order, conduits, rng)
		if err != nil {
			broadcastError(log, order, conduits, err)
			return
		}

		winnerData, ok := users[winnerUID]
		if !ok {
			broadcastError(log, order, conduits, wire.ErrUnknownWinner)
			return
		}

		for _, uid := range order {
			conduits[uid].WinnerAnnounce(winnerUID, winnerData.Name)
		}

		again := true
		for _, uid := range order {
			reply, err := conduits[uid].TryAgain()
			if err != nil {
				broadcastError(log, order, conduits, err)
				return
			}
			again = again && reply
		}
		if !again {
			return
		}
	}
}

// playRound runs one dice or coin round and returns the winning UserID.
// The truth vector is committed before any user is polled (spec testable
// property 4), so no user's guess can influence another's truth vector.
func playRound(typ wire.SessionType, order []wire.UserID, conduits map[wire.UserID]*conduit.Conduit, rng RandSource) (wire.UserID, error) {
	switch typ {
	case wire.SessionTypeDice:
		return playDiceRound(order, conduits, rng)
	case wire.SessionTypeCoin:
		return playCoinRound(order, conduits, rng)
	default:
		return 0, wire.ErrInvalidSessionType
	}
}

func playDiceRound(order []wire.UserID, conduits map[wire.UserID]*conduit.Conduit, rng RandSource) (wire.UserID, error) {
	sides := rng.DiceSides()
	count := rng.DiceCount()
	truth := rng.DiceTruth(sides, count)

	inTruth := make(map[uint8]bool, len(truth))
	for _, v := range truth {
		inTruth[v] = true
	}

	var winner wire.UserID
	winnerScore := -1
	for _, uid := range order {
		guess, err := conduits[uid].RollDice(sides, count)
		if err != nil {
			return 0, err
		}

		seen := make(map[uint8]bool)
		score := 0
		for _, g := range guess {
			if seen[g] {
				continue
			}
			seen[g] = true
			if inTruth[g] {
				score++
			}
		}

		if score >= winnerScore {
			winner = uid
			winnerScore = score
		}
	}
	return winner, nil
}

func playCoinRound(order []wire.UserID, conduits map[wire.UserID]*conduit.Conduit, rng RandSource) (wire.UserID, error) {
	count := rng.CoinCount()
	truth := rng.CoinTruth(count)

	var winner wire.UserID
	winnerScore := -1
	for _, uid := range order {
		guess, err := conduits[uid].FlipCoin(count)
		if err != nil {
			return 0, err
		}

		score := 0
		limit := len(guess)
		if len(truth) < limit {
			limit = len(truth)
		}
		for i := 0; i < limit; i++ {
			if guess[i] == truth[i] {
				score++
			}
		}

		if score >= winnerScore {
			winner = uid
			winnerScore = score
		}
	}
	return winner, nil
}

// broadcastError formats err and fires it to every user's conduit as a
// fire-and-forget prompt (spec §4.4's error propagation); failures of the
// broadcast itself are logged only, never escalated.
func broadcastError(log zerolog.Logger, order []wire.UserID, conduits map[wire.UserID]*conduit.Conduit, err error) {
	log.Error().Err(err).Msg("game loop terminating on error")
	text := fmt.Sprintf("%v", err)
	for _, uid := range order {
		c, ok := conduits[uid]
		if !ok {
			continue
		}
		c.Error(text)
	}
}
