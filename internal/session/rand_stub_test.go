package session_test

import "github.com/deonlabs/clean-session/pkg/wire"

// stubRand is a fixed RandSource for deterministic round tests (spec §8's
// S3/S4 scenarios rely on stubbing the random source).
type stubRand struct {
	sides     uint8
	diceCount uint8
	diceTruth []uint8
	coinCount uint8
	coinTruth []wire.Coin
}

func (s stubRand) DiceSides() uint8              { return s.sides }
func (s stubRand) DiceCount() uint8              { return s.diceCount }
func (s stubRand) DiceTruth(_, _ uint8) []uint8  { return s.diceTruth }
func (s stubRand) CoinCount() uint8              { return s.coinCount }
func (s stubRand) CoinTruth(_ uint8) []wire.Coin { return s.coinTruth }
