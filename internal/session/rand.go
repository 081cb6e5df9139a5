package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/deonlabs/clean-session/pkg/wire"
)

var diceSideChoices = [...]uint8{4, 6, 8, 12, 20}

// RandSource generates the two truth vectors (spec §4.4's dice/coin
// rounds). Tests substitute a fixed RandSource to make rounds deterministic
// (spec §8's S3/S4 scenarios); production code uses newMathRand.
type RandSource interface {
	DiceSides() uint8
	DiceCount() uint8
	DiceTruth(sides, count uint8) []uint8
	CoinCount() uint8
	CoinTruth(count uint8) []wire.Coin
}

// mathRand is the production RandSource, grounded in the teacher's equity
// calculator's pattern of wrapping a seeded *rand.Rand. A single instance is
// shared by every session's game loop goroutine, so access is serialized by
// a mutex the way the teacher's worker-pool shuffle guards its shared deck.
type mathRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newMathRand() *mathRand {
	return &mathRand{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (m *mathRand) DiceSides() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return diceSideChoices[m.rng.Intn(len(diceSideChoices))]
}

func (m *mathRand) DiceCount() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint8(1 + m.rng.Intn(6))
}

func (m *mathRand) DiceTruth(sides, count uint8) []uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	truth := make([]uint8, count)
	for i := range truth {
		truth[i] = uint8(1 + m.rng.Intn(int(sides)))
	}
	return truth
}

func (m *mathRand) CoinCount() uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return uint8(1 + m.rng.Intn(6))
}

func (m *mathRand) CoinTruth(count uint8) []wire.Coin {
	m.mu.Lock()
	defer m.mu.Unlock()
	truth := make([]wire.Coin, count)
	for i := range truth {
		if m.rng.Intn(2) == 0 {
			truth[i] = wire.CoinHeads
		} else {
			truth[i] = wire.CoinTails
		}
	}
	return truth
}
