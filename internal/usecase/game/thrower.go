package game

import (
	"math/rand"
	"sync"
	"time"

	"yutnori/internal/domain/game"
)

// Thrower produces throw results.
type Thrower interface {
	Throw() game.Throw
}

// RandomThrower draws from the 64-bucket throw distribution. It is safe for
// concurrent use.
type RandomThrower struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomThrower seeds the source with seed, or with the clock when seed
// is 0.
func NewRandomThrower(seed int64) *RandomThrower {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomThrower{rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomThrower) Throw() game.Throw {
	r.mu.Lock()
	defer r.mu.Unlock()
	return game.FromRoll(r.rng.Intn(game.RollRange))
}

// SequenceThrower replays a fixed list of results, cycling when exhausted.
type SequenceThrower struct {
	mu     sync.Mutex
	throws []game.Throw
	next   int
}

func NewSequenceThrower(throws ...game.Throw) *SequenceThrower {
	return &SequenceThrower{throws: throws}
}

func (s *SequenceThrower) Throw() game.Throw {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.throws[s.next%len(s.throws)]
	s.next++
	return t
}
