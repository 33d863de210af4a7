package battleship

import (
	"math/rand/v2"
	"time"
)

// Random is the source of every random choice in the game: placement
// and computer targeting. *rand.Rand satisfies it.
type Random interface {
	IntN(n int) int
}

// NewRandom returns a PCG source. A zero seed draws one from the clock.
func NewRandom(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func pick(rnd Random, coords []Coordinates) Coordinates {
	return coords[rnd.IntN(len(coords))]
}
