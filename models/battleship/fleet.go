package battleship

import (
	"errors"

	"github.com/charmbracelet/log"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

// DefaultFleet lists ship lengths in placement order.
var DefaultFleet = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

const MaxPlacementAttempts = 2000

// PlaceFleet fills a fresh board with ships of the given lengths at
// random positions. The attempt counter spans the whole fleet; running
// out returns ErrPlacementExhausted and the board is discarded.
//
// Bows are drawn from [0, size], one past the board, so some attempts
// fail on bounds. Those count as ordinary retries.
func PlaceFleet(rnd Random, size int, lengths []int) (*Board, error) {
	board := NewBoard(size, false)
	attempts := 0

	for _, length := range lengths {
		for {
			attempts++
			if attempts > MaxPlacementAttempts {
				return nil, cerr.ErrFleetPlacementExhausted(MaxPlacementAttempts)
			}

			bow := NewCoordinates(rnd.IntN(size+1), rnd.IntN(size+1))
			ship := NewShip(bow, length, Orientation(rnd.IntN(orientationCount)))

			err := board.AddShip(ship)
			if err == nil {
				break
			}
			if !errors.Is(err, cerr.ErrInvalidPlacement) {
				return nil, err
			}
		}
	}

	board.ResetOccupied()
	return board, nil
}

// NewRandomBoard retries PlaceFleet from an empty board until a whole
// fleet fits.
func NewRandomBoard(rnd Random, size int, lengths []int, hideShips bool) *Board {
	for restarts := 0; ; restarts++ {
		board, err := PlaceFleet(rnd, size, lengths)
		if err != nil {
			log.Debug("fleet placement restarted", "restarts", restarts+1, "err", err)
			continue
		}
		board.SetHideShips(hideShips)
		return board
	}
}
