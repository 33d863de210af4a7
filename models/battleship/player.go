package battleship

import cerr "github.com/saeidalz13/sea-battle/internal/error"

// Player decides where to fire next. Board is the player's own board and
// Enemy the board being fired upon.
type Player interface {
	Board() *Board
	Enemy() *Board
	NextShot() (Coordinates, error)
}

type ComputerPlayer struct {
	board *Board
	enemy *Board
	rnd   Random
}

var _ Player = (*ComputerPlayer)(nil)

func NewComputerPlayer(board, enemy *Board, rnd Random) *ComputerPlayer {
	return &ComputerPlayer{
		board: board,
		enemy: enemy,
		rnd:   rnd,
	}
}

func (cp *ComputerPlayer) Board() *Board {
	return cp.board
}

func (cp *ComputerPlayer) Enemy() *Board {
	return cp.enemy
}

// NextShot finishes off a damaged ship first and otherwise searches at
// random among the untried cells.
func (cp *ComputerPlayer) NextShot() (Coordinates, error) {
	if hunt := cp.enemy.HuntCandidates(); len(hunt) != 0 {
		return pick(cp.rnd, hunt), nil
	}

	search := cp.enemy.RandomSearchCandidates()
	if len(search) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsLeft
	}
	return pick(cp.rnd, search), nil
}
