package battleship

import (
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

const (
	PlayerMatchStatusLost      = -1
	PlayerMatchStatusUndefined = 0
	PlayerMatchStatusWon       = 1
)

type Turn uint8

const (
	TurnHuman Turn = iota
	TurnComputer
)

func (t Turn) String() string {
	if t == TurnHuman {
		return "human"
	}
	return "computer"
}

// Game pairs the human's board with the computer's and tracks whose turn
// it is. The human always fires first.
type Game struct {
	uuid          string
	humanBoard    *Board
	computerBoard *Board
	computer      *ComputerPlayer
	turn          Turn
	createdAt     time.Time
}

func NewGame(rnd Random) *Game {
	humanBoard := NewRandomBoard(rnd, GridSize, DefaultFleet, false)
	computerBoard := NewRandomBoard(rnd, GridSize, DefaultFleet, true)

	return &Game{
		uuid:          uuid.NewString()[:6],
		humanBoard:    humanBoard,
		computerBoard: computerBoard,
		computer:      NewComputerPlayer(computerBoard, humanBoard, rnd),
		turn:          TurnHuman,
		createdAt:     time.Now(),
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) HumanBoard() *Board {
	return g.humanBoard
}

func (g *Game) ComputerBoard() *Board {
	return g.computerBoard
}

func (g *Game) Computer() *ComputerPlayer {
	return g.computer
}

func (g *Game) Turn() Turn {
	return g.turn
}

func (g *Game) CreatedAt() time.Time {
	return g.createdAt
}

// Advance passes the turn on a miss. Hits and sinks keep the shooter.
func (g *Game) Advance(outcome ShotOutcome) {
	if outcome.GrantsExtraTurn() {
		return
	}
	if g.turn == TurnHuman {
		g.turn = TurnComputer
	} else {
		g.turn = TurnHuman
	}
}

func (g *Game) IsFinished() bool {
	return g.humanBoard.Defeat() || g.computerBoard.Defeat()
}

// Winner reports the side that sank the whole opposing fleet.
func (g *Game) Winner() (Turn, bool) {
	switch {
	case g.computerBoard.Defeat():
		return TurnHuman, true
	case g.humanBoard.Defeat():
		return TurnComputer, true
	}
	return TurnHuman, false
}

func (g *Game) HumanMatchStatus() int {
	winner, ok := g.Winner()
	if !ok {
		return PlayerMatchStatusUndefined
	}
	if winner == TurnHuman {
		return PlayerMatchStatusWon
	}
	return PlayerMatchStatusLost
}

// HumanAttack fires the human's shot at the computer board.
func (g *Game) HumanAttack(target Coordinates) (ShotOutcome, error) {
	if g.IsFinished() {
		return ShotOutcomeNone, cerr.ErrGameFinished
	}
	if g.turn != TurnHuman {
		return ShotOutcomeNone, cerr.ErrNotYourTurn
	}

	outcome, err := g.computerBoard.Shoot(target)
	if err != nil {
		return ShotOutcomeNone, err
	}
	g.Advance(outcome)
	return outcome, nil
}

// ComputerTurn lets the computer fire until it misses or wins.
func (g *Game) ComputerTurn() ([]ShotRecord, error) {
	if g.IsFinished() {
		return nil, cerr.ErrGameFinished
	}
	if g.turn != TurnComputer {
		return nil, cerr.ErrNotYourTurn
	}

	shots := make([]ShotRecord, 0, 4)
	for g.turn == TurnComputer && !g.IsFinished() {
		record, err := TakeTurn(g.computer, nil)
		if err != nil {
			return shots, err
		}
		shots = append(shots, record)
		g.Advance(record.Outcome)
	}
	return shots, nil
}
