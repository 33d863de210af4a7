package api

import (
	"encoding/json"
	"errors"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
	mc "github.com/saeidalz13/sea-battle/models/connection"
)

// Request wraps one raw websocket payload. Handlers decode it into
// the message shape they expect.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

func (r Request) HandleCreateGame(gameManager mb.GameManager) (*mb.Game, mc.Message[mc.RespCreateGame]) {
	game := gameManager.CreateGame()

	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)
	resp.AddPayload(mc.RespCreateGame{
		GameUuid: game.Uuid(),
		Fleet:    mb.DefaultFleet,
		OwnBoard: game.HumanBoard().Snapshot(),
	})
	return game, resp
}

// HandleAttack fires the human's shot. Invalid shots come back as a
// message error and the human keeps the turn.
func (r Request) HandleAttack(game *mb.Game) mc.Message[mc.RespAttack] {
	resp := mc.NewMessage[mc.RespAttack](mc.CodeAttack)

	var req mc.Message[mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	if game == nil || game.Uuid() != req.Payload.GameUuid {
		resp.AddError(cerr.ErrGameNotExists(req.Payload.GameUuid).Error(), cerr.ConstErrAttackFailed)
		return resp
	}

	target := mb.NewCoordinates(req.Payload.Row, req.Payload.Col)
	outcome, err := game.HumanAttack(target)
	if err != nil {
		resp.AddError(err.Error(), attackErrorMessage(err))
		return resp
	}

	resp.AddPayload(newRespAttack(game, game.ComputerBoard(), target, outcome))
	return resp
}

func attackErrorMessage(err error) string {
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		return "you are trying to shoot off the board"
	case errors.Is(err, cerr.ErrAlreadyTargeted):
		return "you have already shot at this cell"
	case errors.Is(err, cerr.ErrNotYourTurn):
		return "wait for the computer to finish its turn"
	case errors.Is(err, cerr.ErrGameFinished):
		return "the game is over"
	}
	return cerr.ConstErrAttackFailed
}

// NewComputerAttackMessages turns the computer's turn into one message per
// shot. IsTurn tells the human whether they fire next.
func NewComputerAttackMessages(game *mb.Game, shots []mb.ShotRecord) []mc.Message[mc.RespAttack] {
	msgs := make([]mc.Message[mc.RespAttack], 0, len(shots))
	for i, shot := range shots {
		msg := mc.NewMessage[mc.RespAttack](mc.CodeComputerAttack)
		payload := newRespAttack(game, game.HumanBoard(), shot.Target, shot.Outcome)
		// Only the last shot of the turn can hand the turn back.
		payload.IsTurn = payload.IsTurn && i == len(shots)-1
		msg.AddPayload(payload)
		msgs = append(msgs, msg)
	}
	return msgs
}

// IsTurn is always told from the human's side.
func newRespAttack(game *mb.Game, board *mb.Board, target mb.Coordinates, outcome mb.ShotOutcome) mc.RespAttack {
	resp := mc.RespAttack{
		Row:         target.Row,
		Col:         target.Col,
		Outcome:     outcome,
		IsTurn:      !game.IsFinished() && game.Turn() == mb.TurnHuman,
		SunkenShips: board.SunkCount(),
	}

	if outcome == mb.ShotOutcomeSunk {
		if ship, ok := board.ShipAt(target); ok {
			resp.ContourCoords = board.Contour(ship)
		}
	}
	return resp
}

func (r Request) HandleFetchBoards(game *mb.Game) mc.Message[mc.RespFetchBoards] {
	resp := mc.NewMessage[mc.RespFetchBoards](mc.CodeFetchBoards)

	var req mc.Message[mc.ReqFetchBoards]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "failed to fetch boards")
		return resp
	}

	if game == nil || game.Uuid() != req.Payload.GameUuid {
		resp.AddError(cerr.ErrGameNotExists(req.Payload.GameUuid).Error(), "failed to fetch boards")
		return resp
	}

	resp.AddPayload(mc.RespFetchBoards{
		OwnBoard:   game.HumanBoard().Snapshot(),
		EnemyBoard: game.ComputerBoard().Snapshot().Visible(),
	})
	return resp
}

func NewEndGameMessage(game *mb.Game) mc.Message[mc.RespEndGame] {
	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{PlayerMatchStatus: game.HumanMatchStatus()})
	return msg
}
