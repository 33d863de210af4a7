package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
)

// Failure kinds of the game core. Constructors below wrap one of these,
// so callers match them with errors.Is.
var (
	// Both shot failures wrap ErrInvalidShot; the player keeps the turn.
	ErrInvalidShot     = errors.New("invalid shot")
	ErrOutOfBounds     = fmt.Errorf("%w: coordinates out of board bound", ErrInvalidShot)
	ErrAlreadyTargeted = fmt.Errorf("%w: coordinates already targeted", ErrInvalidShot)

	ErrInvalidPlacement   = errors.New("invalid ship placement")
	ErrPlacementExhausted = errors.New("fleet placement attempts exhausted")
	ErrNoTargetsLeft      = errors.New("no coordinates left to target")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it is not the player's turn")

	// Terminal input
	ErrInputTokenCount   = errors.New("enter exactly 2 coordinates")
	ErrInputRowNotLetter = errors.New("first coordinate must be a latin letter")
	ErrInputColNotNumber = errors.New("second coordinate must be a number")
	ErrInputClosed       = errors.New("input closed")

	ErrSignalAbsent = errors.New("incoming message has no 'code' field")
)

func ErrCoordinatesOutOfGridBound(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrOutOfBounds, row, col)
}

func ErrPositionAlreadyTargeted(row, col int) error {
	return fmt.Errorf("%w\trow: %d\tcol: %d", ErrAlreadyTargeted, row, col)
}

func ErrShipPlacementInvalid(row, col int, reason string) error {
	return fmt.Errorf("%w at row: %d col: %d (%s)", ErrInvalidPlacement, row, col, reason)
}

func ErrFleetPlacementExhausted(attempts int) error {
	return fmt.Errorf("%w after %d attempts", ErrPlacementExhausted, attempts)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s", gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("game with this uuid is nil, uuid: %s", gameUuid)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrSessionNotReconnectable(sessionId string) error {
	return fmt.Errorf("session is not waiting for a reconnection, id: %s", sessionId)
}

func ErrUnknownShotOutcome(text string) error {
	return fmt.Errorf("unknown shot outcome: %q", text)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("stage must be either dev or prod, got: %s", stage)
}
