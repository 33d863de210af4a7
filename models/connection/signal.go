package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeAttack

	// Sent by the server, one per computer shot
	CodeComputerAttack

	// Snapshots of both boards, the computer's with ships hidden
	CodeFetchBoards
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

// Signal is the part of every incoming message read before dispatch.
// Code is nil when the field is missing.
type Signal struct {
	Code *uint8 `json:"code"`
}
