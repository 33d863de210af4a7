package connection

import (
	"time"

	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string           `json:"game_uuid"`
	Fleet    []int            `json:"fleet"`
	OwnBoard mb.BoardSnapshot `json:"own_board"`
}

type RespAttack struct {
	Row         int            `json:"row"`
	Col         int            `json:"col"`
	Outcome     mb.ShotOutcome `json:"outcome"`
	IsTurn      bool           `json:"is_turn"`
	SunkenShips int            `json:"sunken_ships"`

	// Cells revealed around a ship that just sank
	ContourCoords []mb.Coordinates `json:"contour_coords,omitempty"`
}

type RespFetchBoards struct {
	OwnBoard   mb.BoardSnapshot `json:"own_board"`
	EnemyBoard mb.BoardSnapshot `json:"enemy_board"`
}

type RespEndGame struct {
	PlayerMatchStatus int `json:"player_match_status"`
}

// Served over plain HTTP on /analytics
type RespServerAnalytics struct {
	ServerIp      string     `json:"server_ip"`
	GamesCreated  int64      `json:"games_created"`
	GamesFinished int64      `json:"games_finished"`
	HumanWins     int64      `json:"human_wins"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
