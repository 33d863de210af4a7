package battleship

type PositionState uint8

const (
	PositionStateEmpty PositionState = iota
	PositionStateShip
	PositionStateHit
	PositionStateMiss

	// Cells around a sunk ship. They read as misses but were never
	// fired upon.
	PositionStateContour
)

// IsMiss is true for both fired misses and the contour of a sunk ship.
func (ps PositionState) IsMiss() bool {
	return ps == PositionStateMiss || ps == PositionStateContour
}

type Grid [][]PositionState

// Creates a new default grid
// All indexes are zero/PositionStateEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]PositionState, gridSize)
	}
	return grid
}

func (g Grid) clone() Grid {
	cp := make(Grid, len(g))
	for i := range g {
		cp[i] = make([]PositionState, len(g[i]))
		copy(cp[i], g[i])
	}
	return cp
}

// BoardSnapshot is a read-only copy of a board for renderers and
// clients.
type BoardSnapshot struct {
	Size        int  `json:"size"`
	HideShips   bool `json:"hide_ships"`
	SunkenShips int  `json:"sunken_ships"`
	ShipsCount  int  `json:"ships_count"`
	Cells       Grid `json:"cells"`
}

// CellAt returns the state as it should be shown: hidden boards
// report ship cells as empty.
func (bs BoardSnapshot) CellAt(row, col int) PositionState {
	state := bs.Cells[row][col]
	if bs.HideShips && state == PositionStateShip {
		return PositionStateEmpty
	}
	return state
}

// Visible returns the cells with hidden ships masked out, suitable for
// sending to an opponent.
func (bs BoardSnapshot) Visible() BoardSnapshot {
	if !bs.HideShips {
		return bs
	}
	masked := bs.Cells.clone()
	for r := range masked {
		for c := range masked[r] {
			masked[r][c] = bs.CellAt(r, c)
		}
	}
	bs.Cells = masked
	return bs
}
