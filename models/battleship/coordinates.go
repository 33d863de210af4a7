package battleship

import "fmt"

type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewCoordinates(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// IsOut reports whether c lies outside a size x size board.
func (c Coordinates) IsOut(size int) bool {
	return c.Row < 0 || c.Row >= size || c.Col < 0 || c.Col >= size
}

func (c Coordinates) Translate(dr, dc int) Coordinates {
	return Coordinates{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

type offset struct{ dr, dc int }

var (
	rowAxisOffsets = []offset{{-1, 0}, {1, 0}}
	colAxisOffsets = []offset{{0, -1}, {0, 1}}
	crossOffsets   = []offset{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}

	// The ship cell itself is part of the neighbourhood; callers skip
	// it through the occupied check.
	contourOffsets = []offset{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 0}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
)
