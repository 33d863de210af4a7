package battleship

import (
	"github.com/dolthub/swiss"
	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

const GridSize int = 10

type ShotOutcome uint8

const (
	ShotOutcomeNone ShotOutcome = iota
	ShotOutcomeMiss
	ShotOutcomeHit
	ShotOutcomeSunk
)

// GrantsExtraTurn is true when the shooter fires again.
func (o ShotOutcome) GrantsExtraTurn() bool {
	return o == ShotOutcomeHit || o == ShotOutcomeSunk
}

func (o ShotOutcome) String() string {
	switch o {
	case ShotOutcomeMiss:
		return "miss"
	case ShotOutcomeHit:
		return "hit"
	case ShotOutcomeSunk:
		return "sunk"
	}
	return "none"
}

func (o ShotOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ShotOutcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "miss":
		*o = ShotOutcomeMiss
	case "hit":
		*o = ShotOutcomeHit
	case "sunk":
		*o = ShotOutcomeSunk
	case "none":
		*o = ShotOutcomeNone
	default:
		return cerr.ErrUnknownShotOutcome(string(text))
	}
	return nil
}

// Board owns the grid and the ships of one side. The occupied set holds
// every busy coordinate: ship cells and contours during placement, then
// every fired-upon cell and the contours of sunk ships during play.
type Board struct {
	size      int
	hideShips bool
	sunkCount int
	grid      Grid
	occupied  *swiss.Map[Coordinates, struct{}]
	ships     []*Ship
}

func NewBoard(size int, hideShips bool) *Board {
	return &Board{
		size:      size,
		hideShips: hideShips,
		grid:      NewGrid(size),
		occupied:  swiss.NewMap[Coordinates, struct{}](uint32(size * size)),
		ships:     make([]*Ship, 0, len(DefaultFleet)),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) HideShips() bool {
	return b.hideShips
}

func (b *Board) SetHideShips(hide bool) {
	b.hideShips = hide
}

func (b *Board) SunkCount() int {
	return b.sunkCount
}

func (b *Board) Ships() []*Ship {
	return b.ships
}

func (b *Board) CellAt(c Coordinates) PositionState {
	return b.grid[c.Row][c.Col]
}

func (b *Board) IsOccupied(c Coordinates) bool {
	return b.occupied.Has(c)
}

func (b *Board) occupy(c Coordinates) {
	b.occupied.Put(c, struct{}{})
}

// AddShip places the ship and reserves its contour so that no later ship
// can touch it, diagonals included. The board is left untouched when the
// ship does not fit.
func (b *Board) AddShip(ship *Ship) error {
	coords := ship.Coordinates()
	for _, c := range coords {
		if c.IsOut(b.size) {
			return cerr.ErrShipPlacementInvalid(c.Row, c.Col, "out of board bound")
		}
		if b.IsOccupied(c) {
			return cerr.ErrShipPlacementInvalid(c.Row, c.Col, "position is busy")
		}
	}

	for _, c := range coords {
		b.grid[c.Row][c.Col] = PositionStateShip
		b.occupy(c)
	}

	b.ships = append(b.ships, ship)
	b.contour(ship, false)
	return nil
}

// contour reserves the free 8-connected neighbourhood of the ship. With
// mark set the reserved cells are also drawn on the grid.
func (b *Board) contour(ship *Ship, mark bool) {
	for _, c := range ship.Coordinates() {
		for _, o := range contourOffsets {
			cur := c.Translate(o.dr, o.dc)
			if cur.IsOut(b.size) || b.IsOccupied(cur) {
				continue
			}
			if mark {
				b.grid[cur.Row][cur.Col] = PositionStateContour
			}
			b.occupy(cur)
		}
	}
}

// ShipAt returns the ship covering c, if any.
func (b *Board) ShipAt(c Coordinates) (*Ship, bool) {
	for _, ship := range b.ships {
		if ship.Occupies(c) {
			return ship, true
		}
	}
	return nil, false
}

// Contour lists the in-bounds cells touching the ship, diagonals
// included, without duplicates.
func (b *Board) Contour(ship *Ship) []Coordinates {
	seen := make(map[Coordinates]struct{}, 4*ship.Length()+6)
	res := make([]Coordinates, 0, 4*ship.Length()+6)
	for _, c := range ship.Coordinates() {
		for _, o := range contourOffsets {
			cur := c.Translate(o.dr, o.dc)
			if cur.IsOut(b.size) || ship.Occupies(cur) {
				continue
			}
			if _, ok := seen[cur]; ok {
				continue
			}
			seen[cur] = struct{}{}
			res = append(res, cur)
		}
	}
	return res
}

// ResetOccupied drops every reservation made during placement. Ship cells
// stay on the grid.
func (b *Board) ResetOccupied() {
	b.occupied.Clear()
}

// Shoot resolves one shot. A successful call always records target as
// busy so it can never be fired upon again.
func (b *Board) Shoot(target Coordinates) (ShotOutcome, error) {
	if target.IsOut(b.size) {
		return ShotOutcomeNone, cerr.ErrCoordinatesOutOfGridBound(target.Row, target.Col)
	}
	if b.IsOccupied(target) {
		return ShotOutcomeNone, cerr.ErrPositionAlreadyTargeted(target.Row, target.Col)
	}

	b.occupy(target)

	for _, ship := range b.ships {
		if !ship.Occupies(target) {
			continue
		}

		ship.GotHit()
		b.grid[target.Row][target.Col] = PositionStateHit

		if ship.IsSunk() {
			b.sunkCount++
			b.contour(ship, true)
			return ShotOutcomeSunk, nil
		}
		return ShotOutcomeHit, nil
	}

	b.grid[target.Row][target.Col] = PositionStateMiss
	return ShotOutcomeMiss, nil
}

func (b *Board) Defeat() bool {
	return b.sunkCount == len(b.ships)
}

// RandomSearchCandidates lists every untried coordinate in row-major
// order.
func (b *Board) RandomSearchCandidates() []Coordinates {
	res := make([]Coordinates, 0, b.size*b.size-b.occupied.Count())
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			c := NewCoordinates(row, col)
			if !b.IsOccupied(c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// HuntCandidates lists the likely continuations of every hit but afloat
// ship. Each damaged cell contributes its free 4-neighbours, narrowed to
// one axis when a neighbouring hit on the same ship shows the line. The
// same coordinate may appear several times; that weighting is kept.
func (b *Board) HuntCandidates() []Coordinates {
	var res []Coordinates
	for _, ship := range b.ships {
		if ship.IsSunk() {
			continue
		}
		for _, d := range ship.Coordinates() {
			if !b.IsOccupied(d) {
				continue
			}
			res = append(res, b.huntAround(ship, d)...)
		}
	}
	return res
}

func (b *Board) huntAround(ship *Ship, d Coordinates) []Coordinates {
	offsets := crossOffsets
	if b.isHitOn(ship, d.Translate(1, 0)) || b.isHitOn(ship, d.Translate(-1, 0)) {
		offsets = rowAxisOffsets
	}
	if b.isHitOn(ship, d.Translate(0, 1)) || b.isHitOn(ship, d.Translate(0, -1)) {
		offsets = colAxisOffsets
	}

	res := make([]Coordinates, 0, len(offsets))
	for _, o := range offsets {
		aim := d.Translate(o.dr, o.dc)
		if !aim.IsOut(b.size) && !b.IsOccupied(aim) {
			res = append(res, aim)
		}
	}
	return res
}

func (b *Board) isHitOn(ship *Ship, c Coordinates) bool {
	return b.IsOccupied(c) && ship.Occupies(c)
}

func (b *Board) Snapshot() BoardSnapshot {
	return BoardSnapshot{
		Size:        b.size,
		HideShips:   b.hideShips,
		SunkenShips: b.sunkCount,
		ShipsCount:  len(b.ships),
		Cells:       b.grid.clone(),
	}
}
