package battleship

// Orientation names four directions along two axes: Up and Down move
// along rows, Right and Left along columns.
type Orientation uint8

const (
	OrientationUp Orientation = iota
	OrientationDown
	OrientationRight
	OrientationLeft
)

const orientationCount = 4

func (o Orientation) step() offset {
	switch o {
	case OrientationUp:
		return offset{1, 0}
	case OrientationDown:
		return offset{-1, 0}
	case OrientationRight:
		return offset{0, 1}
	default:
		return offset{0, -1}
	}
}

func (o Orientation) String() string {
	switch o {
	case OrientationUp:
		return "up"
	case OrientationDown:
		return "down"
	case OrientationRight:
		return "right"
	case OrientationLeft:
		return "left"
	}
	return "unknown"
}

const (
	MinShipLength = 1
	MaxShipLength = 4
)

type Ship struct {
	bow         Coordinates
	length      int
	orientation Orientation
	lives       int
}

func NewShip(bow Coordinates, length int, orientation Orientation) *Ship {
	return &Ship{
		bow:         bow,
		length:      length,
		orientation: orientation,
		lives:       length,
	}
}

// Coordinates derives the cells of the ship from its bow. It is
// recomputed on every call.
func (sh *Ship) Coordinates() []Coordinates {
	step := sh.orientation.step()
	coords := make([]Coordinates, sh.length)
	for i := 0; i < sh.length; i++ {
		coords[i] = sh.bow.Translate(step.dr*i, step.dc*i)
	}
	return coords
}

func (sh *Ship) Occupies(c Coordinates) bool {
	for _, sc := range sh.Coordinates() {
		if sc == c {
			return true
		}
	}
	return false
}

func (sh *Ship) GotHit() {
	if sh.lives > 0 {
		sh.lives--
	}
}

func (sh *Ship) IsSunk() bool {
	return sh.lives == 0
}

// IsDamaged is true for a ship that has been hit but still floats.
func (sh *Ship) IsDamaged() bool {
	return sh.lives > 0 && sh.lives < sh.length
}

func (sh *Ship) Lives() int {
	return sh.lives
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Bow() Coordinates {
	return sh.bow
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}
