package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

func contains(coords []Coordinates, c Coordinates) bool {
	for _, cc := range coords {
		if cc == c {
			return true
		}
	}
	return false
}

func anyDamaged(board *Board) bool {
	for _, ship := range board.Ships() {
		if ship.IsDamaged() {
			return true
		}
	}
	return false
}

func TestComputerPlayerHuntsAfterHit(t *testing.T) {
	enemy := newTestBoard(t, NewShip(NewCoordinates(5, 5), 4, OrientationRight))
	computer := NewComputerPlayer(NewBoard(GridSize, true), enemy, NewRandom(3))

	if _, err := enemy.Shoot(NewCoordinates(5, 6)); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 20; i++ {
		target, err := computer.NextShot()
		if err != nil {
			t.Fatal(err)
		}
		if !contains(enemy.HuntCandidates(), target) {
			t.Fatalf("expected a hunt candidate\t got: %s", target)
		}
	}
}

func TestComputerPlayerSinksFleet(t *testing.T) {
	for seed := uint64(1); seed <= 10; seed++ {
		rnd := NewRandom(seed)
		enemy := NewRandomBoard(rnd, GridSize, DefaultFleet, false)
		computer := NewComputerPlayer(NewBoard(GridSize, true), enemy, rnd)

		shots := 0
		for !enemy.Defeat() {
			hunting := len(enemy.HuntCandidates()) != 0
			if hunting != anyDamaged(enemy) {
				t.Fatalf("seed %d: hunt candidates present: %t\t damaged ship present: %t", seed, hunting, anyDamaged(enemy))
			}

			sunkBefore := enemy.SunkCount()
			record, err := TakeTurn(computer, func(err error) {
				t.Fatalf("seed %d: computer produced an invalid shot: %v", seed, err)
			})
			if err != nil {
				t.Fatal(err)
			}

			switch record.Outcome {
			case ShotOutcomeSunk:
				if enemy.SunkCount() != sunkBefore+1 {
					t.Fatalf("seed %d: sunk count must grow by one", seed)
				}
			default:
				if enemy.SunkCount() != sunkBefore {
					t.Fatalf("seed %d: sunk count changed on %s", seed, record.Outcome)
				}
			}

			shots++
			if shots > GridSize*GridSize {
				t.Fatalf("seed %d: more shots than cells", seed)
			}
		}

		for _, ship := range enemy.Ships() {
			if !ship.IsSunk() {
				t.Fatalf("seed %d: defeat with a ship afloat", seed)
			}
		}
	}
}

func TestComputerPlayerNoTargetsLeft(t *testing.T) {
	enemy := NewBoard(1, false)
	computer := NewComputerPlayer(NewBoard(1, true), enemy, NewRandom(1))

	if _, err := enemy.Shoot(NewCoordinates(0, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := computer.NextShot(); !errors.Is(err, cerr.ErrNoTargetsLeft) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNoTargetsLeft, err)
	}
}

// scriptedPlayer fires the listed targets in order.
type scriptedPlayer struct {
	enemy   *Board
	targets []Coordinates
}

func (sp *scriptedPlayer) Board() *Board { return nil }
func (sp *scriptedPlayer) Enemy() *Board { return sp.enemy }
func (sp *scriptedPlayer) NextShot() (Coordinates, error) {
	if len(sp.targets) == 0 {
		return Coordinates{}, cerr.ErrNoTargetsLeft
	}
	target := sp.targets[0]
	sp.targets = sp.targets[1:]
	return target, nil
}

func TestTakeTurnRetriesInvalidShots(t *testing.T) {
	enemy := newTestBoard(t, NewShip(NewCoordinates(2, 2), 1, OrientationUp))
	if _, err := enemy.Shoot(NewCoordinates(7, 7)); err != nil {
		t.Fatal(err)
	}

	player := &scriptedPlayer{
		enemy:   enemy,
		targets: []Coordinates{{-1, 4}, {7, 7}, {2, 2}},
	}

	var reported []error
	record, err := TakeTurn(player, func(err error) { reported = append(reported, err) })
	if err != nil {
		t.Fatal(err)
	}
	if record.Target != NewCoordinates(2, 2) || record.Outcome != ShotOutcomeSunk {
		t.Fatalf("expected sunk at (2, 2)\t got: %+v", record)
	}
	if len(reported) != 2 {
		t.Fatalf("expected reported errors: %d\t got: %d", 2, len(reported))
	}
	if !errors.Is(reported[0], cerr.ErrOutOfBounds) || !errors.Is(reported[1], cerr.ErrAlreadyTargeted) {
		t.Fatalf("unexpected reported errors: %v", reported)
	}

	if _, err := TakeTurn(player, nil); !errors.Is(err, cerr.ErrNoTargetsLeft) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNoTargetsLeft, err)
	}
}
