package battleship

import (
	"errors"
	"testing"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

func freeWaterCell(t *testing.T, board *Board) Coordinates {
	t.Helper()
	for _, c := range board.RandomSearchCandidates() {
		if board.CellAt(c) == PositionStateEmpty {
			return c
		}
	}
	t.Fatal("no free water cell")
	return Coordinates{}
}

func TestGameTurns(t *testing.T) {
	game := NewGame(NewRandom(11))

	if game.Turn() != TurnHuman {
		t.Fatalf("expected first turn: %s\t got: %s", TurnHuman, game.Turn())
	}
	if !game.ComputerBoard().HideShips() || game.HumanBoard().HideShips() {
		t.Fatal("only the computer board hides its ships")
	}
	if len(game.Uuid()) != 6 {
		t.Fatalf("expected uuid length: %d\t got: %d", 6, len(game.Uuid()))
	}

	if _, err := game.ComputerTurn(); !errors.Is(err, cerr.ErrNotYourTurn) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNotYourTurn, err)
	}

	shipCell := game.ComputerBoard().Ships()[0].Coordinates()[0]
	outcome, err := game.HumanAttack(shipCell)
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.GrantsExtraTurn() {
		t.Fatalf("expected hit or sunk\t got: %s", outcome)
	}
	if game.Turn() != TurnHuman {
		t.Fatal("a hit keeps the turn")
	}

	if _, err := game.HumanAttack(shipCell); !errors.Is(err, cerr.ErrAlreadyTargeted) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrAlreadyTargeted, err)
	}
	if game.Turn() != TurnHuman {
		t.Fatal("an invalid shot keeps the turn")
	}

	outcome, err = game.HumanAttack(freeWaterCell(t, game.ComputerBoard()))
	if err != nil {
		t.Fatal(err)
	}
	if outcome != ShotOutcomeMiss {
		t.Fatalf("expected outcome: %s\t got: %s", ShotOutcomeMiss, outcome)
	}
	if game.Turn() != TurnComputer {
		t.Fatal("a miss passes the turn")
	}

	if _, err := game.HumanAttack(NewCoordinates(0, 0)); !errors.Is(err, cerr.ErrNotYourTurn) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrNotYourTurn, err)
	}

	shots, err := game.ComputerTurn()
	if err != nil {
		t.Fatal(err)
	}
	if len(shots) == 0 {
		t.Fatal("computer must fire at least once")
	}
	for _, shot := range shots[:len(shots)-1] {
		if !shot.Outcome.GrantsExtraTurn() {
			t.Fatalf("computer kept firing after a %s", shot.Outcome)
		}
	}
	if !game.IsFinished() {
		if last := shots[len(shots)-1]; last.Outcome != ShotOutcomeMiss {
			t.Fatalf("expected the computer turn to end on a miss\t got: %s", last.Outcome)
		}
		if game.Turn() != TurnHuman {
			t.Fatal("expected the turn back to the human")
		}
	}
}

func TestGamePlayedToTheEnd(t *testing.T) {
	rnd := NewRandom(5)
	game := NewGame(rnd)
	human := NewComputerPlayer(game.HumanBoard(), game.ComputerBoard(), rnd)

	for rounds := 0; !game.IsFinished(); rounds++ {
		if rounds > 2*GridSize*GridSize {
			t.Fatal("game did not finish")
		}

		if game.Turn() == TurnHuman {
			target, err := human.NextShot()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := game.HumanAttack(target); err != nil {
				t.Fatal(err)
			}
			continue
		}

		if _, err := game.ComputerTurn(); err != nil {
			t.Fatal(err)
		}
	}

	winner, ok := game.Winner()
	if !ok {
		t.Fatal("finished game must have a winner")
	}

	expectedStatus := PlayerMatchStatusLost
	if winner == TurnHuman {
		expectedStatus = PlayerMatchStatusWon
		if !game.ComputerBoard().Defeat() {
			t.Fatal("human won but the computer fleet floats")
		}
	}
	if game.HumanMatchStatus() != expectedStatus {
		t.Fatalf("expected match status: %d\t got: %d", expectedStatus, game.HumanMatchStatus())
	}

	if _, err := game.HumanAttack(NewCoordinates(0, 0)); !errors.Is(err, cerr.ErrGameFinished) {
		t.Fatalf("expected error: %v\t got: %v", cerr.ErrGameFinished, err)
	}
}

func TestBattleshipGameManager(t *testing.T) {
	bgm := NewBattleshipGameManager(42)

	game := bgm.CreateGame()
	fetched, err := bgm.FetchGame(game.Uuid())
	if err != nil {
		t.Fatal(err)
	}
	if fetched != game {
		t.Fatal("fetched a different game")
	}
	if bgm.GamesCount() != 1 {
		t.Fatalf("expected games: %d\t got: %d", 1, bgm.GamesCount())
	}

	bgm.TerminateGame(game.Uuid())
	if _, err := bgm.FetchGame(game.Uuid()); err == nil {
		t.Fatal("terminated game still fetchable")
	}
	if bgm.GamesCount() != 0 {
		t.Fatalf("expected games: %d\t got: %d", 0, bgm.GamesCount())
	}
}
