package battleship

import (
	"errors"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

type ShotRecord struct {
	Target  Coordinates `json:"target"`
	Outcome ShotOutcome `json:"outcome"`
}

// TakeTurn fires one shot for p at its enemy board. Invalid shots are
// handed to onErr and the player is asked again; they never cost the
// turn. Any other error from the player ends the turn.
func TakeTurn(p Player, onErr func(error)) (ShotRecord, error) {
	for {
		target, err := p.NextShot()
		if err != nil {
			return ShotRecord{}, err
		}

		outcome, err := p.Enemy().Shoot(target)
		if err != nil {
			if !errors.Is(err, cerr.ErrInvalidShot) {
				return ShotRecord{}, err
			}
			if onErr != nil {
				onErr(err)
			}
			continue
		}

		return ShotRecord{Target: target, Outcome: outcome}, nil
	}
}
