package console

import (
	"errors"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
)

func shotErrorMessage(err error) string {
	switch {
	case errors.Is(err, cerr.ErrOutOfBounds):
		return "You are trying to shoot off the board!"
	case errors.Is(err, cerr.ErrAlreadyTargeted):
		return "You have already shot at this cell"
	}
	return err.Error()
}
