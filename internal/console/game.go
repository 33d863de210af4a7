package console

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

const (
	defaultGreetPause    = time.Second * 2
	defaultComputerPause = time.Second
)

// Game runs a full match against the computer on a terminal.
type Game struct {
	game          *mb.Game
	human         *HumanPlayer
	out           io.Writer
	styles        Styles
	greetPause    time.Duration
	computerPause time.Duration
}

type Option func(*Game)

func WithStyles(st Styles) Option {
	return func(g *Game) {
		g.styles = st
	}
}

// WithPauses sets the delays after the greeting and around computer
// shots. Zero disables them.
func WithPauses(greet, computer time.Duration) Option {
	return func(g *Game) {
		g.greetPause = greet
		g.computerPause = computer
	}
}

func NewGame(game *mb.Game, in io.Reader, out io.Writer, opts ...Option) *Game {
	g := &Game{
		game:          game,
		out:           out,
		styles:        DefaultStyles(),
		greetPause:    defaultGreetPause,
		computerPause: defaultComputerPause,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.human = NewHumanPlayer(game.HumanBoard(), game.ComputerBoard(), in, out, g.styles)
	return g
}

func (g *Game) Start() error {
	fmt.Fprintln(g.out, Greet())
	time.Sleep(g.greetPause)
	return g.Loop()
}

func (g *Game) printBoards() {
	fmt.Fprintln(g.out, RenderBoards(g.game.HumanBoard().Snapshot(), g.game.ComputerBoard().Snapshot(), g.styles))
}

func (g *Game) reportInvalidShot(err error) {
	fmt.Fprintln(g.out, g.styles.Warning.Render(shotErrorMessage(err)))
}

func (g *Game) announce(outcome mb.ShotOutcome) {
	switch outcome {
	case mb.ShotOutcomeSunk:
		fmt.Fprintln(g.out, g.styles.Sunk.Render("Ship destroyed!"))
	case mb.ShotOutcomeHit:
		fmt.Fprintln(g.out, g.styles.Damaged.Render("Ship hit!"))
	default:
		fmt.Fprintln(g.out, g.styles.Missed.Render("Miss!"))
	}
}

// Loop alternates turns until one fleet is sunk. A hit or a sink gives
// the shooter another shot. It returns early only when the human's
// input fails.
func (g *Game) Loop() error {
	for {
		g.printBoards()

		var (
			record mb.ShotRecord
			err    error
		)

		switch g.game.Turn() {
		case mb.TurnHuman:
			fmt.Fprintln(g.out, g.styles.Human.Render("Your turn!"))
			record, err = mb.TakeTurn(g.human, g.reportInvalidShot)

		default:
			fmt.Fprintln(g.out, g.styles.Computer.Render("Computer's turn!"))
			time.Sleep(g.computerPause)
			record, err = mb.TakeTurn(g.game.Computer(), g.reportInvalidShot)
			if err == nil {
				fmt.Fprintf(g.out, "Computer shoots: %s\n", FormatCoordinates(record.Target))
			}
			time.Sleep(g.computerPause)
		}
		if err != nil {
			return err
		}

		log.Debug("shot", "turn", g.game.Turn(), "target", record.Target, "outcome", record.Outcome)
		g.announce(record.Outcome)
		g.game.Advance(record.Outcome)

		if winner, ok := g.game.Winner(); ok {
			g.printBoards()
			if winner == mb.TurnHuman {
				fmt.Fprintln(g.out, g.styles.Human.Render("You won!!!"))
			} else {
				fmt.Fprintln(g.out, g.styles.Sunk.Render("Computer won!!!"))
			}
			return nil
		}
	}
}
