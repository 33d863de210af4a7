package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	cerr "github.com/saeidalz13/sea-battle/internal/error"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

// ParseCoordinates reads "<row letter> <column number>", e.g. "b 7".
// Bounds are left to the board.
func ParseCoordinates(line string) (mb.Coordinates, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return mb.Coordinates{}, cerr.ErrInputTokenCount
	}

	rowToken := []rune(strings.ToUpper(tokens[0]))
	if len(rowToken) != 1 || rowToken[0] > unicode.MaxASCII || !unicode.IsLetter(rowToken[0]) {
		return mb.Coordinates{}, cerr.ErrInputRowNotLetter
	}

	col, err := strconv.Atoi(tokens[1])
	if err != nil || col < 0 {
		return mb.Coordinates{}, cerr.ErrInputColNotNumber
	}

	return mb.NewCoordinates(int(rowToken[0]-'A'), col-1), nil
}

// HumanPlayer asks for shots on a line based input.
type HumanPlayer struct {
	board   *mb.Board
	enemy   *mb.Board
	scanner *bufio.Scanner
	out     io.Writer
	styles  Styles
}

var _ mb.Player = (*HumanPlayer)(nil)

func NewHumanPlayer(board, enemy *mb.Board, in io.Reader, out io.Writer, styles Styles) *HumanPlayer {
	return &HumanPlayer{
		board:   board,
		enemy:   enemy,
		scanner: bufio.NewScanner(in),
		out:     out,
		styles:  styles,
	}
}

func (hp *HumanPlayer) Board() *mb.Board {
	return hp.board
}

func (hp *HumanPlayer) Enemy() *mb.Board {
	return hp.enemy
}

// NextShot prompts until a line parses. It fails only when the input
// ends or breaks.
func (hp *HumanPlayer) NextShot() (mb.Coordinates, error) {
	for {
		fmt.Fprint(hp.out, "Your move: ")

		if !hp.scanner.Scan() {
			if err := hp.scanner.Err(); err != nil {
				return mb.Coordinates{}, err
			}
			return mb.Coordinates{}, cerr.ErrInputClosed
		}

		target, err := ParseCoordinates(hp.scanner.Text())
		if err != nil {
			fmt.Fprintln(hp.out, hp.styles.Warning.Render(" "+err.Error()+" "))
			continue
		}
		return target, nil
	}
}
