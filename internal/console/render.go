package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	mb "github.com/saeidalz13/sea-battle/models/battleship"
)

// Row labels; A is row 0.
const rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	symbolShip  = "■"
	symbolHit   = "X"
	symbolMiss  = "."
	symbolEmpty = "0"

	boardsSeparator = "    *    "
	dividerWidth    = 95
)

// Styles colours every piece of terminal output. Build one with
// DefaultStyles or PlainStyles.
type Styles struct {
	Ship     lipgloss.Style
	Hit      lipgloss.Style
	Miss     lipgloss.Style
	Empty    lipgloss.Style
	Title    lipgloss.Style
	Human    lipgloss.Style
	Computer lipgloss.Style
	Sunk     lipgloss.Style
	Damaged  lipgloss.Style
	Missed   lipgloss.Style
	Warning  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Ship:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
		Hit:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Miss:     lipgloss.NewStyle(),
		Empty:    lipgloss.NewStyle(),
		Title:    lipgloss.NewStyle().Bold(true),
		Human:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Computer: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")),
		Sunk:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		Damaged:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("6")),
		Missed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Ship: plain, Hit: plain, Miss: plain, Empty: plain, Title: plain,
		Human: plain, Computer: plain, Sunk: plain, Damaged: plain,
		Missed: plain, Warning: plain,
	}
}

func (st Styles) symbol(state mb.PositionState) string {
	switch {
	case state == mb.PositionStateShip:
		return st.Ship.Render(symbolShip)
	case state == mb.PositionStateHit:
		return st.Hit.Render(symbolHit)
	case state.IsMiss():
		return st.Miss.Render(symbolMiss)
	}
	return st.Empty.Render(symbolEmpty)
}

func boardHeader(size int) string {
	var sb strings.Builder
	sb.WriteString("  |")
	for col := 1; col <= size; col++ {
		fmt.Fprintf(&sb, "%-3s|", fmt.Sprintf(" %d", col))
	}
	return sb.String()
}

// RenderBoard draws one board. Ships of a hidden board are drawn as
// empty water.
func RenderBoard(snap mb.BoardSnapshot, st Styles) string {
	lines := make([]string, 0, snap.Size+1)
	lines = append(lines, boardHeader(snap.Size))

	cells := make([]string, snap.Size)
	for row := 0; row < snap.Size; row++ {
		for col := 0; col < snap.Size; col++ {
			cells[col] = st.symbol(snap.CellAt(row, col))
		}
		lines = append(lines, fmt.Sprintf("%c | %s |", rowLetters[row], strings.Join(cells, " | ")))
	}
	return strings.Join(lines, "\n")
}

// RenderBoards draws both boards side by side, each under its title.
func RenderBoards(own, enemy mb.BoardSnapshot, st Styles) string {
	left := st.Title.Render("Your board:") + "\n" + RenderBoard(own, st)
	right := st.Title.Render("Computer board:") + "\n" + RenderBoard(enemy, st)

	height := lipgloss.Height(left)
	sep := strings.TrimSuffix(strings.Repeat(boardsSeparator+"\n", height), "\n")

	return strings.Repeat("-", dividerWidth) + "\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

// FormatCoordinates prints c the way the player types it, e.g. "A 5".
func FormatCoordinates(c mb.Coordinates) string {
	if c.Row < 0 || c.Row >= len(rowLetters) {
		return fmt.Sprintf("%d %d", c.Row, c.Col+1)
	}
	return fmt.Sprintf("%c %d", rowLetters[c.Row], c.Col+1)
}

func Greet() string {
	return strings.Join([]string{
		"|*****************************************|",
		"|               Welcome to                |",
		"|               Sea Battle                |",
		"|-----------------------------------------|",
		"|          input format: x y              |",
		"|        x - latin letter of the row      |",
		"|        y - column number                |",
		"|*****************************************|",
	}, "\n")
}
