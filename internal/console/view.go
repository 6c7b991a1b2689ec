package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	border = "+---+"

	colorX = "12" // bright blue
	colorO = "9"  // bright red
)

// View renders the game for a person at a terminal.
type View struct {
	output *termenv.Output
}

// New writes to out. Without color every style is dropped and the output is plain text.
func New(out io.Writer, color bool) *View {
	opts := []termenv.OutputOption{}
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}

	return &View{
		output: termenv.NewOutput(out, opts...),
	}
}

// Discard returns a view that renders nothing.
func Discard() *View {
	return New(io.Discard, false)
}

func (that *View) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(that.output, format, args...)
}

func (that *View) mark(mark entity.Mark) string {
	style := that.output.String(mark.String())
	switch mark {
	case entity.X:
		style = style.Foreground(that.output.Color(colorX)).Bold()
	case entity.O:
		style = style.Foreground(that.output.Color(colorO)).Bold()
	}
	return style.String()
}

// ShowBoard prints three framed rows, empty cells as blanks.
func (that *View) ShowBoard(board entity.Board) {
	var sb strings.Builder

	sb.WriteString(border + "\n")
	for row := range 3 {
		sb.WriteString("|")
		for col := range 3 {
			sb.WriteString(that.mark(board[row*3+col]))
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(border + "\n")

	that.printf("%s", sb.String())
}

func (that *View) Prompt(mark entity.Mark) {
	that.printf("%s's move [0-8]: ", mark.Upper())
}

// Thinking is shown while the engine searches; MoveChosen clears it.
func (that *View) Thinking() {
	that.printf("CALCULATING")
}

func (that *View) MoveChosen(mark entity.Mark, cell int) {
	that.printf("\r           \r")
	that.printf("%s's move [0-8]: %d\n", mark.Upper(), cell)
}

func (that *View) IllegalMove(err error) {
	that.printf("illegal move: %v\n", err)
}

func (that *View) Result(game *entity.Game) {
	switch game.Winner {
	case entity.PlayerX, entity.PlayerO:
		mark, _ := entity.ParseMark(game.Winner)
		that.printf("%s wins\n", that.mark(mark))
	default:
		that.printf("Tie\n")
	}
}

func (that *View) Summary(stats entity.Stats) {
	that.printf("games: %d, x wins: %d, o wins: %d, draws: %d\n", stats.Total(), stats.XWins, stats.OWins, stats.Draws)
}
