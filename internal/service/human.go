package service

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type promptView interface {
	Prompt(mark entity.Mark)
}

type inputLine struct {
	text string
	err  error
}

// HumanPlayer reads cell indices typed at a terminal, one per line.
type HumanPlayer struct {
	mark    entity.Mark
	scanner *bufio.Scanner
	view    promptView

	readOnce sync.Once
	lines    chan inputLine
}

func NewHumanPlayer(mark entity.Mark, in io.Reader, view promptView) *HumanPlayer {
	return &HumanPlayer{
		mark:    mark,
		scanner: bufio.NewScanner(in),
		view:    view,
		lines:   make(chan inputLine),
	}
}

// read feeds lines to NextMove until the input ends. A blocked terminal read cannot be
// interrupted, so it runs apart from the caller and lives as long as the input does.
func (that *HumanPlayer) read() {
	defer close(that.lines)

	for that.scanner.Scan() {
		that.lines <- inputLine{text: that.scanner.Text()}
	}

	if err := that.scanner.Err(); err != nil {
		that.lines <- inputLine{err: err}
	}
}

func (that *HumanPlayer) Mark() entity.Mark {
	return that.mark
}

func (that *HumanPlayer) Entity() *entity.Player {
	return entity.NewHumanPlayer(that.mark)
}

// NextMove returns a cell that is on the board and empty. Anything else is reported as
// ErrInvalidPosition or ErrCellOccupied so the caller can ask again.
func (that *HumanPlayer) NextMove(ctx context.Context, game *entity.Game) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	that.view.Prompt(that.mark)
	that.readOnce.Do(func() {
		go that.read()
	})

	var input inputLine
	select {
	case <-ctx.Done():
		return -1, ctx.Err()
	case next, ok := <-that.lines:
		if !ok {
			return -1, apperror.ErrInputClosed
		}
		input = next
	}

	if input.err != nil {
		return -1, fmt.Errorf("failed to read move: %w", input.err)
	}

	line := strings.TrimSpace(input.text)

	cell, err := strconv.Atoi(line)
	if err != nil {
		return -1, fmt.Errorf("%w: %q is not a number", apperror.ErrInvalidPosition, line)
	}

	if err = game.ValidateMove(cell); err != nil {
		return -1, err
	}

	return cell, nil
}
