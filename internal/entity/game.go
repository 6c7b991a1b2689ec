package entity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

// Game is the turn loop's view of a match: the board plus whose turn it is and how it ended.
type Game struct {
	ID      string    `json:"id"`
	Board   Board     `json:"board"`
	Winner  string    `json:"winner"`
	Status  string    `json:"status"`
	Turn    Mark      `json:"player_turn"`
	Moves   []int     `json:"moves"`
	Players []*Player `json:"players,omitempty"`
}

func NewGame(players ...*Player) *Game {
	return &Game{
		ID:      uuid.NewString(),
		Turn:    X,
		Status:  StatusOngoing,
		Moves:   make([]int, 0, BoardSize),
		Players: players,
	}
}

// DetermineGameResult returns "X" or "O" for a winner, "-" for a tie and "" while the game goes on.
func (that *Game) DetermineGameResult() string {
	if winner, ok := that.Board.Winner(); ok {
		return winner.Upper()
	}

	// the game will continue until all the squares are full
	if !that.Board.IsFull() {
		return ""
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerX, PlayerO:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = Empty
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = Empty
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

// ValidateMove checks that cell is on the board and still empty.
func (that *Game) ValidateMove(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidPosition, cell)
	}

	if that.Board[cell] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

func (that *Game) MakeTurn(mark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := that.ValidateMove(cell); err != nil {
		return err
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	that.Board = that.Board.Put(mark, cell)
	that.Moves = append(that.Moves, cell)
	that.Turn = mark.Other()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsTie() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

// PlayerByMark returns the participant playing mark, or nil.
func (that *Game) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}
	return nil
}
