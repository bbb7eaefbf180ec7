package entity

import (
	"github.com/rocketscienceinc/zoomingo-backend/internal/apperror"
)

// ErrAlreadyWon rejects every change to a game that has a winner.
var ErrAlreadyWon = apperror.New(apperror.ErrGameAlreadyWon, "Game has already been won.")

// NoWinner is the WinnerID of a game nobody has won yet.
const NoWinner int64 = 0

type Game struct {
	ID       int64 `json:"id"`
	WinnerID int64 `json:"winner_id,omitempty"`
}

func (that *Game) HasWinner() bool {
	return that.WinnerID != NoWinner
}

// ConfirmUndecided returns a client error once the game has a winner: a won game is immutable.
func (that *Game) ConfirmUndecided() error {
	if that.HasWinner() {
		return ErrAlreadyWon
	}

	return nil
}

// DeclareWinner records playerID as the winner. The winner is set at most once.
func (that *Game) DeclareWinner(playerID int64) error {
	if err := that.ConfirmUndecided(); err != nil {
		return err
	}

	that.WinnerID = playerID

	return nil
}
