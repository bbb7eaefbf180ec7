package entity

import (
	"math"
	"slices"

	"github.com/rocketscienceinc/zoomingo-backend/internal/apperror"
)

// Session is one player's participation in one game: the scenarios offered on
// the board, in board order, and the subset the player has marked.
type Session struct {
	GameID   int64   `json:"game_id"`
	PlayerID int64   `json:"player_id"`
	Offered  []int64 `json:"offered"`
	Marked   []int64 `json:"marked"`
}

func NewSession(gameID, playerID int64, board []Scenario) *Session {
	return &Session{
		GameID:   gameID,
		PlayerID: playerID,
		Offered:  ScenarioIDs(board),
		Marked:   []int64{},
	}
}

func (that *Session) Offers(scenarioID int64) bool {
	return slices.Contains(that.Offered, scenarioID)
}

func (that *Session) IsMarked(scenarioID int64) bool {
	return slices.Contains(that.Marked, scenarioID)
}

// Mark adds scenarioID to the marked set. Scenarios that were never offered or
// are already marked are rejected with the same client error.
func (that *Session) Mark(scenarioID int64) error {
	if !that.Offers(scenarioID) || that.IsMarked(scenarioID) {
		return apperror.New(apperror.ErrCannotSelect, "Could not select scenario ID: %d", scenarioID)
	}

	that.Marked = append(that.Marked, scenarioID)

	return nil
}

func (that *Session) OwnedBy(playerID int64) bool {
	return that.PlayerID == playerID
}

// Threshold is the number of marks needed to win: the side length of the board.
func (that *Session) Threshold() int {
	return int(math.Ceil(math.Sqrt(float64(len(that.Offered)))))
}

// HasBingo reports whether enough scenarios are marked to win.
// It is a count of marks, not a line detection.
func (that *Session) HasBingo() bool {
	return len(that.Offered) > 0 && len(that.Marked) >= that.Threshold()
}
