package rest

import (
	"encoding/json"
	"net/http"

	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/usecase"
)

const serverErrorMessage = "Server error! Please try again later."

type boardCell struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type playerView struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Board    []boardCell `json:"board"`
	Selected *[]int64    `json:"selected_scenarios,omitempty"`
}

type gameResponse struct {
	GameID int64      `json:"game_id"`
	Player playerView `json:"player"`
}

type selectResponse struct {
	GameID     int64 `json:"game_id"`
	ScenarioID int64 `json:"scenario_id"`
}

type bingoResponse struct {
	GameID int64   `json:"game_id"`
	Winner *string `json:"winner"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newGameResponse(game *usecase.PlayerGame, withSelected bool) gameResponse {
	board := make([]boardCell, 0, len(game.Board))
	for _, scenario := range game.Board {
		board = append(board, boardCell{ID: scenario.ID, Text: scenario.Text})
	}

	response := gameResponse{
		GameID: game.GameID,
		Player: playerView{
			ID:    game.Player.ID,
			Name:  game.Player.Name,
			Board: board,
		},
	}

	if withSelected {
		selected := game.Selected
		if selected == nil {
			selected = []int64{}
		}
		response.Player.Selected = &selected
	}

	return response
}

func newBingoResponse(gameID int64, winner *entity.Player) bingoResponse {
	response := bingoResponse{GameID: gameID}
	if winner != nil {
		response.Winner = &winner.Name
	}

	return response
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, serverErrorMessage)
}
