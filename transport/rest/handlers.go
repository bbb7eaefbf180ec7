package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/zoomingo-backend/internal/apperror"
	"github.com/rocketscienceinc/zoomingo-backend/internal/entity"
	"github.com/rocketscienceinc/zoomingo-backend/internal/usecase"
)

type gameService interface {
	NewGame(ctx context.Context, name string, size int) (*usecase.PlayerGame, error)
	SelectScenario(ctx context.Context, gameID, scenarioID int64) error
	CheckWin(ctx context.Context, gameID int64) (*entity.Player, error)
	ResumeGame(ctx context.Context, gameID, playerID int64) (*usecase.PlayerGame, error)
}

type gameHandlers struct {
	logger *slog.Logger
	games  gameService
}

func newGameHandlers(logger *slog.Logger, games gameService) *gameHandlers {
	return &gameHandlers{
		logger: logger,
		games:  games,
	}
}

func (that *gameHandlers) NewGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := readParams(w, r)
	if err != nil {
		that.writeError(w, r, "NewGame", err)
		return
	}

	size, err := in.number("size")
	if err != nil {
		that.writeError(w, r, "NewGame", err)
		return
	}

	game, err := that.games.NewGame(r.Context(), in["name"], size)
	if err != nil {
		that.writeError(w, r, "NewGame", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game, false))
}

func (that *gameHandlers) SelectScenario(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := readParams(w, r)
	if err != nil {
		that.writeError(w, r, "SelectScenario", err)
		return
	}

	gameID, err := in.id("game_id")
	if err != nil {
		that.writeError(w, r, "SelectScenario", err)
		return
	}

	scenarioID, err := in.id("scenario_id")
	if err != nil {
		that.writeError(w, r, "SelectScenario", err)
		return
	}

	if err = that.games.SelectScenario(r.Context(), gameID, scenarioID); err != nil {
		that.writeError(w, r, "SelectScenario", err)
		return
	}

	writeJSON(w, http.StatusOK, selectResponse{GameID: gameID, ScenarioID: scenarioID})
}

func (that *gameHandlers) CheckWin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := readParams(w, r)
	if err != nil {
		that.writeError(w, r, "CheckWin", err)
		return
	}

	gameID, err := in.id("game_id")
	if err != nil {
		that.writeError(w, r, "CheckWin", err)
		return
	}

	winner, err := that.games.CheckWin(r.Context(), gameID)
	if err != nil {
		that.writeError(w, r, "CheckWin", err)
		return
	}

	writeJSON(w, http.StatusOK, newBingoResponse(gameID, winner))
}

func (that *gameHandlers) ResumeGame(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	in, err := readParams(w, r)
	if err != nil {
		that.writeError(w, r, "ResumeGame", err)
		return
	}

	gameID, err := in.id("game_id")
	if err != nil {
		that.writeError(w, r, "ResumeGame", err)
		return
	}

	playerID, err := in.id("player_id")
	if err != nil {
		that.writeError(w, r, "ResumeGame", err)
		return
	}

	game, err := that.games.ResumeGame(r.Context(), gameID, playerID)
	if err != nil {
		that.writeError(w, r, "ResumeGame", err)
		return
	}

	writeJSON(w, http.StatusOK, newGameResponse(game, true))
}

// writeError answers client errors with their message and hides everything else.
func (that *gameHandlers) writeError(w http.ResponseWriter, r *http.Request, method string, err error) {
	log := that.logger.With("method", method, "request_id", requestID(r.Context()))

	if clientErr, ok := apperror.AsClient(err); ok {
		log.Debug("client error", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: clientErr.Message})
		return
	}

	log.Error("request failed", "error", err)
	writeServerError(w)
}
