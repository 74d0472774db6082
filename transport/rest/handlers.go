package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/gridgame/transport/view"
)

const maxBodyBytes = 1 << 12

type gameHandlers struct {
	logger   *slog.Logger
	uGame    uGame
	defaults Defaults
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *gameHandlers) create(w http.ResponseWriter, r *http.Request) {
	var req view.NewGameRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	if req.Size == 0 {
		req.Size = that.defaults.Size
	}

	if req.Type == "" {
		req.Type = that.defaults.Type
	}

	game, err := that.uGame.CreateGame(r.Context(), req.Size, req.Type)
	if err != nil {
		that.writeError(w, "create", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, view.NewGame(game))
}

func (that *gameHandlers) get(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "get", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(game))
}

func (that *gameHandlers) turn(w http.ResponseWriter, r *http.Request) {
	var req view.TurnRequest
	if err := decodeBody(r, &req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), req.Row, req.Col)
	if err != nil {
		that.writeError(w, "turn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(game))
}

func (that *gameHandlers) restart(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.Restart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "restart", err)
		return
	}

	that.writeJSON(w, http.StatusOK, view.NewGame(game))
}

func (that *gameHandlers) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.uGame.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "delete", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := view.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: view.ErrorMessage(err)})
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

// decodeBody reads a JSON body. An empty body leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

