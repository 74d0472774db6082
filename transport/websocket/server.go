package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/gridgame/internal/entity"
	"github.com/rocketscienceinc/gridgame/transport/view"
)

const (
	actionNewGame = "game:new"
	actionGetGame = "game:get"
	actionTurn    = "game:turn"
	actionRestart = "game:restart"
	actionDelete  = "game:delete"
	actionError   = "error"
)

// maxMessageBytes bounds a single client frame.
const maxMessageBytes = 4096

var (
	errUnknownAction = errors.New("unknown action")
	errBadPayload    = errors.New("invalid payload")
)

type uGame interface {
	CreateGame(ctx context.Context, size int, gameType string) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, row, col int) (*entity.Game, error)
	Restart(ctx context.Context, id string) (*entity.Game, error)
	DeleteGame(ctx context.Context, id string) error
}

// Message is the envelope of every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type gamePayload struct {
	ID string `json:"id"`
}

type turnPayload struct {
	ID string `json:"id"`
	view.TurnRequest
}

type errorPayload struct {
	Action string `json:"action"`
	Error  string `json:"error"`
}

type handlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Defaults are used for fields a client leaves out of game:new.
type Defaults struct {
	Size int
	Type string
}

type Server struct {
	logger   *slog.Logger
	uGame    uGame
	defaults Defaults
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, defaults Defaults) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		uGame:    uGame,
		defaults: defaults,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionGetGame] = server.handleGetGame
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionRestart] = server.handleRestart
	server.handlers[actionDelete] = server.handleDelete

	return server
}

// Router - exposes the socket endpoint at /ws.
func (that *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", that.upgrade)

	return r
}

func (that *Server) upgrade(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgrade")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	if err = that.handleMessages(r.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - answers every frame until the client goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			if isDecodeError(err) {
				log.Debug("failed to unmarshal message", "error", err)

				if err = that.writeError(conn, "", fmt.Errorf("%w: %w", errBadPayload, err)); err != nil {
					return err
				}

				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		response, err := that.dispatch(ctx, &message)
		if err != nil {
			log.Debug("error processing message", "action", message.Action, "error", err)

			if err = that.writeError(conn, message.Action, err); err != nil {
				return err
			}

			continue
		}

		if err = that.write(conn, message.Action, response); err != nil {
			return err
		}
	}
}

func (that *Server) dispatch(ctx context.Context, message *Message) (any, error) {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownAction, message.Action)
	}

	return handler(ctx, message.Payload)
}

func (that *Server) handleNewGame(ctx context.Context, payload json.RawMessage) (any, error) {
	var req view.NewGameRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if req.Size == 0 {
		req.Size = that.defaults.Size
	}

	if req.Type == "" {
		req.Type = that.defaults.Type
	}

	game, err := that.uGame.CreateGame(ctx, req.Size, req.Type)
	if err != nil {
		return nil, err
	}

	return view.NewGame(game), nil
}

func (that *Server) handleGetGame(ctx context.Context, payload json.RawMessage) (any, error) {
	var req gamePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.uGame.GetGame(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return view.NewGame(game), nil
}

func (that *Server) handleTurn(ctx context.Context, payload json.RawMessage) (any, error) {
	var req turnPayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.uGame.MakeTurn(ctx, req.ID, req.Row, req.Col)
	if err != nil {
		return nil, err
	}

	return view.NewGame(game), nil
}

func (that *Server) handleRestart(ctx context.Context, payload json.RawMessage) (any, error) {
	var req gamePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	game, err := that.uGame.Restart(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	return view.NewGame(game), nil
}

func (that *Server) handleDelete(ctx context.Context, payload json.RawMessage) (any, error) {
	var req gamePayload
	if err := decodePayload(payload, &req); err != nil {
		return nil, err
	}

	if err := that.uGame.DeleteGame(ctx, req.ID); err != nil {
		return nil, err
	}

	return req, nil
}

func (that *Server) write(conn *websocket.Conn, action string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = conn.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) writeError(conn *websocket.Conn, action string, cause error) error {
	message := view.ErrorMessage(cause)
	if errors.Is(cause, errUnknownAction) || errors.Is(cause, errBadPayload) {
		message = cause.Error()
	} else if view.HTTPStatus(cause) == http.StatusInternalServerError {
		that.logger.Error("request failed", "action", action, "error", cause)
	}

	return that.write(conn, actionError, errorPayload{Action: action, Error: message})
}

func decodePayload(payload json.RawMessage, dst any) error {
	if len(payload) == 0 {
		return nil
	}

	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("%w: %w", errBadPayload, err)
	}

	return nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
