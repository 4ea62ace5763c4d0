package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yutnori/internal/domain/game"
	"yutnori/internal/engine"
	ownErrors "yutnori/internal/errors"
	"yutnori/internal/httpresponse"
	gameuc "yutnori/internal/usecase/game"
	"yutnori/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *Hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase, hub *Hub) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		hub:    hub,
	}
}

// Routes mounts the table API on r.
func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Get("/games/code/{code}", g.HandleGetGameByCode)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", g.HandleGetGame)
		r.Delete("/", g.HandleDeleteGame)
		r.Post("/throw", g.HandleThrow)
		r.Post("/move", g.HandleMove)
		r.Get("/ws", g.HandleTable)
	})
	r.Get("/boards/{kind}", g.HandleBoard)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}

	state, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.log.Info("New Game Created with key: " + state.PublicKey)
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, game.GameCreateResponse{
		ID:        state.ID,
		PublicKey: state.PublicKey,
	})
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleGetGameByCode(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.GetGameByPublicKey(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := g.gameUC.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		g.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g *GameHandler) HandleThrow(w http.ResponseWriter, r *http.Request) {
	var req game.ThrowRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}

	state, err := g.gameUC.Throw(r.Context(), chi.URLParam(r, "id"), req.Result)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.Broadcast(state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error:", err)
		httpresponse.WriteErrorResponse(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc+": "+err.Error())
		return
	}

	state, err := g.gameUC.Move(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.Broadcast(state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	kind, err := engine.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		httpresponse.WriteErrorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.NewBoardView(engine.MustBuild(kind)))
}

// HandleTable streams a game's state over a websocket and accepts throw and
// move commands from the board UI.
func (g *GameHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameID := chi.URLParam(r, "id")

	state, err := g.gameUC.GetGame(ctx, gameID)
	if err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error:", err)
		return
	}

	c := &client{conn: conn}
	g.hub.register(gameID, c)
	defer func() {
		g.hub.unregister(gameID, c)
		conn.Close()
	}()

	if err := c.send(game.TableMessage{Type: game.MessageState, State: &state}); err != nil {
		g.log.Error("write error:", err)
		return
	}

	for {
		var cmd game.Command
		if err = conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Error("read error:", err)
			}
			return
		}

		var next game.GameState
		switch cmd.Type {
		case game.CommandThrow:
			next, err = g.gameUC.Throw(ctx, gameID, cmd.Result)
		case game.CommandMove:
			next, err = g.gameUC.Move(ctx, gameID, game.MoveRequest{Piece: cmd.Piece, Throw: cmd.Throw})
		case game.CommandState:
			next, err = g.gameUC.GetGame(ctx, gameID)
			if err == nil {
				err = c.send(game.TableMessage{Type: game.MessageState, State: &next})
				if err != nil {
					return
				}
				continue
			}
		default:
			err = errors.New("unknown command " + cmd.Type)
		}

		if err != nil {
			if werr := c.send(game.TableMessage{Type: game.MessageError, Error: err.Error()}); werr != nil {
				return
			}
			continue
		}
		g.hub.Broadcast(next)
	}
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		g.log.Error(err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteErrorResponse(w, status, err.Error())
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ownErrors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ownErrors.ErrGameOver),
		errors.Is(err, ownErrors.ErrThrowNotAllowed),
		errors.Is(err, ownErrors.ErrMoveNotAllowed),
		errors.Is(err, ownErrors.ErrPieceFinished):
		return http.StatusConflict
	case errors.Is(err, ownErrors.ErrInvalidThrowIndex),
		errors.Is(err, ownErrors.ErrInvalidThrow),
		errors.Is(err, ownErrors.ErrPieceNotFound),
		errors.Is(err, ownErrors.ErrInvalidGameSettings):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
