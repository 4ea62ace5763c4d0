package game

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"yutnori/internal/domain/game"
	"yutnori/internal/engine"
	"yutnori/internal/httpresponse"
	repo "yutnori/internal/repository"
	gameuc "yutnori/internal/usecase/game"
)

type envelope[T any] struct {
	Status int `json:"Status"`
	Body   T   `json:"Body"`
}

func newServer(t *testing.T, throws ...game.Throw) (*httptest.Server, *Hub) {
	t.Helper()
	log := zap.NewNop().Sugar()
	if len(throws) == 0 {
		throws = []game.Throw{game.Gae}
	}
	uc := gameuc.NewGameUseCase(
		repo.NewGameRepository(log),
		gameuc.NewSequenceThrower(throws...),
		nil,
		gameuc.Defaults{BoardKind: engine.Square, PlayerCount: 2, PiecesPerPlayer: 4},
		log,
	)
	hub := NewHub(log)
	r := chi.NewRouter()
	NewGameHandler(log, uc, hub).Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, hub
}

func call[T any](t *testing.T, method, url, body string) (int, T) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope[T]
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.Equal(t, resp.StatusCode, env.Status)
	}
	return resp.StatusCode, env.Body
}

func createGame(t *testing.T, srv *httptest.Server, body string) game.GameCreateResponse {
	t.Helper()
	status, created := call[game.GameCreateResponse](t, http.MethodPost, srv.URL+"/games", body)
	require.Equal(t, http.StatusCreated, status)
	return created
}

func TestHandlers_PlayTurn(t *testing.T) {
	srv, _ := newServer(t, game.Geol)
	created := createGame(t, srv, `{"players":["red","blue"],"board_kind":"pentagon"}`)
	require.NotEmpty(t, created.ID)

	status, st := call[game.GameState](t, http.MethodGet, srv.URL+"/games/"+created.ID, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, engine.Pentagon, st.BoardKind)
	assert.Equal(t, "red", st.Players[0].Name)

	status, st = call[game.GameState](t, http.MethodGet, srv.URL+"/games/code/"+created.PublicKey, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created.ID, st.ID)

	status, st = call[game.GameState](t, http.MethodPost, srv.URL+"/games/"+created.ID+"/throw", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []game.Throw{game.Geol}, st.Pending)

	status, st = call[game.GameState](t, http.MethodPost, srv.URL+"/games/"+created.ID+"/move", `{"piece":0,"throw":0}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, st.Turn)
	require.NotNil(t, st.Players[0].Pieces[0].Position)
	assert.Equal(t, 3, *st.Players[0].Pieces[0].Position)
}

func TestHandlers_ManualThrow(t *testing.T) {
	srv, _ := newServer(t)
	created := createGame(t, srv, `{}`)

	status, st := call[game.GameState](t, http.MethodPost, srv.URL+"/games/"+created.ID+"/throw", `{"result":"MO"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []game.Throw{game.Mo}, st.Pending)
	assert.Equal(t, 1, st.ThrowsOwed)
}

func TestHandlers_Errors(t *testing.T) {
	srv, _ := newServer(t)
	created := createGame(t, srv, `{}`)
	base := srv.URL + "/games/" + created.ID

	tests := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{"unknown game", http.MethodGet, srv.URL + "/games/missing", "", http.StatusNotFound},
		{"unknown code", http.MethodGet, srv.URL + "/games/code/99999x", "", http.StatusNotFound},
		{"bad settings", http.MethodPost, srv.URL + "/games", `{"players":["solo"]}`, http.StatusBadRequest},
		{"unknown field", http.MethodPost, srv.URL + "/games", `{"colour":"red"}`, http.StatusBadRequest},
		{"move before throw", http.MethodPost, base + "/move", `{"piece":0,"throw":0}`, http.StatusConflict},
		{"bad throw name", http.MethodPost, base + "/throw", `{"result":"SIX"}`, http.StatusBadRequest},
		{"unknown board", http.MethodGet, srv.URL + "/boards/octagon", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call[httpresponse.ErrorResponse](t, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body.ErrorDescription)
		})
	}
}

func TestHandlers_ThrowTwice(t *testing.T) {
	srv, _ := newServer(t)
	created := createGame(t, srv, `{}`)
	url := srv.URL + "/games/" + created.ID + "/throw"

	status, _ := call[game.GameState](t, http.MethodPost, url, "")
	require.Equal(t, http.StatusOK, status)
	status, body := call[httpresponse.ErrorResponse](t, http.MethodPost, url, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body.ErrorDescription, "throw")

	status, body = call[httpresponse.ErrorResponse](t, http.MethodPost, srv.URL+"/games/"+created.ID+"/move", `{"piece":0,"throw":4}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, body.ErrorDescription)
}

func TestHandlers_Delete(t *testing.T) {
	srv, _ := newServer(t)
	created := createGame(t, srv, `{}`)

	status, _ := call[struct{}](t, http.MethodDelete, srv.URL+"/games/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = call[httpresponse.ErrorResponse](t, http.MethodGet, srv.URL+"/games/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandlers_Board(t *testing.T) {
	srv, _ := newServer(t)
	status, view := call[game.BoardView](t, http.MethodGet, srv.URL+"/boards/hexagon", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, engine.Hexagon, view.Kind)
	assert.Len(t, view.Nodes, 43)
	assert.Equal(t, 42, view.Center)
}

func dial(t *testing.T, srv *httptest.Server, gameID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/" + gameID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) game.TableMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg game.TableMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestTable_StreamsState(t *testing.T) {
	srv, hub := newServer(t, game.Do)
	created := createGame(t, srv, `{}`)

	player := dial(t, srv, created.ID)
	first := readMessage(t, player)
	require.Equal(t, game.MessageState, first.Type)
	assert.Equal(t, created.ID, first.State.ID)

	watcher := dial(t, srv, created.ID)
	readMessage(t, watcher)
	require.Eventually(t, func() bool { return hub.Watchers(created.ID) == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, player.WriteJSON(game.Command{Type: game.CommandThrow}))
	for _, conn := range []*websocket.Conn{player, watcher} {
		msg := readMessage(t, conn)
		require.Equal(t, game.MessageState, msg.Type)
		assert.Equal(t, []game.Throw{game.Do}, msg.State.Pending)
	}

	require.NoError(t, player.WriteJSON(game.Command{Type: game.CommandMove, Piece: 1, Throw: 0}))
	msg := readMessage(t, watcher)
	require.Equal(t, game.MessageState, msg.Type)
	assert.Equal(t, 1, msg.State.Turn)
	assert.Equal(t, 1, *msg.State.Players[0].Pieces[1].Position)
	readMessage(t, player)

	status, _ := call[game.GameState](t, http.MethodPost, srv.URL+"/games/"+created.ID+"/throw", `{"result":"GAE"}`)
	require.Equal(t, http.StatusOK, status)
	msg = readMessage(t, watcher)
	assert.Equal(t, []game.Throw{game.Gae}, msg.State.Pending)
}

func TestTable_ErrorsGoToSender(t *testing.T) {
	srv, _ := newServer(t)
	created := createGame(t, srv, `{}`)

	conn := dial(t, srv, created.ID)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(game.Command{Type: game.CommandMove}))
	msg := readMessage(t, conn)
	assert.Equal(t, game.MessageError, msg.Type)
	assert.NotEmpty(t, msg.Error)

	require.NoError(t, conn.WriteJSON(game.Command{Type: "dance"}))
	msg = readMessage(t, conn)
	assert.Equal(t, game.MessageError, msg.Type)

	require.NoError(t, conn.WriteJSON(game.Command{Type: game.CommandState}))
	msg = readMessage(t, conn)
	assert.Equal(t, game.MessageState, msg.Type)
}

func TestTable_UnknownGame(t *testing.T) {
	srv, _ := newServer(t)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/games/missing/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusOf(bytes.ErrTooLarge))
}
