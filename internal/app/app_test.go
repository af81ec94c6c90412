package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/records"
	"github.com/vancomm/minesweeper-engine/internal/sessions"
)

type testApp struct {
	*App
	handler http.Handler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := records.NewMemory()
	registry := sessions.New(logger, 16, time.Hour, mines.WithRecordStore(store))
	t.Cleanup(registry.Close)
	a := &App{
		logger:   logger,
		sessions: registry,
		store:    store,
		jwt:      config.NewJWTWithSecret([]byte("test"), time.Hour),
		ws:       &config.WebSocket{TickInterval: time.Hour},
	}
	return &testApp{App: a, handler: a.Router()}
}

func (a *testApp) do(t *testing.T, method, target, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body
}

// newGame starts a session and returns its id and token.
func (a *testApp) newGame(t *testing.T, query string) (string, string) {
	t.Helper()
	rec, body := a.do(t, http.MethodPost, "/game?"+query, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token := rec.Header().Get(middleware.TokenHeader)
	require.NotEmpty(t, token)
	assert.Equal(t, token, body["token"])
	return body["game_session_id"].(string), token
}

func TestStatus(t *testing.T) {
	a := newTestApp(t)
	rec, _ := a.do(t, http.MethodGet, "/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestNewGame(t *testing.T) {
	a := newTestApp(t)
	id, token := a.newGame(t, "level=intermediate")

	rec, _ := a.do(t, http.MethodGet, "/game/"+id, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := a.do(t, http.MethodGet, "/game/"+id, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "intermediate", body["level"])
	assert.Equal(t, "not_started", body["phase"])
	assert.EqualValues(t, 40, body["flags_remaining"])
	assert.Len(t, body["grid"], 16*16)

	rec, _ = a.do(t, http.MethodPost, "/game?level=nightmare", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = a.do(t, http.MethodPost, "/game?width=2&height=2&mine_count=4", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTokenIsBoundToSession(t *testing.T) {
	a := newTestApp(t)
	_, token := a.newGame(t, "")
	other, _ := a.newGame(t, "")

	rec, _ := a.do(t, http.MethodGet, "/game/"+other, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlayToWin(t *testing.T) {
	a := newTestApp(t)
	// a 2x1 board with one mine: the first click is always (0, 0), so the
	// mine is at (1, 0)
	id, token := a.newGame(t, "width=2&height=1&mine_count=1")
	base := "/game/" + id

	rec, _ := a.do(t, http.MethodPost, base+"/flag?x=1&y=0", token)
	assert.Equal(t, http.StatusConflict, rec.Code, "flags need a started game")

	rec, body := a.do(t, http.MethodPost, base+"/reveal?x=0&y=0", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	session := body["session"].(map[string]any)
	assert.Equal(t, "in_progress", session["phase"])
	assert.Equal(t, []any{1.0, -2.0}, session["grid"])

	rec, body = a.do(t, http.MethodPost, base+"/flag?x=1&y=0", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	outcome := body["outcome"].(map[string]any)
	assert.Equal(t, "won", outcome["ended"])
	assert.Equal(t, true, outcome["new_record"])
	assert.EqualValues(t, 0, outcome["flags_remaining"])
	session = body["session"].(map[string]any)
	assert.Equal(t, "won", session["phase"])
	assert.Equal(t, []any{1.0, float64(mines.CorrectFlag)}, session["grid"])

	rec, _ = a.do(t, http.MethodPost, base+"/reveal?x=0&y=0", token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, body = a.do(t, http.MethodGet, "/records/custom-2:1:1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "custom-2:1:1", body["level"])

	rec, _ = a.do(t, http.MethodGet, "/records/beginner", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = a.do(t, http.MethodGet, "/records", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []records.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "custom-2:1:1", entries[0].Level)
}

func TestHintDisqualifiesRecord(t *testing.T) {
	a := newTestApp(t)
	id, token := a.newGame(t, "width=2&height=1&mine_count=1")
	base := "/game/" + id

	rec, _ := a.do(t, http.MethodPost, base+"/hint", token)
	assert.Equal(t, http.StatusConflict, rec.Code, "no answer before the first reveal")

	a.do(t, http.MethodPost, base+"/reveal?x=0&y=0", token)
	rec, body := a.do(t, http.MethodPost, base+"/hint", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{map[string]any{"x": 1.0, "y": 0.0}}, body["mines"])

	_, body = a.do(t, http.MethodPost, base+"/flag?x=1&y=0", token)
	outcome := body["outcome"].(map[string]any)
	assert.Equal(t, "won", outcome["ended"])
	assert.Equal(t, false, outcome["new_record"])

	rec, _ = a.do(t, http.MethodGet, "/records/custom-2:1:1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBadRequests(t *testing.T) {
	a := newTestApp(t)
	id, token := a.newGame(t, "level=beginner")
	base := "/game/" + id

	rec, _ := a.do(t, http.MethodPost, base+"/reveal?x=0", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(t, http.MethodPost, base+"/reveal?x=8&y=0", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(t, http.MethodPost, base+"/reveal?x=a&y=0", token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(t, http.MethodPost, base+"/reveal?x=0&y=0", token)
	require.Equal(t, http.StatusOK, rec.Code)
	rec, _ = a.do(t, http.MethodPost, base+"/flag?x=0&y=0", token)
	assert.Equal(t, http.StatusConflict, rec.Code, "revealed cells cannot be flagged")
}

func TestRestartAndQuit(t *testing.T) {
	a := newTestApp(t)
	id, token := a.newGame(t, "level=beginner")
	base := "/game/" + id

	a.do(t, http.MethodPost, base+"/reveal?x=4&y=4", token)

	rec, body := a.do(t, http.MethodPost, base+"/restart", token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, body["game_session_id"])
	assert.Equal(t, "not_started", body["phase"])

	rec, _ = a.do(t, http.MethodDelete, base, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = a.do(t, http.MethodGet, base, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = a.do(t, http.MethodDelete, base, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func readUntil(t *testing.T, conn *websocket.Conn, key string) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg map[string]any
		require.NoError(t, conn.ReadJSON(&msg))
		if _, ok := msg[key]; ok {
			return msg
		}
	}
}

func TestWebSocketGame(t *testing.T) {
	a := newTestApp(t)
	server := httptest.NewServer(a.handler)
	defer server.Close()

	id, token := a.newGame(t, "width=2&height=1&mine_count=1")
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/game/" + id + "/connect?token=" + token

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("f 1 0")))
	msg := readUntil(t, conn, "error")
	assert.Contains(t, msg["error"], mines.ErrNotStarted.Error())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("o 0 0\nf 1 0")))
	msg = readUntil(t, conn, "reveal")
	assert.Equal(t, "none", msg["reveal"].(map[string]any)["ended"])

	// the final elapsed push races with the reply to the flag command
	var flagMsg, elapsedMsg map[string]any
	for flagMsg == nil || elapsedMsg == nil {
		var m map[string]any
		require.NoError(t, conn.ReadJSON(&m))
		if _, ok := m["flag"]; ok {
			flagMsg = m
		}
		if _, ok := m["elapsed"]; ok {
			elapsedMsg = m
		}
	}
	assert.Equal(t, "won", flagMsg["flag"].(map[string]any)["ended"])
	assert.Equal(t, "won", flagMsg["session"].(map[string]any)["phase"])
	assert.EqualValues(t, 0, elapsedMsg["elapsed"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("x 1")))
	msg = readUntil(t, conn, "error")
	assert.Contains(t, msg["error"], "unknown command")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("q")))
	readUntil(t, conn, "session")

	_, err = a.sessions.Get(id)
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}
