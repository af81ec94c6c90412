package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/sessions"
)

type GameHandler struct {
	logger   *slog.Logger
	sessions *sessions.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
}

func NewGameHandler(
	logger *slog.Logger,
	registry *sessions.Registry,
	jwt *config.JWT,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		logger:   logger,
		sessions: registry,
		jwt:      jwt,
		ws:       ws,
	}

	return handler
}

func (g GameHandler) session(r *http.Request) (string, *mines.Session, error) {
	id := mux.Vars(r)["id"]
	s, err := g.sessions.Get(id)
	return id, s, err
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	params, err := dto.GameParams()
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, err := g.sessions.Create(params)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	token, err := g.jwt.Sign(g.jwt.NewSessionClaims(id, params.Level))
	if err != nil {
		g.sessions.Remove(id)
		sendErrorOrLog(w, g.logger, err)
		return
	}

	g.logger.Debug("created session",
		slog.String("id", id), slog.String("level", params.Level))

	session := NewGameSessionDTO(id, s)
	session.Token = token
	w.Header().Set(middleware.TokenHeader, token)
	sendStatusJSONOrLog(w, g.logger, http.StatusCreated, session)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(id, s))
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	out, err := s.Reveal(pos.X, pos.Y)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, RevealResponse{
		Outcome: out,
		Session: NewGameSessionDTO(id, s),
	})
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	id, s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	out, err := s.ToggleFlag(r.Context(), pos.X, pos.Y)
	var warning string
	if errors.Is(err, mines.ErrRecordNotSaved) {
		g.logger.Warn("record not saved", slog.String("id", id), slog.Any("error", err))
		warning = mines.ErrRecordNotSaved.Error()
	} else if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, FlagResponse{
		Outcome: out,
		Session: NewGameSessionDTO(id, s),
		Warning: warning,
	})
}

func (g GameHandler) Hint(w http.ResponseWriter, r *http.Request) {
	id, s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	mineList, err := s.Answer()
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	sendJSONOrLog(w, g.logger, HintResponse{
		Mines:   mineList,
		Session: NewGameSessionDTO(id, s),
	})
}

func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s, err := g.sessions.Restart(id)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(id, s))
}

func (g GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := g.sessions.Remove(id); err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}
	g.logger.Debug("session quit", slog.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
