package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var commandNargs = map[string]int{
	"g": 0,
	"o": 2,
	"f": 2,
	"h": 0,
	"q": 0,
}

var errQuit = errors.New("quit")

type wsMessage struct {
	Session *GameSessionDTO      `json:"session,omitempty"`
	Reveal  *mines.RevealOutcome `json:"reveal,omitempty"`
	Flag    *mines.FlagOutcome   `json:"flag,omitempty"`
	Mines   []mines.Point        `json:"mines,omitempty"`
	Warning string               `json:"warning,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type wsElapsed struct {
	Elapsed int `json:"elapsed"`
}

// wsConn serializes writes; the ticker and the command loop share it.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadQuery)
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadQuery)
		return
	}
	return
}

// execute runs one command line against the session and describes the
// result. errQuit means the player left.
func (g GameHandler) execute(ctx context.Context, id string, s *mines.Session, line string) (wsMessage, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return wsMessage{}, fmt.Errorf("%w: empty command", ErrBadQuery)
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return wsMessage{}, fmt.Errorf("%w: unknown command %q", ErrBadQuery, parts[0])
	}
	if nargs != len(parts)-1 {
		return wsMessage{}, fmt.Errorf("%w: invalid number of arguments", ErrBadQuery)
	}

	var msg wsMessage
	switch parts[0] {
	case "g":
	case "o":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return msg, err
		}
		out, err := s.Reveal(x, y)
		if err != nil {
			return msg, err
		}
		msg.Reveal = &out
	case "f":
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return msg, err
		}
		out, err := s.ToggleFlag(ctx, x, y)
		if errors.Is(err, mines.ErrRecordNotSaved) {
			g.logger.Warn("record not saved", slog.String("id", id), slog.Any("error", err))
			msg.Warning = mines.ErrRecordNotSaved.Error()
		} else if err != nil {
			return msg, err
		}
		msg.Flag = &out
	case "h":
		mineList, err := s.Answer()
		if err != nil {
			return msg, err
		}
		msg.Mines = mineList
	case "q":
		if err := g.sessions.Remove(id); err != nil {
			return msg, err
		}
		return msg, errQuit
	}
	msg.Session = NewGameSessionDTO(id, s)
	return msg, nil
}

func (g GameHandler) wsRunGameLoop(ctx context.Context, conn *wsConn, id string, s *mines.Session) error {
	for {
		mt, buf, err := conn.conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		text := strings.TrimSpace(string(buf))
		g.logger.Debug(fmt.Sprintf("\t> %s", text))
		for _, line := range strings.Split(text, "\n") {
			msg, err := g.execute(ctx, id, s, line)
			if errors.Is(err, errQuit) {
				return conn.writeJSON(wsMessage{Session: NewGameSessionDTO(id, s)})
			}
			if err != nil {
				if StatusFor(err) == http.StatusInternalServerError {
					return err
				}
				msg.Error = err.Error()
			}
			if err := conn.writeJSON(msg); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
		}
	}
}

// ConnectWS streams a session: commands come in as text lines ("o x y",
// "f x y", "h", "q", "g") and every command is answered with the updated
// view. While the game runs the elapsed time is pushed on every tick.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, s, err := g.session(r)
	if err != nil {
		sendErrorOrLog(w, g.logger, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()
	conn := &wsConn{conn: c}

	g.logger.Debug("established ws connection", slog.String("id", id))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		mines.Tick(ctx, s, g.ws.TickInterval, func(elapsed int) {
			if err := conn.writeJSON(wsElapsed{Elapsed: elapsed}); err != nil {
				g.logger.Debug("unable to push elapsed time", slog.Any("error", err))
			}
		})
	}()

	err = g.wsRunGameLoop(ctx, conn, id, s)
	cancel()
	wg.Wait()

	if err != nil && !websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		g.logger.Warn("error in ws loop", slog.Any("error", err))
	}
}
