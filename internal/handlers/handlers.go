package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/records"
	"github.com/vancomm/minesweeper-engine/internal/sessions"
)

var (
	ErrBadQuery     = errors.New("invalid query")
	ErrUnknownLevel = errors.New("unknown level")
	ErrNoRecord     = errors.New("no record for level")
)

func SendJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	sendStatusJSONOrLog(w, logger, http.StatusOK, v)
}

func sendStatusJSONOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	if err := SendJSON(w, status, v); err != nil {
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// StatusFor maps engine, registry and store errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadQuery),
		errors.Is(err, mines.ErrInvalidCoordinate),
		errors.Is(err, mines.ErrInvalidParams),
		errors.Is(err, records.ErrInvalidLevel),
		errors.Is(err, records.ErrInvalidTime):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrNotFound),
		errors.Is(err, ErrUnknownLevel),
		errors.Is(err, ErrNoRecord):
		return http.StatusNotFound
	case errors.Is(err, mines.ErrInvalidTransition),
		errors.Is(err, mines.ErrSessionOver),
		errors.Is(err, mines.ErrNotStarted):
		return http.StatusConflict
	case errors.Is(err, records.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sendErrorOrLog(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", slog.Any("error", err))
		sendStatusJSONOrLog(w, logger, status, wrapError(errors.New("internal error")))
		return
	}
	logger.Debug("request rejected", slog.Int("status", status), slog.Any("error", err))
	sendStatusJSONOrLog(w, logger, status, wrapError(err))
}
