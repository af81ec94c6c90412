package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/minesweeper-engine/internal/records"
)

type RecordsHandler struct {
	logger *slog.Logger
	store  records.Store
}

func NewRecordsHandler(logger *slog.Logger, store records.Store) *RecordsHandler {
	return &RecordsHandler{logger: logger, store: store}
}

func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.All(r.Context())
	if err != nil {
		sendErrorOrLog(w, h.logger, err)
		return
	}
	sendJSONOrLog(w, h.logger, entries)
}

func (h RecordsHandler) Best(w http.ResponseWriter, r *http.Request) {
	level := mux.Vars(r)["level"]
	best, ok, err := h.store.Best(r.Context(), level)
	if err != nil {
		sendErrorOrLog(w, h.logger, err)
		return
	}
	if !ok {
		sendErrorOrLog(w, h.logger, fmt.Errorf("%w %q", ErrNoRecord, level))
		return
	}
	sendJSONOrLog(w, h.logger, records.Entry{Level: level, BestSeconds: best})
}
