package ingest

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// Handler exposes the watcher over HTTP for manual scan triggers.
type Handler struct {
	watcher *Watcher
}

func NewHandler(watcher *Watcher) *Handler {
	return &Handler{watcher: watcher}
}

// RegisterRoutes mounts the ingest endpoints on the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ingest/scan", h.Scan).Methods("POST")
}

// Scan runs one bucket scan and reports how many workbooks were ingested.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	ingested, err := h.watcher.ScanOnce(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("manual dataset scan failed")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"ingested": ingested})
}
