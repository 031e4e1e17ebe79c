package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/robelasefa/mafirestaurant/internal/common"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query := r.URL.Query().Get("q")
	if query == "" {
		logger.Warn("api: search missing query parameter")
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing q parameter"))
		return
	}
	limit := s.cfg.TopK
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	results := s.index.Search(query, limit)
	logger.Debug("api: search request served", "query", query, "results", len(results))
	hits := make([]searchHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, searchHit{ID: res.ID, Section: res.Section, Text: res.Text, Score: res.Score})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"results": hits,
		"count":   len(hits),
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
