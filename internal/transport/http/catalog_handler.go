package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/olwandejj/Quizzify/internal/app"
)

// CatalogHandler serves read-only catalog and leaderboard lookups over plain
// HTTP, so clients can render the menu and rankings without a websocket.
type CatalogHandler struct {
	catalog app.CatalogRepository
	boards  app.LeaderboardRepository
	limit   int
}

func NewCatalogHandler(catalog app.CatalogRepository, boards app.LeaderboardRepository, limit int) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, boards: boards, limit: limit}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	names, err := h.catalog.Categories(r.Context())
	if err != nil {
		log.Printf("list categories failed: %v", err)
		http.Error(w, "could not list categories", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"categories": names})
}

func (h *CatalogHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	category := r.URL.Query().Get("category")
	if category == "" {
		http.Error(w, "missing category", http.StatusBadRequest)
		return
	}
	limit := h.limit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	entries, err := h.boards.Top(r.Context(), category, limit)
	if err != nil {
		log.Printf("leaderboard lookup failed: %v", err)
		http.Error(w, "could not load leaderboard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"category": category, "entries": entries})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response failed: %v", err)
	}
}
