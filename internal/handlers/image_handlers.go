package handlers

import (
	"log"
	"net/http"
	"strings"

	"lesson-deck/internal/services"
)

// ImageHandler handles HTTP requests for remote image lookups
type ImageHandler struct {
	images *services.ImageService
}

// NewImageHandler creates a new image handler
func NewImageHandler(images *services.ImageService) *ImageHandler {
	return &ImageHandler{
		images: images,
	}
}

// SearchImage resolves a query to an image URL and alt text
// GET /api/images/search?query=...
func (ih *ImageHandler) SearchImage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "query parameter is required", http.StatusBadRequest)
		return
	}

	result, err := ih.images.Search(r.Context(), query)
	if err != nil {
		log.Printf("Image search failed: query=%q, err=%v", query, err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, result)
}

// HydrateImages resolves a comma-separated list of queries, degrading each
// failure to a placeholder result
// GET /api/images/hydrate?queries=a,b,c
func (ih *ImageHandler) HydrateImages(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("queries")
	if raw == "" {
		http.Error(w, "queries parameter is required", http.StatusBadRequest)
		return
	}

	queries := []string{}
	for _, query := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(query); trimmed != "" {
			queries = append(queries, trimmed)
		}
	}

	writeJSON(w, ih.images.HydrateAll(r.Context(), queries))
}
