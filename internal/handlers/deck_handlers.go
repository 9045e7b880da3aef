package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"lesson-deck/internal/models"
	"lesson-deck/internal/render"
	"lesson-deck/internal/services"
)

// DeckHandler handles HTTP requests for deck and workspace snapshots
type DeckHandler struct {
	store    *services.DeckStore
	renderer *render.Renderer
}

// NewDeckHandler creates a new deck handler
func NewDeckHandler(store *services.DeckStore, renderer *render.Renderer) *DeckHandler {
	return &DeckHandler{
		store:    store,
		renderer: renderer,
	}
}

// SaveSnapshotResponse represents the response to a snapshot save
type SaveSnapshotResponse struct {
	Success bool `json:"success"`
	Slides  int  `json:"slides"`
}

// SaveSnapshot stores a presentation-mode snapshot
// POST /api/deck/{key}/snapshot
func (h *DeckHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	snapshot, err := services.ParseSnapshot(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SaveSnapshot(key, snapshot); err != nil {
		log.Printf("Failed to save deck snapshot: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, SaveSnapshotResponse{Success: true, Slides: len(snapshot.Slides)})
}

// GetSnapshot returns the stored presentation-mode snapshot
// GET /api/deck/{key}/snapshot
func (h *DeckHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	snapshot, err := h.store.LoadSnapshot(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, snapshot)
}

// ExportSnapshot offers the stored snapshot as a downloadable JSON file
// GET /api/deck/{key}/export
func (h *DeckHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	snapshot, err := h.store.LoadSnapshot(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	data, err := services.Export(snapshot)
	if err != nil {
		log.Printf("Failed to export deck snapshot: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key+"-deck-state.json"))
	w.Write(data)
}

// ImportSnapshotResponse represents the response to a snapshot import
type ImportSnapshotResponse struct {
	Success bool `json:"success"`
	Slides  int  `json:"slides"`
}

// ImportSnapshot accepts a user-supplied snapshot file upload. File-read
// failures and parse failures are reported distinctly.
// POST /api/deck/{key}/import
func (h *DeckHandler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing snapshot file upload", http.StatusBadRequest)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "We couldn't read that file. Try another JSON export.", http.StatusBadRequest)
		return
	}

	snapshot, err := services.ParseSnapshot(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SaveSnapshot(key, snapshot); err != nil {
		log.Printf("Failed to store imported snapshot: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, ImportSnapshotResponse{Success: true, Slides: len(snapshot.Slides)})
}

// ListDecksResponse represents the saved deck listing
type ListDecksResponse struct {
	Decks []string `json:"decks"`
}

// ListDecks returns the keys of every saved deck
// GET /api/deck
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.ListDecks()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, ListDecksResponse{Decks: keys})
}

// SaveWorkspace stores an authoring-mode snapshot
// POST /api/workspace/{key}
func (h *DeckHandler) SaveWorkspace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	snapshot, err := services.ParseWorkspace(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.store.SaveWorkspace(key, snapshot); err != nil {
		log.Printf("Failed to save workspace: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, SaveSnapshotResponse{Success: true, Slides: len(snapshot.Slides)})
}

// GetWorkspace returns the stored authoring-mode snapshot
// GET /api/workspace/{key}
func (h *DeckHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	snapshot, err := h.store.LoadWorkspace(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, snapshot)
}

// RenderedSlide pairs a slide id with its rendered HTML
type RenderedSlide struct {
	SlideID string `json:"slideId"`
	HTML    string `json:"html"`
}

// RenderWorkspace returns the stored workspace blocks rendered to HTML
// GET /api/workspace/{key}/render
func (h *DeckHandler) RenderWorkspace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	snapshot, err := h.store.LoadWorkspace(key)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	rendered := []RenderedSlide{}
	for _, id := range sortedSlideIDs(snapshot) {
		html, err := h.renderer.RenderState(snapshot.Slides[id])
		if err != nil {
			log.Printf("Failed to render workspace slide: key=%s, slide=%s, err=%v", key, id, err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rendered = append(rendered, RenderedSlide{SlideID: id, HTML: html})
	}

	writeJSON(w, rendered)
}

func sortedSlideIDs(snapshot *models.WorkspaceSnapshot) []string {
	ids := make([]string, 0, len(snapshot.Slides))
	for id := range snapshot.Slides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
