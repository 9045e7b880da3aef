package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes wires every handler into the router
func SetupRoutes(deckHandler *DeckHandler, activityHandler *ActivityHandler, imageHandler *ImageHandler, wsHandler *WebSocketHandler) *mux.Router {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()

	// Deck snapshots (presentation shape)
	api.HandleFunc("/deck", deckHandler.ListDecks).Methods(http.MethodGet)
	api.HandleFunc("/deck/{key}/snapshot", deckHandler.SaveSnapshot).Methods(http.MethodPost)
	api.HandleFunc("/deck/{key}/snapshot", deckHandler.GetSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/deck/{key}/export", deckHandler.ExportSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/deck/{key}/import", deckHandler.ImportSnapshot).Methods(http.MethodPost)

	// Workspace snapshots (authoring shape)
	api.HandleFunc("/workspace/{key}", deckHandler.SaveWorkspace).Methods(http.MethodPost)
	api.HandleFunc("/workspace/{key}", deckHandler.GetWorkspace).Methods(http.MethodGet)
	api.HandleFunc("/workspace/{key}/render", deckHandler.RenderWorkspace).Methods(http.MethodGet)

	// Activity scoring and attempt history
	api.HandleFunc("/activity/check", activityHandler.CheckActivity).Methods(http.MethodPost)
	api.HandleFunc("/activity/reset", activityHandler.ResetActivity).Methods(http.MethodPost)
	api.HandleFunc("/deck/{key}/attempts", activityHandler.GetAttempts).Methods(http.MethodGet)
	api.HandleFunc("/deck/{key}/attempts", activityHandler.DeleteAttempts).Methods(http.MethodDelete)
	api.HandleFunc("/deck/{key}/summary", activityHandler.GetSummary).Methods(http.MethodGet)

	// Remote image collaborator
	api.HandleFunc("/images/search", imageHandler.SearchImage).Methods(http.MethodGet)
	api.HandleFunc("/images/hydrate", imageHandler.HydrateImages).Methods(http.MethodGet)

	// Live presentation sessions
	router.HandleFunc("/ws/{roomCode}", wsHandler.HandleSession)

	// Static deck pages
	router.PathPrefix("/").Handler(http.FileServer(http.Dir("./web")))

	return router
}
