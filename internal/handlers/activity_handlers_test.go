package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-deck/internal/scoring"
	"lesson-deck/internal/services"
)

func newActivityRouter(t *testing.T) *mux.Router {
	t.Helper()
	database, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`
	CREATE TABLE activity_attempts (
		id TEXT PRIMARY KEY,
		deck_key TEXT NOT NULL,
		slide_id TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		correct_count INTEGER NOT NULL DEFAULT 0,
		total_count INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	require.NoError(t, err)

	handler := NewActivityHandler(services.NewAttemptService(database))

	router := mux.NewRouter()
	router.HandleFunc("/api/activity/check", handler.CheckActivity).Methods(http.MethodPost)
	router.HandleFunc("/api/activity/reset", handler.ResetActivity).Methods(http.MethodPost)
	router.HandleFunc("/api/deck/{key}/attempts", handler.GetAttempts).Methods(http.MethodGet)
	router.HandleFunc("/api/deck/{key}/attempts", handler.DeleteAttempts).Methods(http.MethodDelete)
	router.HandleFunc("/api/deck/{key}/summary", handler.GetSummary).Methods(http.MethodGet)
	return router
}

func TestCheckActivityEndpoint(t *testing.T) {
	router := newActivityRouter(t)

	body := `{
		"deckKey": "lesson-one",
		"slideId": "slide-0",
		"activity": {
			"type": "gap-fill",
			"prompts": [
				{"id": "p1", "answer": "cat", "response": "Cat "},
				{"id": "p2", "answer": "dog", "response": "cow"}
			]
		}
	}`
	rec := doRequest(router, http.MethodPost, "/api/activity/check", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp CheckActivityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Result.Correct)
	assert.Equal(t, 2, resp.Result.Total)
	assert.Equal(t, scoring.MarkCorrect, resp.Activity.Prompts[0].Mark)
	assert.Equal(t, scoring.MarkIncorrect, resp.Activity.Prompts[1].Mark)

	// The attempt landed in the history.
	rec = doRequest(router, http.MethodGet, "/api/deck/lesson-one/attempts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gap-fill"`)
}

func TestCheckActivityValidation(t *testing.T) {
	router := newActivityRouter(t)

	rec := doRequest(router, http.MethodPost, "/api/activity/check", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPost, "/api/activity/check", `{"activity":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "activity.type is required")
}

func TestCheckActivityWithoutDeckContext(t *testing.T) {
	router := newActivityRouter(t)

	// No deckKey/slideId: the check still scores, nothing is recorded.
	body := `{"activity":{"type":"gap-fill","prompts":[{"id":"p1","answer":"cat","response":"cat"}]}}`
	rec := doRequest(router, http.MethodPost, "/api/activity/check", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/deck/lesson-one/attempts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestResetActivityEndpoint(t *testing.T) {
	router := newActivityRouter(t)

	body := `{"activity":{"type":"gap-fill","prompts":[{"id":"p1","answer":"cat","response":"cow","mark":"incorrect"}],"feedback":{"text":"You have 0 of 1 correct.","status":"error"}}}`
	rec := doRequest(router, http.MethodPost, "/api/activity/reset", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var activity scoring.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	assert.Equal(t, "", activity.Prompts[0].Response)
	assert.Equal(t, scoring.MarkNone, activity.Prompts[0].Mark)
	assert.Equal(t, scoring.Feedback{}, activity.Feedback)
}

func TestSummaryAndDeleteEndpoints(t *testing.T) {
	router := newActivityRouter(t)

	check := `{"deckKey":"lesson-one","slideId":"slide-0","activity":{"type":"gap-fill","prompts":[{"id":"p1","answer":"cat","response":"cat"}]}}`
	doRequest(router, http.MethodPost, "/api/activity/check", check)
	doRequest(router, http.MethodPost, "/api/activity/check", check)

	rec := doRequest(router, http.MethodGet, "/api/deck/lesson-one/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"attempts":2`)

	rec = doRequest(router, http.MethodDelete, "/api/deck/lesson-one/attempts", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/deck/lesson-one/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}
