package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"lesson-deck/internal/models"
	"lesson-deck/internal/scoring"
)

// AttemptService records every scored activity check in SQLite
type AttemptService struct {
	database *sql.DB
}

// NewAttemptService creates a new attempt service
func NewAttemptService(database *sql.DB) *AttemptService {
	return &AttemptService{
		database: database,
	}
}

// RecordAttempt stores one check result for an activity on a slide
func (as *AttemptService) RecordAttempt(deckKey, slideID string, activityType scoring.ActivityType, result scoring.Result) (*models.ActivityAttempt, error) {
	if deckKey == "" {
		return nil, fmt.Errorf("deckKey is required")
	}
	if slideID == "" {
		return nil, fmt.Errorf("slideId is required")
	}
	if activityType == "" {
		return nil, fmt.Errorf("activityType is required")
	}

	attempt := &models.ActivityAttempt{
		ID:           "att_" + uuid.NewString(),
		DeckKey:      deckKey,
		SlideID:      slideID,
		ActivityType: string(activityType),
		CorrectCount: result.Correct,
		TotalCount:   result.Total,
		CreatedAt:    time.Now(),
	}

	query := `INSERT INTO activity_attempts
		(id, deck_key, slide_id, activity_type, correct_count, total_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := as.database.Exec(query,
		attempt.ID,
		attempt.DeckKey,
		attempt.SlideID,
		attempt.ActivityType,
		attempt.CorrectCount,
		attempt.TotalCount,
		attempt.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert attempt: %w", err)
	}

	log.Printf("Attempt recorded: deck=%s, slide=%s, type=%s, score=%d/%d",
		deckKey, slideID, activityType, result.Correct, result.Total)
	return attempt, nil
}

// GetAttemptsByDeck returns every attempt recorded for a deck, newest first
func (as *AttemptService) GetAttemptsByDeck(deckKey string) ([]*models.ActivityAttempt, error) {
	query := `SELECT id, deck_key, slide_id, activity_type, correct_count, total_count, created_at
		FROM activity_attempts WHERE deck_key = ? ORDER BY created_at DESC`

	rows, err := as.database.Query(query, deckKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.ActivityAttempt
	for rows.Next() {
		var attempt models.ActivityAttempt
		err := rows.Scan(
			&attempt.ID,
			&attempt.DeckKey,
			&attempt.SlideID,
			&attempt.ActivityType,
			&attempt.CorrectCount,
			&attempt.TotalCount,
			&attempt.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, &attempt)
	}

	return attempts, rows.Err()
}

// GetDeckSummary aggregates a deck's attempts per activity type. The best
// score is the single attempt with the highest correct/total ratio, so the
// reported correct and total counts always come from the same attempt.
func (as *AttemptService) GetDeckSummary(deckKey string) ([]*models.ActivitySummary, error) {
	query := `SELECT activity_type, COUNT(*), MAX(created_at)
		FROM activity_attempts WHERE deck_key = ?
		GROUP BY activity_type ORDER BY activity_type`

	rows, err := as.database.Query(query, deckKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}
	defer rows.Close()

	var summaries []*models.ActivitySummary
	for rows.Next() {
		var summary models.ActivitySummary
		var lastAttempt string
		err := rows.Scan(
			&summary.ActivityType,
			&summary.Attempts,
			&lastAttempt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		// MAX() strips the column's declared type, so the timestamp comes
		// back as text and has to be parsed here.
		summary.LastAttempt, err = parseTimestamp(lastAttempt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse summary timestamp: %w", err)
		}
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summary rows: %w", err)
	}

	bestQuery := `SELECT correct_count, total_count FROM activity_attempts
		WHERE deck_key = ? AND activity_type = ?
		ORDER BY (correct_count * 1.0) / CASE WHEN total_count = 0 THEN 1 ELSE total_count END DESC,
			created_at DESC
		LIMIT 1`

	for _, summary := range summaries {
		err := as.database.QueryRow(bestQuery, deckKey, summary.ActivityType).
			Scan(&summary.BestCorrect, &summary.TotalCount)
		if err != nil {
			return nil, fmt.Errorf("failed to query best attempt: %w", err)
		}
	}

	return summaries, nil
}

var timestampFormats = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func parseTimestamp(value string) (time.Time, error) {
	for _, format := range timestampFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// DeleteAttempts removes every attempt recorded for a deck
func (as *AttemptService) DeleteAttempts(deckKey string) error {
	result, err := as.database.Exec(`DELETE FROM activity_attempts WHERE deck_key = ?`, deckKey)
	if err != nil {
		return fmt.Errorf("failed to delete attempts: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Printf("Deleted %d attempts for deck %s", rowsAffected, deckKey)
	return nil
}
