package models

import "time"

// Slide represents one screen of deck content. Content is an opaque
// markup/state payload owned by the host surface.
type Slide struct {
	ID      string `json:"id"`
	Stage   string `json:"stage,omitempty"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
	Visible bool   `json:"-"`
}

// SlideMeta is the short label for a slide shown in the navigator overlay
type SlideMeta struct {
	Stage string `json:"stage"`
	Title string `json:"title"`
}

// DeckSnapshot represents the presentation-mode persisted shape
type DeckSnapshot struct {
	Version           int      `json:"version"`
	CurrentSlideIndex int      `json:"currentSlideIndex"`
	Slides            []string `json:"slides"`
}

// Block represents one authored element on a workspace slide
type Block struct {
	ID      string `json:"id"`
	Type    string `json:"type"` // "text", "image" or "module"
	Content string `json:"content"`
	Alt     string `json:"alt,omitempty"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Color   string `json:"color,omitempty"`
}

// SlideState holds the authored block state of one workspace slide
type SlideState struct {
	Blocks []Block `json:"blocks"`
}

// WorkspaceSnapshot represents the authoring-mode persisted shape. Slides are
// keyed by slide id rather than held as a flat payload list; the two snapshot
// shapes are not interchangeable.
type WorkspaceSnapshot struct {
	Slides        map[string]SlideState `json:"slides"`
	ActiveSlideID string                `json:"activeSlideId"`
}

// ActivityAttempt represents one recorded check of an activity
type ActivityAttempt struct {
	ID           string    `json:"id"`
	DeckKey      string    `json:"deckKey"`
	SlideID      string    `json:"slideId"`
	ActivityType string    `json:"activityType"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActivitySummary aggregates attempts of one activity type within a deck
type ActivitySummary struct {
	ActivityType string    `json:"activityType"`
	Attempts     int       `json:"attempts"`
	BestCorrect  int       `json:"bestCorrect"`
	TotalCount   int       `json:"totalCount"`
	LastAttempt  time.Time `json:"lastAttempt"`
}

// ImageResult is what the remote image collaborator returns for a query.
// Placeholder is set when the lookup failed and the caller should fall back
// to a placeholder visual.
type ImageResult struct {
	Query       string `json:"query"`
	URL         string `json:"url,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}
