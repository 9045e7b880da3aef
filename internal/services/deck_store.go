package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"lesson-deck/internal/deck"
	"lesson-deck/internal/models"
)

// SnapshotVersion is written into every presentation-mode snapshot
const SnapshotVersion = 1

// DeckStore persists deck snapshots as pretty-printed JSON files under the
// data directory. Presentation snapshots and workspace snapshots are
// separate shapes kept in separate subdirectories.
type DeckStore struct {
	mu       sync.RWMutex
	dataPath string
}

// NewDeckStore creates a deck store rooted at dataPath
func NewDeckStore(dataPath string) (*DeckStore, error) {
	store := &DeckStore{dataPath: dataPath}
	for _, dir := range []string{store.deckDir(), store.workspaceDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return store, nil
}

func (s *DeckStore) deckDir() string {
	return filepath.Join(s.dataPath, "decks")
}

func (s *DeckStore) workspaceDir() string {
	return filepath.Join(s.dataPath, "workspaces")
}

func validKey(key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	for _, r := range key {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}

// save atomically writes pretty JSON (temp file → sync → rename).
// Must be called with lock held.
func (s *DeckStore) save(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	file, err := os.OpenFile(tempPath, os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	file.Close()

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// SaveSnapshot writes a presentation-mode snapshot under key
func (s *DeckStore) SaveSnapshot(key string, snapshot *models.DeckSnapshot) error {
	if !validKey(key) {
		return fmt.Errorf("invalid deck key: %q", key)
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}
	snapshot.Version = SnapshotVersion

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(filepath.Join(s.deckDir(), key+".json"), snapshot); err != nil {
		return err
	}
	log.Printf("Saved deck snapshot: key=%s, slides=%d", key, len(snapshot.Slides))
	return nil
}

// LoadSnapshot reads the presentation-mode snapshot stored under key
func (s *DeckStore) LoadSnapshot(key string) (*models.DeckSnapshot, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("invalid deck key: %q", key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.deckDir(), key+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read deck snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ListDecks returns the keys of every saved presentation snapshot
func (s *DeckStore) ListDecks() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.deckDir())
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

// SaveWorkspace writes an authoring-mode snapshot under key
func (s *DeckStore) SaveWorkspace(key string, snapshot *models.WorkspaceSnapshot) error {
	if !validKey(key) {
		return fmt.Errorf("invalid workspace key: %q", key)
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(filepath.Join(s.workspaceDir(), key+".json"), snapshot); err != nil {
		return err
	}
	log.Printf("Saved workspace: key=%s, slides=%d", key, len(snapshot.Slides))
	return nil
}

// LoadWorkspace reads the authoring-mode snapshot stored under key
func (s *DeckStore) LoadWorkspace(key string) (*models.WorkspaceSnapshot, error) {
	if !validKey(key) {
		return nil, fmt.Errorf("invalid workspace key: %q", key)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.workspaceDir(), key+".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}
	return ParseWorkspace(data)
}

// ParseSnapshot validates raw bytes as a presentation-mode snapshot. Invalid
// JSON and a structurally wrong document (not an object, missing the slides
// array) produce distinct descriptive errors; neither mutates anything.
func ParseSnapshot(raw []byte) (*models.DeckSnapshot, error) {
	var snapshot models.DeckSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("deck snapshot must be an object with a slides array")
		}
		return nil, fmt.Errorf("deck snapshot is not valid JSON: %w", err)
	}
	if snapshot.Slides == nil {
		return nil, fmt.Errorf("deck snapshot is missing the slides array")
	}
	return &snapshot, nil
}

// ParseWorkspace validates raw bytes as an authoring-mode snapshot. A
// missing slides map is tolerated and treated as empty.
func ParseWorkspace(raw []byte) (*models.WorkspaceSnapshot, error) {
	var snapshot models.WorkspaceSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, fmt.Errorf("workspace state must be an object")
		}
		return nil, fmt.Errorf("workspace state is not valid JSON: %w", err)
	}
	if snapshot.Slides == nil {
		snapshot.Slides = map[string]models.SlideState{}
	}
	return &snapshot, nil
}

// Serialize captures the deck's current state as a presentation-mode
// snapshot: version tag, active index and every slide payload in order.
func Serialize(d *deck.Deck) *models.DeckSnapshot {
	slides := d.Slides()
	payloads := make([]string, len(slides))
	for i, slide := range slides {
		payloads[i] = slide.Content
	}
	return &models.DeckSnapshot{
		Version:           SnapshotVersion,
		CurrentSlideIndex: d.ActiveIndex(),
		Slides:            payloads,
	}
}

// Apply replaces the deck's slides with freshly materialized ones from the
// snapshot and restores the previously active slide clamped into range. The
// snapshot is validated before this is called, so Apply cannot partially
// mutate the deck.
func Apply(d *deck.Deck, snapshot *models.DeckSnapshot) error {
	if snapshot == nil || snapshot.Slides == nil {
		return fmt.Errorf("deck snapshot is missing the slides array")
	}

	slides := make([]*models.Slide, len(snapshot.Slides))
	for i, payload := range snapshot.Slides {
		slides[i] = &models.Slide{
			ID:      fmt.Sprintf("slide-%d", i),
			Content: payload,
		}
	}

	d.Refresh(slides)
	if len(slides) == 0 {
		return nil
	}

	requested := snapshot.CurrentSlideIndex
	if requested < 0 {
		requested = 0
	}
	if requested > len(slides)-1 {
		requested = len(slides) - 1
	}
	d.Show(requested)
	return nil
}

// ApplyWorkspace materializes workspace slides onto the deck, ordered by
// slide id for determinism, and restores the active slide by id with a
// first-slide fallback.
func ApplyWorkspace(d *deck.Deck, snapshot *models.WorkspaceSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("workspace state must be an object")
	}

	ids := make([]string, 0, len(snapshot.Slides))
	for id := range snapshot.Slides {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	slides := make([]*models.Slide, len(ids))
	activeIndex := 0
	for i, id := range ids {
		state := snapshot.Slides[id]
		content, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("failed to encode slide state: %w", err)
		}
		slides[i] = &models.Slide{ID: id, Content: string(content)}
		if id == snapshot.ActiveSlideID {
			activeIndex = i
		}
	}

	d.Refresh(slides)
	if len(slides) > 0 {
		d.Show(activeIndex)
	}
	return nil
}

// Export renders a snapshot as the pretty JSON offered for download
func Export(v interface{}) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}
	return data, nil
}
