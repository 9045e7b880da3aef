package deck

import (
	"fmt"
	"sync"

	"lesson-deck/internal/models"
)

// Policy controls how out-of-range slide indexes are normalized
type Policy int

const (
	// Wrap navigates past either end back around (presentation mode)
	Wrap Policy = iota
	// Clamp pins navigation to the first/last slide (authoring mode)
	Clamp
)

// Normalize maps an arbitrary index into [0, n-1] under the policy. With no
// slides (n <= 0) every index maps to 0.
func (p Policy) Normalize(index, n int) int {
	if n <= 0 {
		return 0
	}
	switch p {
	case Clamp:
		if index < 0 {
			return 0
		}
		if index > n-1 {
			return n - 1
		}
		return index
	default:
		return ((index % n) + n) % n
	}
}

// EventKind identifies what changed in a deck
type EventKind int

const (
	// SlideShown fires after navigation settles on a slide
	SlideShown EventKind = iota
	// SlidesChanged fires when the slide sequence itself was replaced or edited
	SlidesChanged
)

// Event describes a deck mutation delivered to observers
type Event struct {
	Kind  EventKind
	Index int
}

// Observer receives deck events. Register with Subscribe, remove with
// Unsubscribe; a deck never retains observers past Unsubscribe.
type Observer interface {
	DeckChanged(Event)
}

// Deck is an ordered slide sequence with a pointer to the visible slide.
// Each presentation instance owns its own Deck; there is no shared state
// between decks.
type Deck struct {
	mu          sync.RWMutex
	policy      Policy
	slides      []*models.Slide
	activeIndex int
	observers   []Observer
}

// New creates an empty deck with the given navigation policy
func New(policy Policy) *Deck {
	return &Deck{policy: policy}
}

// Refresh replaces the slide sequence. No index guarantee is preserved;
// callers re-clamp by calling Show afterwards.
func (d *Deck) Refresh(slides []*models.Slide) {
	d.mu.Lock()
	d.slides = make([]*models.Slide, len(slides))
	copy(d.slides, slides)
	d.mu.Unlock()

	d.notify(Event{Kind: SlidesChanged, Index: len(slides)})
}

// Append adds a slide to the end of the sequence
func (d *Deck) Append(slide *models.Slide) {
	if slide == nil {
		return
	}
	d.mu.Lock()
	d.slides = append(d.slides, slide)
	total := len(d.slides)
	d.mu.Unlock()

	d.notify(Event{Kind: SlidesChanged, Index: total})
}

// Remove deletes the slide with the given id. Removing a slide before the
// active one shifts the index down so the same slide stays visible; removing
// the last slide while it is active re-clamps to the new end.
func (d *Deck) Remove(id string) {
	d.mu.Lock()
	removed := -1
	for i, slide := range d.slides {
		if slide.ID == id {
			removed = i
			break
		}
	}
	if removed == -1 {
		d.mu.Unlock()
		return
	}
	d.slides = append(d.slides[:removed], d.slides[removed+1:]...)
	if removed < d.activeIndex {
		d.activeIndex--
	}
	if d.activeIndex >= len(d.slides) && len(d.slides) > 0 {
		d.activeIndex = len(d.slides) - 1
	}
	total := len(d.slides)
	d.mu.Unlock()

	d.notify(Event{Kind: SlidesChanged, Index: total})
	d.Show(d.ActiveIndex())
}

// Show makes the slide at index visible and hides all others. Out-of-range
// indexes are normalized by the deck's policy; an empty deck is a no-op.
func (d *Deck) Show(index int) {
	d.mu.Lock()
	n := len(d.slides)
	if n == 0 {
		d.mu.Unlock()
		return
	}

	effective := d.policy.Normalize(index, n)

	for i, slide := range d.slides {
		slide.Visible = i == effective
	}
	d.activeIndex = effective
	d.mu.Unlock()

	d.notify(Event{Kind: SlideShown, Index: effective})
}

// Navigate moves relative to the active slide
func (d *Deck) Navigate(delta int) {
	d.Show(d.ActiveIndex() + delta)
}

// ActiveIndex returns the index of the visible slide
func (d *Deck) ActiveIndex() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.activeIndex
}

// Len returns the number of slides
func (d *Deck) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.slides)
}

// Slide returns the slide at index, or nil when out of range
func (d *Deck) Slide(index int) *models.Slide {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if index < 0 || index >= len(d.slides) {
		return nil
	}
	return d.slides[index]
}

// Slides returns a copy of the slide sequence in presentation order
func (d *Deck) Slides() []*models.Slide {
	d.mu.RLock()
	defer d.mu.RUnlock()
	slides := make([]*models.Slide, len(d.slides))
	copy(slides, d.slides)
	return slides
}

// Counter returns the display string "{current} / {total}", or "0 / 0" for
// an empty deck.
func (d *Deck) Counter() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	total := len(d.slides)
	current := 0
	if total > 0 {
		current = d.activeIndex + 1
	}
	return fmt.Sprintf("%d / %d", current, total)
}

// Meta returns navigator labels for every slide in order
func (d *Deck) Meta() []models.SlideMeta {
	d.mu.RLock()
	defer d.mu.RUnlock()
	meta := make([]models.SlideMeta, len(d.slides))
	for i, slide := range d.slides {
		stage := slide.Stage
		if stage == "" {
			stage = fmt.Sprintf("Stage %d", i+1)
		}
		title := slide.Title
		if title == "" {
			title = fmt.Sprintf("Slide %d", i+1)
		}
		meta[i] = models.SlideMeta{Stage: stage, Title: title}
	}
	return meta
}

// Subscribe registers an observer for deck events
func (d *Deck) Subscribe(o Observer) {
	if o == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Unsubscribe removes a previously registered observer
func (d *Deck) Unsubscribe(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.observers {
		if existing == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func (d *Deck) notify(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, o := range observers {
		o.DeckChanged(event)
	}
}
