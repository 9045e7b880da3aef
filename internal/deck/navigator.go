package deck

import (
	"fmt"

	"lesson-deck/internal/models"
)

// ListenerHost attaches host-level listeners for the navigator overlay
// (outside-click, Escape). The returned detach func must unregister the
// listener; the navigator calls it on every close so repeated open/close
// cycles never leak registrations.
type ListenerHost interface {
	Listen(event string, handler func()) (detach func())
}

// Navigator is the floating slide-list overlay. It lists every slide's short
// label and lets the user jump directly to one; selecting an entry invokes
// the select handler and closes the panel.
type Navigator struct {
	host     ListenerHost
	onSelect func(index int)

	entries     []models.SlideMeta
	activeIndex int
	open        bool
	detach      []func()
}

// NewNavigator creates a closed navigator. onSelect receives the chosen
// slide index; navigation itself stays the caller's responsibility.
func NewNavigator(host ListenerHost, onSelect func(index int)) *Navigator {
	return &Navigator{host: host, onSelect: onSelect}
}

// UpdateSlides replaces the displayed list without changing the active
// selection.
func (n *Navigator) UpdateSlides(meta []models.SlideMeta) {
	n.entries = make([]models.SlideMeta, len(meta))
	copy(n.entries, meta)
}

// SetActive moves the current-slide highlight. It does not trigger
// navigation.
func (n *Navigator) SetActive(index int) {
	n.activeIndex = index
}

// ActiveIndex returns the highlighted entry index
func (n *Navigator) ActiveIndex() int {
	return n.activeIndex
}

// Entries returns a copy of the displayed slide labels
func (n *Navigator) Entries() []models.SlideMeta {
	entries := make([]models.SlideMeta, len(n.entries))
	copy(entries, n.entries)
	return entries
}

// Label renders the display label for the entry at index:
// "{stage} – {title}", falling back to whichever part exists, then to
// "Slide {n}".
func (n *Navigator) Label(index int) string {
	if index < 0 || index >= len(n.entries) {
		return ""
	}
	entry := n.entries[index]
	switch {
	case entry.Stage != "" && entry.Title != "":
		return fmt.Sprintf("%s – %s", entry.Stage, entry.Title)
	case entry.Title != "":
		return entry.Title
	case entry.Stage != "":
		return entry.Stage
	default:
		return fmt.Sprintf("Slide %d", index+1)
	}
}

// IsOpen reports whether the panel is visible
func (n *Navigator) IsOpen() bool {
	return n.open
}

// Open shows the panel and attaches the outside-click and Escape listeners
func (n *Navigator) Open() {
	if n.open {
		return
	}
	n.open = true
	if n.host != nil {
		n.detach = append(n.detach, n.host.Listen("pointerdown", n.Close))
		n.detach = append(n.detach, n.host.Listen("escape", n.Close))
	}
}

// Close hides the panel and detaches every listener Open registered
func (n *Navigator) Close() {
	if !n.open {
		return
	}
	n.open = false
	for _, detach := range n.detach {
		if detach != nil {
			detach()
		}
	}
	n.detach = nil
}

// Toggle opens a closed panel and closes an open one
func (n *Navigator) Toggle() {
	if n.open {
		n.Close()
	} else {
		n.Open()
	}
}

// Select reports the user picking an entry: the select handler runs and the
// panel closes. Out-of-range indexes close the panel without selecting.
func (n *Navigator) Select(index int) {
	if index >= 0 && index < len(n.entries) && n.onSelect != nil {
		n.onSelect(index)
	}
	n.Close()
}
