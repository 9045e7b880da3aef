package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-deck/internal/models"
)

// fakeHost records listener registrations so tests can assert the navigator
// detaches everything it attaches.
type fakeHost struct {
	active   map[string]func()
	attached int
	detached int
}

func newFakeHost() *fakeHost {
	return &fakeHost{active: map[string]func(){}}
}

func (h *fakeHost) Listen(event string, handler func()) func() {
	h.attached++
	h.active[event] = handler
	return func() {
		h.detached++
		delete(h.active, event)
	}
}

// fire simulates a host event reaching the registered handler
func (h *fakeHost) fire(event string) {
	if handler, ok := h.active[event]; ok {
		handler()
	}
}

func TestOpenAttachesCloseDetaches(t *testing.T) {
	host := newFakeHost()
	nav := NewNavigator(host, nil)

	nav.Open()
	assert.True(t, nav.IsOpen())
	assert.Equal(t, 2, host.attached)

	nav.Close()
	assert.False(t, nav.IsOpen())
	assert.Equal(t, 2, host.detached)
	assert.Empty(t, host.active)
}

func TestRepeatedOpenCloseDoesNotLeak(t *testing.T) {
	host := newFakeHost()
	nav := NewNavigator(host, nil)

	for i := 0; i < 10; i++ {
		nav.Open()
		nav.Close()
	}

	assert.Equal(t, host.attached, host.detached, "every attached listener was detached")
	assert.Empty(t, host.active)
}

func TestOpenIsIdempotent(t *testing.T) {
	host := newFakeHost()
	nav := NewNavigator(host, nil)

	nav.Open()
	nav.Open()
	assert.Equal(t, 2, host.attached, "a second Open while open attaches nothing")

	nav.Close()
	nav.Close()
	assert.Equal(t, 2, host.detached)
}

func TestOutsideClickAndEscapeClose(t *testing.T) {
	host := newFakeHost()
	nav := NewNavigator(host, nil)

	nav.Open()
	host.fire("pointerdown")
	assert.False(t, nav.IsOpen())

	nav.Open()
	host.fire("escape")
	assert.False(t, nav.IsOpen())
	assert.Empty(t, host.active)
}

func TestToggle(t *testing.T) {
	nav := NewNavigator(newFakeHost(), nil)

	nav.Toggle()
	assert.True(t, nav.IsOpen())
	nav.Toggle()
	assert.False(t, nav.IsOpen())
}

func TestSelectInvokesHandlerAndCloses(t *testing.T) {
	selected := -1
	nav := NewNavigator(newFakeHost(), func(index int) { selected = index })
	nav.UpdateSlides([]models.SlideMeta{{Title: "One"}, {Title: "Two"}})

	nav.Open()
	nav.Select(1)

	assert.Equal(t, 1, selected)
	assert.False(t, nav.IsOpen())
}

func TestSelectOutOfRangeClosesWithoutSelecting(t *testing.T) {
	selected := -1
	nav := NewNavigator(newFakeHost(), func(index int) { selected = index })
	nav.UpdateSlides([]models.SlideMeta{{Title: "One"}})

	nav.Open()
	nav.Select(5)

	assert.Equal(t, -1, selected)
	assert.False(t, nav.IsOpen())
}

func TestUpdateSlidesKeepsActive(t *testing.T) {
	nav := NewNavigator(newFakeHost(), nil)
	nav.UpdateSlides([]models.SlideMeta{{Title: "One"}, {Title: "Two"}, {Title: "Three"}})
	nav.SetActive(2)

	nav.UpdateSlides([]models.SlideMeta{{Title: "One"}, {Title: "Two"}})

	assert.Equal(t, 2, nav.ActiveIndex(), "updating the list leaves the highlight alone")
	require.Len(t, nav.Entries(), 2)
}

func TestLabel(t *testing.T) {
	nav := NewNavigator(newFakeHost(), nil)
	nav.UpdateSlides([]models.SlideMeta{
		{Stage: "Warm-up", Title: "Greetings"},
		{Title: "Only title"},
		{Stage: "Only stage"},
		{},
	})

	assert.Equal(t, "Warm-up – Greetings", nav.Label(0))
	assert.Equal(t, "Only title", nav.Label(1))
	assert.Equal(t, "Only stage", nav.Label(2))
	assert.Equal(t, "Slide 4", nav.Label(3))
	assert.Equal(t, "", nav.Label(9))
}
