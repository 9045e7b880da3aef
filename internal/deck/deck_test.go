package deck

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesson-deck/internal/models"
)

func buildDeck(policy Policy, n int) *Deck {
	d := New(policy)
	slides := make([]*models.Slide, n)
	for i := range slides {
		slides[i] = &models.Slide{ID: fmt.Sprintf("slide-%d", i), Title: fmt.Sprintf("Slide %d", i+1)}
	}
	d.Refresh(slides)
	if n > 0 {
		d.Show(0)
	}
	return d
}

func visibleIndexes(d *Deck) []int {
	var visible []int
	for i, slide := range d.Slides() {
		if slide.Visible {
			visible = append(visible, i)
		}
	}
	return visible
}

func TestShowWrapPolicy(t *testing.T) {
	d := buildDeck(Wrap, 3)

	d.Show(3)
	assert.Equal(t, 0, d.ActiveIndex(), "one past the end wraps to the first slide")

	d.Show(-1)
	assert.Equal(t, 2, d.ActiveIndex(), "one before the start wraps to the last slide")

	d.Show(-4)
	assert.Equal(t, 2, d.ActiveIndex())

	d.Show(7)
	assert.Equal(t, 1, d.ActiveIndex())
}

func TestShowClampPolicy(t *testing.T) {
	d := buildDeck(Clamp, 3)

	d.Show(3)
	assert.Equal(t, 2, d.ActiveIndex(), "past the end pins to the last slide")

	d.Show(-1)
	assert.Equal(t, 0, d.ActiveIndex(), "before the start pins to the first slide")
}

func TestPolicyNormalize(t *testing.T) {
	assert.Equal(t, 0, Wrap.Normalize(5, 5))
	assert.Equal(t, 4, Wrap.Normalize(-1, 5))
	assert.Equal(t, 2, Wrap.Normalize(12, 5))
	assert.Equal(t, 4, Clamp.Normalize(12, 5))
	assert.Equal(t, 0, Clamp.Normalize(-1, 5))
	assert.Equal(t, 0, Wrap.Normalize(3, 0), "no slides maps everything to 0")
	assert.Equal(t, 0, Clamp.Normalize(-7, 0))
}

func TestShowExactlyOneVisible(t *testing.T) {
	d := buildDeck(Wrap, 5)

	for _, index := range []int{0, 3, 4, 2, -1, 9} {
		d.Show(index)
		visible := visibleIndexes(d)
		require.Len(t, visible, 1, "exactly one slide is visible after Show(%d)", index)
		assert.Equal(t, d.ActiveIndex(), visible[0])
	}
}

func TestEmptyDeckIsSafe(t *testing.T) {
	d := New(Wrap)

	d.Show(0)
	d.Show(-1)
	d.Navigate(1)

	assert.Equal(t, 0, d.ActiveIndex())
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, "0 / 0", d.Counter())
	assert.Nil(t, d.Slide(0))
}

func TestNavigate(t *testing.T) {
	d := buildDeck(Wrap, 3)

	d.Navigate(1)
	assert.Equal(t, 1, d.ActiveIndex())

	d.Navigate(1)
	d.Navigate(1)
	assert.Equal(t, 0, d.ActiveIndex(), "navigating forward past the end wraps")

	d.Navigate(-1)
	assert.Equal(t, 2, d.ActiveIndex(), "navigating back from the start wraps")
}

func TestCounter(t *testing.T) {
	d := buildDeck(Wrap, 4)

	assert.Equal(t, "1 / 4", d.Counter())
	d.Show(3)
	assert.Equal(t, "4 / 4", d.Counter())
}

func TestRemoveReclampsActiveIndex(t *testing.T) {
	d := buildDeck(Clamp, 3)
	d.Show(2)

	d.Remove("slide-2")

	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 1, d.ActiveIndex())
	assert.Equal(t, []int{1}, visibleIndexes(d))
}

func TestRemoveBeforeActiveKeepsActiveSlide(t *testing.T) {
	d := buildDeck(Clamp, 3)
	d.Show(2)

	d.Remove("slide-0")

	assert.Equal(t, 1, d.ActiveIndex())
	require.NotNil(t, d.Slide(1))
	assert.Equal(t, "slide-2", d.Slide(1).ID, "the slide that was visible stays visible")
	assert.Equal(t, []int{1}, visibleIndexes(d))
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	d := buildDeck(Wrap, 2)
	d.Remove("nope")
	assert.Equal(t, 2, d.Len())
}

func TestSlideOutOfRange(t *testing.T) {
	d := buildDeck(Wrap, 2)
	assert.Nil(t, d.Slide(-1))
	assert.Nil(t, d.Slide(2))
	require.NotNil(t, d.Slide(1))
	assert.Equal(t, "slide-1", d.Slide(1).ID)
}

func TestMetaFallbacks(t *testing.T) {
	d := New(Wrap)
	d.Refresh([]*models.Slide{
		{ID: "a", Stage: "Warm-up", Title: "Greetings"},
		{ID: "b", Title: "No stage"},
		{ID: "c"},
	})

	meta := d.Meta()
	require.Len(t, meta, 3)
	assert.Equal(t, models.SlideMeta{Stage: "Warm-up", Title: "Greetings"}, meta[0])
	assert.Equal(t, models.SlideMeta{Stage: "Stage 2", Title: "No stage"}, meta[1])
	assert.Equal(t, models.SlideMeta{Stage: "Stage 3", Title: "Slide 3"}, meta[2])
}

type recordingObserver struct {
	events []Event
}

func (r *recordingObserver) DeckChanged(event Event) {
	r.events = append(r.events, event)
}

func TestObserverLifecycle(t *testing.T) {
	d := buildDeck(Wrap, 3)
	obs := &recordingObserver{}

	d.Subscribe(obs)
	d.Show(1)

	require.Len(t, obs.events, 1)
	assert.Equal(t, Event{Kind: SlideShown, Index: 1}, obs.events[0])

	d.Refresh(d.Slides())
	require.Len(t, obs.events, 2)
	assert.Equal(t, SlidesChanged, obs.events[1].Kind)

	d.Unsubscribe(obs)
	d.Show(2)
	assert.Len(t, obs.events, 2, "unsubscribed observers receive nothing")
}

func TestAppendNotifies(t *testing.T) {
	d := buildDeck(Wrap, 1)
	obs := &recordingObserver{}
	d.Subscribe(obs)

	d.Append(&models.Slide{ID: "slide-1"})

	assert.Equal(t, 2, d.Len())
	require.Len(t, obs.events, 1)
	assert.Equal(t, Event{Kind: SlidesChanged, Index: 2}, obs.events[0])

	d.Append(nil)
	assert.Equal(t, 2, d.Len(), "nil slides are ignored")
	assert.Len(t, obs.events, 1)
}
