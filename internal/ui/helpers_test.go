package ui

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"filmpicker/internal/films"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// fakeCatalog records every call and answers from canned data.
type fakeCatalog struct {
	mu sync.Mutex

	titles     map[string][]films.Suggestion
	persons    []films.Person
	searchErr  error
	personsErr error

	searches    []string
	aggregates  [][]string
	cancelledAt []string
}

func (f *fakeCatalog) SearchTitles(ctx context.Context, term string) ([]films.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		f.cancelledAt = append(f.cancelledAt, "search:"+term)
		return nil, err
	}
	f.searches = append(f.searches, term)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.titles[term], nil
}

func (f *fakeCatalog) CommonPersons(ctx context.Context, titles []string) ([]films.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		f.cancelledAt = append(f.cancelledAt, "persons")
		return nil, err
	}
	f.aggregates = append(f.aggregates, append([]string(nil), titles...))
	if f.personsErr != nil {
		return nil, f.personsErr
	}
	return f.persons, nil
}

func (f *fakeCatalog) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func starCatalog() *fakeCatalog {
	return &fakeCatalog{
		titles: map[string][]films.Suggestion{
			"sta":  {{Title: "Star Wars"}, {Title: "Stardust"}},
			"star": {{Title: "Star Wars"}, {Title: "Stardust"}, {Title: "A Star Is Born"}},
			"ali":  {{Title: "Alien"}, {Title: "Aliens"}},
		},
	}
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// picker returns a focused picker running on this clock with plain output.
func (c *fakeClock) picker(cat films.Catalog) FilmPicker {
	p := NewFilmPicker(cat, PickerOptions{Now: c.Now, OutputFormat: "plain"})
	p.Focus()
	return p
}

// cmdTimeout bounds how long drain waits on one command. Timer-driven
// commands never finish in time; tests deliver those messages by hand.
const cmdTimeout = 50 * time.Millisecond

// drain runs cmd and returns the messages it produced, flattening batches.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}

	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, drain(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// apply feeds fetch responses back into the picker.
func apply(p FilmPicker, msgs []tea.Msg) FilmPicker {
	for _, msg := range msgs {
		switch msg.(type) {
		case suggestionsMsg, personsMsg:
			p, _ = p.Update(msg)
		}
	}
	return p
}

func typeText(p FilmPicker, s string) FilmPicker {
	for _, r := range s {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func press(p FilmPicker, k tea.KeyType) (FilmPicker, tea.Cmd) {
	return p.Update(tea.KeyMsg{Type: k})
}

// dueNow delivers the wake-up for the latest keystroke and returns the
// dispatch command, if any.
func dueNow(p FilmPicker) (FilmPicker, tea.Cmd) {
	return p.Update(searchDueMsg{token: p.gate.Latest()})
}

// search types text, lets the quiet and spacing windows pass and applies
// the response.
func search(t *testing.T, p FilmPicker, clock *fakeClock, text string) FilmPicker {
	t.Helper()
	p = typeText(p, text)
	clock.Advance(time.Second)
	p, cmd := dueNow(p)
	return apply(p, drain(t, cmd))
}

func messagesOf[T any](msgs []tea.Msg) []T {
	var out []T
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			out = append(out, m)
		}
	}
	return out
}
