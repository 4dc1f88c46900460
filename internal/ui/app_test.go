package ui

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "filmpicker/internal/errors"
	"filmpicker/internal/films"
	"filmpicker/internal/graphql"
	"filmpicker/internal/ui/theme"
)

func newTestApp(t *testing.T, cat films.Catalog, cfg Config) *App {
	t.Helper()
	cfg.Catalog = cat
	cfg.Picker.OutputFormat = "plain"
	if cfg.CopyText == nil {
		cfg.CopyText = func(string) error { return nil }
	}
	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app.picker.Focus()
	return app
}

func sendKey(app *App, k tea.KeyType) tea.Cmd {
	_, cmd := app.Update(tea.KeyMsg{Type: k})
	return cmd
}

func TestNewAppRequiresCatalog(t *testing.T) {
	_, err := NewApp(Config{})
	if !apperrors.IsCode(err, apperrors.CodeConfigurationError) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestAppQuitClosesPicker(t *testing.T) {
	app := newTestApp(t, &fakeCatalog{}, Config{})
	cmd := sendKey(app, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !app.Picker().Closed() {
		t.Error("expected picker closed on quit")
	}
}

func TestAppPrintableKeysReachInput(t *testing.T) {
	app := newTestApp(t, &fakeCatalog{}, Config{})
	for _, r := range "q?" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := app.Picker().SearchText(); got != "q?" {
		t.Fatalf("expected printable keys typed, got %q", got)
	}
}

func TestAppCycleThemeSaves(t *testing.T) {
	original := theme.CurrentName()
	t.Cleanup(func() { theme.SetTheme(original) })

	var saved []string
	app := newTestApp(t, &fakeCatalog{}, Config{
		SaveTheme: func(name string) error {
			saved = append(saved, name)
			return nil
		},
	})

	sendKey(app, tea.KeyCtrlT)
	if len(saved) != 1 || saved[0] != theme.CurrentName() {
		t.Fatalf("expected current theme saved, got %v", saved)
	}
	if saved[0] == original {
		t.Error("expected theme to change")
	}
	if !strings.Contains(app.View(), "Theme: "+saved[0]) {
		t.Error("expected theme toast")
	}
}

func TestAppCycleThemeSaveFailure(t *testing.T) {
	original := theme.CurrentName()
	t.Cleanup(func() { theme.SetTheme(original) })

	app := newTestApp(t, &fakeCatalog{}, Config{
		SaveTheme: func(string) error { return errors.New("read-only") },
	})
	sendKey(app, tea.KeyCtrlT)
	if !strings.Contains(app.View(), "not saved") {
		t.Error("expected failure toast")
	}
}

func TestAppCopyPersons(t *testing.T) {
	var copied string
	cat := &fakeCatalog{persons: []films.Person{{Name: "George Lucas"}, {Name: "Harrison Ford"}}}
	app := newTestApp(t, cat, Config{
		CopyText: func(s string) error {
			copied = s
			return nil
		},
	})

	// Nothing to copy yet.
	if cmd := sendKey(app, tea.KeyCtrlY); cmd != nil || copied != "" {
		t.Fatal("expected copy to be a no-op without a result")
	}

	app.picker, _ = app.picker.Pick("Star Wars")
	cmd := sendKey(app, tea.KeyEnter)
	for _, msg := range drain(t, cmd) {
		app.Update(msg)
	}

	sendKey(app, tea.KeyCtrlY)
	if copied != "George Lucas\nHarrison Ford" {
		t.Fatalf("unexpected clipboard contents %q", copied)
	}
	if !strings.Contains(app.View(), "Copied 2 names") {
		t.Error("expected copy toast")
	}
}

func TestAppToastClears(t *testing.T) {
	app := newTestApp(t, &fakeCatalog{}, Config{})
	app.showToast("hello", false)
	stale := toastClearMsg{id: app.toastID}
	app.showToast("world", false)

	app.Update(stale)
	if app.toast != "world" {
		t.Fatalf("expected newer toast kept, got %q", app.toast)
	}
	app.Update(toastClearMsg{id: app.toastID})
	if app.toast != "" {
		t.Error("expected toast cleared")
	}
}

func TestAppHelpToggle(t *testing.T) {
	app := newTestApp(t, &fakeCatalog{}, Config{Endpoint: "http://films.test/graphql"})
	if !strings.Contains(app.View(), "http://films.test/graphql") {
		t.Error("expected endpoint in footer")
	}
	sendKey(app, tea.KeyF1)
	if !strings.Contains(app.View(), "Move between titles") {
		t.Error("expected full help")
	}
	sendKey(app, tea.KeyF1)
	if strings.Contains(app.View(), "Move between titles") {
		t.Error("expected full help hidden again")
	}
}

func TestAppHeaderShowsVersionAndPhase(t *testing.T) {
	app := newTestApp(t, &fakeCatalog{}, Config{Version: "1.2.3"})
	view := app.View()
	if !strings.Contains(view, "FILMPICKER v1.2.3") {
		t.Error("expected version in header")
	}
	if !strings.Contains(view, "idle") {
		t.Error("expected phase in header")
	}
}

// graphqlBackend serves the two queries the picker sends and records them.
type graphqlBackend struct {
	mu      sync.Mutex
	queries []string
	persons string
}

func (b *graphqlBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.queries = append(b.queries, req.Query)
	persons := b.persons
	b.mu.Unlock()

	switch {
	case strings.HasPrefix(req.Query, "{films("):
		_, _ = w.Write([]byte(`{"data":{"films":[{"id":"1","title":"Star Wars"},{"id":"2","title":"Stardust"}]}}`))
	case strings.HasPrefix(req.Query, "{commonPersons("):
		_, _ = w.Write([]byte(`{"data":{"commonPersons":` + persons + `}}`))
	default:
		_, _ = w.Write([]byte(`{"errors":[{"message":"unknown query"}]}`))
	}
}

func TestPickerOverGraphQL(t *testing.T) {
	backend := &graphqlBackend{persons: `[]`}
	srv := httptest.NewServer(backend)
	defer srv.Close()

	svc := films.NewService(graphql.NewClient(srv.URL), films.DefaultSearchOptions())
	clock := newFakeClock()
	p := clock.picker(svc)

	p = search(t, p, clock, "sta")
	if got := p.Suggestions(); len(got) != 2 || got[0].Title != "Star Wars" || got[1].Title != "Stardust" {
		t.Fatalf("unexpected suggestions %v", got)
	}
	p, _ = press(p, tea.KeyEnter)

	p = search(t, p, clock, "sta")
	p, _ = press(p, tea.KeyDown)
	p, _ = press(p, tea.KeyEnter)

	p, cmd := press(p, tea.KeyEnter)
	p = apply(p, drain(t, cmd))
	if !strings.Contains(p.View(), noCommonPersonsText) {
		t.Fatalf("expected %q, got:\n%s", noCommonPersonsText, p.View())
	}

	backend.mu.Lock()
	backend.persons = `[{"name":"George Lucas"}]`
	backend.mu.Unlock()

	p, cmd = press(p, tea.KeyEnter)
	p = apply(p, drain(t, cmd))
	if res := p.Result(); res.Kind != ResultList || len(res.Names) != 1 || res.Names[0] != "George Lucas" {
		t.Fatalf("unexpected result %+v", res)
	}

	backend.mu.Lock()
	defer backend.mu.Unlock()
	want := []string{
		`{films(search: "%sta%", limit: 20) {id, title}}`,
		`{films(search: "%sta%", limit: 20) {id, title}}`,
		`{commonPersons(titles: ["Star Wars","Stardust"]) {name}}`,
		`{commonPersons(titles: ["Star Wars","Stardust"]) {name}}`,
	}
	if strings.Join(backend.queries, "\n") != strings.Join(want, "\n") {
		t.Errorf("unexpected queries:\n%s", strings.Join(backend.queries, "\n"))
	}
}

func TestPickerRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	svc := films.NewService(graphql.NewClient(srv.URL), films.DefaultSearchOptions())
	clock := newFakeClock()
	p := NewFilmPicker(svc, PickerOptions{Now: clock.Now, RequestTimeout: 10 * time.Millisecond})
	p.Focus()

	p = search(t, p, clock, "sta")
	if p.Phase() != PhaseSuggestionsFailed {
		t.Fatalf("expected timeout to fail the fetch, got %s", p.Phase())
	}
	if !apperrors.IsCode(p.SuggestionError(), apperrors.CodeNetwork) {
		t.Errorf("expected network error, got %v", p.SuggestionError())
	}
}
