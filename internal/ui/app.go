package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "filmpicker/internal/errors"
	"filmpicker/internal/films"
	"filmpicker/internal/ui/theme"
)

const (
	maxPickerWidth = 100
	toastDuration  = 3 * time.Second
)

// Config configures the UI application.
type Config struct {
	Catalog  films.Catalog
	Picker   PickerOptions
	Endpoint string
	Version  string
	// SaveTheme persists a theme chosen at runtime. Nil skips persisting.
	SaveTheme func(name string) error
	// CopyText writes to the clipboard. Nil uses the system clipboard.
	CopyText func(text string) error
}

// App implements the Bubble Tea model around a single FilmPicker.
type App struct {
	picker   FilmPicker
	keys     KeyMap
	help     help.Model
	showHelp bool

	width  int
	height int

	endpoint  string
	version   string
	saveTheme func(string) error
	copyText  func(string) error

	toast    string
	toastErr bool
	toastID  int
}

// NewApp builds the application. The catalog is created once by the caller
// and reused for every request.
func NewApp(cfg Config) (*App, error) {
	if cfg.Catalog == nil {
		return nil, apperrors.New(apperrors.CodeConfigurationError, "film catalog is required", nil)
	}
	copyText := cfg.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	return &App{
		picker:    NewFilmPicker(cfg.Catalog, cfg.Picker),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		endpoint:  cfg.Endpoint,
		version:   cfg.Version,
		saveTheme: cfg.SaveTheme,
		copyText:  copyText,
	}, nil
}

func (m *App) Init() tea.Cmd {
	return tea.Batch(m.picker.Focus(), textinput.Blink)
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.SetWidth(min(msg.Width-2, maxPickerWidth))
		m.help.Width = msg.Width
		return m, nil

	case toastClearMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case TitleAddedMsg:
		log.Logf("added %q", msg.Title)
		return m, nil

	case TitleRemovedMsg:
		log.Logf("removed %q", msg.Title)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.picker.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			return m, m.cycleTheme()
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyPersons()
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	if m.saveTheme != nil {
		if err := m.saveTheme(name); err != nil {
			log.Logf("save theme %s: %v", name, err)
			return m.showToast(fmt.Sprintf("Theme %s (not saved: %v)", name, err), true)
		}
	}
	return m.showToast("Theme: "+name, false)
}

func (m *App) copyPersons() tea.Cmd {
	result := m.picker.Result()
	if result.Kind != ResultList {
		return nil
	}
	if err := m.copyText(strings.Join(result.Names, "\n")); err != nil {
		log.Logf("clipboard: %v", err)
		return m.showToast("Copy failed: "+err.Error(), true)
	}
	return m.showToast(fmt.Sprintf("Copied %d names to clipboard.", len(result.Names)), false)
}

func (m *App) showToast(text string, isErr bool) tea.Cmd {
	m.toastID++
	m.toast = text
	m.toastErr = isErr
	return after(toastDuration, toastClearMsg{id: m.toastID})
}

// Picker exposes the embedded picker.
func (m *App) Picker() FilmPicker {
	return m.picker
}

func (m *App) View() string {
	title := "FILMPICKER"
	if m.version != "" {
		title = fmt.Sprintf("FILMPICKER v%s", m.version)
	}
	header := styleAppHeader().Render(title) + " " + styleHeaderInfo().Render(m.picker.Phase().String())

	sections := []string{header, "", m.picker.View()}
	if m.toast != "" {
		style := styleToast()
		if m.toastErr {
			style = styleErrorToast()
		}
		sections = append(sections, "", style.Render(m.toast))
	}

	var footer string
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	} else {
		footer = renderFooter(m.picker, m.keys, m.endpoint, m.width)
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.height > 0 {
		gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
		if gap > 0 {
			body += strings.Repeat("\n", gap)
		}
	}
	return body + "\n" + footer
}
