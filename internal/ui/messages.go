package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"filmpicker/internal/debounce"
	"filmpicker/internal/films"
)

// searchDueMsg is the debounce wake-up for one keystroke.
type searchDueMsg struct {
	token debounce.Token
}

type suggestionsMsg struct {
	seq   uint64
	term  string
	items []films.Suggestion
	err   error
}

type personsMsg struct {
	seq     uint64
	titles  []string
	persons []films.Person
	err     error
}

// TitleAddedMsg is emitted after a suggestion is picked into the selection.
type TitleAddedMsg struct {
	Title string
}

// TitleRemovedMsg is emitted after a title leaves the selection.
type TitleRemovedMsg struct {
	Title string
}

type toastClearMsg struct {
	id int
}

// after delivers msg once d has elapsed, or right away when d <= 0.
func after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
