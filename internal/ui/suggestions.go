package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"filmpicker/internal/films"
)

const defaultMaxVisible = 8

// SuggestionList is the dropdown under the input. Items are replaced
// wholesale whenever a matching response lands.
type SuggestionList struct {
	MaxVisible int
	Width      int

	items          []films.Suggestion
	highlightIndex int
	scrollOffset   int
}

// NewSuggestionList creates an empty dropdown.
func NewSuggestionList() SuggestionList {
	return SuggestionList{
		MaxVisible:     defaultMaxVisible,
		Width:          40,
		highlightIndex: -1,
	}
}

// SetItems replaces the list and highlights the first entry.
func (s *SuggestionList) SetItems(items []films.Suggestion) {
	s.items = append([]films.Suggestion(nil), items...)
	s.scrollOffset = 0
	s.highlightIndex = -1
	if len(s.items) > 0 {
		s.highlightIndex = 0
	}
}

// Clear empties the list.
func (s *SuggestionList) Clear() {
	s.SetItems(nil)
}

// Items returns a copy of the current suggestions.
func (s SuggestionList) Items() []films.Suggestion {
	return append([]films.Suggestion(nil), s.items...)
}

// Len returns the number of suggestions.
func (s SuggestionList) Len() int {
	return len(s.items)
}

// Highlighted returns the suggestion under the cursor.
func (s SuggestionList) Highlighted() (films.Suggestion, bool) {
	if s.highlightIndex < 0 || s.highlightIndex >= len(s.items) {
		return films.Suggestion{}, false
	}
	return s.items[s.highlightIndex], true
}

// HighlightIndex returns the cursor position, -1 when empty.
func (s SuggestionList) HighlightIndex() int {
	return s.highlightIndex
}

// MoveDown advances the cursor, stopping at the last entry.
func (s *SuggestionList) MoveDown() {
	if s.highlightIndex < len(s.items)-1 {
		s.highlightIndex++
		s.adjustScrollOffset()
	}
}

// MoveUp moves the cursor back, stopping at the first entry.
func (s *SuggestionList) MoveUp() {
	if s.highlightIndex > 0 {
		s.highlightIndex--
		s.adjustScrollOffset()
	}
}

func (s *SuggestionList) adjustScrollOffset() {
	visible := s.visibleRows()
	if s.highlightIndex < s.scrollOffset {
		s.scrollOffset = s.highlightIndex
	}
	if s.highlightIndex >= s.scrollOffset+visible {
		s.scrollOffset = s.highlightIndex - visible + 1
	}
	maxOffset := max(len(s.items)-visible, 0)
	s.scrollOffset = min(max(s.scrollOffset, 0), maxOffset)
}

func (s SuggestionList) visibleRows() int {
	if s.MaxVisible <= 0 {
		return defaultMaxVisible
	}
	return s.MaxVisible
}

// View renders the visible window. Titles already selected are emphasized.
func (s SuggestionList) View(selected func(string) bool) string {
	if len(s.items) == 0 {
		return ""
	}

	contentWidth := max(s.Width-4, 10)
	end := min(s.scrollOffset+s.visibleRows(), len(s.items))

	var lines []string
	if s.scrollOffset > 0 {
		lines = append(lines, styleSuggestionHint().Render("  ▲ more above"))
	}
	for i := s.scrollOffset; i < end; i++ {
		// Two columns of prefix plus one of padding.
		title := ansi.Truncate(s.items[i].Title, contentWidth-3, "…")
		style := styleSuggestionOption()
		prefix := "  "
		if i == s.highlightIndex {
			style = styleSuggestionHighlight()
			prefix = "▸ "
		}
		if selected != nil && selected(s.items[i].Title) {
			style = style.Bold(true)
		}
		lines = append(lines, style.Width(contentWidth).Render(prefix+title))
	}
	if end < len(s.items) {
		lines = append(lines, styleSuggestionHint().Render("  ▼ more below"))
	}
	return strings.Join(lines, "\n")
}
