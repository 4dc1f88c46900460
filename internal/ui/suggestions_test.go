package ui

import (
	"fmt"
	"strings"
	"testing"

	"filmpicker/internal/films"
)

func suggestionsOf(n int) []films.Suggestion {
	out := make([]films.Suggestion, n)
	for i := range out {
		out[i] = films.Suggestion{Title: fmt.Sprintf("Film %02d", i)}
	}
	return out
}

func TestSuggestionList_SetItemsResetsHighlight(t *testing.T) {
	s := NewSuggestionList()
	if _, ok := s.Highlighted(); ok {
		t.Fatal("expected no highlight when empty")
	}

	s.SetItems(suggestionsOf(3))
	s.MoveDown()
	s.SetItems(suggestionsOf(2))
	if s.HighlightIndex() != 0 {
		t.Errorf("expected highlight reset to 0, got %d", s.HighlightIndex())
	}

	s.Clear()
	if s.HighlightIndex() != -1 || s.Len() != 0 {
		t.Error("expected cleared list")
	}
}

func TestSuggestionList_MoveClamps(t *testing.T) {
	s := NewSuggestionList()
	s.SetItems(suggestionsOf(2))
	s.MoveUp()
	if s.HighlightIndex() != 0 {
		t.Errorf("expected 0, got %d", s.HighlightIndex())
	}
	s.MoveDown()
	s.MoveDown()
	if s.HighlightIndex() != 1 {
		t.Errorf("expected 1, got %d", s.HighlightIndex())
	}
}

func TestSuggestionList_Scrolls(t *testing.T) {
	s := NewSuggestionList()
	s.MaxVisible = 3
	s.SetItems(suggestionsOf(10))

	view := s.View(nil)
	if strings.Contains(view, "more above") || !strings.Contains(view, "more below") {
		t.Fatalf("unexpected indicators at top:\n%s", view)
	}

	for i := 0; i < 5; i++ {
		s.MoveDown()
	}
	view = s.View(nil)
	if !strings.Contains(view, "▸ Film 05") {
		t.Errorf("expected highlighted Film 05 visible:\n%s", view)
	}
	if strings.Contains(view, "Film 02") {
		t.Errorf("expected Film 02 scrolled out:\n%s", view)
	}
	if !strings.Contains(view, "more above") {
		t.Error("expected more-above indicator")
	}
}

func TestSuggestionList_TruncatesLongTitles(t *testing.T) {
	s := NewSuggestionList()
	s.Width = 20
	s.SetItems([]films.Suggestion{{Title: strings.Repeat("Long Title ", 10)}})

	view := s.View(nil)
	if !strings.Contains(view, "…") {
		t.Errorf("expected ellipsis:\n%s", view)
	}
}
