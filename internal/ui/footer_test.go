package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestFooterHintsFollowState(t *testing.T) {
	keys := DefaultKeyMap()
	p := newFakeClock().picker(&fakeCatalog{})

	footer := renderFooter(p, keys, "http://x/graphql", 200)
	if strings.Contains(footer, "Common persons") {
		t.Error("expected no aggregation hint without a selection")
	}

	p, _ = p.Pick("Alien")
	footer = renderFooter(p, keys, "http://x/graphql", 200)
	if !strings.Contains(footer, "Common persons") || !strings.Contains(footer, "http://x/graphql") {
		t.Errorf("unexpected footer %q", footer)
	}

	p, _ = press(p, tea.KeyUp)
	footer = renderFooter(p, keys, "http://x/graphql", 200)
	if !strings.Contains(footer, "Common persons") || !strings.Contains(footer, "Remove") {
		t.Errorf("expected aggregation and removal hints in chip navigation, got %q", footer)
	}
}

func TestTrimHintsToFitDropsContextFirst(t *testing.T) {
	globals := globalFooterHints(DefaultKeyMap())
	hints := append([]footerHint{{"⏎", "Common persons"}}, globals...)

	trimmed := trimHintsToFit(hints, len(globals), hintsWidth(globals))
	if len(trimmed) != len(globals) || trimmed[0] != globals[0] {
		t.Fatalf("expected only globals left, got %v", trimmed)
	}

	if got := trimHintsToFit(hints, len(globals), 0); len(got) != 0 {
		t.Errorf("expected everything dropped at zero width, got %v", got)
	}
}
