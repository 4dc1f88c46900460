package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// footerHint is one key pill in the footer bar.
type footerHint struct {
	key  string
	desc string
}

// globalFooterHints are always shown, after the context hints.
func globalFooterHints(k KeyMap) []footerHint {
	return []footerHint{
		bindingHint(k.Copy),
		bindingHint(k.Theme),
		bindingHint(k.Help),
		bindingHint(k.Quit),
	}
}

// contextFooterHints returns the hints that apply to the picker's state.
func contextFooterHints(p FilmPicker) []footerHint {
	switch {
	case p.chips.InNavigationMode():
		return []footerHint{{"⏎", "Common persons"}, {"←→", "Move"}, {"⌫", "Remove"}, {"esc", "Back"}}
	case p.DropdownVisible() && p.suggestions.Len() > 0:
		return []footerHint{{"↑↓", "Move"}, {"⏎", "Pick"}, {"esc", "Close"}}
	case p.SearchText() == "" && p.chips.Len() > 0:
		return []footerHint{{"⏎", "Common persons"}, {"⌫", "Remove last"}, {"↑", "Titles"}}
	}
	return nil
}

// renderFooter draws the pill bar with the endpoint right-aligned.
func renderFooter(p FilmPicker, keys KeyMap, endpoint string, width int) string {
	globals := globalFooterHints(keys)
	hints := append(contextFooterHints(p), globals...)

	right := styleHeaderInfo().Render(endpoint)
	rightWidth := lipgloss.Width(right)
	hints = trimHintsToFit(hints, len(globals), width-rightWidth-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := max(width-lipgloss.Width(left)-rightWidth, 2)
	return left + strings.Repeat(" ", spacing) + right
}

func keyPill(k, desc string) string {
	return styleKeyPill().Render(" "+k+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit drops context hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, globalCount, available int) []footerHint {
	for len(hints) > 0 && hintsWidth(hints) > available {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func hintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}

// bindingHint turns a key binding into a footer hint.
func bindingHint(b key.Binding) footerHint {
	h := b.Help()
	return footerHint{key: h.Key, desc: h.Desc}
}
