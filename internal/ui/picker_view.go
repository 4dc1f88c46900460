package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	noTitlesText        = "No titles selected"
	noMatchesText       = "No matches"
	noCommonPersonsText = "No common persons"
)

// View renders the selection, the input, the dropdown and the result.
func (p FilmPicker) View() string {
	var sections []string

	if p.chips.Len() == 0 {
		sections = append(sections, styleEmptyMarker().Render(noTitlesText))
	} else {
		sections = append(sections, p.chips.View())
	}

	inputStyle := styleInput()
	if p.focused {
		inputStyle = styleInputFocused()
	}
	sections = append(sections, inputStyle.Width(p.opts.Width-2).Render(p.input.View()))

	if dropdown := p.dropdownView(); dropdown != "" {
		sections = append(sections, dropdown)
	}
	if result := p.resultView(); result != "" {
		sections = append(sections, "", result)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (p FilmPicker) dropdownView() string {
	if !p.DropdownVisible() {
		return ""
	}
	var lines []string
	switch p.phase {
	case PhaseFetchingSuggestions:
		lines = append(lines, styleStatusLine().Render(p.spinner.View()+" Searching..."))
	case PhaseSuggestionsFailed:
		lines = append(lines, styleErrorLine().Render("⚠ Search failed: "+errorText(p.suggestErr)))
		return strings.Join(lines, "\n")
	case PhaseSuggestionsReady:
		if p.suggestions.Len() == 0 {
			lines = append(lines, styleSuggestionHint().Render("  "+noMatchesText))
		}
	}
	if list := p.suggestions.View(p.chips.Contains); list != "" {
		lines = append(lines, list)
	}
	return strings.Join(lines, "\n")
}

func (p FilmPicker) resultView() string {
	if p.phase == PhaseAggregating {
		return styleStatusLine().Render(p.spinner.View() + " Finding common persons...")
	}
	switch p.result.Kind {
	case ResultEmpty:
		return styleEmptyMarker().Render(noCommonPersonsText)
	case ResultFailed:
		return styleErrorLine().Render("⚠ Lookup failed: " + errorText(p.result.Err))
	case ResultList:
		header := styleResultHeader().Render("Common persons")
		return header + "\n" + p.render(personsMarkdown(p.result.Names, !p.plainOutput()))
	}
	return ""
}

// personsMarkdown renders names as a bullet list. With escape set, each name
// is protected from markdown so it renders as typed.
func personsMarkdown(names []string, escape bool) string {
	var b strings.Builder
	for _, name := range names {
		name = strings.TrimSpace(name)
		if escape {
			name = escapeMarkdown(name)
		}
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString("\n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, "#", `\#`,
)

// A name starting like a list item or quote would nest inside its bullet.
var (
	leadingBullet  = regexp.MustCompile(`^([-+>])(\s|$)`)
	leadingOrdinal = regexp.MustCompile(`^(\d+)([.)])(\s|$)`)
)

func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	s = leadingBullet.ReplaceAllString(s, `\$1$2`)
	return leadingOrdinal.ReplaceAllString(s, `$1\$2$3`)
}

func (p FilmPicker) plainOutput() bool {
	return strings.EqualFold(strings.TrimSpace(p.opts.OutputFormat), "plain")
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
