package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"filmpicker/internal/ui"
	"filmpicker/internal/ui/theme"
)

// ExitSummary is printed after the TUI leaves the alt screen so the final
// selection survives in the scrollback.
type ExitSummary struct {
	Version  string
	Duration time.Duration
	Titles   []string
	Result   ui.CommonPersonsResult
}

func summaryFromApp(app *ui.App, version string, started time.Time) ExitSummary {
	picker := app.Picker()
	return ExitSummary{
		Version:  version,
		Duration: time.Since(started),
		Titles:   picker.SelectedTitles(),
		Result:   picker.Result(),
	}
}

// printExitSummary writes the session recap to w.
func printExitSummary(w io.Writer, summary ExitSummary) {
	t := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary())
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted())
	textStyle := lipgloss.NewStyle().Foreground(t.Text())

	header := appStyle.Render("Filmpicker")
	if summary.Version != "" {
		header += dimStyle.Render(" v" + summary.Version)
	}
	header += dimStyle.Render(fmt.Sprintf(" • %s session", formatDuration(summary.Duration)))
	_, _ = fmt.Fprintln(w, header)

	if len(summary.Titles) == 0 {
		_, _ = fmt.Fprintln(w, dimStyle.Render("No titles selected"))
		return
	}
	_, _ = fmt.Fprintln(w, textStyle.Render(fmt.Sprintf("%s: %s",
		pluralize(len(summary.Titles), "title", "titles"), strings.Join(summary.Titles, ", "))))

	switch summary.Result.Kind {
	case ui.ResultList:
		_, _ = fmt.Fprintln(w, textStyle.Render("Common persons: "+strings.Join(summary.Result.Names, ", ")))
	case ui.ResultEmpty:
		_, _ = fmt.Fprintln(w, dimStyle.Render("No common persons"))
	}
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}
