// Package theme provides the semantic color system for the picker UI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme names the colors the UI draws with.
// Every color is adaptive so light terminals stay readable.
type Theme interface {
	Primary() lipgloss.AdaptiveColor   // focused borders, header background
	Secondary() lipgloss.AdaptiveColor // highlighted suggestion, prompt
	Accent() lipgloss.AdaptiveColor    // result header

	Error() lipgloss.AdaptiveColor
	Warning() lipgloss.AdaptiveColor // duplicate-pick flash
	Success() lipgloss.AdaptiveColor
	Info() lipgloss.AdaptiveColor // chips

	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor
	TextEmphasized() lipgloss.AdaptiveColor

	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // highlighted chip
	BackgroundDarker() lipgloss.AdaptiveColor

	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
	BorderDim() lipgloss.AdaptiveColor
}
