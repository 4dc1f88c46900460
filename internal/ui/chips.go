package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filmpicker/internal/ui/theme"
)

// chipMode is the current mode of the chip list.
type chipMode int

const (
	// chipModeInput - cursor sits in the text input after the chips.
	chipModeInput chipMode = iota
	// chipModeNavigation - ←/→ move between chips.
	chipModeNavigation
)

// ChipNavExitReason indicates why chip navigation was left.
type ChipNavExitReason int

const (
	ChipNavExitRight ChipNavExitReason = iota
	ChipNavExitEscape
	// ChipNavExitTyping carries the pressed rune so it reaches the input.
	ChipNavExitTyping
)

// ChipNavExitMsg signals the chip list left navigation mode.
type ChipNavExitMsg struct {
	Reason    ChipNavExitReason
	Character rune
}

type chipFlashClearMsg struct{}

const flashDuration = 150 * time.Millisecond

// ChipList holds the selected titles in pick order. Titles are unique by
// exact value.
type ChipList struct {
	Width int

	chips      []string
	mode       chipMode
	navIndex   int
	flashIndex int
}

// NewChipList creates an empty ChipList.
func NewChipList() ChipList {
	return ChipList{
		Width:      40,
		navIndex:   -1,
		flashIndex: -1,
	}
}

// Update handles navigation keys and flash expiry. Removal is done by the
// owner through RemoveHighlighted so it can invalidate dependent state in the
// same step.
func (c ChipList) Update(msg tea.Msg) (ChipList, tea.Cmd) {
	switch msg := msg.(type) {
	case chipFlashClearMsg:
		c.flashIndex = -1
		return c, nil
	case tea.KeyMsg:
		if c.mode == chipModeNavigation {
			return c.handleNavigationKey(msg)
		}
	}
	return c, nil
}

func (c ChipList) handleNavigationKey(msg tea.KeyMsg) (ChipList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		if c.navIndex > 0 {
			c.navIndex--
		}
		return c, nil

	case tea.KeyRight:
		if c.navIndex < len(c.chips)-1 {
			c.navIndex++
			return c, nil
		}
		c.ExitNavigation()
		return c, exitNav(ChipNavExitRight, 0)

	case tea.KeyDown:
		c.ExitNavigation()
		return c, exitNav(ChipNavExitRight, 0)

	case tea.KeyEsc:
		c.ExitNavigation()
		return c, exitNav(ChipNavExitEscape, 0)

	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			c.ExitNavigation()
			return c, exitNav(ChipNavExitTyping, msg.Runes[0])
		}
	}
	return c, nil
}

func exitNav(reason ChipNavExitReason, r rune) tea.Cmd {
	return func() tea.Msg {
		return ChipNavExitMsg{Reason: reason, Character: r}
	}
}

// Add appends title unless it is already present. A duplicate flashes the
// existing chip and reports false.
func (c *ChipList) Add(title string) bool {
	if title == "" {
		return false
	}
	if i := c.indexOf(title); i >= 0 {
		c.flashIndex = i
		return false
	}
	c.chips = append(c.chips, title)
	return true
}

// Remove drops the first chip equal to title.
func (c *ChipList) Remove(title string) bool {
	i := c.indexOf(title)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// RemoveLast drops the most recently added chip.
func (c *ChipList) RemoveLast() (string, bool) {
	if len(c.chips) == 0 {
		return "", false
	}
	last := c.chips[len(c.chips)-1]
	c.removeAt(len(c.chips) - 1)
	return last, true
}

// RemoveHighlighted drops the chip under the navigation cursor.
func (c *ChipList) RemoveHighlighted() (string, bool) {
	if c.mode != chipModeNavigation || c.navIndex < 0 || c.navIndex >= len(c.chips) {
		return "", false
	}
	removed := c.chips[c.navIndex]
	c.removeAt(c.navIndex)
	return removed, true
}

func (c *ChipList) removeAt(i int) {
	c.chips = append(c.chips[:i:i], c.chips[i+1:]...)
	c.flashIndex = -1
	switch {
	case len(c.chips) == 0:
		c.ExitNavigation()
	case c.navIndex >= len(c.chips):
		c.navIndex = len(c.chips) - 1
	}
}

func (c ChipList) indexOf(title string) int {
	for i, chip := range c.chips {
		if chip == title {
			return i
		}
	}
	return -1
}

// Contains reports whether title is selected.
func (c ChipList) Contains(title string) bool {
	return c.indexOf(title) >= 0
}

// Titles returns a copy of the selected titles in pick order.
func (c ChipList) Titles() []string {
	out := make([]string, len(c.chips))
	copy(out, c.chips)
	return out
}

// Len returns the number of selected titles.
func (c ChipList) Len() int {
	return len(c.chips)
}

// EnterNavigation highlights the last chip. It reports false when there is
// nothing to navigate.
func (c *ChipList) EnterNavigation() bool {
	if len(c.chips) == 0 {
		return false
	}
	c.mode = chipModeNavigation
	c.navIndex = len(c.chips) - 1
	return true
}

// ExitNavigation returns to input mode.
func (c *ChipList) ExitNavigation() {
	c.mode = chipModeInput
	c.navIndex = -1
}

// InNavigationMode reports whether ←/→ currently move between chips.
func (c ChipList) InNavigationMode() bool {
	return c.mode == chipModeNavigation
}

// HighlightedChip returns the chip under the navigation cursor.
func (c ChipList) HighlightedChip() string {
	if c.mode != chipModeNavigation || c.navIndex < 0 || c.navIndex >= len(c.chips) {
		return ""
	}
	return c.chips[c.navIndex]
}

// FlashCmd clears a duplicate flash after a short delay.
func FlashCmd() tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return chipFlashClearMsg{}
	})
}

// RenderChips returns the styled chips without wrapping so the caller can
// flow them together with the input.
func (c ChipList) RenderChips() []string {
	out := make([]string, 0, len(c.chips))
	for i, chip := range c.chips {
		state := chipStateNormal
		switch {
		case c.flashIndex == i:
			state = chipStateFlash
		case c.mode == chipModeNavigation && i == c.navIndex:
			state = chipStateHighlight
		}
		out = append(out, renderPillChip(chip, state))
	}
	return out
}

// View renders the chips wrapped to Width.
func (c ChipList) View() string {
	return wrapElements(c.RenderChips(), c.Width)
}

// wrapElements flows pre-rendered pieces onto lines no wider than width.
func wrapElements(elements []string, width int) string {
	if width <= 0 || len(elements) == 0 {
		return strings.Join(elements, " ")
	}

	var lines []string
	var line []string
	lineWidth := 0
	for _, elem := range elements {
		w := lipgloss.Width(elem)
		need := w
		if len(line) > 0 {
			need++
		}
		if lineWidth+need > width && len(line) > 0 {
			lines = append(lines, strings.Join(line, " "))
			line = []string{elem}
			lineWidth = w
			continue
		}
		line = append(line, elem)
		lineWidth += need
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

type chipState int

const (
	chipStateNormal chipState = iota
	chipStateHighlight
	chipStateFlash
)

// Powerline half circles.
const (
	pillLeft  = "\ue0b6"
	pillRight = "\ue0b4"
)

// renderPillChip draws a title as a rounded pill.
func renderPillChip(title string, state chipState) string {
	t := theme.Current()
	var bg, fg lipgloss.TerminalColor
	switch state {
	case chipStateHighlight:
		bg, fg = t.BackgroundSecondary(), t.Text()
	case chipStateFlash:
		bg, fg = t.Warning(), t.Text()
	default:
		bg, fg = t.Info(), t.Background()
	}

	label := lipgloss.NewStyle().Foreground(fg).Background(bg)
	if state != chipStateNormal {
		label = label.Bold(true)
	}
	caps := lipgloss.NewStyle().Foreground(bg)
	return caps.Render(pillLeft) + label.Render(title) + caps.Render(pillRight)
}
