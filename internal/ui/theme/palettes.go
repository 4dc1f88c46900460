package theme

import "github.com/charmbracelet/lipgloss"

// palette is a Theme described as data. Each entry is {dark, light}.
type palette struct {
	primary, secondary, accent          [2]string
	error, warning, success, info       [2]string
	text, textMuted, textEmphasized     [2]string
	background, backgroundSecondary     [2]string
	backgroundDarker                    [2]string
	borderNormal, borderFocused, border [2]string
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: c[0], Light: c[1]}
}

func (p palette) Primary() lipgloss.AdaptiveColor             { return adaptive(p.primary) }
func (p palette) Secondary() lipgloss.AdaptiveColor           { return adaptive(p.secondary) }
func (p palette) Accent() lipgloss.AdaptiveColor              { return adaptive(p.accent) }
func (p palette) Error() lipgloss.AdaptiveColor               { return adaptive(p.error) }
func (p palette) Warning() lipgloss.AdaptiveColor             { return adaptive(p.warning) }
func (p palette) Success() lipgloss.AdaptiveColor             { return adaptive(p.success) }
func (p palette) Info() lipgloss.AdaptiveColor                { return adaptive(p.info) }
func (p palette) Text() lipgloss.AdaptiveColor                { return adaptive(p.text) }
func (p palette) TextMuted() lipgloss.AdaptiveColor           { return adaptive(p.textMuted) }
func (p palette) TextEmphasized() lipgloss.AdaptiveColor      { return adaptive(p.textEmphasized) }
func (p palette) Background() lipgloss.AdaptiveColor          { return adaptive(p.background) }
func (p palette) BackgroundSecondary() lipgloss.AdaptiveColor { return adaptive(p.backgroundSecondary) }
func (p palette) BackgroundDarker() lipgloss.AdaptiveColor    { return adaptive(p.backgroundDarker) }
func (p palette) BorderNormal() lipgloss.AdaptiveColor        { return adaptive(p.borderNormal) }
func (p palette) BorderFocused() lipgloss.AdaptiveColor       { return adaptive(p.borderFocused) }
func (p palette) BorderDim() lipgloss.AdaptiveColor           { return adaptive(p.border) }

var tokyoNight = palette{
	primary:             [2]string{"#82aaff", "#2e7de9"},
	secondary:           [2]string{"#c099ff", "#9854f1"},
	accent:              [2]string{"#ff966c", "#b15c00"},
	error:               [2]string{"#ff757f", "#f52a65"},
	warning:             [2]string{"#ff966c", "#b15c00"},
	success:             [2]string{"#c3e88d", "#587539"},
	info:                [2]string{"#7dcfff", "#0db9d7"},
	text:                [2]string{"#c8d3f5", "#3760bf"},
	textMuted:           [2]string{"#636da6", "#848cb5"},
	textEmphasized:      [2]string{"#ffc777", "#8c6c3e"},
	background:          [2]string{"#222436", "#e1e2e7"},
	backgroundSecondary: [2]string{"#2f334d", "#c8c9ce"},
	backgroundDarker:    [2]string{"#1e2030", "#d5d6db"},
	borderNormal:        [2]string{"#3b4261", "#a8aecb"},
	borderFocused:       [2]string{"#82aaff", "#2e7de9"},
	border:              [2]string{"#292e42", "#c8c9ce"},
}

var catppuccin = palette{
	primary:             [2]string{"#89b4fa", "#1e66f5"},
	secondary:           [2]string{"#cba6f7", "#8839ef"},
	accent:              [2]string{"#fab387", "#fe640b"},
	error:               [2]string{"#f38ba8", "#d20f39"},
	warning:             [2]string{"#fab387", "#fe640b"},
	success:             [2]string{"#a6e3a1", "#40a02b"},
	info:                [2]string{"#89b4fa", "#1e66f5"},
	text:                [2]string{"#cdd6f4", "#4c4f69"},
	textMuted:           [2]string{"#6c7086", "#9ca0b0"},
	textEmphasized:      [2]string{"#f5e0dc", "#dc8a78"},
	background:          [2]string{"#1e1e2e", "#eff1f5"},
	backgroundSecondary: [2]string{"#313244", "#e6e9ef"},
	backgroundDarker:    [2]string{"#181825", "#dce0e8"},
	borderNormal:        [2]string{"#6c7086", "#9ca0b0"},
	borderFocused:       [2]string{"#89b4fa", "#1e66f5"},
	border:              [2]string{"#45475a", "#ccd0da"},
}

var gruvbox = palette{
	primary:             [2]string{"#83a598", "#076678"},
	secondary:           [2]string{"#d3869b", "#8f3f71"},
	accent:              [2]string{"#fabd2f", "#b57614"},
	error:               [2]string{"#fb4934", "#9d0006"},
	warning:             [2]string{"#fe8019", "#af3a03"},
	success:             [2]string{"#b8bb26", "#79740e"},
	info:                [2]string{"#83a598", "#076678"},
	text:                [2]string{"#ebdbb2", "#3c3836"},
	textMuted:           [2]string{"#a89984", "#7c6f64"},
	textEmphasized:      [2]string{"#fabd2f", "#b57614"},
	background:          [2]string{"#282828", "#fbf1c7"},
	backgroundSecondary: [2]string{"#504945", "#ebdbb2"},
	backgroundDarker:    [2]string{"#1d2021", "#d5c4a1"},
	borderNormal:        [2]string{"#504945", "#bdae93"},
	borderFocused:       [2]string{"#83a598", "#076678"},
	border:              [2]string{"#3c3836", "#d5c4a1"},
}

func init() {
	// tokyonight first so it is the default.
	RegisterTheme("tokyonight", tokyoNight)
	RegisterTheme("catppuccin", catppuccin)
	RegisterTheme("gruvbox", gruvbox)
}
