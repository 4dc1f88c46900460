package theme

import "testing"

func TestBuiltinThemesRegistered(t *testing.T) {
	got := Available()
	want := []string{"catppuccin", "gruvbox", "tokyonight"}
	if len(got) != len(want) {
		t.Fatalf("Available() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Available()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSetTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme("tokyonight") })

	if !SetTheme("gruvbox") {
		t.Fatal("SetTheme(gruvbox) returned false")
	}
	if CurrentName() != "gruvbox" {
		t.Errorf("CurrentName() = %q, want gruvbox", CurrentName())
	}
	if got := Current().Error().Dark; got != "#fb4934" {
		t.Errorf("gruvbox error color = %q", got)
	}
	if SetTheme("no-such-theme") {
		t.Error("SetTheme should reject unknown names")
	}
	if CurrentName() != "gruvbox" {
		t.Error("failed SetTheme must not change the current theme")
	}
}

func TestCycleThemeWraps(t *testing.T) {
	t.Cleanup(func() { SetTheme("tokyonight") })

	SetTheme("tokyonight")
	if got := CycleTheme(); got != "catppuccin" {
		t.Errorf("CycleTheme() from last = %q, want catppuccin", got)
	}
	if got := CycleTheme(); got != "gruvbox" {
		t.Errorf("CycleTheme() = %q, want gruvbox", got)
	}
}
