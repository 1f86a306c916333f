package ui

import (
	"testing"

	"fyne.io/fyne/v2/theme"
)

func TestCompactTheme_Variant(t *testing.T) {
	light := NewCompactTheme(false)
	dark := light.Toggled()

	if light.IsDark() {
		t.Error("Expected light theme")
	}
	if !dark.IsDark() {
		t.Error("Expected toggled theme to be dark")
	}

	// Background ignores the OS variant and follows the toggle
	lightBg := light.Color(theme.ColorNameBackground, theme.VariantDark)
	darkBg := dark.Color(theme.ColorNameBackground, theme.VariantLight)
	if lightBg == darkBg {
		t.Error("Light and dark backgrounds should differ")
	}
}

func TestCompactTheme_Size(t *testing.T) {
	th := NewCompactTheme(false)

	if got := th.Size(theme.SizeNamePadding); got != 3 {
		t.Errorf("Expected compact padding 3, got %v", got)
	}
	if got := th.Size(theme.SizeNameText); got != 13 {
		t.Errorf("Expected compact text size 13, got %v", got)
	}
}
