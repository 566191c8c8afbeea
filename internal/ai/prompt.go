package ai

import (
	"fmt"
	"strings"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"
)

// BuildIconPrompt biases an icon generation prompt with the user's cultural
// and accessibility preferences.
func BuildIconPrompt(text string, prefs model.CulturalPreferences) string {
	var b strings.Builder

	style := prefs.SymbolStyle
	if style == "" {
		style = "simple"
	}
	fmt.Fprintf(&b, "A %s flat communication symbol representing %q for an AAC board.", style, text)
	fmt.Fprintf(&b, " Clear outline, plain background, suitable for a small grid cell.")

	if prefs.Language != "" || prefs.Region != "" {
		fmt.Fprintf(&b, " Audience locale: %s-%s.", prefs.Language, prefs.Region)
	}
	if prefs.CulturalContext != "" {
		fmt.Fprintf(&b, " Cultural context: %s.", prefs.CulturalContext)
	}
	if len(prefs.ColorPreferences) > 0 {
		fmt.Fprintf(&b, " Prefer colors: %s.", strings.Join(prefs.ColorPreferences, ", "))
	}
	if len(prefs.AvoidColors) > 0 {
		fmt.Fprintf(&b, " Avoid colors: %s.", strings.Join(prefs.AvoidColors, ", "))
	}
	if prefs.AccessibilityNeeds.HighContrast {
		b.WriteString(" Use high contrast.")
	}
	if prefs.AccessibilityNeeds.SimplifiedIcons {
		b.WriteString(" Keep shapes minimal, no fine detail.")
	}

	return b.String()
}
