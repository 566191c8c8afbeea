package ai_test

import (
	"testing"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/ai"
	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildIconPrompt_Defaults(t *testing.T) {
	prompt := ai.BuildIconPrompt("drink water", model.CulturalPreferences{})

	assert.Contains(t, prompt, `"drink water"`)
	assert.Contains(t, prompt, "simple")
	assert.NotContains(t, prompt, "Avoid colors")
}

func TestBuildIconPrompt_CultureBias(t *testing.T) {
	prefs := model.CulturalPreferences{
		Language:         "es",
		Region:           "MX",
		SymbolStyle:      "pictographic",
		CulturalContext:  "school setting",
		ColorPreferences: []string{"blue", "green"},
		AvoidColors:      []string{"red"},
		AccessibilityNeeds: model.AccessibilityNeeds{
			HighContrast:    true,
			SimplifiedIcons: true,
		},
	}

	prompt := ai.BuildIconPrompt("help", prefs)

	assert.Contains(t, prompt, "pictographic")
	assert.Contains(t, prompt, "es-MX")
	assert.Contains(t, prompt, "school setting")
	assert.Contains(t, prompt, "blue, green")
	assert.Contains(t, prompt, "Avoid colors: red")
	assert.Contains(t, prompt, "high contrast")
}

func TestHeuristicDescription(t *testing.T) {
	desc := ai.HeuristicDescription("image/png", 2048)
	assert.Contains(t, desc, "image/png")
	assert.Contains(t, desc, "2048")
}
