package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// AccessibilityNeeds captures per-user accessibility adjustments consumed by
// prompt construction.
type AccessibilityNeeds struct {
	HighContrast    bool `json:"highContrast"`
	LargeSymbols    bool `json:"largeSymbols"`
	ReducedMotion   bool `json:"reducedMotion"`
	SimplifiedIcons bool `json:"simplifiedIcons"`
}

// CulturalPreferences bias AI generation prompts toward a user's language,
// region and symbol conventions.
type CulturalPreferences struct {
	Language           string             `json:"language"`
	Region             string             `json:"region"`
	ColorPreferences   []string           `json:"colorPreferences"`
	AvoidColors        []string           `json:"avoidColors"`
	SymbolStyle        string             `json:"symbolStyle"`
	CulturalContext    string             `json:"culturalContext"`
	AccessibilityNeeds AccessibilityNeeds `json:"accessibilityNeeds"`
}

func (p CulturalPreferences) Value() (driver.Value, error) {
	return jsonbValue(p)
}

func (p *CulturalPreferences) Scan(src any) error {
	return jsonbScan(src, p)
}

// CultureProfile is a user's stored cultural/accessibility preference record.
type CultureProfile struct {
	ID                  uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID              uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	CulturalPreferences CulturalPreferences `gorm:"type:jsonb"`
	IsDefault           bool                `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DefaultCulturalPreferences are applied when a user has no stored profile.
func DefaultCulturalPreferences() CulturalPreferences {
	return CulturalPreferences{
		Language:    "en",
		Region:      "US",
		SymbolStyle: "simple",
	}
}
