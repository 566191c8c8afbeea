package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// Generation methods recorded on library icons.
const (
	GenerationFromText      = "text-to-image"
	GenerationFromImage     = "image-analysis"
	GenerationFromRecording = "audio-recording"
)

// CultureHint is the slice of a culture profile captured with a generated
// icon so consumers can tell which audience the image was produced for.
type CultureHint struct {
	Language    string `json:"language"`
	Region      string `json:"region"`
	SymbolStyle string `json:"symbolStyle"`
}

func (h CultureHint) Value() (driver.Value, error) {
	return jsonbValue(h)
}

func (h *CultureHint) Scan(src any) error {
	return jsonbScan(src, h)
}

// IconLibraryEntry is a standalone stored icon with generation provenance.
type IconLibraryEntry struct {
	ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Text             string      `gorm:"not null"`
	ImageURL         string
	ThumbnailURL     string
	AudioURL         string
	MimeType         string
	GeneratedBy      uuid.UUID   `gorm:"type:uuid;not null;index"`
	GenerationMethod string      `gorm:"not null"`
	Prompt           string
	Model            string
	CultureProfile   CultureHint `gorm:"type:jsonb"`
	IsPublic         bool        `gorm:"not null;default:false;index"`
	UsageCount       int64       `gorm:"not null;default:0"`
	Tags             StringList  `gorm:"type:jsonb"`
	Category         string      `gorm:"index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
