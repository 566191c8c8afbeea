package model

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

// GridPosition is an integer cell coordinate on a board.
type GridPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// IconPlacement is one icon placed on a board grid.
type IconPlacement struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	ImageURL string       `json:"imageUrl"`
	Position GridPosition `json:"position"`
	Category string       `json:"category"`
	Color    string       `json:"color"`
}

// IconPlacements is the jsonb-backed icon grid of a board.
type IconPlacements []IconPlacement

func (p IconPlacements) Value() (driver.Value, error) {
	if p == nil {
		p = IconPlacements{}
	}
	return jsonbValue(p)
}

func (p *IconPlacements) Scan(src any) error {
	return jsonbScan(src, p)
}

// BoardMetadata is the denormalized board bookkeeping block.
type BoardMetadata struct {
	Version      int        `json:"version"`
	IconCount    int        `json:"iconCount"`
	Tags         []string   `json:"tags"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

func (m BoardMetadata) Value() (driver.Value, error) {
	return jsonbValue(m)
}

func (m *BoardMetadata) Scan(src any) error {
	return jsonbScan(src, m)
}

// Board is a named grid of icon placements owned by a user. Updates are
// whole-document replaces; the store's last write wins.
type Board struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name        string         `gorm:"not null"`
	Description string
	IsPublic    bool           `gorm:"not null;default:false;index"`
	Icons       IconPlacements `gorm:"type:jsonb"`
	Metadata    BoardMetadata  `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner User `gorm:"foreignKey:UserID"`
}

// Touch refreshes the metadata block after a mutation.
func (b *Board) Touch() {
	now := time.Now().UTC()
	b.Metadata.Version++
	b.Metadata.IconCount = len(b.Icons)
	b.Metadata.LastModified = &now
}
