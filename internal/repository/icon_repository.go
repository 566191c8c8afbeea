package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IconFilter narrows library listings.
type IconFilter struct {
	Category string
	Tag      string
	Limit    int
	Offset   int
}

type IconRepository struct {
	db *gorm.DB
}

func NewIconRepository(db *gorm.DB) *IconRepository {
	return &IconRepository{db: db}
}

func (r *IconRepository) Create(ctx context.Context, icon *model.IconLibraryEntry) error {
	return r.db.WithContext(ctx).Create(icon).Error
}

func (r *IconRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.IconLibraryEntry, error) {
	var icon model.IconLibraryEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&icon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &icon, nil
}

// ListVisible returns the caller's own icons plus public ones.
func (r *IconRepository) ListVisible(ctx context.Context, userID uuid.UUID, filter IconFilter) ([]model.IconLibraryEntry, error) {
	q := r.db.WithContext(ctx).
		Where("generated_by = ? OR is_public = ?", userID, true).
		Order("created_at DESC")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		// jsonb containment: tags must include the requested tag.
		needle, err := json.Marshal([]string{filter.Tag})
		if err != nil {
			return nil, err
		}
		q = q.Where("tags @> ?", string(needle))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}

	var icons []model.IconLibraryEntry
	err := q.Find(&icons).Error
	return icons, err
}

// IncrementUsage bumps the fetch counter without racing concurrent readers.
func (r *IconRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.IconLibraryEntry{}).Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error
}
