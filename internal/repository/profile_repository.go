package repository

import (
	"context"
	"errors"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.CultureProfile, error) {
	var profile model.CultureProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *model.CultureProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepository) Update(ctx context.Context, profile *model.CultureProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// Delete removes a user's stored profile so defaults apply again.
func (r *ProfileRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CultureProfile{}, "user_id = ?", userID).Error
}
