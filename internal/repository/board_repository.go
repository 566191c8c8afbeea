package repository

import (
	"context"
	"errors"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sort fields covered by the boards composite indexes. Anything else is
// rejected so listings never fall off the indexed query shapes.
var boardSortFields = map[string]string{
	"updatedAt": "updated_at",
	"createdAt": "created_at",
	"name":      "name",
}

// ListOptions shape a board listing query.
type ListOptions struct {
	SortBy     string // updatedAt, createdAt or name
	Descending bool
	Limit      int
	Offset     int
}

func (o ListOptions) orderClause() (string, error) {
	field := o.SortBy
	if field == "" {
		field = "updatedAt"
	}
	column, ok := boardSortFields[field]
	if !ok {
		return "", ErrInvalidSortField
	}
	if o.Descending {
		return column + " DESC", nil
	}
	return column + " ASC", nil
}

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Create(board).Error
}

func (r *BoardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&board).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Return nil, nil to indicate that the board was not found
		}
		return nil, err
	}
	return &board, nil
}

// GetOwned lists a user's boards using the (user_id, <sort>) index shape.
func (r *BoardRepository) GetOwned(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]model.Board, error) {
	order, err := opts.orderClause()
	if err != nil {
		return nil, err
	}

	var boards []model.Board
	q := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(order)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}
	err = q.Find(&boards).Error
	return boards, err
}

// GetPublic lists public boards using the (is_public, <sort>) index shape.
func (r *BoardRepository) GetPublic(ctx context.Context, opts ListOptions) ([]model.Board, error) {
	order, err := opts.orderClause()
	if err != nil {
		return nil, err
	}

	var boards []model.Board
	q := r.db.WithContext(ctx).Where("is_public = ?", true).Order(order)
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.Offset)
	}
	err = q.Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) CountOwned(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Update is a whole-document replace; the last write wins.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board) error {
	return r.db.WithContext(ctx).Save(board).Error
}

func (r *BoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBoardNotFound
	}
	return nil
}
