package repository

import (
	"context"

	"plaza/internal/models"

	"gorm.io/gorm"
)

// BlockRepository defines persistence operations for block edges.
type BlockRepository interface {
	Create(ctx context.Context, block *models.UserBlock) error
	Delete(ctx context.Context, blockerID, blockedID uint) error
	ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error)
	Exists(ctx context.Context, blockerID, blockedID uint) (bool, error)
	ExistsEither(ctx context.Context, userA, userB uint) (bool, error)
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository returns a new BlockRepository implementation.
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

func (r *blockRepository) Create(ctx context.Context, block *models.UserBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("User is already blocked")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blockRepository) Delete(ctx context.Context, blockerID, blockedID uint) error {
	res := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.UserBlock{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Block relation", blockedID)
	}
	return nil
}

func (r *blockRepository) ListByBlocker(ctx context.Context, blockerID uint) ([]models.UserBlock, error) {
	var blocks []models.UserBlock
	if err := readDB(r.db).WithContext(ctx).
		Where("blocker_id = ?", blockerID).
		Preload("Blocked").
		Order("created_at DESC").
		Find(&blocks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blocks, nil
}

func (r *blockRepository) Exists(ctx context.Context, blockerID, blockedID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ExistsEither reports whether a block exists in either direction between
// two users. The bidirectional answer is derived here, not stored.
func (r *blockRepository) ExistsEither(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.UserBlock{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
