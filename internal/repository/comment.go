package repository

import (
	"context"
	"errors"

	"plaza/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments and their
// like sets. AddLike/RemoveLike mutate the set and recompute the comment's
// like_count from it inside one transaction, returning the fresh count.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListTopLevelByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error)
	ListRepliesByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error)
	DeleteWithReplies(ctx context.Context, id uint) (int64, error)
	IsLiked(ctx context.Context, userID, commentID uint) (bool, error)
	AddLike(ctx context.Context, userID, commentID uint) (int, error)
	RemoveLike(ctx context.Context, userID, commentID uint) (int, error)
	LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevelByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("blog_id = ? AND parent_id IS NULL", blogID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListRepliesByBlog(ctx context.Context, blogID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Where("blog_id = ? AND parent_id IS NOT NULL", blogID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// DeleteWithReplies removes a comment, every comment whose parent_id equals
// it, and all of their like rows. Returns the number of comments removed.
func (r *commentRepository) DeleteWithReplies(ctx context.Context, id uint) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Comment{}).
			Where("id = ? OR parent_id = ?", id, id).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return models.NewNotFoundError("Comment", id)
		}
		if err := tx.Where("comment_id IN ?", ids).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return 0, err
		}
		return 0, models.NewInternalError(err)
	}
	return removed, nil
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *commentRepository) AddLike(ctx context.Context, userID, commentID uint) (int, error) {
	var likeCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.CommentLike{UserID: userID, CommentID: commentID}).Error; err != nil {
			return err
		}
		var err error
		likeCount, err = recountLikes(tx, commentID)
		return err
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, models.NewAlreadyExistsError("Comment already liked")
		}
		return 0, models.NewInternalError(err)
	}
	return likeCount, nil
}

func (r *commentRepository) RemoveLike(ctx context.Context, userID, commentID uint) (int, error) {
	var likeCount int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		var err error
		likeCount, err = recountLikes(tx, commentID)
		return err
	})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return likeCount, nil
}

// recountLikes recomputes like_count from the comment_likes set so the
// denormalized column always equals the set cardinality.
func recountLikes(tx *gorm.DB, commentID uint) (int, error) {
	var count int64
	if err := tx.Model(&models.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("like_count", count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

// LikedCommentIDs returns which of the given comments the user liked, for
// annotating listings without a per-comment query.
func (r *commentRepository) LikedCommentIDs(ctx context.Context, userID uint, commentIDs []uint) ([]uint, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id IN ?", userID, commentIDs).
		Pluck("comment_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
