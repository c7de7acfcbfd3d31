package repository

import (
	"context"
	"errors"

	"plaza/internal/cache"
	"plaza/internal/models"

	"gorm.io/gorm"
)

// BlogRepository defines persistence operations for blogs and favorites.
// Favorite/Unfavorite keep the favorites table and the blog's denormalized
// favorite_count in step inside one transaction.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, limit, offset int) ([]models.Blog, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error)
	Delete(ctx context.Context, id uint) error
	IncrementViewCount(ctx context.Context, id uint) error
	Favorite(ctx context.Context, userID, blogID uint) error
	Unfavorite(ctx context.Context, userID, blogID uint) error
	IsFavorited(ctx context.Context, userID, blogID uint) (bool, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	key := cache.BlogKey(id)

	err := cache.Aside(ctx, key, &blog, cache.BlogTTL, func() error {
		if err := readDB(r.db).WithContext(ctx).Preload("User").First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *blogRepository) List(ctx context.Context, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := readDB(r.db).WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Blog, error) {
	var blogs []models.Blog
	if err := readDB(r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&blogs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return blogs, nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Blog{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}

// IncrementViewCount bumps the monotonic view counter. Called once per
// detail fetch; losing an increment to a failure is acceptable.
func (r *blogRepository) IncrementViewCount(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, id)
	return nil
}

func (r *blogRepository) Favorite(ctx context.Context, userID, blogID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Favorite{UserID: userID, BlogID: blogID}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Blog{}).
			Where("id = ?", blogID).
			Update("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewAlreadyExistsError("Blog already favorited")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blogID)
	return nil
}

func (r *blogRepository) Unfavorite(ctx context.Context, userID, blogID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND blog_id = ?", userID, blogID).
			Delete(&models.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Favorite", blogID)
		}
		return tx.Model(&models.Blog{}).
			Where("id = ? AND favorite_count > 0", blogID).
			Update("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return err
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blogID)
	return nil
}

func (r *blogRepository) IsFavorited(ctx context.Context, userID, blogID uint) (bool, error) {
	var count int64
	if err := readDB(r.db).WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND blog_id = ?", userID, blogID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
