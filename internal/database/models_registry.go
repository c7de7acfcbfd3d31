package database

import "plaza/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.UserBlock{},
		&models.Blog{},
		&models.Favorite{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Notification{},
	}
}
