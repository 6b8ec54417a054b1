package persistent

import (
	"myshop/pkg/models"

	"gorm.io/gorm"
)

// DirectoryRepository resolves buyer contact details from the shared users
// table.
type DirectoryRepository interface {
	GetEmail(userID string) (string, error)
}

type directoryRepository struct {
	db *gorm.DB
}

func NewDirectoryRepository(db *gorm.DB) DirectoryRepository {
	return &directoryRepository{db: db}
}

func (r *directoryRepository) GetEmail(userID string) (string, error) {
	var user models.User
	if err := r.db.Select("email").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.Email, nil
}
