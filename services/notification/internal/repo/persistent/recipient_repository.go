package persistent

import (
	"myshop/pkg/models"
	"myshop/services/notification/internal/entity"

	"gorm.io/gorm"
)

type RecipientRepository interface {
	ListRecipients() ([]entity.Recipient, error)
}

type recipientRepository struct {
	db *gorm.DB
}

func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &recipientRepository{db: db}
}

// ListRecipients takes a snapshot of the active user directory. Users
// disabled by an admin are not notified.
func (r *recipientRepository) ListRecipients() ([]entity.Recipient, error) {
	var userModels []models.User
	if err := r.db.
		Select("id", "email", "first_name", "last_name").
		Where("status = ?", models.StatusActive).
		Find(&userModels).Error; err != nil {
		return nil, err
	}
	return ToRecipientEntities(userModels), nil
}
