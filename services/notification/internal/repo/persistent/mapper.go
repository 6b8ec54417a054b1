package persistent

import (
	"myshop/pkg/models"
	"myshop/services/notification/internal/entity"
)

func ToRecipientEntities(userModels []models.User) []entity.Recipient {
	recipients := make([]entity.Recipient, len(userModels))
	for i, u := range userModels {
		recipients[i] = entity.Recipient{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
	}
	return recipients
}
