package persistent

import (
	"myshop/pkg/models"
	"myshop/services/auth/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:        m.ID,
		Email:     m.Email,
		Password:  m.Password,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Role:      entity.UserRole(m.Role),
		Status:    entity.UserStatus(m.Status),
		Address: entity.Address{
			Flat:   m.AddressFlat,
			Street: m.AddressStreet,
			City:   m.AddressCity,
			Pin:    m.AddressPin,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}

	return &models.User{
		ID:            e.ID,
		Email:         e.Email,
		Password:      e.Password,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		Role:          models.UserRole(e.Role),
		Status:        models.UserStatus(e.Status),
		AddressFlat:   e.Address.Flat,
		AddressStreet: e.Address.Street,
		AddressCity:   e.Address.City,
		AddressPin:    e.Address.Pin,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
