package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusDisabled UserStatus = "disabled"
)

type Address struct {
	Flat   string `json:"flat"`
	Street string `json:"street"`
	City   string `json:"city"`
	Pin    string `json:"pin"`
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	Address   Address    `json:"address"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ProfileComplete reports whether the user has filled in everything
// checkout needs. Admins manage the store and never check out.
func (u *User) ProfileComplete() bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.FirstName != "" &&
		u.Address.Flat != "" &&
		u.Address.Street != "" &&
		u.Address.City != "" &&
		u.Address.Pin != ""
}
