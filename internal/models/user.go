package models

import "time"

// Roles a user can hold. ADMIN grants the management surface and the
// owner-or-admin overrides; USER is the default for everyone else.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User is an identity record in the employee store.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username       string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password       string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash
	FirstName      string    `json:"firstName" gorm:"type:varchar(100)" validate:"required"`
	LastName       string    `json:"lastName" gorm:"type:varchar(100)" validate:"required"`
	Role           string    `json:"role" gorm:"type:varchar(10);default:USER" validate:"omitempty,oneof=ADMIN USER"`
	Personalnummer string    `json:"personalnummer" gorm:"type:varchar(10)"`
	Abteilung      string    `json:"abteilung" gorm:"type:varchar(100)"`
	Phone          string    `json:"phone" gorm:"type:varchar(32)"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PublicUser is the shape of a user in API responses.
type PublicUser struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Role           string    `json:"role"`
	Personalnummer string    `json:"personalnummer"`
	Abteilung      string    `json:"abteilung"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Public strips the credential fields for serialization.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		Personalnummer: u.Personalnummer,
		Abteilung:      u.Abteilung,
		Phone:          u.Phone,
		CreatedAt:      u.CreatedAt,
	}
}
