package repositories

import "intranet/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	Search(name, department, personalnummer string) ([]models.User, error)
	PersonnelNumbers(prefix string) ([]string, error)
	Count() (int64, error)
}
