package repositories

import "intranet/internal/models"

// FileRepository defines the interface for file metadata access.
type FileRepository interface {
	Create(file *models.File) error
	GetByID(id string) (*models.File, error)
	GetAll() ([]models.File, error)
	Delete(id string) error
}
