package repositories

import (
	"fmt"

	"intranet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMFileRepository is a GORM implementation of FileRepository.
type GORMFileRepository struct {
	db *gorm.DB
}

// NewGORMFileRepository creates a new instance of GORMFileRepository.
func NewGORMFileRepository(db *gorm.DB) *GORMFileRepository {
	return &GORMFileRepository{
		db: db,
	}
}

// Create creates a new file metadata record in the database.
func (r *GORMFileRepository) Create(file *models.File) error {
	if file.ID == "" {
		file.ID = uuid.New().String()
	}
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

// GetByID retrieves a file record by its ID.
func (r *GORMFileRepository) GetByID(id string) (*models.File, error) {
	var file models.File
	if err := r.db.Preload("Uploader").First(&file, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("file with ID %s not found: %w", id, gorm.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get file by ID %s: %w", id, err)
	}
	return &file, nil
}

// GetAll retrieves all file records, newest first, with their uploaders.
func (r *GORMFileRepository) GetAll() ([]models.File, error) {
	var files []models.File
	if err := r.db.Preload("Uploader").Order("created_at DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to get all files: %w", err)
	}
	return files, nil
}

// Delete deletes a file record by its ID. The RowsAffected check makes the
// second of two concurrent deletes observe not-found.
func (r *GORMFileRepository) Delete(id string) error {
	res := r.db.Delete(&models.File{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete file record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("file with ID %s not found for deletion: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
