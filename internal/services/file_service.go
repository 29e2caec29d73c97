package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"intranet/internal/models"
	"intranet/internal/repositories"
	"intranet/pkg/blob"
	"intranet/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxUploadSize is the upload limit in bytes (10 MiB). Exceeding it fails
// before any blob bytes are written.
const MaxUploadSize = 10 << 20

// UploadMeta carries the optional metadata supplied alongside an upload.
type UploadMeta struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

// FileService handles business logic for uploaded files: metadata in the
// repository, contents in the blob store.
type FileService struct {
	fileRepo repositories.FileRepository
	store    blob.Store
	mqClient *events.Client
}

// NewFileService creates a new FileService.
func NewFileService(fileRepo repositories.FileRepository, store blob.Store, mqClient *events.Client) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		store:    store,
		mqClient: mqClient,
	}
}

// Upload stores the blob under a collision-resistant name and records its
// metadata, owned by the actor.
func (s *FileService) Upload(actor *models.Session, filename, mimeType string, size int64, r io.Reader, meta UploadMeta) (*models.File, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if filename == "" || size <= 0 {
		return nil, ErrValidation
	}
	if size > MaxUploadSize {
		return nil, ErrPayloadTooLarge
	}
	if meta.Tags == nil {
		meta.Tags = []string{}
	}

	path, written, err := s.store.Save(storageName(filename), r)
	if err != nil {
		return nil, fmt.Errorf("failed to store blob: %w", err)
	}

	file := &models.File{
		Name:        filename,
		Path:        path,
		MimeType:    mimeType,
		Size:        written,
		Description: meta.Description,
		Tags:        meta.Tags,
		Category:    meta.Category,
		UploaderID:  actor.UserID,
	}
	if err := s.fileRepo.Create(file); err != nil {
		// The metadata row is the source of truth; without it the blob is
		// unreachable, so clean it up.
		if remErr := s.store.Remove(path); remErr != nil {
			log.Printf("Warning: failed to remove blob after record failure: %v", remErr)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishFileUploaded(file.ID, file.UploaderID, file.Name, file.Size); err != nil {
			log.Printf("Warning: failed to publish file uploaded event for file %s: %v", file.ID, err)
		}
	}

	created, err := s.fileRepo.GetByID(file.ID)
	if err != nil {
		return file, nil
	}
	return created, nil
}

// List returns all file records, newest first. Requires authentication.
func (s *FileService) List(actor *models.Session) ([]models.File, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	return s.fileRepo.GetAll()
}

// Download returns the metadata record for streaming. Any authenticated
// user may download; only mutation is ownership-gated.
func (s *FileService) Download(actor *models.Session, fileID string) (*models.File, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	file, err := s.fileRepo.GetByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// Open returns a reader over the blob contents of a record.
func (s *FileService) Open(file *models.File) (io.ReadCloser, error) {
	return s.store.Open(file.Path)
}

// Delete removes the metadata record and then attempts to remove the blob.
// Blob removal is best-effort: a failure is logged, never surfaced, trading
// an orphaned blob for a clean index.
func (s *FileService) Delete(actor *models.Session, fileID string) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	file, err := s.fileRepo.GetByID(fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanMutateOwnedOrAdmin(actor, file.UploaderID) {
		return ErrForbidden
	}

	if err := s.fileRepo.Delete(fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Concurrent delete won the race; nothing left to clean up.
			return ErrNotFound
		}
		return err
	}

	if err := s.store.Remove(file.Path); err != nil {
		log.Printf("Warning: failed to remove blob for file %s: %v", fileID, err)
	}
	return nil
}

// storageName builds a collision-resistant blob name from the upload time,
// a random suffix and the sanitized original filename.
func storageName(filename string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.New().String()[:8], sanitizeFilename(filename))
}

// sanitizeFilename strips directory components and replaces anything
// outside a conservative character set.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
