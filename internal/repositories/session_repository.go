package repositories

import "intranet/internal/models"

// SessionRepository defines the interface for server-side session storage.
type SessionRepository interface {
	Create(session *models.Session) error
	GetByToken(token string) (*models.Session, error)
	// Delete removes a session row. It is idempotent: deleting a token
	// that is already gone is not an error.
	Delete(token string) error
}
