package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"intranet/internal/models"
	"intranet/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService handles logins, logouts, registration and session resolution.
// Sessions are opaque random tokens stored server-side with a snapshot of
// the user's public fields; expiry is enforced on read.
type AuthService struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	sessionTTL  time.Duration
}

// NewAuthService creates a new AuthService with the given session lifetime.
func NewAuthService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

// SessionTTL returns the configured session lifetime, used for cookie max-age.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Login authenticates a user and establishes a session. Unknown usernames
// and wrong passwords both come back as ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*models.User, *models.Session, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up user for login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout destroys the session. It is idempotent: an unknown or already
// invalidated token still succeeds.
func (s *AuthService) Logout(token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessionRepo.Delete(token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve maps a token to its session. Absent and expired tokens both
// resolve to nil; expired rows are opportunistically deleted.
func (s *AuthService) Resolve(token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.sessionRepo.GetByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(token); err != nil {
			log.Printf("Warning: failed to delete expired session: %v", err)
		}
		return nil, nil
	}
	return session, nil
}

// Register creates a user and immediately logs them in. The role defaults
// to USER when empty.
func (s *AuthService) Register(username, password, firstName, lastName, role string) (*models.User, *models.Session, error) {
	if username == "" || password == "" || firstName == "" || lastName == "" {
		return nil, nil, ErrValidation
	}
	if role == "" {
		role = models.RoleUser
	}

	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, nil, ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:  username,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to register user: %w", err)
	}

	session, err := s.createSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Me returns the current user row for a session token. The session snapshot
// may be stale, so the user is re-read; a session whose user has vanished is
// destroyed and reported as unauthenticated.
func (s *AuthService) Me(token string) (*models.User, error) {
	session, err := s.Resolve(token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}

	user, err := s.userRepo.GetByID(session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if delErr := s.sessionRepo.Delete(token); delErr != nil {
				log.Printf("Warning: failed to delete orphaned session: %v", delErr)
			}
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

func (s *AuthService) createSession(user *models.User) (*models.Session, error) {
	session := models.NewSession(uuid.New().String(), user, s.sessionTTL)
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}
