package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"intranet/internal/models"
	"intranet/internal/repositories"
	"intranet/pkg/events"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService handles the privileged user-management surface.
type AdminService struct {
	userRepo repositories.UserRepository
	mqClient *events.Client
}

// NewAdminService creates a new AdminService.
func NewAdminService(userRepo repositories.UserRepository, mqClient *events.Client) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// CreateUserInput carries the fields for an admin-created user.
type CreateUserInput struct {
	Username       string
	Password       string
	FirstName      string
	LastName       string
	Role           string
	Personalnummer string
	Abteilung      string
	Phone          string
}

// UserUpdate carries a partial user update. Nil fields stay untouched; a
// present empty-string phone clears the phone, which is why the fields are
// pointers rather than zero-value-checked strings.
type UserUpdate struct {
	Username       *string
	Password       *string
	FirstName      *string
	LastName       *string
	Role           *string
	Personalnummer *string
	Abteilung      *string
	Phone          *string
}

// ListUsers returns every user's public fields. Admin-only.
func (s *AdminService) ListUsers(actor *models.Session) ([]models.PublicUser, error) {
	if !CanAdministrate(actor) {
		return nil, ErrForbidden
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}

// CreateUser creates a user with a hashed password. Admin-only; the role
// defaults to USER.
func (s *AdminService) CreateUser(actor *models.Session, input CreateUserInput) (*models.User, error) {
	if !CanAdministrate(actor) {
		return nil, ErrForbidden
	}
	if input.Username == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return nil, ErrValidation
	}
	if input.Role == "" {
		input.Role = models.RoleUser
	}

	if existing, err := s.userRepo.GetByUsername(input.Username); err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       input.Username,
		Password:       string(hashedPassword),
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Role:           input.Role,
		Personalnummer: input.Personalnummer,
		Abteilung:      input.Abteilung,
		Phone:          input.Phone,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.mqClient != nil {
		if err := s.mqClient.PublishUserCreated(user.ID, user.Username); err != nil {
			log.Printf("Warning: failed to publish user created event for user %s: %v", user.ID, err)
		}
	}

	return user, nil
}

// UpdateUser applies a partial update. A username change re-checks
// uniqueness excluding the row itself; a non-empty password is re-hashed.
func (s *AdminService) UpdateUser(actor *models.Session, id string, upd UserUpdate) (*models.User, error) {
	if !CanAdministrate(actor) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if *upd.Username == "" {
			return nil, ErrValidation
		}
		if existing, err := s.userRepo.GetByUsername(*upd.Username); err == nil && existing != nil && existing.ID != user.ID {
			return nil, ErrDuplicateUsername
		}
		user.Username = *upd.Username
	}
	if upd.Password != nil && *upd.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashedPassword)
	}
	if upd.FirstName != nil {
		user.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		user.LastName = *upd.LastName
	}
	if upd.Role != nil && *upd.Role != "" {
		if *upd.Role != models.RoleAdmin && *upd.Role != models.RoleUser {
			return nil, ErrValidation
		}
		user.Role = *upd.Role
	}
	if upd.Personalnummer != nil {
		user.Personalnummer = *upd.Personalnummer
	}
	if upd.Abteilung != nil {
		user.Abteilung = *upd.Abteilung
	}
	if upd.Phone != nil {
		// Empty string is a deliberate "clear the phone", distinct from
		// an omitted field.
		user.Phone = *upd.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. ADMIN users cannot be deleted through this
// path, regardless of who asks.
func (s *AdminService) DeleteUser(actor *models.Session, id string) error {
	if !CanAdministrate(actor) {
		return ErrForbidden
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CanDeleteUser(actor, user) {
		return ErrAdminUndeletable
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// NextPersonnelNumber allocates the next employee number of the form E###.
// Ordering is numeric on the suffix, so E9 sorts below E10 and the result
// is always zero-padded to three digits.
func (s *AdminService) NextPersonnelNumber(actor *models.Session) (string, error) {
	if !CanAdministrate(actor) {
		return "", ErrForbidden
	}

	numbers, err := s.userRepo.PersonnelNumbers("E")
	if err != nil {
		return "", err
	}

	max := 0
	for _, num := range numbers {
		suffix := strings.TrimPrefix(num, "E")
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("E%03d", max+1), nil
}
