package services_test

import (
	"testing"
	"time"

	"intranet/internal/models"
	"intranet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	alice := &models.User{
		ID:       "u-alice",
		Username: "alice",
		Password: hashPassword(t, "secret123"),
		Role:     models.RoleUser,
	}

	// Successful login creates a session snapshotting the user.
	userRepo.On("GetByUsername", "alice").Return(alice, nil).Once()
	sessionRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	user, session, err := service.Login("alice", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "u-alice", user.ID)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "u-alice", session.UserID)
	assert.Equal(t, models.RoleUser, session.Role)
	assert.False(t, session.Expired(time.Now()))
	userRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_LoginUnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	userRepo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound).Once()

	user, session, err := service.Login("ghost", "whatever")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Nil(t, user)
	assert.Nil(t, session)
	// No session may be created on a failed login.
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything)
	userRepo.AssertExpectations(t)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	alice := &models.User{ID: "u-alice", Username: "alice", Password: hashPassword(t, "secret123")}
	userRepo.On("GetByUsername", "alice").Return(alice, nil).Once()

	_, _, err := service.Login("alice", "wrong")
	// Same error as unknown user, so the response reveals nothing.
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	sessionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Resolve(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	active := &models.Session{
		Token:     "tok-1",
		UserID:    "u-alice",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessionRepo.On("GetByToken", "tok-1").Return(active, nil).Once()

	session, err := service.Resolve("tok-1")
	assert.NoError(t, err)
	assert.Equal(t, "u-alice", session.UserID)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_ResolveUnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	sessionRepo.On("GetByToken", "gone").Return(nil, gorm.ErrRecordNotFound).Once()

	session, err := service.Resolve("gone")
	assert.NoError(t, err)
	assert.Nil(t, session)
}

func TestAuthService_ResolveExpired(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	expired := &models.Session{
		Token:     "tok-old",
		UserID:    "u-alice",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessionRepo.On("GetByToken", "tok-old").Return(expired, nil).Once()
	// Expired rows are cleaned up on read.
	sessionRepo.On("Delete", "tok-old").Return(nil).Once()

	session, err := service.Resolve("tok-old")
	assert.NoError(t, err)
	assert.Nil(t, session)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_LogoutIdempotent(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	// The repository delete succeeds whether or not the row exists, so a
	// second logout with the same token is not an error.
	sessionRepo.On("Delete", "tok-1").Return(nil).Twice()

	assert.NoError(t, service.Logout("tok-1"))
	assert.NoError(t, service.Logout("tok-1"))
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	userRepo.On("GetByUsername", "alice").Return(nil, gorm.ErrRecordNotFound).Once()
	var created *models.User
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()
	sessionRepo.On("Create", mock.AnythingOfType("*models.Session")).Return(nil).Once()

	user, session, err := service.Register("alice", "secret123", "Alice", "Anderson", "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotNil(t, session)
	assert.Equal(t, user.ID, session.UserID)

	// The stored password must be a hash that verifies, never the plaintext.
	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	userRepo.AssertExpectations(t)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	existing := &models.User{ID: "u-alice", Username: "alice"}
	userRepo.On("GetByUsername", "alice").Return(existing, nil).Once()

	_, _, err := service.Register("alice", "secret123", "Alice", "Anderson", "")
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_RegisterMissingFields(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	_, _, err := service.Register("", "secret123", "Alice", "Anderson", "")
	assert.ErrorIs(t, err, services.ErrValidation)
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_Me(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	active := &models.Session{Token: "tok-1", UserID: "u-alice", ExpiresAt: time.Now().Add(time.Hour)}
	alice := &models.User{ID: "u-alice", Username: "alice"}
	sessionRepo.On("GetByToken", "tok-1").Return(active, nil).Once()
	userRepo.On("GetByID", "u-alice").Return(alice, nil).Once()

	user, err := service.Me("tok-1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_MeOrphanedSession(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	active := &models.Session{Token: "tok-1", UserID: "u-gone", ExpiresAt: time.Now().Add(time.Hour)}
	sessionRepo.On("GetByToken", "tok-1").Return(active, nil).Once()
	userRepo.On("GetByID", "u-gone").Return(nil, gorm.ErrRecordNotFound).Once()
	// A session whose user vanished is destroyed, not resurrected.
	sessionRepo.On("Delete", "tok-1").Return(nil).Once()

	_, err := service.Me("tok-1")
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
	sessionRepo.AssertExpectations(t)
}

func TestAuthService_MeNoToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	sessionRepo := new(MockSessionRepository)
	service := services.NewAuthService(userRepo, sessionRepo, 24*time.Hour)

	_, err := service.Me("")
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
}
