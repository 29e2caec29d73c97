package services_test

import (
	"testing"

	"intranet/internal/models"
	"intranet/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestAdminService_ListUsersForbiddenForNonAdmin(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	_, err := service.ListUsers(userSession("u-alice"))
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = service.ListUsers(nil)
	assert.ErrorIs(t, err, services.ErrForbidden)

	userRepo.AssertNotCalled(t, "GetAll")
}

func TestAdminService_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	userRepo.On("GetAll").Return([]models.User{
		{ID: "u1", Username: "alice", Password: "hash"},
		{ID: "u2", Username: "bob", Password: "hash"},
	}, nil).Once()

	users, err := service.ListUsers(adminSession())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
}

func TestAdminService_CreateUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	userRepo.On("GetByUsername", "carol").Return(nil, gorm.ErrRecordNotFound).Once()
	var created *models.User
	userRepo.On("Create", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.User)
	}).Return(nil).Once()

	user, err := service.CreateUser(adminSession(), services.CreateUserInput{
		Username:  "carol",
		Password:  "secret123",
		FirstName: "Carol",
		LastName:  "Curie",
	})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestAdminService_CreateUserDuplicate(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	existing := &models.User{ID: "u1", Username: "x"}
	userRepo.On("GetByUsername", "x").Return(existing, nil).Once()

	_, err := service.CreateUser(adminSession(), services.CreateUserInput{
		Username: "x", Password: "secret123", FirstName: "X", LastName: "Y",
	})
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	// The first user must remain untouched.
	userRepo.AssertNotCalled(t, "Create", mock.Anything)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestAdminService_CreateUserMissingFields(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	_, err := service.CreateUser(adminSession(), services.CreateUserInput{Username: "carol"})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.CreateUser(userSession("u1"), services.CreateUserInput{
		Username: "carol", Password: "secret123", FirstName: "C", LastName: "C",
	})
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestAdminService_UpdateUserPhoneSemantics(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	stored := &models.User{ID: "u1", Username: "alice", Phone: "+49 123 4567890", Abteilung: "HR"}
	userRepo.On("GetByID", "u1").Return(stored, nil).Twice()
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Twice()

	// Omitted phone stays untouched.
	updated, err := service.UpdateUser(adminSession(), "u1", services.UserUpdate{Abteilung: strptr("Sales")})
	assert.NoError(t, err)
	assert.Equal(t, "+49 123 4567890", updated.Phone)
	assert.Equal(t, "Sales", updated.Abteilung)

	// Empty-string phone is a deliberate clear.
	updated, err = service.UpdateUser(adminSession(), "u1", services.UserUpdate{Phone: strptr("")})
	assert.NoError(t, err)
	assert.Equal(t, "", updated.Phone)
}

func TestAdminService_UpdateUserUsernameUniqueness(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	stored := &models.User{ID: "u1", Username: "alice"}
	taken := &models.User{ID: "u2", Username: "bob"}
	userRepo.On("GetByID", "u1").Return(stored, nil).Twice()
	userRepo.On("GetByUsername", "bob").Return(taken, nil).Once()

	_, err := service.UpdateUser(adminSession(), "u1", services.UserUpdate{Username: strptr("bob")})
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)

	// Re-submitting the user's own username is not a conflict.
	userRepo.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()
	_, err = service.UpdateUser(adminSession(), "u1", services.UserUpdate{Username: strptr("alice")})
	assert.NoError(t, err)
}

func TestAdminService_DeleteUserBlockedForAdminTarget(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	adminUser := &models.User{ID: "a1", Username: "root", Role: models.RoleAdmin}
	userRepo.On("GetByID", "a1").Return(adminUser, nil).Once()

	err := service.DeleteUser(adminSession(), "a1")
	assert.ErrorIs(t, err, services.ErrAdminUndeletable)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestAdminService_DeleteUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	regular := &models.User{ID: "u1", Username: "alice", Role: models.RoleUser}
	userRepo.On("GetByID", "u1").Return(regular, nil).Once()
	userRepo.On("Delete", "u1").Return(nil).Once()

	assert.NoError(t, service.DeleteUser(adminSession(), "u1"))
	userRepo.AssertExpectations(t)
}

func TestAdminService_DeleteUserNotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	userRepo.On("GetByID", "nope").Return(nil, gorm.ErrRecordNotFound).Once()

	err := service.DeleteUser(adminSession(), "nope")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAdminService_NextPersonnelNumber(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	userRepo.On("PersonnelNumbers", "E").Return([]string{"E001", "E032", "E005"}, nil).Once()

	next, err := service.NextPersonnelNumber(adminSession())
	assert.NoError(t, err)
	assert.Equal(t, "E033", next)
}

func TestAdminService_NextPersonnelNumberEmpty(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	userRepo.On("PersonnelNumbers", "E").Return([]string{}, nil).Once()

	next, err := service.NextPersonnelNumber(adminSession())
	assert.NoError(t, err)
	assert.Equal(t, "E001", next)
}

func TestAdminService_NextPersonnelNumberNumericOrdering(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	// E9 must not beat E10 the way it would under string ordering, and
	// malformed entries are skipped rather than breaking the allocator.
	userRepo.On("PersonnelNumbers", "E").Return([]string{"E9", "E10", "EXX"}, nil).Once()

	next, err := service.NextPersonnelNumber(adminSession())
	assert.NoError(t, err)
	assert.Equal(t, "E011", next)
}

func TestAdminService_NextPersonnelNumberForbidden(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(userRepo, nil)

	_, err := service.NextPersonnelNumber(userSession("u1"))
	assert.ErrorIs(t, err, services.ErrForbidden)
}
