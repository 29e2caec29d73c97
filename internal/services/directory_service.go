package services

import (
	"fmt"
	"hash/fnv"

	"intranet/internal/models"
	"intranet/internal/repositories"
)

// Employee is the public employee-directory projection of a user.
type Employee struct {
	ID             string `json:"id"`
	Personalnummer string `json:"personalnummer"`
	Name           string `json:"name"`
	Position       string `json:"position"`
	Department     string `json:"department"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// DirectoryService projects the identity store into the employee directory.
// Read-only; no mutation capability lives here.
type DirectoryService struct {
	userRepo    repositories.UserRepository
	emailDomain string
}

// NewDirectoryService creates a new DirectoryService. Directory emails are
// derived as username@emailDomain.
func NewDirectoryService(userRepo repositories.UserRepository, emailDomain string) *DirectoryService {
	return &DirectoryService{
		userRepo:    userRepo,
		emailDomain: emailDomain,
	}
}

// ListEmployees returns every user as a directory entry.
func (s *DirectoryService) ListEmployees() ([]Employee, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return s.project(users), nil
}

// SearchEmployees filters the directory. Name matches case-insensitively on
// first or last name, department matches exactly (case-insensitive),
// personnel number matches exactly; empty filters match everything.
func (s *DirectoryService) SearchEmployees(name, department, personalnummer string) ([]Employee, error) {
	users, err := s.userRepo.Search(name, department, personalnummer)
	if err != nil {
		return nil, err
	}
	return s.project(users), nil
}

func (s *DirectoryService) project(users []models.User) []Employee {
	employees := make([]Employee, 0, len(users))
	for i := range users {
		employees = append(employees, s.employeeFromUser(&users[i]))
	}
	return employees
}

func (s *DirectoryService) employeeFromUser(u *models.User) Employee {
	personalnummer := u.Personalnummer
	if personalnummer == "" {
		personalnummer = placeholderPersonalnummer(u.ID)
	}
	position := "Employee"
	if u.Role == models.RoleAdmin {
		position = "Administrator"
	}
	department := u.Abteilung
	if department == "" {
		department = "Unassigned"
	}
	return Employee{
		ID:             u.ID,
		Personalnummer: personalnummer,
		Name:           u.FirstName + " " + u.LastName,
		Position:       position,
		Department:     department,
		Email:          u.Username + "@" + s.emailDomain,
		Phone:          u.Phone,
	}
}

// placeholderPersonalnummer derives a stable EMP### placeholder for users
// without an assigned personnel number.
func placeholderPersonalnummer(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return fmt.Sprintf("EMP%03d", h.Sum32()%1000)
}
