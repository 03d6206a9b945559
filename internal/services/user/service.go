package user

import (
	"errors"

	"vaultbank/internal/models"
	"vaultbank/internal/repositories"
	"vaultbank/internal/validation"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrWeakPassword = errors.New("password must be at least 8 characters and contain special characters")
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	Create(input *models.CreateUserInput) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	ListRecipients(excludeUserID uint) ([]models.Recipient, error)
	List(offset, limit int) ([]*models.User, int64, error)
}

type service struct {
	repo     repositories.UserRepository
	validate *validator.Validate
}

func NewService(repo repositories.UserRepository) Service {
	if repo == nil {
		panic("user repository is required")
	}
	return &service{
		repo:     repo,
		validate: validator.New(),
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) Create(input *models.CreateUserInput) (*models.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if !validation.ValidPassword(input.Password) {
		return nil, ErrWeakPassword
	}

	// Check if user already exists
	existingUser, _ := s.repo.GetByEmail(input.Email)
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := input.Role
	if role == "" {
		role = "user"
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
		Status:   models.UserStatusActive,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Update(user *models.User) error {
	return s.repo.Update(user)
}

func (s *service) Delete(id uint) error {
	return s.repo.Delete(id)
}

// ListRecipients returns the catalogue of accounts the user can send money to.
func (s *service) ListRecipients(excludeUserID uint) ([]models.Recipient, error) {
	return s.repo.ListRecipients(excludeUserID)
}

func (s *service) List(offset, limit int) ([]*models.User, int64, error) {
	return s.repo.List(offset, limit)
}
