package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// userRepository defines the user storage operations the admin service needs
type userRepository interface {
	// Create inserts a new user and fills in the generated ID
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID int) (*models.User, error)

	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List retrieves users with filtering, sorting and pagination
	List(ctx context.Context, opts *query.Options) ([]models.User, int, error)

	// Update updates a user's name, email and role
	Update(ctx context.Context, user *models.User) error

	// Delete removes a user by ID
	Delete(ctx context.Context, userID int) error
}

// UserService implements admin-only user management
type UserService struct {
	repo userRepository
}

// NewUserService creates a new user service
func NewUserService(repo userRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// List retrieves users with filtering, sorting and pagination
func (s *UserService) List(ctx context.Context, opts *query.Options) ([]models.User, int, error) {
	return s.repo.List(ctx, opts)
}

// Get retrieves a single user
func (s *UserService) Get(ctx context.Context, userID int) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// Create adds a user with any valid role, including admin
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	verr := &apperr.ValidationError{}
	if req.Name == "" {
		verr.Add("name", "name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		verr.Add("email", "please provide a valid email")
	}
	if len(req.Password) < 6 {
		verr.Add("password", "password must be at least 6 characters")
	}
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		verr.Add("role", "role must be user, publisher or admin")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("email", "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Update modifies a user's name, email or role
func (s *UserService) Update(ctx context.Context, userID int, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.Validation("name", "name is required")
		}
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		if !emailPattern.MatchString(*req.Email) {
			return nil, apperr.Validation("email", "please provide a valid email")
		}
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Validation("email", "email is already registered")
		}
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, apperr.Validation("role", "role must be user, publisher or admin")
		}
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, userID int) error {
	return s.repo.Delete(ctx, userID)
}
