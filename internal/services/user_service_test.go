package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// mockUserRepository is a mock implementation of userRepository
type mockUserRepository struct {
	user      *models.User
	users     []models.User
	total     int
	getErr    error
	exists    bool
	created   *models.User
	updated   *models.User
	deletedID int
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = 5
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.user, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists, nil
}

func (m *mockUserRepository) List(ctx context.Context, opts *query.Options) ([]models.User, int, error) {
	return m.users, m.total, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, userID int) error {
	m.deletedID = userID
	return nil
}

func TestUserService_Create(t *testing.T) {
	t.Run("admin role is allowed", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := NewUserService(repo)

		user, err := svc.Create(context.Background(), models.CreateUserRequest{
			Name:     "Admin Account",
			Email:    "admin@bootcampfinder.io",
			Password: "changeme",
			Role:     models.RoleAdmin,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changeme")))
	})

	t.Run("role defaults to user", func(t *testing.T) {
		repo := &mockUserRepository{}
		svc := NewUserService(repo)

		user, err := svc.Create(context.Background(), models.CreateUserRequest{
			Name:     "Plain User",
			Email:    "plain@example.com",
			Password: "changeme",
		})

		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("invalid fields", func(t *testing.T) {
		svc := NewUserService(&mockUserRepository{})

		_, err := svc.Create(context.Background(), models.CreateUserRequest{
			Email:    "not-an-email",
			Password: "short",
			Role:     "owner",
		})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 4)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := NewUserService(&mockUserRepository{exists: true})

		_, err := svc.Create(context.Background(), models.CreateUserRequest{
			Name:     "Someone",
			Email:    "taken@example.com",
			Password: "changeme",
		})

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestUserService_Update(t *testing.T) {
	existing := func() *models.User {
		return &models.User{ID: 5, Name: "Plain User", Email: "plain@example.com", Role: models.RoleUser}
	}

	t.Run("promote to publisher", func(t *testing.T) {
		repo := &mockUserRepository{user: existing()}
		svc := NewUserService(repo)
		role := models.RolePublisher

		user, err := svc.Update(context.Background(), 5, models.UpdateUserRequest{Role: &role})

		require.NoError(t, err)
		assert.Equal(t, models.RolePublisher, user.Role)
		require.NotNil(t, repo.updated)
	})

	t.Run("email change checks uniqueness", func(t *testing.T) {
		repo := &mockUserRepository{user: existing(), exists: true}
		svc := NewUserService(repo)
		email := "taken@example.com"

		_, err := svc.Update(context.Background(), 5, models.UpdateUserRequest{Email: &email})

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, repo.updated)
	})

	t.Run("unchanged email skips the uniqueness check", func(t *testing.T) {
		repo := &mockUserRepository{user: existing(), exists: true}
		svc := NewUserService(repo)
		email := "plain@example.com"

		_, err := svc.Update(context.Background(), 5, models.UpdateUserRequest{Email: &email})

		assert.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(&mockUserRepository{getErr: apperr.ErrNotFound})

		_, err := svc.Update(context.Background(), 42, models.UpdateUserRequest{})

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestUserService_Delete(t *testing.T) {
	repo := &mockUserRepository{}
	svc := NewUserService(repo)

	require.NoError(t, svc.Delete(context.Background(), 5))
	assert.Equal(t, 5, repo.deletedID)
}
