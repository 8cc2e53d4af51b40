package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
)

// How long a password reset token stays valid
const resetTokenTTL = 10 * time.Minute

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authUserRepository defines the user storage operations the auth service needs
type authUserRepository interface {
	// Create inserts a new user and fills in the generated ID
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, userID int) (*models.User, error)

	// GetByEmail retrieves a user by email, including the password hash
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// UpdateDetails updates a user's name and email
	UpdateDetails(ctx context.Context, userID int, name, email string) error

	// UpdatePassword replaces a user's password hash
	UpdatePassword(ctx context.Context, userID int, passwordHash string) error

	// SetResetToken stores the hashed reset token and its expiry
	SetResetToken(ctx context.Context, userID int, tokenHash string, expire time.Time) error

	// ClearResetToken removes any pending reset token
	ClearResetToken(ctx context.Context, userID int) error

	// GetByResetToken retrieves a user by an unexpired hashed reset token
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)

	// ResetPassword sets the new password hash and clears the reset token fields
	ResetPassword(ctx context.Context, userID int, passwordHash string) error
}

// tokenGenerator issues signed session tokens
type tokenGenerator interface {
	Generate(userID int) (string, error)
}

// emailSender delivers transactional email synchronously
type emailSender interface {
	Send(to, subject, body string) error
}

// AuthService implements registration, login and credential recovery
type AuthService struct {
	repo   authUserRepository
	tokens tokenGenerator
	mailer emailSender
}

// NewAuthService creates a new auth service
func NewAuthService(repo authUserRepository, tokens tokenGenerator, mailer emailSender) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		mailer: mailer,
	}
}

// Register creates a new account and returns the user with a session token.
// Self-registration only allows the user and publisher roles.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
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
	if role != models.RoleUser && role != models.RolePublisher {
		verr.Add("role", "role must be user or publisher")
	}
	if verr.HasErrors() {
		return nil, "", verr
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", apperr.Validation("email", "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials and returns the user with a session token.
// The error is the same whether the email or the password was wrong.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	verr := &apperr.ValidationError{}
	if req.Email == "" {
		verr.Add("email", "email is required")
	}
	if req.Password == "" {
		verr.Add("password", "password is required")
	}
	if verr.HasErrors() {
		return nil, "", verr
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// Me returns the current user's profile
func (s *AuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateDetails changes the current user's name and email
func (s *AuthService) UpdateDetails(ctx context.Context, userID int, req models.UpdateDetailsRequest) (*models.User, error) {
	verr := &apperr.ValidationError{}
	if req.Name == "" {
		verr.Add("name", "name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		verr.Add("email", "please provide a valid email")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		exists, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperr.Validation("email", "email is already registered")
		}
	}

	if err := s.repo.UpdateDetails(ctx, userID, req.Name, req.Email); err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	return user, nil
}

// UpdatePassword changes the current user's password after re-proving the
// current one, and returns a fresh session token
func (s *AuthService) UpdatePassword(ctx context.Context, userID int, req models.UpdatePasswordRequest) (*models.User, string, error) {
	if len(req.NewPassword) < 6 {
		return nil, "", apperr.Validation("newPassword", "password must be at least 6 characters")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, "", fmt.Errorf("current password mismatch: %w", apperr.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// ForgotPassword issues a single-use reset token, stores its hash with a
// short expiry and emails the plaintext token to the account's address.
// If the email cannot be sent the stored token is rolled back so a stale
// token never lingers on the account.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	digest := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(digest[:])

	expire := time.Now().Add(resetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, tokenHash, expire); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/resetpassword/%s", resetURLBase, token)
	body := fmt.Sprintf(
		"You are receiving this email because you (or someone else) has requested the reset of a password. "+
			"Please make a PUT request to:\n\n%s", resetURL)

	if err := s.mailer.Send(user.Email, "Password reset token", body); err != nil {
		if clearErr := s.repo.ClearResetToken(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("failed to roll back reset token: %w", clearErr)
		}
		return fmt.Errorf("%w: %s", apperr.ErrEmailDelivery, err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password, returning
// the user with a fresh session token
func (s *AuthService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (*models.User, string, error) {
	if len(req.Password) < 6 {
		return nil, "", apperr.Validation("password", "password must be at least 6 characters")
	}

	digest := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(digest[:])

	user, err := s.repo.GetByResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.ErrInvalidToken
		}
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		return nil, "", err
	}

	sessionToken, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, sessionToken, nil
}
