package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// userRepository implements user data access
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

// UserColumns whitelists the user fields exposed to list filtering
var UserColumns = query.ColumnSet{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	q := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, q, user.Name, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	q := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, q, userID).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email, including the password hash for
// credential comparison
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user with email %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// ExistsByEmail checks if a user exists with the given email
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := `SELECT EXISTS(SELECT * FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, q, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

// List retrieves users with filtering, sorting and pagination, returning the
// page and the total count of rows matching the filtered predicate
func (r *userRepository) List(ctx context.Context, opts *query.Options) ([]models.User, int, error) {
	where, args := opts.WhereClause()
	order := opts.OrderClause("created_at DESC")
	limit, offset := opts.LimitOffset()

	q := fmt.Sprintf(`
		SELECT id, name, email, role, created_at
		FROM users
		%s
		%s
		LIMIT ? OFFSET ?
	`, where, order)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	return users, total, nil
}

// UpdateDetails updates a user's name and email
func (r *userRepository) UpdateDetails(ctx context.Context, userID int, name, email string) error {
	q := `UPDATE users SET name = ?, email = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, name, email, userID); err != nil {
		return fmt.Errorf("failed to update user details: %w", err)
	}
	return nil
}

// Update updates a user's name, email and role
func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	q := `UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, user.Name, user.Email, user.Role, user.ID); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UpdatePassword replaces a user's password hash
func (r *userRepository) UpdatePassword(ctx context.Context, userID int, passwordHash string) error {
	q := `UPDATE users SET password_hash = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// SetResetToken stores the hashed reset token and its expiry
func (r *userRepository) SetResetToken(ctx context.Context, userID int, tokenHash string, expire time.Time) error {
	q := `UPDATE users SET reset_password_token = ?, reset_password_expire = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, tokenHash, expire, userID); err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	return nil
}

// ClearResetToken removes any pending reset token
func (r *userRepository) ClearResetToken(ctx context.Context, userID int) error {
	q := `UPDATE users SET reset_password_token = NULL, reset_password_expire = NULL WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, userID); err != nil {
		return fmt.Errorf("failed to clear reset token: %w", err)
	}
	return nil
}

// GetByResetToken retrieves a user by an unexpired hashed reset token
func (r *userRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	q := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE reset_password_token = ? AND reset_password_expire > ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, q, tokenHash, now).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reset token: %w", apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by reset token: %w", err)
	}

	return user, nil
}

// ResetPassword sets the new password hash and clears the reset token fields
// in a single statement, guaranteeing the token is single-use
func (r *userRepository) ResetPassword(ctx context.Context, userID int, passwordHash string) error {
	q := `
		UPDATE users
		SET password_hash = ?, reset_password_token = NULL, reset_password_expire = NULL
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, q, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// Delete removes a user by ID
func (r *userRepository) Delete(ctx context.Context, userID int) error {
	q := `DELETE FROM users WHERE id = ?`

	result, err := r.db.ExecContext(ctx, q, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %d: %w", userID, apperr.ErrNotFound)
	}

	return nil
}
