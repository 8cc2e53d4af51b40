package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// reviewRepository implements review data access
type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sql.DB) *reviewRepository {
	return &reviewRepository{
		db: db,
	}
}

// ReviewColumns whitelists the review fields exposed to list filtering
var ReviewColumns = query.ColumnSet{
	"title":      "title",
	"rating":     "rating",
	"bootcampId": "bootcamp_id",
	"userId":     "user_id",
	"createdAt":  "created_at",
}

// Create inserts a new review into the database
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	q := `
		INSERT INTO reviews (bootcamp_id, user_id, title, text, rating)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, q,
		review.BootcampID,
		review.UserID,
		review.Title,
		review.Text,
		review.Rating,
	)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	review.ID = int(id)
	return nil
}

// GetByID retrieves a review by ID
func (r *reviewRepository) GetByID(ctx context.Context, reviewID int) (*models.Review, error) {
	q := `
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews
		WHERE id = ?
		LIMIT 1
	`

	review := &models.Review{}
	err := r.db.QueryRowContext(ctx, q, reviewID).Scan(
		&review.ID,
		&review.BootcampID,
		&review.UserID,
		&review.Title,
		&review.Text,
		&review.Rating,
		&review.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review by id: %w", err)
	}

	return review, nil
}

// ExistsByUserAndBootcamp checks if the user has already reviewed the bootcamp
func (r *reviewRepository) ExistsByUserAndBootcamp(ctx context.Context, userID, bootcampID int) (bool, error) {
	q := `SELECT EXISTS(SELECT * FROM reviews WHERE user_id = ? AND bootcamp_id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, userID, bootcampID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check review existence: %w", err)
	}
	return exists, nil
}

// List retrieves reviews with filtering, sorting and pagination, returning
// the page and the total count of rows matching the filtered predicate
func (r *reviewRepository) List(ctx context.Context, opts *query.Options) ([]models.Review, int, error) {
	where, args := opts.WhereClause()
	order := opts.OrderClause("created_at DESC")
	limit, offset := opts.LimitOffset()

	q := fmt.Sprintf(`
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews
		%s
		%s
		LIMIT ? OFFSET ?
	`, where, order)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.BootcampID,
			&review.UserID,
			&review.Title,
			&review.Text,
			&review.Rating,
			&review.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM reviews %s`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	return reviews, total, nil
}

// ListByBootcamp retrieves all reviews belonging to one bootcamp
func (r *reviewRepository) ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Review, error) {
	q := `
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews
		WHERE bootcamp_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, bootcampID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews by bootcamp: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(
			&review.ID,
			&review.BootcampID,
			&review.UserID,
			&review.Title,
			&review.Text,
			&review.Rating,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

// Update updates a review's mutable fields
func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	q := `UPDATE reviews SET title = ?, text = ?, rating = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, q, review.Title, review.Text, review.Rating, review.ID); err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

// Delete removes a review by ID
func (r *reviewRepository) Delete(ctx context.Context, reviewID int) error {
	q := `DELETE FROM reviews WHERE id = ?`

	result, err := r.db.ExecContext(ctx, q, reviewID)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("review %d: %w", reviewID, apperr.ErrNotFound)
	}

	return nil
}
