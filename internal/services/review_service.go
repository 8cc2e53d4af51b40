package services

import (
	"context"
	"fmt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// reviewRepository defines the review storage operations the service needs
type reviewRepository interface {
	// Create inserts a new review and fills in the generated ID
	Create(ctx context.Context, review *models.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, reviewID int) (*models.Review, error)

	// ExistsByUserAndBootcamp checks if the user has already reviewed the bootcamp
	ExistsByUserAndBootcamp(ctx context.Context, userID, bootcampID int) (bool, error)

	// List retrieves reviews with filtering, sorting and pagination
	List(ctx context.Context, opts *query.Options) ([]models.Review, int, error)

	// ListByBootcamp retrieves all reviews belonging to one bootcamp
	ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Review, error)

	// Update updates a review's mutable fields
	Update(ctx context.Context, review *models.Review) error

	// Delete removes a review by ID
	Delete(ctx context.Context, reviewID int) error
}

// reviewBootcampRepository is the slice of bootcamp storage the review service
// needs for existence checks and aggregate maintenance
type reviewBootcampRepository interface {
	// GetByID retrieves a bootcamp by ID
	GetByID(ctx context.Context, bootcampID int) (*models.Bootcamp, error)

	// UpdateAverageRating recomputes the average rating over the bootcamp's reviews
	UpdateAverageRating(ctx context.Context, bootcampID int) error
}

// ReviewService implements review management scoped to bootcamps
type ReviewService struct {
	repo      reviewRepository
	bootcamps reviewBootcampRepository
}

// NewReviewService creates a new review service
func NewReviewService(repo reviewRepository, bootcamps reviewBootcampRepository) *ReviewService {
	return &ReviewService{
		repo:      repo,
		bootcamps: bootcamps,
	}
}

// List retrieves reviews with filtering, sorting and pagination
func (s *ReviewService) List(ctx context.Context, opts *query.Options) ([]models.Review, int, error) {
	return s.repo.List(ctx, opts)
}

// ListByBootcamp retrieves all reviews of one bootcamp
func (s *ReviewService) ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Review, error) {
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.repo.ListByBootcamp(ctx, bootcampID)
}

// Get retrieves a single review
func (s *ReviewService) Get(ctx context.Context, reviewID int) (*models.Review, error) {
	return s.repo.GetByID(ctx, reviewID)
}

func validateReviewFields(verr *apperr.ValidationError, title, text string, rating int) {
	if title == "" {
		verr.Add("title", "title is required")
	}
	if text == "" {
		verr.Add("text", "text is required")
	}
	if rating < 1 || rating > 10 {
		verr.Add("rating", "rating must be between 1 and 10")
	}
}

// Create adds a review to a bootcamp. Each user may review a given bootcamp
// at most once. The bootcamp's average rating is recomputed.
func (s *ReviewService) Create(ctx context.Context, user *models.User, bootcampID int, req models.CreateReviewRequest) (*models.Review, error) {
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}

	verr := &apperr.ValidationError{}
	validateReviewFields(verr, req.Title, req.Text, req.Rating)
	if verr.HasErrors() {
		return nil, verr
	}

	exists, err := s.repo.ExistsByUserAndBootcamp(ctx, user.ID, bootcampID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("bootcamp", "user has already reviewed this bootcamp")
	}

	review := &models.Review{
		BootcampID: bootcampID,
		UserID:     user.ID,
		Title:      req.Title,
		Text:       req.Text,
		Rating:     req.Rating,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := s.bootcamps.UpdateAverageRating(ctx, bootcampID); err != nil {
		return nil, err
	}

	return review, nil
}

// Update modifies a review authored by the caller. Admins may update any
// review. The bootcamp's average rating is recomputed.
func (s *ReviewService) Update(ctx context.Context, user *models.User, reviewID int, req models.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("review %d: %w", reviewID, apperr.ErrForbidden)
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}

	verr := &apperr.ValidationError{}
	validateReviewFields(verr, review.Title, review.Text, review.Rating)
	if verr.HasErrors() {
		return nil, verr
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, err
	}

	if err := s.bootcamps.UpdateAverageRating(ctx, review.BootcampID); err != nil {
		return nil, err
	}

	return review, nil
}

// Delete removes a review authored by the caller. Admins may delete any
// review. The bootcamp's average rating is recomputed.
func (s *ReviewService) Delete(ctx context.Context, user *models.User, reviewID int) error {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if review.UserID != user.ID && user.Role != models.RoleAdmin {
		return fmt.Errorf("review %d: %w", reviewID, apperr.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, reviewID); err != nil {
		return err
	}

	return s.bootcamps.UpdateAverageRating(ctx, review.BootcampID)
}
