package services

import (
	"context"
	"fmt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// courseRepository defines the course storage operations the service needs
type courseRepository interface {
	// Create inserts a new course and fills in the generated ID
	Create(ctx context.Context, course *models.Course) error

	// GetByID retrieves a course by ID
	GetByID(ctx context.Context, courseID int) (*models.Course, error)

	// List retrieves courses with filtering, sorting and pagination
	List(ctx context.Context, opts *query.Options) ([]models.Course, int, error)

	// ListByBootcamp retrieves all courses belonging to one bootcamp
	ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Course, error)

	// Update updates a course's mutable fields
	Update(ctx context.Context, course *models.Course) error

	// Delete removes a course by ID
	Delete(ctx context.Context, courseID int) error
}

// courseBootcampRepository is the slice of bootcamp storage the course service
// needs for ownership checks and aggregate maintenance
type courseBootcampRepository interface {
	// GetByID retrieves a bootcamp by ID
	GetByID(ctx context.Context, bootcampID int) (*models.Bootcamp, error)

	// UpdateAverageCost recomputes the average tuition over the bootcamp's courses
	UpdateAverageCost(ctx context.Context, bootcampID int) error
}

// CourseService implements course management scoped to parent bootcamps
type CourseService struct {
	repo      courseRepository
	bootcamps courseBootcampRepository
}

// NewCourseService creates a new course service
func NewCourseService(repo courseRepository, bootcamps courseBootcampRepository) *CourseService {
	return &CourseService{
		repo:      repo,
		bootcamps: bootcamps,
	}
}

// List retrieves courses with filtering, sorting and pagination
func (s *CourseService) List(ctx context.Context, opts *query.Options) ([]models.Course, int, error) {
	return s.repo.List(ctx, opts)
}

// ListByBootcamp retrieves all courses of one bootcamp
func (s *CourseService) ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Course, error) {
	if _, err := s.bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, err
	}
	return s.repo.ListByBootcamp(ctx, bootcampID)
}

// Get retrieves a single course
func (s *CourseService) Get(ctx context.Context, courseID int) (*models.Course, error) {
	return s.repo.GetByID(ctx, courseID)
}

func validateCourseFields(verr *apperr.ValidationError, title, description string, weeks, tuition int, skill models.MinimumSkill) {
	if title == "" {
		verr.Add("title", "title is required")
	}
	if description == "" {
		verr.Add("description", "description is required")
	}
	if weeks <= 0 {
		verr.Add("weeks", "weeks must be a positive number")
	}
	if tuition < 0 {
		verr.Add("tuition", "tuition cannot be negative")
	}
	if !skill.Valid() {
		verr.Add("minimumSkill", "minimum skill must be beginner, intermediate or advanced")
	}
}

// Create adds a course to a bootcamp owned by the caller. Admins may add
// courses to any bootcamp. The parent's average cost is recomputed.
func (s *CourseService) Create(ctx context.Context, user *models.User, bootcampID int, req models.CreateCourseRequest) (*models.Course, error) {
	bootcamp, err := s.bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}

	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrForbidden)
	}

	verr := &apperr.ValidationError{}
	validateCourseFields(verr, req.Title, req.Description, req.Weeks, req.Tuition, req.MinimumSkill)
	if verr.HasErrors() {
		return nil, verr
	}

	course := &models.Course{
		BootcampID:           bootcampID,
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, err
	}

	if err := s.bootcamps.UpdateAverageCost(ctx, bootcampID); err != nil {
		return nil, err
	}

	return course, nil
}

// Update modifies a course whose parent bootcamp the caller owns. Admins may
// update any course. The parent's average cost is recomputed.
func (s *CourseService) Update(ctx context.Context, user *models.User, courseID int, req models.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	bootcamp, err := s.bootcamps.GetByID(ctx, course.BootcampID)
	if err != nil {
		return nil, err
	}
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("course %d: %w", courseID, apperr.ErrForbidden)
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Weeks != nil {
		course.Weeks = *req.Weeks
	}
	if req.Tuition != nil {
		course.Tuition = *req.Tuition
	}
	if req.MinimumSkill != nil {
		course.MinimumSkill = *req.MinimumSkill
	}
	if req.ScholarshipAvailable != nil {
		course.ScholarshipAvailable = *req.ScholarshipAvailable
	}

	verr := &apperr.ValidationError{}
	validateCourseFields(verr, course.Title, course.Description, course.Weeks, course.Tuition, course.MinimumSkill)
	if verr.HasErrors() {
		return nil, verr
	}

	if err := s.repo.Update(ctx, course); err != nil {
		return nil, err
	}

	if err := s.bootcamps.UpdateAverageCost(ctx, course.BootcampID); err != nil {
		return nil, err
	}

	return course, nil
}

// Delete removes a course whose parent bootcamp the caller owns. Admins may
// delete any course. The parent's average cost is recomputed.
func (s *CourseService) Delete(ctx context.Context, user *models.User, courseID int) error {
	course, err := s.repo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}

	bootcamp, err := s.bootcamps.GetByID(ctx, course.BootcampID)
	if err != nil {
		return err
	}
	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return fmt.Errorf("course %d: %w", courseID, apperr.ErrForbidden)
	}

	if err := s.repo.Delete(ctx, courseID); err != nil {
		return err
	}

	return s.bootcamps.UpdateAverageCost(ctx, course.BootcampID)
}
