package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// courseRepository implements course data access
type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// CourseColumns whitelists the course fields exposed to list filtering.
// Columns are qualified because top-level listings join the parent bootcamp.
var CourseColumns = query.ColumnSet{
	"title":                "c.title",
	"weeks":                "c.weeks",
	"tuition":              "c.tuition",
	"minimumSkill":         "c.minimum_skill",
	"scholarshipAvailable": "c.scholarship_available",
	"bootcampId":           "c.bootcamp_id",
	"createdAt":            "c.created_at",
}

// Create inserts a new course into the database
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	q := `
		INSERT INTO courses (bootcamp_id, title, description, weeks, tuition,
		                     minimum_skill, scholarship_available)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, q,
		course.BootcampID,
		course.Title,
		course.Description,
		course.Weeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipAvailable,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// GetByID retrieves a course by ID
func (r *courseRepository) GetByID(ctx context.Context, courseID int) (*models.Course, error) {
	q := `
		SELECT id, bootcamp_id, title, description, weeks, tuition,
		       minimum_skill, scholarship_available, created_at
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	course := &models.Course{}
	err := r.db.QueryRowContext(ctx, q, courseID).Scan(
		&course.ID,
		&course.BootcampID,
		&course.Title,
		&course.Description,
		&course.Weeks,
		&course.Tuition,
		&course.MinimumSkill,
		&course.ScholarshipAvailable,
		&course.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %d: %w", courseID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return course, nil
}

// List retrieves courses with filtering, sorting and pagination. Each row
// carries the parent bootcamp's name and description. The returned total is
// the count of rows matching the filtered predicate.
func (r *courseRepository) List(ctx context.Context, opts *query.Options) ([]models.Course, int, error) {
	where, args := opts.WhereClause()
	order := opts.OrderClause("c.created_at DESC")
	limit, offset := opts.LimitOffset()

	q := fmt.Sprintf(`
		SELECT c.id, c.bootcamp_id, c.title, c.description, c.weeks, c.tuition,
		       c.minimum_skill, c.scholarship_available, c.created_at,
		       b.name, b.description
		FROM courses c
		JOIN bootcamps b ON b.id = c.bootcamp_id
		%s
		%s
		LIMIT ? OFFSET ?
	`, where, order)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		summary := models.BootcampSummary{}
		if err := rows.Scan(
			&course.ID,
			&course.BootcampID,
			&course.Title,
			&course.Description,
			&course.Weeks,
			&course.Tuition,
			&course.MinimumSkill,
			&course.ScholarshipAvailable,
			&course.CreatedAt,
			&summary.Name,
			&summary.Description,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan course: %w", err)
		}
		course.Bootcamp = &summary
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate courses: %w", err)
	}

	var total int
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM courses c
		JOIN bootcamps b ON b.id = c.bootcamp_id
		%s
	`, where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return courses, total, nil
}

// ListByBootcamp retrieves all courses belonging to one bootcamp
func (r *courseRepository) ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Course, error) {
	q := `
		SELECT id, bootcamp_id, title, description, weeks, tuition,
		       minimum_skill, scholarship_available, created_at
		FROM courses
		WHERE bootcamp_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, q, bootcampID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by bootcamp: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.BootcampID,
			&course.Title,
			&course.Description,
			&course.Weeks,
			&course.Tuition,
			&course.MinimumSkill,
			&course.ScholarshipAvailable,
			&course.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// Update updates a course's mutable fields; the bootcamp reference is immutable
func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	q := `
		UPDATE courses
		SET title = ?, description = ?, weeks = ?, tuition = ?,
		    minimum_skill = ?, scholarship_available = ?
		WHERE id = ?
	`

	if _, err := r.db.ExecContext(ctx, q,
		course.Title,
		course.Description,
		course.Weeks,
		course.Tuition,
		course.MinimumSkill,
		course.ScholarshipAvailable,
		course.ID,
	); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// Delete removes a course by ID
func (r *courseRepository) Delete(ctx context.Context, courseID int) error {
	q := `DELETE FROM courses WHERE id = ?`

	result, err := r.db.ExecContext(ctx, q, courseID)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("course %d: %w", courseID, apperr.ErrNotFound)
	}

	return nil
}
