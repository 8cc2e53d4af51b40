package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// setupCourseTestRepository creates a course repository with a mock database
func setupCourseTestRepository(t *testing.T) (*courseRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewCourseRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestCourseRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	course := &models.Course{
		BootcampID:   1,
		Title:        "Front End Web Development",
		Description:  "HTML, CSS, JavaScript",
		Weeks:        8,
		Tuition:      8000,
		MinimumSkill: models.SkillBeginner,
	}

	mock.ExpectExec(`INSERT INTO courses`).
		WithArgs(1, "Front End Web Development", "HTML, CSS, JavaScript", 8, 8000, models.SkillBeginner, false).
		WillReturnResult(sqlmock.NewResult(11, 1))

	err := repo.Create(context.Background(), course)

	require.NoError(t, err)
	assert.Equal(t, 11, course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{
			"id", "bootcamp_id", "title", "description", "weeks", "tuition",
			"minimum_skill", "scholarship_available", "created_at",
		}).AddRow(11, 1, "Front End Web Development", "HTML, CSS, JavaScript", 8, 8000, "beginner", false, time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM courses`).
			WithArgs(11).
			WillReturnRows(rows)

		course, err := repo.GetByID(context.Background(), 11)

		require.NoError(t, err)
		assert.Equal(t, 11, course.ID)
		assert.Equal(t, models.SkillBeginner, course.MinimumSkill)
		assert.Nil(t, course.Bootcamp)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupCourseTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM courses`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCourseRepository_List(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	opts := &query.Options{
		Filters: []query.Filter{{Column: "c.tuition", Op: query.OpLte, Values: []string{"10000"}}},
		Page:    1,
		Limit:   100,
	}

	rows := sqlmock.NewRows([]string{
		"id", "bootcamp_id", "title", "description", "weeks", "tuition",
		"minimum_skill", "scholarship_available", "created_at", "name", "description",
	}).AddRow(11, 1, "Front End Web Development", "HTML, CSS, JavaScript", 8, 8000, "beginner", false, time.Now(),
		"Devworks Bootcamp", "Full stack development")
	mock.ExpectQuery(`SELECT (.+) FROM courses c`).
		WithArgs("10000", 100, 0).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WithArgs("10000").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), opts)

	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, 1, total)
	require.NotNil(t, courses[0].Bootcamp)
	assert.Equal(t, "Devworks Bootcamp", courses[0].Bootcamp.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_ListByBootcamp(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{
		"id", "bootcamp_id", "title", "description", "weeks", "tuition",
		"minimum_skill", "scholarship_available", "created_at",
	}).
		AddRow(11, 1, "Front End Web Development", "HTML", 8, 8000, "beginner", false, time.Now()).
		AddRow(12, 1, "Full Stack Web Development", "Node", 12, 10000, "intermediate", true, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM courses`).
		WithArgs(1).
		WillReturnRows(rows)

	courses, err := repo.ListByBootcamp(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupCourseTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM courses`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), apperr.ErrNotFound)
}
