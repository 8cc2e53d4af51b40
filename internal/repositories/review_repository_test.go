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
)

// setupReviewTestRepository creates a review repository with a mock database
func setupReviewTestRepository(t *testing.T) (*reviewRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewReviewRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestReviewRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupReviewTestRepository(t)
	defer cleanup()

	review := &models.Review{
		BootcampID: 1,
		UserID:     2,
		Title:      "Learned a lot",
		Text:       "Great instructors",
		Rating:     9,
	}

	mock.ExpectExec(`INSERT INTO reviews`).
		WithArgs(1, 2, "Learned a lot", "Great instructors", 9).
		WillReturnResult(sqlmock.NewResult(21, 1))

	err := repo.Create(context.Background(), review)

	require.NoError(t, err)
	assert.Equal(t, 21, review.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ExistsByUserAndBootcamp(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
	}{
		{name: "already reviewed", exists: true},
		{name: "not yet reviewed", exists: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupReviewTestRepository(t)
			defer cleanup()

			mock.ExpectQuery(`SELECT EXISTS`).
				WithArgs(2, 1).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			exists, err := repo.ExistsByUserAndBootcamp(context.Background(), 2, 1)

			require.NoError(t, err)
			assert.Equal(t, tt.exists, exists)
		})
	}
}

func TestReviewRepository_GetByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupReviewTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "bootcamp_id", "user_id", "title", "text", "rating", "created_at"}).
			AddRow(21, 1, 2, "Learned a lot", "Great instructors", 9, time.Now())
		mock.ExpectQuery(`SELECT (.+) FROM reviews`).
			WithArgs(21).
			WillReturnRows(rows)

		review, err := repo.GetByID(context.Background(), 21)

		require.NoError(t, err)
		assert.Equal(t, 9, review.Rating)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupReviewTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM reviews`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestReviewRepository_ListByBootcamp(t *testing.T) {
	repo, mock, cleanup := setupReviewTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "bootcamp_id", "user_id", "title", "text", "rating", "created_at"}).
		AddRow(21, 1, 2, "Learned a lot", "Great instructors", 9, time.Now()).
		AddRow(22, 1, 3, "Solid", "Good value", 7, time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM reviews`).
		WithArgs(1).
		WillReturnRows(rows)

	reviews, err := repo.ListByBootcamp(context.Background(), 1)

	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupReviewTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`DELETE FROM reviews`).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), apperr.ErrNotFound)
}
