package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// setupBootcampTestRepository creates a bootcamp repository with a mock database
func setupBootcampTestRepository(t *testing.T) (*bootcampRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewBootcampRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

var bootcampColumns = []string{
	"id", "user_id", "name", "slug", "description", "website", "phone", "email",
	"address", "latitude", "longitude", "city", "zipcode", "careers", "housing",
	"job_assistance", "photo", "average_cost", "average_rating", "created_at",
}

func bootcampRow(id int) []driver.Value {
	return []driver.Value{
		id, 1, "Devworks Bootcamp", "devworks-bootcamp", "Full stack development",
		"https://devworks.com", "(111) 111-1111", "enroll@devworks.com",
		"233 Bay State Rd Boston MA 02215", 42.3503, -71.1041, "Boston", "02215",
		[]byte(`["Web Development","UI/UX"]`), true, true, "", nil, nil, time.Now(),
	}
}

func TestBootcampRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupBootcampTestRepository(t)
	defer cleanup()

	bootcamp := &models.Bootcamp{
		UserID:      1,
		Name:        "Devworks Bootcamp",
		Slug:        "devworks-bootcamp",
		Description: "Full stack development",
		Address:     "233 Bay State Rd Boston MA 02215",
		Latitude:    42.3503,
		Longitude:   -71.1041,
		City:        "Boston",
		Zipcode:     "02215",
		Careers:     []string{"Web Development"},
		Housing:     true,
	}

	mock.ExpectExec(`INSERT INTO bootcamps`).
		WillReturnResult(sqlmock.NewResult(3, 1))

	err := repo.Create(context.Background(), bootcamp)

	require.NoError(t, err)
	assert.Equal(t, 3, bootcamp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampRepository_GetByID(t *testing.T) {
	t.Run("success decodes careers", func(t *testing.T) {
		repo, mock, cleanup := setupBootcampTestRepository(t)
		defer cleanup()

		rows := sqlmock.NewRows(bootcampColumns).AddRow(bootcampRow(1)...)
		mock.ExpectQuery(`SELECT (.+) FROM bootcamps`).
			WithArgs(1).
			WillReturnRows(rows)

		bootcamp, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 1, bootcamp.ID)
		assert.Equal(t, []string{"Web Development", "UI/UX"}, bootcamp.Careers)
		assert.Nil(t, bootcamp.AverageCost)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupBootcampTestRepository(t)
		defer cleanup()

		mock.ExpectQuery(`SELECT (.+) FROM bootcamps`).
			WithArgs(42).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestBootcampRepository_List(t *testing.T) {
	repo, mock, cleanup := setupBootcampTestRepository(t)
	defer cleanup()

	opts := &query.Options{
		Filters: []query.Filter{{Column: "city", Op: query.OpEq, Values: []string{"Boston"}}},
		Page:    2,
		Limit:   1,
	}

	rows := sqlmock.NewRows(bootcampColumns).AddRow(bootcampRow(2)...)
	mock.ExpectQuery(`SELECT (.+) FROM bootcamps`).
		WithArgs("Boston", 1, 1).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bootcamps`).
		WithArgs("Boston").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	bootcamps, total, err := repo.List(context.Background(), opts)

	require.NoError(t, err)
	assert.Len(t, bootcamps, 1)
	assert.Equal(t, 3, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampRepository_ListWithinRadius(t *testing.T) {
	repo, mock, cleanup := setupBootcampTestRepository(t)
	defer cleanup()

	rows := sqlmock.NewRows(bootcampColumns).AddRow(bootcampRow(1)...)
	mock.ExpectQuery(`SELECT (.+) FROM bootcamps WHERE \(\? \* ACOS\(LEAST\(1\.0,`).
		WithArgs(earthRadiusMiles, 42.3503, -71.1041, 42.3503, 10.0).
		WillReturnRows(rows)

	bootcamps, err := repo.ListWithinRadius(context.Background(), 42.3503, -71.1041, 10)

	require.NoError(t, err)
	assert.Len(t, bootcamps, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampRepository_CountByUser(t *testing.T) {
	repo, mock, cleanup := setupBootcampTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM bootcamps`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByUser(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBootcampRepository_UpdateAverageCost(t *testing.T) {
	repo, mock, cleanup := setupBootcampTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE bootcamps`).
		WithArgs(1, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateAverageCost(context.Background(), 1)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootcampRepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := setupBootcampTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM bootcamps`).
			WithArgs(1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 1))
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock, cleanup := setupBootcampTestRepository(t)
		defer cleanup()

		mock.ExpectExec(`DELETE FROM bootcamps`).
			WithArgs(42).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 42), apperr.ErrNotFound)
	})
}
