package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/geocoder"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

// mockBootcampRepository is a mock implementation of bootcampRepository
type mockBootcampRepository struct {
	bootcamp     *models.Bootcamp
	bootcamps    []models.Bootcamp
	total        int
	count        int
	getErr       error
	createErr    error
	created      *models.Bootcamp
	updated      *models.Bootcamp
	deletedID    int
	photoName    string
}

func (m *mockBootcampRepository) Create(ctx context.Context, bootcamp *models.Bootcamp) error {
	if m.createErr != nil {
		return m.createErr
	}
	bootcamp.ID = 1
	m.created = bootcamp
	return nil
}

func (m *mockBootcampRepository) GetByID(ctx context.Context, bootcampID int) (*models.Bootcamp, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.bootcamp, nil
}

func (m *mockBootcampRepository) List(ctx context.Context, opts *query.Options) ([]models.Bootcamp, int, error) {
	return m.bootcamps, m.total, nil
}

func (m *mockBootcampRepository) ListWithinRadius(ctx context.Context, lat, lng, miles float64) ([]models.Bootcamp, error) {
	return m.bootcamps, nil
}

func (m *mockBootcampRepository) CountByUser(ctx context.Context, userID int) (int, error) {
	return m.count, nil
}

func (m *mockBootcampRepository) Update(ctx context.Context, bootcamp *models.Bootcamp) error {
	m.updated = bootcamp
	return nil
}

func (m *mockBootcampRepository) UpdatePhoto(ctx context.Context, bootcampID int, filename string) error {
	m.photoName = filename
	return nil
}

func (m *mockBootcampRepository) Delete(ctx context.Context, bootcampID int) error {
	m.deletedID = bootcampID
	return nil
}

// mockGeocoder is a mock implementation of addressGeocoder
type mockGeocoder struct {
	location *geocoder.Location
	err      error
	queried  string
}

func (m *mockGeocoder) Geocode(ctx context.Context, address string) (*geocoder.Location, error) {
	m.queried = address
	if m.err != nil {
		return nil, m.err
	}
	return m.location, nil
}

// mockStorage is a mock implementation of fileStorage
type mockStorage struct {
	err     error
	saved   string
	deleted string
}

func (m *mockStorage) Save(filename string, r io.Reader) error {
	if m.err != nil {
		return m.err
	}
	m.saved = filename
	return nil
}

func (m *mockStorage) Delete(filename string) error {
	m.deleted = filename
	return nil
}

var bostonLocation = &geocoder.Location{
	Latitude:  42.3503,
	Longitude: -71.1041,
	City:      "Boston",
	Zipcode:   "02215",
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "spaces become hyphens", in: "Devworks Bootcamp", expected: "devworks-bootcamp"},
		{name: "punctuation collapses", in: "ModernTech / Bootcamp!", expected: "moderntech-bootcamp"},
		{name: "numbers survive", in: "Codemasters 101", expected: "codemasters-101"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, slugify(tt.in))
		})
	}
}

func TestBootcampService_Create(t *testing.T) {
	publisher := &models.User{ID: 1, Role: models.RolePublisher}
	admin := &models.User{ID: 2, Role: models.RoleAdmin}

	validReq := models.CreateBootcampRequest{
		Name:        "Devworks Bootcamp",
		Description: "Full stack development",
		Address:     "233 Bay State Rd Boston MA 02215",
	}

	t.Run("success geocodes the address", func(t *testing.T) {
		repo := &mockBootcampRepository{}
		geo := &mockGeocoder{location: bostonLocation}
		svc := NewBootcampService(repo, geo, &mockStorage{}, 1000000)

		bootcamp, err := svc.Create(context.Background(), publisher, validReq)

		require.NoError(t, err)
		assert.Equal(t, validReq.Address, geo.queried)
		assert.Equal(t, "devworks-bootcamp", bootcamp.Slug)
		assert.Equal(t, 42.3503, bootcamp.Latitude)
		assert.Equal(t, "Boston", bootcamp.City)
		assert.Equal(t, publisher.ID, bootcamp.UserID)
	})

	t.Run("publisher may only own one bootcamp", func(t *testing.T) {
		repo := &mockBootcampRepository{count: 1}
		svc := NewBootcampService(repo, &mockGeocoder{location: bostonLocation}, &mockStorage{}, 1000000)

		_, err := svc.Create(context.Background(), publisher, validReq)

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, repo.created)
	})

	t.Run("admin is exempt from the one bootcamp limit", func(t *testing.T) {
		repo := &mockBootcampRepository{count: 5}
		svc := NewBootcampService(repo, &mockGeocoder{location: bostonLocation}, &mockStorage{}, 1000000)

		_, err := svc.Create(context.Background(), admin, validReq)

		assert.NoError(t, err)
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc := NewBootcampService(&mockBootcampRepository{}, &mockGeocoder{}, &mockStorage{}, 1000000)

		_, err := svc.Create(context.Background(), publisher, models.CreateBootcampRequest{})

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 3)
	})
}

func TestBootcampService_Update(t *testing.T) {
	owned := func() *models.Bootcamp {
		return &models.Bootcamp{
			ID:      1,
			UserID:  1,
			Name:    "Devworks Bootcamp",
			Slug:    "devworks-bootcamp",
			Address: "233 Bay State Rd Boston MA 02215",
		}
	}

	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: owned()}
		svc := NewBootcampService(repo, &mockGeocoder{}, &mockStorage{}, 1000000)
		stranger := &models.User{ID: 9, Role: models.RolePublisher}

		_, err := svc.Update(context.Background(), stranger, 1, models.UpdateBootcampRequest{})

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Nil(t, repo.updated)
	})

	t.Run("admin may update any bootcamp", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: owned()}
		svc := NewBootcampService(repo, &mockGeocoder{}, &mockStorage{}, 1000000)
		admin := &models.User{ID: 9, Role: models.RoleAdmin}
		name := "New Name"

		bootcamp, err := svc.Update(context.Background(), admin, 1, models.UpdateBootcampRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "New Name", bootcamp.Name)
		assert.Equal(t, "new-name", bootcamp.Slug)
	})

	t.Run("changing the address re-geocodes", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: owned()}
		geo := &mockGeocoder{location: &geocoder.Location{Latitude: 40.7, Longitude: -74.0, City: "New York", Zipcode: "10001"}}
		svc := NewBootcampService(repo, geo, &mockStorage{}, 1000000)
		owner := &models.User{ID: 1, Role: models.RolePublisher}
		address := "220 5th Ave New York NY 10001"

		bootcamp, err := svc.Update(context.Background(), owner, 1, models.UpdateBootcampRequest{Address: &address})

		require.NoError(t, err)
		assert.Equal(t, address, geo.queried)
		assert.Equal(t, "New York", bootcamp.City)
	})

	t.Run("unchanged address skips geocoding", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: owned()}
		geo := &mockGeocoder{}
		svc := NewBootcampService(repo, geo, &mockStorage{}, 1000000)
		owner := &models.User{ID: 1, Role: models.RolePublisher}
		address := "233 Bay State Rd Boston MA 02215"

		_, err := svc.Update(context.Background(), owner, 1, models.UpdateBootcampRequest{Address: &address})

		require.NoError(t, err)
		assert.Empty(t, geo.queried)
	})
}

func TestBootcampService_Delete(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: &models.Bootcamp{ID: 1, UserID: 1}}
		svc := NewBootcampService(repo, &mockGeocoder{}, &mockStorage{}, 1000000)

		err := svc.Delete(context.Background(), &models.User{ID: 9, Role: models.RolePublisher}, 1)

		assert.ErrorIs(t, err, apperr.ErrForbidden)
		assert.Zero(t, repo.deletedID)
	})

	t.Run("owner may delete", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: &models.Bootcamp{ID: 1, UserID: 1}}
		svc := NewBootcampService(repo, &mockGeocoder{}, &mockStorage{}, 1000000)

		err := svc.Delete(context.Background(), &models.User{ID: 1, Role: models.RolePublisher}, 1)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.deletedID)
	})
}

func TestBootcampService_GetWithinRadius(t *testing.T) {
	t.Run("geocodes the zipcode", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamps: []models.Bootcamp{{ID: 1}}}
		geo := &mockGeocoder{location: bostonLocation}
		svc := NewBootcampService(repo, geo, &mockStorage{}, 1000000)

		bootcamps, err := svc.GetWithinRadius(context.Background(), "02215", 10)

		require.NoError(t, err)
		assert.Equal(t, "02215", geo.queried)
		assert.Len(t, bootcamps, 1)
	})

	t.Run("non-positive distance is rejected", func(t *testing.T) {
		svc := NewBootcampService(&mockBootcampRepository{}, &mockGeocoder{}, &mockStorage{}, 1000000)

		_, err := svc.GetWithinRadius(context.Background(), "02215", 0)

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestBootcampService_UploadPhoto(t *testing.T) {
	owner := &models.User{ID: 1, Role: models.RolePublisher}
	owned := &models.Bootcamp{ID: 1, UserID: 1}

	t.Run("success derives the stored filename", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: owned}
		store := &mockStorage{}
		svc := NewBootcampService(repo, &mockGeocoder{}, store, 1000000)

		filename, err := svc.UploadPhoto(context.Background(), owner, 1, "shot.jpg", "image/jpeg", 500, strings.NewReader("data"))

		require.NoError(t, err)
		assert.Equal(t, "photo_1.jpg", filename)
		assert.Equal(t, "photo_1.jpg", store.saved)
		assert.Equal(t, "photo_1.jpg", repo.photoName)
		assert.Empty(t, store.deleted)
	})

	t.Run("re-upload with a new extension removes the old file", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: &models.Bootcamp{ID: 1, UserID: 1, Photo: "photo_1.png"}}
		store := &mockStorage{}
		svc := NewBootcampService(repo, &mockGeocoder{}, store, 1000000)

		filename, err := svc.UploadPhoto(context.Background(), owner, 1, "shot.jpg", "image/jpeg", 500, strings.NewReader("data"))

		require.NoError(t, err)
		assert.Equal(t, "photo_1.jpg", filename)
		assert.Equal(t, "photo_1.png", store.deleted)
	})

	t.Run("re-upload with the same extension keeps the file in place", func(t *testing.T) {
		repo := &mockBootcampRepository{bootcamp: &models.Bootcamp{ID: 1, UserID: 1, Photo: "photo_1.jpg"}}
		store := &mockStorage{}
		svc := NewBootcampService(repo, &mockGeocoder{}, store, 1000000)

		_, err := svc.UploadPhoto(context.Background(), owner, 1, "new.jpg", "image/jpeg", 500, strings.NewReader("data"))

		require.NoError(t, err)
		assert.Empty(t, store.deleted)
	})

	t.Run("non-image is rejected", func(t *testing.T) {
		svc := NewBootcampService(&mockBootcampRepository{bootcamp: owned}, &mockGeocoder{}, &mockStorage{}, 1000000)

		_, err := svc.UploadPhoto(context.Background(), owner, 1, "doc.pdf", "application/pdf", 500, strings.NewReader("data"))

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		svc := NewBootcampService(&mockBootcampRepository{bootcamp: owned}, &mockGeocoder{}, &mockStorage{}, 100)

		_, err := svc.UploadPhoto(context.Background(), owner, 1, "shot.jpg", "image/jpeg", 500, strings.NewReader("data"))

		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		svc := NewBootcampService(&mockBootcampRepository{bootcamp: owned}, &mockGeocoder{}, &mockStorage{}, 1000000)
		stranger := &models.User{ID: 9, Role: models.RolePublisher}

		_, err := svc.UploadPhoto(context.Background(), stranger, 1, "shot.jpg", "image/jpeg", 500, strings.NewReader("data"))

		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}
