package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bootcampfinder/backend/internal/apperr"
	"github.com/bootcampfinder/backend/internal/geocoder"
	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL-safe slug from a bootcamp name
func slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// bootcampRepository defines the bootcamp storage operations the service needs
type bootcampRepository interface {
	// Create inserts a new bootcamp and fills in the generated ID
	Create(ctx context.Context, bootcamp *models.Bootcamp) error

	// GetByID retrieves a bootcamp by ID
	GetByID(ctx context.Context, bootcampID int) (*models.Bootcamp, error)

	// List retrieves bootcamps with filtering, sorting and pagination
	List(ctx context.Context, opts *query.Options) ([]models.Bootcamp, int, error)

	// ListWithinRadius retrieves bootcamps within the given distance in miles
	ListWithinRadius(ctx context.Context, lat, lng, miles float64) ([]models.Bootcamp, error)

	// CountByUser counts bootcamps owned by the given user
	CountByUser(ctx context.Context, userID int) (int, error)

	// Update updates a bootcamp's mutable fields
	Update(ctx context.Context, bootcamp *models.Bootcamp) error

	// UpdatePhoto stores the uploaded photo filename
	UpdatePhoto(ctx context.Context, bootcampID int, filename string) error

	// Delete removes a bootcamp; child rows cascade at the schema level
	Delete(ctx context.Context, bootcampID int) error
}

// addressGeocoder resolves addresses and zipcodes to coordinates
type addressGeocoder interface {
	Geocode(ctx context.Context, address string) (*geocoder.Location, error)
}

// fileStorage persists uploaded files
type fileStorage interface {
	Save(filename string, r io.Reader) error

	// Delete removes a stored file
	Delete(filename string) error
}

// BootcampService implements bootcamp management
type BootcampService struct {
	repo        bootcampRepository
	geocoder    addressGeocoder
	storage     fileStorage
	maxFileSize int64
}

// NewBootcampService creates a new bootcamp service
func NewBootcampService(repo bootcampRepository, geo addressGeocoder, storage fileStorage, maxFileSize int64) *BootcampService {
	return &BootcampService{
		repo:        repo,
		geocoder:    geo,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// List retrieves bootcamps with filtering, sorting and pagination
func (s *BootcampService) List(ctx context.Context, opts *query.Options) ([]models.Bootcamp, int, error) {
	return s.repo.List(ctx, opts)
}

// Get retrieves a single bootcamp
func (s *BootcampService) Get(ctx context.Context, bootcampID int) (*models.Bootcamp, error) {
	return s.repo.GetByID(ctx, bootcampID)
}

// GetWithinRadius retrieves bootcamps within the given distance in miles of a
// zipcode's location
func (s *BootcampService) GetWithinRadius(ctx context.Context, zipcode string, miles float64) ([]models.Bootcamp, error) {
	if miles <= 0 {
		return nil, apperr.Validation("distance", "distance must be a positive number")
	}

	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode zipcode: %w", err)
	}

	return s.repo.ListWithinRadius(ctx, loc.Latitude, loc.Longitude, miles)
}

// Create publishes a new bootcamp owned by the caller. Publishers may own at
// most one bootcamp; admins are exempt from the limit.
func (s *BootcampService) Create(ctx context.Context, user *models.User, req models.CreateBootcampRequest) (*models.Bootcamp, error) {
	verr := &apperr.ValidationError{}
	if req.Name == "" {
		verr.Add("name", "name is required")
	}
	if req.Description == "" {
		verr.Add("description", "description is required")
	}
	if req.Address == "" {
		verr.Add("address", "address is required")
	}
	if verr.HasErrors() {
		return nil, verr
	}

	if user.Role != models.RoleAdmin {
		count, err := s.repo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Validation("user", "user has already published a bootcamp")
		}
	}

	loc, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	bootcamp := &models.Bootcamp{
		UserID:        user.ID,
		Name:          req.Name,
		Slug:          slugify(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		City:          loc.City,
		Zipcode:       loc.Zipcode,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
	}
	if err := s.repo.Create(ctx, bootcamp); err != nil {
		return nil, err
	}

	return bootcamp, nil
}

// Update modifies a bootcamp owned by the caller. Admins may update any
// bootcamp. Changing the address re-resolves the stored coordinates.
func (s *BootcampService) Update(ctx context.Context, user *models.User, bootcampID int, req models.UpdateBootcampRequest) (*models.Bootcamp, error) {
	bootcamp, err := s.repo.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}

	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return nil, fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrForbidden)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.Validation("name", "name is required")
		}
		bootcamp.Name = *req.Name
		bootcamp.Slug = slugify(*req.Name)
	}
	if req.Description != nil {
		bootcamp.Description = *req.Description
	}
	if req.Website != nil {
		bootcamp.Website = *req.Website
	}
	if req.Phone != nil {
		bootcamp.Phone = *req.Phone
	}
	if req.Email != nil {
		bootcamp.Email = *req.Email
	}
	if req.Careers != nil {
		bootcamp.Careers = *req.Careers
	}
	if req.Housing != nil {
		bootcamp.Housing = *req.Housing
	}
	if req.JobAssistance != nil {
		bootcamp.JobAssistance = *req.JobAssistance
	}
	if req.Address != nil && *req.Address != bootcamp.Address {
		loc, err := s.geocoder.Geocode(ctx, *req.Address)
		if err != nil {
			return nil, fmt.Errorf("failed to geocode address: %w", err)
		}
		bootcamp.Address = *req.Address
		bootcamp.Latitude = loc.Latitude
		bootcamp.Longitude = loc.Longitude
		bootcamp.City = loc.City
		bootcamp.Zipcode = loc.Zipcode
	}

	if err := s.repo.Update(ctx, bootcamp); err != nil {
		return nil, err
	}

	return bootcamp, nil
}

// Delete removes a bootcamp owned by the caller together with its courses and
// reviews. Admins may delete any bootcamp.
func (s *BootcampService) Delete(ctx context.Context, user *models.User, bootcampID int) error {
	bootcamp, err := s.repo.GetByID(ctx, bootcampID)
	if err != nil {
		return err
	}

	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrForbidden)
	}

	return s.repo.Delete(ctx, bootcampID)
}

// UploadPhoto stores an image for a bootcamp owned by the caller and returns
// the stored filename
func (s *BootcampService) UploadPhoto(ctx context.Context, user *models.User, bootcampID int, filename, contentType string, size int64, r io.Reader) (string, error) {
	bootcamp, err := s.repo.GetByID(ctx, bootcampID)
	if err != nil {
		return "", err
	}

	if bootcamp.UserID != user.ID && user.Role != models.RoleAdmin {
		return "", fmt.Errorf("bootcamp %d: %w", bootcampID, apperr.ErrForbidden)
	}

	if !strings.HasPrefix(contentType, "image/") {
		return "", apperr.Validation("file", "please upload an image file")
	}
	if size > s.maxFileSize {
		return "", apperr.Validation("file",
			fmt.Sprintf("please upload an image less than %d bytes", s.maxFileSize))
	}

	stored := fmt.Sprintf("photo_%d%s", bootcampID, filepath.Ext(filename))
	if err := s.storage.Save(stored, r); err != nil {
		return "", fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, bootcampID, stored); err != nil {
		return "", err
	}

	// A re-upload with a different extension leaves the old file orphaned.
	// The new photo is already recorded, so removal is best effort.
	if bootcamp.Photo != "" && bootcamp.Photo != stored {
		_ = s.storage.Delete(bootcamp.Photo)
	}

	return stored, nil
}
