package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
	"github.com/bootcampfinder/backend/internal/repositories"
)

// BootcampService is the interface that wraps methods for bootcamp business logic.
type BootcampService interface {
	// Method List retrieves bootcamps with filtering, sorting and pagination.
	List(ctx context.Context, opts *query.Options) ([]models.Bootcamp, int, error)
	// Method Get retrieves a single bootcamp.
	Get(ctx context.Context, bootcampID int) (*models.Bootcamp, error)
	// Method GetWithinRadius retrieves bootcamps within the given distance in
	// miles of a zipcode's location.
	GetWithinRadius(ctx context.Context, zipcode string, miles float64) ([]models.Bootcamp, error)
	// Method Create publishes a new bootcamp owned by the caller.
	//
	// Publishers may own at most one bootcamp; admins are exempt from the limit.
	Create(ctx context.Context, user *models.User, req models.CreateBootcampRequest) (*models.Bootcamp, error)
	// Method Update modifies a bootcamp owned by the caller. Admins may update
	// any bootcamp.
	Update(ctx context.Context, user *models.User, bootcampID int, req models.UpdateBootcampRequest) (*models.Bootcamp, error)
	// Method Delete removes a bootcamp together with its courses and reviews.
	Delete(ctx context.Context, user *models.User, bootcampID int) error
	// Method UploadPhoto stores an image for the bootcamp and returns the
	// stored filename.
	UploadPhoto(ctx context.Context, user *models.User, bootcampID int, filename, contentType string, size int64, r io.Reader) (string, error)
}

// BootcampHandler handles bootcamp-related HTTP requests
type BootcampHandler struct {
	BaseHandler
	bootcampService  BootcampService
	protect          func(http.Handler) http.Handler
	authorizePublish func(http.Handler) http.Handler
	maxUploadSize    int64
}

// NewBootcampHandler creates a new bootcamp handler
func NewBootcampHandler(
	bootcampService BootcampService,
	protect func(http.Handler) http.Handler,
	authorizePublish func(http.Handler) http.Handler,
	maxUploadSize int64,
	logger *zap.Logger,
) *BootcampHandler {
	return &BootcampHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		bootcampService:  bootcampService,
		protect:          protect,
		authorizePublish: authorizePublish,
		maxUploadSize:    maxUploadSize,
	}
}

// RegisterRoutes registers all bootcamp handler routes. The nested callbacks
// mount child-resource routes under /bootcamps/{bootcampID}.
// Note: This assumes the router is already scoped to /api/v1
func (h *BootcampHandler) RegisterRoutes(r chi.Router, nested ...func(chi.Router)) {
	r.Route("/bootcamps", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(h.protect, h.authorizePublish).Post("/", h.Create)
		r.Get("/radius/{zipcode}/{distance}", h.GetWithinRadius)

		r.Route("/{bootcampID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.With(h.protect, h.authorizePublish).Put("/", h.Update)
			r.With(h.protect, h.authorizePublish).Delete("/", h.Delete)
			r.With(h.protect, h.authorizePublish).Put("/photo", h.UploadPhoto)

			for _, mount := range nested {
				mount(r)
			}
		})
	})
}

// List handles GET /bootcamps
// @Summary List bootcamps
// @Description List bootcamps with filtering (field, field[gt|gte|lt|lte|in]), select, sort, page and limit parameters.
// @Tags bootcamps
// @Produce json
// @Param select query string false "Comma-separated fields to include"
// @Param sort query string false "Comma-separated sort keys, - prefix for descending"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any "Bootcamp listing"
// @Failure 400 {object} map[string]any "Unknown filter field"
// @Router /bootcamps [get]
func (h *BootcampHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := query.Parse(r.URL.Query(), repositories.BootcampColumns)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	bootcamps, total, err := h.bootcampService.List(r.Context(), opts)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(bootcamps), opts.Paginate(total), query.ProjectSlice(opts, bootcamps))
}

// Get handles GET /bootcamps/{bootcampID}
// @Summary Get a bootcamp
// @Tags bootcamps
// @Produce json
// @Param bootcampID path int true "Bootcamp ID"
// @Success 200 {object} map[string]any "Bootcamp"
// @Failure 404 {object} map[string]any "Not found"
// @Router /bootcamps/{bootcampID} [get]
func (h *BootcampHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	bootcamp, err := h.bootcampService.Get(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, bootcamp)
}

// GetWithinRadius handles GET /bootcamps/radius/{zipcode}/{distance}
// @Summary List bootcamps within a radius
// @Description List bootcamps within the given distance in miles of a zipcode's location.
// @Tags bootcamps
// @Produce json
// @Param zipcode path string true "Center zipcode"
// @Param distance path number true "Radius in miles"
// @Success 200 {object} map[string]any "Bootcamp listing"
// @Failure 400 {object} map[string]any "Invalid distance"
// @Router /bootcamps/radius/{zipcode}/{distance} [get]
func (h *BootcampHandler) GetWithinRadius(w http.ResponseWriter, r *http.Request) {
	miles, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "distance must be a number")
		return
	}

	bootcamps, err := h.bootcampService.GetWithinRadius(r.Context(), chi.URLParam(r, "zipcode"), miles)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(bootcamps), nil, bootcamps)
}

// Create handles POST /bootcamps
// @Summary Create a bootcamp
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateBootcampRequest true "Bootcamp data"
// @Success 201 {object} map[string]any "Created bootcamp"
// @Failure 400 {object} map[string]any "Validation error"
// @Failure 403 {object} map[string]any "Role not allowed"
// @Router /bootcamps [post]
func (h *BootcampHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	var req models.CreateBootcampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bootcamp, err := h.bootcampService.Create(r.Context(), user, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, bootcamp)
}

// Update handles PUT /bootcamps/{bootcampID}
// @Summary Update a bootcamp
// @Tags bootcamps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bootcampID path int true "Bootcamp ID"
// @Param request body models.UpdateBootcampRequest true "Fields to update"
// @Success 200 {object} map[string]any "Updated bootcamp"
// @Failure 403 {object} map[string]any "Not the owner"
// @Failure 404 {object} map[string]any "Not found"
// @Router /bootcamps/{bootcampID} [put]
func (h *BootcampHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.UpdateBootcampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bootcamp, err := h.bootcampService.Update(r.Context(), user, id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, bootcamp)
}

// Delete handles DELETE /bootcamps/{bootcampID}
// @Summary Delete a bootcamp
// @Description Delete a bootcamp together with its courses and reviews.
// @Tags bootcamps
// @Produce json
// @Security BearerAuth
// @Param bootcampID path int true "Bootcamp ID"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any "Not the owner"
// @Failure 404 {object} map[string]any "Not found"
// @Router /bootcamps/{bootcampID} [delete]
func (h *BootcampHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.bootcampService.Delete(r.Context(), user, id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, map[string]any{})
}

// UploadPhoto handles PUT /bootcamps/{bootcampID}/photo
// @Summary Upload a bootcamp photo
// @Tags bootcamps
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param bootcampID path int true "Bootcamp ID"
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]any "Stored filename"
// @Failure 400 {object} map[string]any "Not an image or too large"
// @Failure 403 {object} map[string]any "Not the owner"
// @Router /bootcamps/{bootcampID}/photo [put]
func (h *BootcampHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		h.RespondError(w, http.StatusBadRequest, "failed to parse upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "please upload a file")
		return
	}
	defer file.Close()

	filename, err := h.bootcampService.UploadPhoto(r.Context(), user, id,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, filename)
}
