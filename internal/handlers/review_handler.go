package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bootcampfinder/backend/internal/models"
	"github.com/bootcampfinder/backend/internal/query"
	"github.com/bootcampfinder/backend/internal/repositories"
)

// ReviewService is the interface that wraps methods for review business logic.
type ReviewService interface {
	// Method List retrieves reviews with filtering, sorting and pagination.
	List(ctx context.Context, opts *query.Options) ([]models.Review, int, error)
	// Method ListByBootcamp retrieves all reviews of one bootcamp.
	ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Review, error)
	// Method Get retrieves a single review.
	Get(ctx context.Context, reviewID int) (*models.Review, error)
	// Method Create adds a review to a bootcamp. Each user may review a given
	// bootcamp at most once.
	Create(ctx context.Context, user *models.User, bootcampID int, req models.CreateReviewRequest) (*models.Review, error)
	// Method Update modifies a review authored by the caller. Admins may
	// update any review.
	Update(ctx context.Context, user *models.User, reviewID int, req models.UpdateReviewRequest) (*models.Review, error)
	// Method Delete removes a review authored by the caller. Admins may
	// delete any review.
	Delete(ctx context.Context, user *models.User, reviewID int) error
}

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	BaseHandler
	reviewService   ReviewService
	protect         func(http.Handler) http.Handler
	authorizeReview func(http.Handler) http.Handler
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(
	reviewService ReviewService,
	protect func(http.Handler) http.Handler,
	authorizeReview func(http.Handler) http.Handler,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		reviewService:   reviewService,
		protect:         protect,
		authorizeReview: authorizeReview,
	}
}

// RegisterRoutes registers the top-level review routes.
// Note: This assumes the router is already scoped to /api/v1
func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.List)
		r.Route("/{reviewID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.With(h.protect, h.authorizeReview).Put("/", h.Update)
			r.With(h.protect, h.authorizeReview).Delete("/", h.Delete)
		})
	})
}

// RegisterNestedRoutes mounts the review routes scoped to one bootcamp.
// The router is already scoped to /bootcamps/{bootcampID}
func (h *ReviewHandler) RegisterNestedRoutes(r chi.Router) {
	r.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.ListByBootcamp)
		r.With(h.protect, h.authorizeReview).Post("/", h.Create)
	})
}

// List handles GET /reviews
// @Summary List reviews
// @Description List all reviews with filtering, select, sort, page and limit parameters.
// @Tags reviews
// @Produce json
// @Success 200 {object} map[string]any "Review listing"
// @Failure 400 {object} map[string]any "Unknown filter field"
// @Router /reviews [get]
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := query.Parse(r.URL.Query(), repositories.ReviewColumns)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	reviews, total, err := h.reviewService.List(r.Context(), opts)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(reviews), opts.Paginate(total), query.ProjectSlice(opts, reviews))
}

// ListByBootcamp handles GET /bootcamps/{bootcampID}/reviews
// @Summary List a bootcamp's reviews
// @Tags reviews
// @Produce json
// @Param bootcampID path int true "Bootcamp ID"
// @Success 200 {object} map[string]any "Review listing"
// @Failure 404 {object} map[string]any "Bootcamp not found"
// @Router /bootcamps/{bootcampID}/reviews [get]
func (h *ReviewHandler) ListByBootcamp(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	reviews, err := h.reviewService.ListByBootcamp(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(reviews), nil, reviews)
}

// Get handles GET /reviews/{reviewID}
// @Summary Get a review
// @Tags reviews
// @Produce json
// @Param reviewID path int true "Review ID"
// @Success 200 {object} map[string]any "Review"
// @Failure 404 {object} map[string]any "Not found"
// @Router /reviews/{reviewID} [get]
func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "reviewID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	review, err := h.reviewService.Get(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, review)
}

// Create handles POST /bootcamps/{bootcampID}/reviews
// @Summary Add a review to a bootcamp
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bootcampID path int true "Bootcamp ID"
// @Param request body models.CreateReviewRequest true "Review data"
// @Success 201 {object} map[string]any "Created review"
// @Failure 400 {object} map[string]any "Validation error or duplicate review"
// @Failure 404 {object} map[string]any "Bootcamp not found"
// @Router /bootcamps/{bootcampID}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewService.Create(r.Context(), user, id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, review)
}

// Update handles PUT /reviews/{reviewID}
// @Summary Update a review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reviewID path int true "Review ID"
// @Param request body models.UpdateReviewRequest true "Fields to update"
// @Success 200 {object} map[string]any "Updated review"
// @Failure 403 {object} map[string]any "Not the author"
// @Failure 404 {object} map[string]any "Not found"
// @Router /reviews/{reviewID} [put]
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "reviewID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	review, err := h.reviewService.Update(r.Context(), user, id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, review)
}

// Delete handles DELETE /reviews/{reviewID}
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param reviewID path int true "Review ID"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any "Not the author"
// @Failure 404 {object} map[string]any "Not found"
// @Router /reviews/{reviewID} [delete]
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "reviewID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.reviewService.Delete(r.Context(), user, id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, map[string]any{})
}
