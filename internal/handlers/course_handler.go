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

// CourseService is the interface that wraps methods for course business logic.
type CourseService interface {
	// Method List retrieves courses with filtering, sorting and pagination.
	// Each row carries the parent bootcamp's name and description.
	List(ctx context.Context, opts *query.Options) ([]models.Course, int, error)
	// Method ListByBootcamp retrieves all courses of one bootcamp.
	ListByBootcamp(ctx context.Context, bootcampID int) ([]models.Course, error)
	// Method Get retrieves a single course.
	Get(ctx context.Context, courseID int) (*models.Course, error)
	// Method Create adds a course to a bootcamp owned by the caller. Admins
	// may add courses to any bootcamp.
	Create(ctx context.Context, user *models.User, bootcampID int, req models.CreateCourseRequest) (*models.Course, error)
	// Method Update modifies a course whose parent bootcamp the caller owns.
	Update(ctx context.Context, user *models.User, courseID int, req models.UpdateCourseRequest) (*models.Course, error)
	// Method Delete removes a course whose parent bootcamp the caller owns.
	Delete(ctx context.Context, user *models.User, courseID int) error
}

// CourseHandler handles course-related HTTP requests
type CourseHandler struct {
	BaseHandler
	courseService    CourseService
	protect          func(http.Handler) http.Handler
	authorizePublish func(http.Handler) http.Handler
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(
	courseService CourseService,
	protect func(http.Handler) http.Handler,
	authorizePublish func(http.Handler) http.Handler,
	logger *zap.Logger,
) *CourseHandler {
	return &CourseHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		courseService:    courseService,
		protect:          protect,
		authorizePublish: authorizePublish,
	}
}

// RegisterRoutes registers the top-level course routes.
// Note: This assumes the router is already scoped to /api/v1
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.List)
		r.Route("/{courseID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.With(h.protect, h.authorizePublish).Put("/", h.Update)
			r.With(h.protect, h.authorizePublish).Delete("/", h.Delete)
		})
	})
}

// RegisterNestedRoutes mounts the course routes scoped to one bootcamp.
// The router is already scoped to /bootcamps/{bootcampID}
func (h *CourseHandler) RegisterNestedRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.ListByBootcamp)
		r.With(h.protect, h.authorizePublish).Post("/", h.Create)
	})
}

// List handles GET /courses
// @Summary List courses
// @Description List all courses with filtering, select, sort, page and limit parameters. Each course carries its bootcamp's name and description.
// @Tags courses
// @Produce json
// @Success 200 {object} map[string]any "Course listing"
// @Failure 400 {object} map[string]any "Unknown filter field"
// @Router /courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := query.Parse(r.URL.Query(), repositories.CourseColumns)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	courses, total, err := h.courseService.List(r.Context(), opts)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(courses), opts.Paginate(total), query.ProjectSlice(opts, courses))
}

// ListByBootcamp handles GET /bootcamps/{bootcampID}/courses
// @Summary List a bootcamp's courses
// @Tags courses
// @Produce json
// @Param bootcampID path int true "Bootcamp ID"
// @Success 200 {object} map[string]any "Course listing"
// @Failure 404 {object} map[string]any "Bootcamp not found"
// @Router /bootcamps/{bootcampID}/courses [get]
func (h *CourseHandler) ListByBootcamp(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	courses, err := h.courseService.ListByBootcamp(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(courses), nil, courses)
}

// Get handles GET /courses/{courseID}
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param courseID path int true "Course ID"
// @Success 200 {object} map[string]any "Course"
// @Failure 404 {object} map[string]any "Not found"
// @Router /courses/{courseID} [get]
func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "courseID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	course, err := h.courseService.Get(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, course)
}

// Create handles POST /bootcamps/{bootcampID}/courses
// @Summary Add a course to a bootcamp
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bootcampID path int true "Bootcamp ID"
// @Param request body models.CreateCourseRequest true "Course data"
// @Success 201 {object} map[string]any "Created course"
// @Failure 400 {object} map[string]any "Validation error"
// @Failure 403 {object} map[string]any "Not the owner"
// @Router /bootcamps/{bootcampID}/courses [post]
func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "bootcampID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.courseService.Create(r.Context(), user, id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, course)
}

// Update handles PUT /courses/{courseID}
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseID path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} map[string]any "Updated course"
// @Failure 403 {object} map[string]any "Not the owner"
// @Failure 404 {object} map[string]any "Not found"
// @Router /courses/{courseID} [put]
func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "courseID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.UpdateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.courseService.Update(r.Context(), user, id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, course)
}

// Delete handles DELETE /courses/{courseID}
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param courseID path int true "Course ID"
// @Success 200 {object} map[string]any
// @Failure 403 {object} map[string]any "Not the owner"
// @Failure 404 {object} map[string]any "Not found"
// @Router /courses/{courseID} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := mustGetUser(r)

	id, ok := urlParamInt(r, "courseID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.courseService.Delete(r.Context(), user, id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, map[string]any{})
}
