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

// UserService is the interface that wraps methods for admin user management.
type UserService interface {
	// Method List retrieves users with filtering, sorting and pagination.
	List(ctx context.Context, opts *query.Options) ([]models.User, int, error)
	// Method Get retrieves a single user.
	Get(ctx context.Context, userID int) (*models.User, error)
	// Method Create adds a user with any valid role, including admin.
	Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	// Method Update modifies a user's name, email or role.
	Update(ctx context.Context, userID int, req models.UpdateUserRequest) (*models.User, error)
	// Method Delete removes a user.
	Delete(ctx context.Context, userID int) error
}

// UserHandler handles admin-only user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService    UserService
	protect        func(http.Handler) http.Handler
	authorizeAdmin func(http.Handler) http.Handler
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userService UserService,
	protect func(http.Handler) http.Handler,
	authorizeAdmin func(http.Handler) http.Handler,
	logger *zap.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		userService:    userService,
		protect:        protect,
		authorizeAdmin: authorizeAdmin,
	}
}

// RegisterRoutes registers all user handler routes behind admin authorization.
// Note: This assumes the router is already scoped to /api/v1
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Use(h.protect)
		r.Use(h.authorizeAdmin)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{userID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)
		})
	})
}

// List handles GET /users
// @Summary List users
// @Description List users with filtering, select, sort, page and limit parameters. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any "User listing"
// @Failure 403 {object} map[string]any "Admin only"
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	opts, err := query.Parse(r.URL.Query(), repositories.UserColumns)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	users, total, err := h.userService.List(r.Context(), opts)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondList(w, len(users), opts.Paginate(total), query.ProjectSlice(opts, users))
}

// Get handles GET /users/{userID}
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]any "User"
// @Failure 404 {object} map[string]any "Not found"
// @Router /users/{userID} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "userID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, user)
}

// Create handles POST /users
// @Summary Create a user
// @Description Create a user with any valid role, including admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateUserRequest true "User data"
// @Success 201 {object} map[string]any "Created user"
// @Failure 400 {object} map[string]any "Validation error"
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusCreated, user)
}

// Update handles PUT /users/{userID}
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User ID"
// @Param request body models.UpdateUserRequest true "Fields to update"
// @Success 200 {object} map[string]any "Updated user"
// @Failure 404 {object} map[string]any "Not found"
// @Router /users/{userID} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "userID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{userID}
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path int true "User ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any "Not found"
// @Router /users/{userID} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "userID")
	if !ok {
		h.RespondError(w, http.StatusNotFound, "resource not found")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.RespondAppError(w, err)
		return
	}

	h.RespondData(w, http.StatusOK, map[string]any{})
}
