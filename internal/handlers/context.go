package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bootcampfinder/backend/internal/middleware"
	"github.com/bootcampfinder/backend/internal/models"
)

// mustGetUser returns the authenticated user attached by the Protect
// middleware. Routes calling it are always registered behind Protect, so a
// missing user is a routing bug and panics into the recovery middleware.
func mustGetUser(r *http.Request) *models.User {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		panic("handler reached without authenticated user")
	}
	return user
}

// urlParamInt extracts a positive integer URL parameter
func urlParamInt(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
