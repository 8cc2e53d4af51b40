package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bootcampfinder/backend/internal/models"
)

type mockTokenValidator struct {
	userID int
	err    error
}

func (m *mockTokenValidator) Validate(tokenString string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.userID, nil
}

type mockUserLoader struct {
	user *models.User
	err  error
}

func (m *mockUserLoader) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func TestProtect(t *testing.T) {
	okHandler := func(seen **models.User) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			require.True(t, ok)
			*seen = user
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("valid token attaches the user", func(t *testing.T) {
		tokens := &mockTokenValidator{userID: 42}
		users := &mockUserLoader{user: &models.User{ID: 42, Role: models.RolePublisher}}

		var seen *models.User
		handler := Protect(tokens, users)(okHandler(&seen))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some.jwt.token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, 42, seen.ID)
	})

	t.Run("missing header", func(t *testing.T) {
		handler := Protect(&mockTokenValidator{}, &mockUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"not authorized to access this route"}`, rec.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := Protect(&mockTokenValidator{}, &mockUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		tokens := &mockTokenValidator{err: errors.New("failed to parse token")}
		handler := Protect(tokens, &mockUserLoader{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad.token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		tokens := &mockTokenValidator{userID: 42}
		users := &mockUserLoader{err: errors.New("user not found")}
		handler := Protect(tokens, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not be reached")
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer some.jwt.token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthorize(t *testing.T) {
	withUser := func(r *http.Request, user *models.User) *http.Request {
		return r.WithContext(context.WithValue(r.Context(), userKey, user))
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed role passes through", func(t *testing.T) {
		handler := Authorize(models.RolePublisher, models.RoleAdmin)(next)

		req := withUser(httptest.NewRequest(http.MethodPost, "/", nil), &models.User{ID: 1, Role: models.RolePublisher})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		handler := Authorize(models.RolePublisher, models.RoleAdmin)(next)

		req := withUser(httptest.NewRequest(http.MethodPost, "/", nil), &models.User{ID: 1, Role: models.RoleUser})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"success":false,"error":"not authorized to perform this action"}`, rec.Body.String())
	})

	t.Run("missing user is unauthorized", func(t *testing.T) {
		handler := Authorize(models.RoleAdmin)(next)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
