package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bootcampfinder/backend/internal/models"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	user  *models.User
	token string
	err   error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	return m.user, m.token, nil
}

func (m *mockAuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	return m.user, m.err
}

func (m *mockAuthService) UpdateDetails(ctx context.Context, userID int, req models.UpdateDetailsRequest) (*models.User, error) {
	return m.user, m.err
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, userID int, req models.UpdatePasswordRequest) (*models.User, string, error) {
	return m.user, m.token, m.err
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	return m.err
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token string, req models.ResetPasswordRequest) (*models.User, string, error) {
	return m.user, m.token, m.err
}

func newTestAuthHandler(svc AuthService) *AuthHandler {
	return NewAuthHandler(svc, nil, 30, false, zap.NewNop())
}

func TestAuthHandler_Register(t *testing.T) {
	svc := &mockAuthService{
		user:  &models.User{ID: 1, Name: "John Doe", Email: "john@example.com", Role: models.RoleUser},
		token: "signed.jwt.token",
	}
	h := newTestAuthHandler(svc)

	body := `{"name":"John Doe","email":"john@example.com","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "signed.jwt.token", resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed.jwt.token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.False(t, cookies[0].Secure)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	h := newTestAuthHandler(&mockAuthService{})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "none", cookies[0].Value)
}
