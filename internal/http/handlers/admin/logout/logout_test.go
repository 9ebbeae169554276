package logout

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yaicess/conference-registration/internal/config"
	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/services/auth"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHandler(svc Service) *Handler {
	return New(discardLogger(), svc, config.AdminSession{CookieName: "admin_session"})
}

func TestServeHTTP_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Logout", mock.Anything, "token-123").Return(nil)

	r := httptest.NewRequest("POST", "/api/v1/admin/logout", nil)
	r.AddCookie(&http.Cookie{Name: "admin_session", Value: "token-123"})
	w := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Logout successful!", resp.Message)

	// Cookie должна быть сброшена.
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestServeHTTP_NoActiveSession(t *testing.T) {
	svc := new(MockService)
	svc.On("Logout", mock.Anything, "").Return(auth.ErrNoActiveSession)

	r := httptest.NewRequest("POST", "/api/v1/admin/logout", nil)
	w := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No active session found.", resp.Message)
}

func TestServeHTTP_ServiceError(t *testing.T) {
	svc := new(MockService)
	svc.On("Logout", mock.Anything, "token-123").Return(assert.AnError)

	r := httptest.NewRequest("POST", "/api/v1/admin/logout", nil)
	r.AddCookie(&http.Cookie{Name: "admin_session", Value: "token-123"})
	w := httptest.NewRecorder()
	newHandler(svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
