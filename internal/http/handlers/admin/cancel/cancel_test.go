package cancel

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yaicess/conference-registration/internal/http/response"
	"github.com/yaicess/conference-registration/internal/models"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Cancel(ctx context.Context, id int) (*models.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func cancelled(id int) *models.Registration {
	return &models.Registration{
		ID:            id,
		FullName:      "Ivan Petrov",
		Email:         "ivan@example.com",
		SessionChoice: "DevOps and Automation",
		Status:        models.StatusCancelled,
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestServeHTTP_PostJSONBody(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 7).Return(cancelled(7), nil)

	r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(`{"id":7}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Registration cancelled successfully.", resp.Message)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 7, data["id"])
	assert.Equal(t, "ivan@example.com", data["email"])
}

func TestServeHTTP_IDAsString(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 7).Return(cancelled(7), nil)

	r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(`{"id":"7"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeHTTP_DeleteWithQueryParam(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 5).Return(cancelled(5), nil)

	r := httptest.NewRequest("DELETE", "/api/v1/admin/registrations/cancel?id=5", nil)
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeHTTP_PostForm(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 9).Return(cancelled(9), nil)

	form := url.Values{}
	form.Set("id", "9")
	r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServeHTTP_InvalidID(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"нет id", `{}`},
		{"нечисловой id", `{"id":"abc"}`},
		{"нулевой id", `{"id":0}`},
		{"отрицательный id", `{"id":-3}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)

			r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			New(discardLogger(), svc).ServeHTTP(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode(t, w)
			assert.Equal(t, "Valid registration ID is required.", resp.Message)
			svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
		})
	}
}

func TestServeHTTP_NotFound(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 99).Return(nil, repository.ErrRegistrationNotFound)

	r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(`{"id":99}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Registration not found.", resp.Message)
}

func TestServeHTTP_ServiceError(t *testing.T) {
	svc := new(MockService)
	svc.On("Cancel", mock.Anything, 7).Return(nil, assert.AnError)

	r := httptest.NewRequest("POST", "/api/v1/admin/registrations/cancel", strings.NewReader(`{"id":7}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	New(discardLogger(), svc).ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Failed to cancel registration.", resp.Message)
}
