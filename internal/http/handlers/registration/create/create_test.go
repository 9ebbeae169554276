package create

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
	"github.com/yaicess/conference-registration/internal/services/registration"
	"github.com/yaicess/conference-registration/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyRegistration) (*models.Registration, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBody() string {
	return `{
		"full_name": "Ivan Petrov",
		"email": "ivan@example.com",
		"phone": "+7 900 123-45",
		"organization": "Acme Corp",
		"session_choice": "DevOps and Automation"
	}`
}

func doRequest(t *testing.T, svc Service, body string, contentType string) (*httptest.ResponseRecorder, response.Response) {
	h := New(discardLogger(), svc)

	r := httptest.NewRequest("POST", "/api/v1/register", strings.NewReader(body))
	r.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestServeHTTP_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(&models.Registration{
		ID:            1,
		FullName:      "Ivan Petrov",
		Email:         "ivan@example.com",
		SessionChoice: "DevOps and Automation",
	}, nil)

	w, resp := doRequest(t, svc, validBody(), "application/json")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Registration successful!", resp.Message)

	data := resp.Data.(map[string]any)
	assert.EqualValues(t, 1, data["registration_id"])
	assert.Equal(t, "ivan@example.com", data["email"])
}

func TestServeHTTP_FormRequest(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req models.DummyRegistration) bool {
		return req.Email == "ivan@example.com"
	})).Return(&models.Registration{ID: 2, Email: "ivan@example.com"}, nil)

	form := url.Values{}
	form.Set("full_name", "Ivan Petrov")
	form.Set("email", "ivan@example.com")
	form.Set("phone", "+7 900 123-45")
	form.Set("organization", "Acme Corp")
	form.Set("session_choice", "DevOps and Automation")

	w, resp := doRequest(t, svc, form.Encode(), "application/x-www-form-urlencoded")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
}

func TestServeHTTP_ValidationError(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, &registration.ValidationError{
		Messages: []string{
			"Valid email address is required.",
			"Organization is required.",
		},
	})

	w, resp := doRequest(t, svc, `{"full_name":"Ivan Petrov"}`, "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "Validation failed.", resp.Message)
	assert.Contains(t, resp.Errors, "Organization is required.")
}

func TestServeHTTP_DuplicateEmail(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrEmailExists)

	w, resp := doRequest(t, svc, validBody(), "application/json")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email address is already registered.", resp.Message)
	assert.Equal(t, []string{"This email address has already been used for registration."}, resp.Errors)
}

func TestServeHTTP_ServiceError(t *testing.T) {
	svc := new(MockService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	w, resp := doRequest(t, svc, validBody(), "application/json")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An error occurred while processing your registration.", resp.Message)
}

func TestServeHTTP_InvalidBody(t *testing.T) {
	svc := new(MockService)

	w, resp := doRequest(t, svc, "{broken", "application/json")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body.", resp.Message)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
