package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaicess/conference-registration/internal/models"
)

func validRegistration() models.DummyRegistration {
	return models.DummyRegistration{
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "123-456-7890",
		Organization:  "Acme",
		SessionChoice: "DevOps and Automation",
	}
}

func TestRegistration_Valid(t *testing.T) {
	e := New()

	assert.Empty(t, e.Registration(validRegistration()))
}

func TestRegistration_CollectsAllErrors(t *testing.T) {
	e := New()

	msgs := e.Registration(models.DummyRegistration{})

	assert.Len(t, msgs, 5)
	assert.Contains(t, msgs, "Full name is required and must be at least 2 characters.")
	assert.Contains(t, msgs, "Valid email address is required.")
	assert.Contains(t, msgs, "Valid phone number is required (10-15 digits).")
	assert.Contains(t, msgs, "Organization is required.")
	assert.Contains(t, msgs, "Session choice is required.")
}

func TestRegistration_PhoneBoundaries(t *testing.T) {
	e := New()

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"9 символов - мало", "123456789", true},
		{"10 символов - нижняя граница", "1234567890", false},
		{"15 символов - верхняя граница", "123456789012345", false},
		{"16 символов - много", "1234567890123456", true},
		{"пунктуация учитывается в длине", "+1 234-567-8901", false},
		{"буквы запрещены", "12345abcde", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			req.Phone = tt.phone

			msgs := e.Registration(req)

			if tt.wantErr {
				assert.Contains(t, msgs, "Valid phone number is required (10-15 digits).")
			} else {
				assert.Empty(t, msgs)
			}
		})
	}
}

func TestRegistration_FullNameTooShort(t *testing.T) {
	e := New()
	req := validRegistration()
	req.FullName = "J"

	msgs := e.Registration(req)

	assert.Equal(t, []string{"Full name is required and must be at least 2 characters."}, msgs)
}

func TestRegistration_InvalidEmail(t *testing.T) {
	e := New()
	req := validRegistration()
	req.Email = "not-an-email"

	msgs := e.Registration(req)

	assert.Equal(t, []string{"Valid email address is required."}, msgs)
}

func TestRegistration_UnknownSession(t *testing.T) {
	e := New()
	req := validRegistration()
	req.SessionChoice = "Quantum Basket Weaving"

	msgs := e.Registration(req)

	assert.Equal(t, []string{"Session choice must be one of the available conference sessions."}, msgs)
}

func TestAdmin(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		req  models.DummyAdmin
		want []string
	}{
		{
			name: "valid admin",
			req: models.DummyAdmin{
				Username: "admin",
				Password: "admin123",
				Email:    "admin@yaicess.com",
				FullName: "System Administrator",
			},
			want: nil,
		},
		{
			name: "короткий username",
			req: models.DummyAdmin{
				Username: "ab",
				Password: "admin123",
				Email:    "admin@yaicess.com",
				FullName: "System Administrator",
			},
			want: []string{"Username is required and must be at least 3 characters."},
		},
		{
			name: "короткий пароль",
			req: models.DummyAdmin{
				Username: "admin",
				Password: "12345",
				Email:    "admin@yaicess.com",
				FullName: "System Administrator",
			},
			want: []string{"Password is required and must be at least 6 characters."},
		},
		{
			name: "все поля пустые",
			req:  models.DummyAdmin{},
			want: []string{
				"Username is required and must be at least 3 characters.",
				"Password is required and must be at least 6 characters.",
				"Valid email address is required.",
				"Full name is required.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Admin(tt.req))
		})
	}
}

func TestSessions_ReturnsCopy(t *testing.T) {
	s := Sessions()
	s[0] = "mutated"

	assert.Equal(t, "AI and Machine Learning Trends", Sessions()[0])
}
