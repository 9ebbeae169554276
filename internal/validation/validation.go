// Package validation реализует движок валидации форм регистрации и учётных
// записей администраторов. Чистые функции без I/O: невалидный ввод — это
// обычное возвращаемое значение (список человеко-читаемых сообщений), а не ошибка.
// Сообщения собираются по всем полям сразу, без прерывания на первом нарушении.
package validation

import (
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator"

	"github.com/yaicess/conference-registration/internal/models"
)

// phoneRe — телефон после обрезки пробелов: цифры, "+", "-" и пробелы, от 10 до 15 символов.
var phoneRe = regexp.MustCompile(`^[0-9+\-\s]{10,15}$`)

// validSessions — закрытый список секций конференции, допустимых в session_choice.
var validSessions = []string{
	"AI and Machine Learning Trends",
	"Cloud Computing Strategies",
	"Cybersecurity in Modern Apps",
	"DevOps and Automation",
}

// Sessions возвращает копию списка допустимых секций конференции.
func Sessions() []string {
	return slices.Clone(validSessions)
}

// Engine инкапсулирует настроенный validator с зарегистрированными
// проверками regphone и regsession.
type Engine struct {
	validate *validator.Validate
}

// New создает движок валидации.
func New() *Engine {
	v := validator.New()
	// Ошибки регистрации возможны только при пустом имени тега или не-функции.
	_ = v.RegisterValidation("regphone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("regsession", func(fl validator.FieldLevel) bool {
		return slices.Contains(validSessions, fl.Field().String())
	})
	return &Engine{validate: v}
}

// Registration проверяет поля заявки на регистрацию и возвращает список
// сообщений об ошибках. Пустой список означает, что все проверки пройдены.
func (e *Engine) Registration(req models.DummyRegistration) []string {
	err := e.validate.Struct(req)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, ferr := range err.(validator.ValidationErrors) {
		switch ferr.Field() {
		case "FullName":
			msgs = append(msgs, "Full name is required and must be at least 2 characters.")
		case "Email":
			msgs = append(msgs, "Valid email address is required.")
		case "Phone":
			msgs = append(msgs, "Valid phone number is required (10-15 digits).")
		case "Organization":
			msgs = append(msgs, "Organization is required.")
		case "SessionChoice":
			if ferr.ActualTag() == "regsession" {
				msgs = append(msgs, "Session choice must be one of the available conference sessions.")
			} else {
				msgs = append(msgs, "Session choice is required.")
			}
		}
	}
	return msgs
}

// Admin проверяет поля новой учётной записи администратора.
func (e *Engine) Admin(req models.DummyAdmin) []string {
	err := e.validate.Struct(req)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, ferr := range err.(validator.ValidationErrors) {
		switch ferr.Field() {
		case "Username":
			msgs = append(msgs, "Username is required and must be at least 3 characters.")
		case "Password":
			msgs = append(msgs, "Password is required and must be at least 6 characters.")
		case "Email":
			msgs = append(msgs, "Valid email address is required.")
		case "FullName":
			msgs = append(msgs, "Full name is required.")
		}
	}
	return msgs
}

// Credentials проверяет, что имя пользователя и пароль переданы.
func (e *Engine) Credentials(req models.DummyCredentials) []string {
	if err := e.validate.Struct(req); err != nil {
		return []string{"Please provide both username and password."}
	}
	return nil
}
