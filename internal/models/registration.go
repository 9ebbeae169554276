// Package models содержит доменные структуры системы регистрации на конференцию:
// регистрации участников, учётные записи администраторов и их сессии,
// а также вспомогательные типы для приёма данных из внешних источников (JSON или form-запросы).
package models

import (
	"net/url"
	"time"
)

// Status — статус регистрации. Закрытый набор значений: active и cancelled.
// Отмена регистрации — единственный переход; физическое удаление не предусмотрено.
type Status string

const (
	// StatusActive — действующая регистрация.
	StatusActive Status = "active"
	// StatusCancelled — отменённая регистрация. Email отменённой записи можно использовать повторно.
	StatusCancelled Status = "cancelled"
)

// IsValid сообщает, входит ли значение в закрытый набор статусов.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusCancelled
}

// Registration представляет регистрацию участника конференции,
// используется в бизнес-логике и хранилище. Текстовые поля хранятся
// уже экранированными, email — в нормализованном виде (нижний регистр, без пробелов).
type Registration struct {
	ID               int       `json:"id"`                // Суррогатный ключ, выдаётся хранилищем
	FullName         string    `json:"full_name"`         // Полное имя участника
	Email            string    `json:"email"`             // Нормализованный email
	Phone            string    `json:"phone"`             // Телефон
	Organization     string    `json:"organization"`      // Организация
	SessionChoice    string    `json:"session_choice"`    // Выбранная секция конференции
	RegistrationDate time.Time `json:"registration_date"` // Момент создания, неизменяемый
	Status           Status    `json:"status"`            // active или cancelled
}

// DummyRegistration используется для приёма данных регистрации из запроса,
// прежде чем конвертировать их в Registration. Поля проходят санитизацию
// и валидацию в сервисном слое.
type DummyRegistration struct {
	FullName      string `json:"full_name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,regphone"`
	Organization  string `json:"organization" validate:"required"`
	SessionChoice string `json:"session_choice" validate:"required,regsession"`
}

// UnmarshalForm заполняет структуру из значений HTML-формы.
func (d *DummyRegistration) UnmarshalForm(values url.Values) {
	d.FullName = values.Get("full_name")
	d.Email = values.Get("email")
	d.Phone = values.Get("phone")
	d.Organization = values.Get("organization")
	d.SessionChoice = values.Get("session_choice")
}

// Stats — агрегированная статистика по действующим регистрациям.
// Три значения считаются последовательными запросами без общего снапшота,
// при конкурентных записях возможно мгновенное расхождение между ними.
type Stats struct {
	TotalRegistrations  int            `json:"total_registrations"`
	RecentRegistrations int            `json:"recent_registrations"`
	BySession           map[string]int `json:"by_session"`
	LastUpdated         time.Time      `json:"last_updated"`
}

// ConferenceSession — справочная запись о секции конференции.
// Таблица используется только для посева и отображения списка секций,
// ядро её не изменяет.
type ConferenceSession struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Speaker     string    `json:"speaker"`
	SessionTime string    `json:"session_time"`
	SessionDate time.Time `json:"session_date"`
	Description string    `json:"description"`
}
