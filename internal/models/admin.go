package models

import (
	"net/url"
	"time"
)

// Admin представляет учётную запись администратора.
// Пароль хранится только в виде bcrypt-хэша.
type Admin struct {
	ID           int        // Суррогатный ключ
	Username     string     // Имя для входа (уникальное)
	PasswordHash string     // bcrypt-хэш пароля
	Email        string     // Электронная почта
	FullName     string     // Полное имя
	Role         string     // Роль администратора
	Status       string     // active или disabled; вход разрешён только для active
	LastLogin    *time.Time // Момент последнего успешного входа, nil если входов не было
}

// AdminSession — серверная сессия администратора, привязанная к opaque-токену.
// Хранится в session store, живёт от входа до выхода или истечения таймаута.
type AdminSession struct {
	AdminID   int       `json:"admin_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"login_time"`
}

// DummyCredentials используется для приёма учётных данных из запроса на вход.
type DummyCredentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UnmarshalForm заполняет структуру из значений HTML-формы.
func (d *DummyCredentials) UnmarshalForm(values url.Values) {
	d.Username = values.Get("username")
	d.Password = values.Get("password")
}

// DummyAdmin используется при создании учётной записи администратора
// (шаг установки), до хэширования пароля и записи в хранилище.
type DummyAdmin struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role"`
}
