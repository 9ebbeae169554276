package repository

import "errors"

// Ошибки хранилища, на которые опираются сервисный и HTTP-слои при выборе ответа.
var (
	// ErrEmailExists — для нормализованного email уже существует действующая регистрация.
	ErrEmailExists = errors.New("active registration with this email already exists")
	// ErrRegistrationNotFound — действующая регистрация не найдена.
	// Отменённые и несуществующие записи для вызывающего неразличимы.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrAdminNotFound — активная учётная запись администратора не найдена.
	ErrAdminNotFound = errors.New("admin not found")
)
