// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON-ответов HTTP-обработчиков. Все ответы API, успешные
// и ошибочные, используют один конверт с полями success, message, data и errors.
package response

// Response описывает стандартную структуру JSON-ответа сервера.
// Поле Success — признак успеха запроса.
// Поле Message — человеко-читаемое сообщение о результате.
// Поле Data — данные ответа (опционально, при успехе).
// Поле Errors — список детальных сообщений об ошибках (опционально).
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"Invalid request body."`
}

// OK возвращает успешный Response с сообщением без данных.
func OK(msg string) Response {
	return Response{
		Success: true,
		Message: msg,
	}
}

// OKWithData возвращает успешный Response с сообщением и данными.
func OKWithData(msg string, data any) Response {
	return Response{
		Success: true,
		Message: msg,
		Data:    data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Success: false,
		Message: msg,
	}
}

// ErrorWithDetails возвращает Response с ошибкой и списком деталей.
func ErrorWithDetails(msg string, errs []string) Response {
	return Response{
		Success: false,
		Message: msg,
		Errors:  errs,
	}
}

// ValidationFailed формирует ответ на непройденную валидацию: общее сообщение
// "Validation failed." и сообщения по каждому полю в errors.
func ValidationFailed(errs []string) Response {
	return ErrorWithDetails("Validation failed.", errs)
}
