// Package sanitize подготавливает текстовые поля форм к сохранению:
// обрезает пробелы, вырезает HTML-теги и экранирует значимые для разметки символы.
// Поля регистрации сохраняются уже в безопасном для вывода виде.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// Field очищает одно текстовое поле: trim, удаление тегов, HTML-экранирование.
func Field(s string) string {
	s = strings.TrimSpace(s)
	s = tagRe.ReplaceAllString(s, "")
	return html.EscapeString(s)
}

// Email нормализует email для сравнения на уникальность:
// обрезает пробелы и приводит к нижнему регистру.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
