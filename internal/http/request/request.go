// Package request разбирает тела входящих запросов. API принимает как JSON,
// так и обычные HTML-формы, поэтому декодирование выбирается по Content-Type.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
)

// ErrUnsupportedContentType — тело запроса в неподдерживаемом формате.
var ErrUnsupportedContentType = errors.New("unsupported content type")

// FormUnmarshaler заполняет структуру из значений HTML-формы.
type FormUnmarshaler interface {
	UnmarshalForm(values url.Values)
}

// Decode читает тело запроса в dst. JSON разбирается напрямую, формы
// application/x-www-form-urlencoded и multipart/form-data — через
// FormUnmarshaler. Пустой Content-Type трактуется как форма, как это
// делают простые HTML-клиенты.
func Decode(r *http.Request, dst FormUnmarshaler) error {
	const op = "request.Decode"

	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	case "", "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		dst.UnmarshalForm(r.PostForm)
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		dst.UnmarshalForm(r.PostForm)
		return nil
	default:
		return fmt.Errorf("%s: %w: %s", op, ErrUnsupportedContentType, mediaType)
	}
}
