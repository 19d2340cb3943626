package validation

import (
	"context"
	"strings"
)

// Payload тело запроса: имя поля -> сырое значение (string, float64, bool, nil)
// После успешной валидации строки обрезаны, а числовые поля приведены к int64/float64
type Payload map[string]any

// String возвращает строковое значение поля или пустую строку
func (p Payload) String(field string) string {
	s, _ := p[field].(string)
	return s
}

// Int возвращает нормализованное целое значение поля
func (p Payload) Int(field string) int64 {
	n, _ := p[field].(int64)
	return n
}

// Float возвращает нормализованное вещественное значение поля
func (p Payload) Float(field string) float64 {
	f, _ := p[field].(float64)
	return f
}

// present проверяет, что значение поля задано
// Отсутствующее поле, null, false и пустая строка считаются незаданными
func present(raw any, ok bool) bool {
	if !ok || raw == nil {
		return false
	}
	switch v := raw.(type) {
	case string:
		return v != ""
	case bool:
		return v
	default:
		return true
	}
}

// trimmed возвращает обрезанную строку, если значение - непустая строка
func trimmed(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

type ctxKey struct{}

// WithPayload кладет нормализованный payload в контекст запроса
func WithPayload(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// PayloadFromContext достает payload, положенный middleware валидации
func PayloadFromContext(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(ctxKey{}).(Payload)
	return p, ok
}
