package validation

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidID          = "Invalid ID parameter"
)

// IDParams имена параметров пути, из которых берется идентификатор (в порядке приоритета)
var IDParams = []string{"id", "id_user", "id_car"}

// Middleware mux-middleware валидации: при отказе сама пишет 400 и не передает управление дальше
type Middleware struct {
	logger  Logger
	metrics Metrics
}

// NewMiddleware создает middleware валидации; metrics может быть nil
func NewMiddleware(logger Logger, metrics Metrics) *Middleware {
	return &Middleware{logger: logger, metrics: metrics}
}

// Body декодирует тело запроса (JSON или form), проверяет его валидатором v
// и кладет нормализованный payload в контекст запроса
func (m *Middleware) Body(v *Validator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, err := decodePayload(r)
			if err != nil {
				m.logger.Warn("%s %s - Invalid request body: %v", r.Method, r.URL.Path, err)
				m.reject(w, v.Name(), msgInvalidRequestBody)
				return
			}

			if err := v.Validate(payload); err != nil {
				m.logger.Warn("%s %s - Validation failed: validator=%s, error=%v", r.Method, r.URL.Path, v.Name(), err)
				m.reject(w, v.Name(), err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}

// ID проверяет первый найденный параметр пути из IDParams
// и записывает нормализованное значение обратно в переменные маршрута
func (m *Middleware) ID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		for _, name := range IDParams {
			raw := vars[name]
			if raw == "" {
				continue
			}
			if !m.normalizeVar(vars, name) {
				m.logger.Warn("%s %s - Invalid ID parameter: %s=%q", r.Method, r.URL.Path, name, raw)
				m.reject(w, "id", msgInvalidID)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		m.logger.Warn("%s %s - Missing ID parameter", r.Method, r.URL.Path)
		m.reject(w, "id", msgInvalidID)
	})
}

// CompositeID проверяет оба параметра составного ключа spot: id_user и id_car
func (m *Middleware) CompositeID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		for _, name := range []string{"id_user", "id_car"} {
			if !m.normalizeVar(vars, name) {
				m.logger.Warn("%s %s - Invalid ID parameter: %s=%q", r.Method, r.URL.Path, name, vars[name])
				m.reject(w, "composite_id", msgInvalidID)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// normalizeVar разбирает параметр пути и заменяет его каноническим значением
func (m *Middleware) normalizeVar(vars map[string]string, name string) bool {
	n, ok := parseIntPrefix(vars[name])
	if !ok || n <= 0 {
		return false
	}
	vars[name] = strconv.FormatInt(n, 10)
	return true
}

func (m *Middleware) reject(w http.ResponseWriter, validator, message string) {
	if m.metrics != nil {
		m.metrics.IncValidationRejected(validator)
	}
	handlers.RespondBadRequest(w, message)
}

// RouteID возвращает уже проверенный параметр пути
func RouteID(r *http.Request, name string) int64 {
	n, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return n
}

func decodePayload(r *http.Request) (Payload, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		payload := make(Payload, len(r.PostForm))
		for key := range r.PostForm {
			payload[key] = r.PostForm.Get(key)
		}
		return payload, nil
	}

	payload := make(Payload)
	if err := handlers.DecodeJSON(r, &payload); err != nil {
		if errors.Is(err, handlers.ErrEmptyBody) {
			return make(Payload), nil
		}
		return nil, err
	}
	if payload == nil {
		// тело "null"
		payload = make(Payload)
	}
	return payload, nil
}
