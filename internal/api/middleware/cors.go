package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	defaultAllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	defaultAllowedHeaders = "Content-Type, Authorization"
)

// CORSOptions настройки CORS; пустой список origins разрешает любой источник
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS добавляет заголовки CORS и отвечает на preflight-запросы
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	methods := joinOrDefault(opts.AllowedMethods, defaultAllowedMethods)
	headers := joinOrDefault(opts.AllowedHeaders, defaultAllowedHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed, ok := opts.allowOrigin(origin); ok {
				w.Header().Set("Access-Control-Allow-Origin", allowed)
				if allowed != "*" {
					w.Header().Add("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if opts.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(opts.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// allowOrigin возвращает значение Access-Control-Allow-Origin для источника
func (o CORSOptions) allowOrigin(origin string) (string, bool) {
	if len(o.AllowedOrigins) == 0 {
		return "*", true
	}
	for _, allowed := range o.AllowedOrigins {
		if allowed == "*" {
			return "*", true
		}
		if origin != "" && allowed == origin {
			return origin, true
		}
	}
	return "", false
}

func joinOrDefault(values []string, defaultVal string) string {
	if len(values) == 0 {
		return defaultVal
	}
	return strings.Join(values, ", ")
}
