package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CarSpot/internal/api/handlers"
)

const (
	msgTooManyRequests = "Too many requests"
	msgTryAgainLater   = "Please try again later"
)

// TooManyRequestsResponse тело ответа 429
type TooManyRequestsResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retryAfter"`
}

// RateLimit ограничивает число запросов с одного адреса клиента
// trustProxy включает использование первого адреса из X-Forwarded-For
func RateLimit(limiter Limiter, m RateLimitMetrics, logger Logger, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r, trustProxy)
			decision := limiter.Allow(key)

			if m != nil {
				m.SetRateLimitClients(limiter.Len())
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

			if !decision.Allowed {
				if m != nil {
					m.IncRateLimitRejected()
				}
				logger.Warn("%s %s - Rate limit exceeded: client=%s, retry_after=%ds",
					r.Method, r.URL.Path, key, decision.RetryAfter)

				w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))
				handlers.RespondJSON(w, http.StatusTooManyRequests, TooManyRequestsResponse{
					Error:      msgTooManyRequests,
					Message:    msgTryAgainLater,
					RetryAfter: decision.RetryAfter,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP адрес клиента без порта
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
