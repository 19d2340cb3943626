package middleware

import (
	"time"

	"github.com/m04kA/SMC-CarSpot/internal/ratelimit"
)

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type HTTPMetrics interface {
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}

type RateLimitMetrics interface {
	IncRateLimitRejected()
	SetRateLimitClients(n int)
}

// Limiter ограничитель запросов по ключу клиента
type Limiter interface {
	Allow(key string) ratelimit.Decision
	Limit() int
	Len() int
}
