package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

var ErrInvalidConfig = errors.New("ratelimit: limit and window must be positive")

// Config параметры фиксированного окна
type Config struct {
	Limit  int
	Window time.Duration
}

// DefaultConfig 100 запросов за 60 секунд
func DefaultConfig() Config {
	return Config{
		Limit:  domain.DefaultRateLimitRequests,
		Window: time.Duration(domain.DefaultRateLimitWindowMs) * time.Millisecond,
	}
}

// Decision результат проверки одного запроса
type Decision struct {
	Allowed   bool
	Count     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter секунды до конца окна, округленные вверх; заполняется только при отказе
	RetryAfter int
}

// Limiter ограничитель запросов с фиксированным окном на ключ клиента
type Limiter struct {
	cfg    Config
	store  Store
	clock  Clock
	logger Logger

	mu sync.Mutex
}

// New создает ограничитель; logger может быть nil
func New(cfg Config, store Store, clock Clock, logger Logger) (*Limiter, error) {
	if cfg.Limit <= 0 || cfg.Window <= 0 {
		return nil, ErrInvalidConfig
	}
	return &Limiter{
		cfg:    cfg,
		store:  store,
		clock:  clock,
		logger: logger,
	}, nil
}

// Limit емкость окна
func (l *Limiter) Limit() int {
	return l.cfg.Limit
}

// Allow учитывает запрос клиента key
//
// Новое окно открывается, если записи нет или текущее время строго позже
// времени сброса. Отклоненный запрос счетчик не увеличивает.
func (l *Limiter) Allow(key string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	entry, ok := l.store.Get(key)
	if !ok || now.After(entry.ResetAt) {
		entry = Entry{Count: 0, ResetAt: now.Add(l.cfg.Window)}
	}

	if entry.Count >= l.cfg.Limit {
		return Decision{
			Allowed:    false,
			Count:      entry.Count,
			Remaining:  0,
			ResetAt:    entry.ResetAt,
			RetryAfter: retryAfter(entry.ResetAt.Sub(now)),
		}
	}

	entry.Count++
	l.store.Set(key, entry)

	return Decision{
		Allowed:   true,
		Count:     entry.Count,
		Remaining: l.cfg.Limit - entry.Count,
		ResetAt:   entry.ResetAt,
	}
}

// Sweep удаляет записи, время сброса которых уже прошло, и возвращает их число
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	var expired []string
	l.store.Range(func(key string, entry Entry) bool {
		if entry.ResetAt.Before(now) {
			expired = append(expired, key)
		}
		return true
	})
	for _, key := range expired {
		l.store.Delete(key)
	}
	return len(expired)
}

// Len количество отслеживаемых клиентов
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Len()
}

// Run вызывает Sweep раз в окно, пока не отменен ctx
func (l *Limiter) Run(ctx context.Context) {
	ticker := time.NewTicker(l.cfg.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := l.Sweep()
			if l.logger != nil {
				l.logger.Debug("Rate limiter sweep: removed=%d, clients=%d", removed, l.Len())
			}
		}
	}
}

func retryAfter(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
