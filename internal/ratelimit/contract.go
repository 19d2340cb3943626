package ratelimit

import "time"

// Store хранилище счетчиков по ключу клиента
// Реализации не обязаны быть потокобезопасными: Limiter сериализует доступ
type Store interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry)
	Delete(key string)
	// Range обходит все записи; обход прекращается, если fn вернула false
	Range(fn func(key string, entry Entry) bool)
	Len() int
}

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

type Logger interface {
	Debug(format string, v ...interface{})
}

// SystemClock реальные часы для production
type SystemClock struct{}

// Now возвращает текущее время
func (SystemClock) Now() time.Time {
	return time.Now()
}
