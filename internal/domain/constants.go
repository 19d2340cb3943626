package domain

// Ограничения длины строковых полей (совпадают с размерами колонок в схеме)
const (
	MaxUsernameLength = 50
	MaxEmailLength    = 100
	MaxNameLength     = 50
	MaxLocationLength = 50
	MaxEngineLength   = 50
)

// Параметры rate limiter по умолчанию
const (
	DefaultRateLimitWindowMs = 60000
	DefaultRateLimitRequests = 100
)

// Режимы запуска приложения
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)
