package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-CarSpot/internal/domain"
)

var (
	ErrInvalidRateLimit = errors.New("config: rate_limit.requests and rate_limit.window_ms must be positive")
	ErrEmptyDBName      = errors.New("config: database.dbname is required")
	ErrInvalidPort      = errors.New("config: server.http_port must be in 1..65535")
)

type Config struct {
	App       AppConfig       `toml:"app"`
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	CORS      CORSConfig      `toml:"cors"`
}

type AppConfig struct {
	// Environment режим запуска: development включает подробные ответы 500
	Environment string `toml:"environment"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

type RateLimitConfig struct {
	Enabled  bool `toml:"enabled"`
	Requests int  `toml:"requests"`
	WindowMs int  `toml:"window_ms"`
	// TrustProxy брать адрес клиента из X-Forwarded-For
	TrustProxy bool `toml:"trust_proxy"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	AllowedMethods []string `toml:"allowed_methods"`
	AllowedHeaders []string `toml:"allowed_headers"`
	MaxAge         int      `toml:"max_age"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		App: AppConfig{Environment: domain.EnvProduction},
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "carspot",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "carspot",
			Path:        "/metrics",
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: domain.DefaultRateLimitRequests,
			WindowMs: domain.DefaultRateLimitWindowMs,
		},
	}
}

// Load читает TOML-файл поверх значений по умолчанию, затем .env и переменные окружения
// Отсутствующие config.toml и .env не считаются ошибкой
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("APP_ENV", &c.App.Environment)
	setString("DB_HOST", &c.Database.Host)
	setString("DB_USER", &c.Database.User)
	setString("DB_PASSWORD", &c.Database.Password)
	setString("DB_NAME", &c.Database.DBName)
	setString("DB_SSLMODE", &c.Database.SSLMode)
	setString("LOG_LEVEL", &c.Logs.Level)

	if err := setInt("PORT", &c.Server.HTTPPort); err != nil {
		return err
	}
	return setInt("DB_PORT", &c.Database.Port)
}

// Validate проверяет значения, без которых сервис не может стартовать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return ErrInvalidPort
	}
	if c.Database.DBName == "" {
		return ErrEmptyDBName
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.WindowMs <= 0 {
		return ErrInvalidRateLimit
	}
	return nil
}

// IsDevelopment включен ли режим разработки
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == domain.EnvDevelopment
}

// RateLimitWindow длительность окна rate limiter
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowMs) * time.Millisecond
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}
