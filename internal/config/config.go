package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML-файла
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Sessions SessionsConfig `toml:"sessions"`
	Database DatabaseConfig `toml:"database"`
	Wizard   WizardConfig   `toml:"wizard"`

	Availability  IntegrationConfig `toml:"availability_service"`
	AuthService   IntegrationConfig `toml:"auth_service"`
	ClientService IntegrationConfig `toml:"client_service"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки разбора токенов портала
// Секрет общий с внешним auth-сервисом: токены здесь только валидируются
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// SessionsConfig настройки хранилища сессий мастера
type SessionsConfig struct {
	Store      string `toml:"store"` // memory | postgres
	TTLMinutes int    `toml:"ttl_minutes"`
}

// DatabaseConfig настройки PostgreSQL (используется только при store = "postgres")
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// WizardConfig настройки поведения мастера
type WizardConfig struct {
	PhoneLookupDebounceMs int `toml:"phone_lookup_debounce_ms"`
	PhoneLookupMinDigits  int `toml:"phone_lookup_min_digits"`
}

// IntegrationConfig настройки внешнего REST-сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Дефолты, применяемые при отсутствии значений в файле
const (
	defaultSessionTTLMinutes = 60
	defaultDebounceMs        = 400
	defaultMinLookupDigits   = 10
	defaultShutdownTimeout   = 10
)

// Load загружает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		return nil, fmt.Errorf("config: server.http_port is required")
	}
	if cfg.Availability.URL == "" || cfg.AuthService.URL == "" || cfg.ClientService.URL == "" {
		return nil, fmt.Errorf("config: availability_service.url, auth_service.url and client_service.url are required")
	}

	if cfg.Sessions.Store == "" {
		cfg.Sessions.Store = "memory"
	}
	if cfg.Sessions.Store != "memory" && cfg.Sessions.Store != "postgres" {
		return nil, fmt.Errorf("config: unknown sessions.store %q", cfg.Sessions.Store)
	}
	if cfg.Sessions.TTLMinutes <= 0 {
		cfg.Sessions.TTLMinutes = defaultSessionTTLMinutes
	}
	if cfg.Wizard.PhoneLookupDebounceMs <= 0 {
		cfg.Wizard.PhoneLookupDebounceMs = defaultDebounceMs
	}
	if cfg.Wizard.PhoneLookupMinDigits <= 0 {
		cfg.Wizard.PhoneLookupMinDigits = defaultMinLookupDigits
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	return &cfg, nil
}
