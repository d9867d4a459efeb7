package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Storage    StorageConfig    `yaml:"storage"`
	Database   DatabaseConfig   `yaml:"database"`
	SQLite     SQLiteConfig     `yaml:"sqlite"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	AI         AIConfig         `yaml:"ai"`
	FreeBusy   FreeBusyConfig   `yaml:"freebusy"`
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// Requests per minute per user (or per client IP when anonymous). Zero disables throttling.
	RateLimit int `yaml:"rate_limit" env:"SERVER_RATE_LIMIT" env-default:"300"`
}

// StorageConfig selects the primary event backend. When Fallback is set,
// writes that fail with an unavailable store are retried in memory.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	// Defaults to true via preset; false is a valid setting.
	Fallback bool `yaml:"fallback" env:"STORAGE_FALLBACK"`
}

// preset holds defaults whose zero value is a valid setting. cleanenv
// applies env-default to zero fields, so these are set before loading.
func preset() Config {
	return Config{Storage: StorageConfig{Fallback: true}}
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// SQLiteConfig holds the embedded database settings.
type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./bizdash.db"`
}

// RedisConfig enables the preference cache and the change feed. An empty Addr disables both.
type RedisConfig struct {
	Addr          string        `yaml:"addr"           env:"REDIS_ADDR"`
	Password      string        `yaml:"password"       env:"REDIS_PASSWORD"`
	DB            int           `yaml:"db"             env:"REDIS_DB"             env-default:"0"`
	PrefsTTL      time.Duration `yaml:"prefs_ttl"      env:"REDIS_PREFS_TTL"      env-default:"24h"`
	ChangeChannel string        `yaml:"change_channel" env:"REDIS_CHANGE_CHANNEL" env-default:"calendar.events"`
}

// Enabled reports whether a Redis server is configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// AuthConfig holds bearer token settings.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"bizdash"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SchedulingConfig holds the tunables of conflict detection and slot search.
type SchedulingConfig struct {
	BackToBackBuffer    time.Duration `yaml:"back_to_back_buffer"  env:"SCHED_BACK_TO_BACK_BUFFER"  env-default:"5m"`
	ResolutionBuffer    time.Duration `yaml:"resolution_buffer"    env:"SCHED_RESOLUTION_BUFFER"    env-default:"15m"`
	AlternativesHorizon time.Duration `yaml:"alternatives_horizon" env:"SCHED_ALTERNATIVES_HORIZON" env-default:"168h"`
	AvailabilityHorizon time.Duration `yaml:"availability_horizon" env:"SCHED_AVAILABILITY_HORIZON" env-default:"720h"`
	SearchStep          time.Duration `yaml:"search_step"          env:"SCHED_SEARCH_STEP"          env-default:"1h"`
	MaxAlternatives     int           `yaml:"max_alternatives"     env:"SCHED_MAX_ALTERNATIVES"     env-default:"3"`
	MaxAvailable        int           `yaml:"max_available"        env:"SCHED_MAX_AVAILABLE"        env-default:"10"`
	MaxSuggestions      int           `yaml:"max_suggestions"      env:"SCHED_MAX_SUGGESTIONS"      env-default:"5"`

	// Minimum max-priority weight for each severity level.
	SeverityCritical int `yaml:"severity_critical" env:"SCHED_SEVERITY_CRITICAL" env-default:"4"`
	SeverityHigh     int `yaml:"severity_high"     env:"SCHED_SEVERITY_HIGH"     env-default:"3"`
	SeverityMedium   int `yaml:"severity_medium"   env:"SCHED_SEVERITY_MEDIUM"   env-default:"2"`

	// Span a recurring event is expanded over during conflict detection.
	RecurrenceHorizon time.Duration `yaml:"recurrence_horizon" env:"SCHED_RECURRENCE_HORIZON" env-default:"2160h"`

	// Zero disables the rule.
	TravelTime      time.Duration `yaml:"travel_time"        env:"SCHED_TRAVEL_TIME"        env-default:"0s"`
	MaxEventsPerDay int           `yaml:"max_events_per_day" env:"SCHED_MAX_EVENTS_PER_DAY" env-default:"0"`
}

// AIConfig holds the suggestion generator settings. An empty APIKey disables it.
type AIConfig struct {
	APIKey    string        `yaml:"api_key"    env:"AI_API_KEY"`
	Model     string        `yaml:"model"      env:"AI_MODEL"      env-default:"claude-haiku-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout"    env:"AI_TIMEOUT"    env-default:"10s"`
}

// Enabled reports whether the suggestion generator is configured.
func (a AIConfig) Enabled() bool { return a.APIKey != "" }

// FreeBusyConfig points at an external attendee availability service. An
// empty URL disables attendee free/busy checks.
type FreeBusyConfig struct {
	URL     string        `yaml:"url"     env:"FREEBUSY_URL"`
	Timeout time.Duration `yaml:"timeout" env:"FREEBUSY_TIMEOUT" env-default:"10s"`
}

// Enabled reports whether a free/busy service is configured.
func (f FreeBusyConfig) Enabled() bool { return f.URL != "" }
