// AngelaMos | 2026
// config.go

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Session   SessionConfig   `koanf:"session"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Uploads   UploadsConfig   `koanf:"uploads"`
	Orders    OrdersConfig    `koanf:"orders"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	PublicURL       string        `koanf:"public_url"`
	StaticDir       string        `koanf:"static_dir"`
	TrustProxy      bool          `koanf:"trust_proxy"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath string        `koanf:"private_key_path"`
	PublicKeyPath  string        `koanf:"public_key_path"`
	SessionExpire  time.Duration `koanf:"session_expire"`
	Issuer         string        `koanf:"issuer"`
	Audience       string        `koanf:"audience"`
}

type SessionConfig struct {
	CookieName  string `koanf:"cookie_name"`
	LoginPath   string `koanf:"login_path"`
	LandingPath string `koanf:"landing_path"`
}

type RateLimitConfig struct {
	Requests      int           `koanf:"requests"`
	Window        time.Duration `koanf:"window"`
	Burst         int           `koanf:"burst"`
	LoginRequests int           `koanf:"login_requests"`
	LoginWindow   time.Duration `koanf:"login_window"`
	OrderRequests int           `koanf:"order_requests"`
	OrderWindow   time.Duration `koanf:"order_window"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type UploadsConfig struct {
	Driver            string        `koanf:"driver"`
	Dir               string        `koanf:"dir"`
	URLPrefix         string        `koanf:"url_prefix"`
	PublicBaseURL     string        `koanf:"public_base_url"`
	MaxSize           int64         `koanf:"max_size"`
	AllowedTypes      []string      `koanf:"allowed_types"`
	ReconcileSchedule string        `koanf:"reconcile_schedule"`
	OrphanGrace       time.Duration `koanf:"orphan_grace"`
	S3                S3Config      `koanf:"s3"`
}

type S3Config struct {
	Bucket          string `koanf:"bucket"`
	Region          string `koanf:"region"`
	Endpoint        string `koanf:"endpoint"`
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`
	Prefix          string `koanf:"prefix"`
	UsePathStyle    bool   `koanf:"use_path_style"`
}

type OrdersConfig struct {
	AllowStatusRollback bool `koanf:"allow_status_rollback"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

const (
	UploadDriverLocal = "local"
	UploadDriverS3    = "s3"
)

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		err := k.Load(file.Provider(configPath), yaml.Parser())
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Wedding Organizer",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.public_url":       "http://localhost:8080",
		"server.static_dir":       "",
		"server.trust_proxy":      false,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "60s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.host":               "localhost",
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.auto_migrate":       true,
		"database.max_open_conns":     10,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 2,

		"jwt.session_expire":   "720h",
		"jwt.issuer":           "wedding-backend",
		"jwt.audience":         "wedding-admin",
		"jwt.private_key_path": "keys/private.pem",
		"jwt.public_key_path":  "keys/public.pem",

		"session.cookie_name":  "wedding_session",
		"session.login_path":   "/login",
		"session.landing_path": "/admin/website-profile",

		"rate_limit.requests":       100,
		"rate_limit.window":         "1m",
		"rate_limit.burst":          20,
		"rate_limit.login_requests": 10,
		"rate_limit.login_window":   "5m",
		"rate_limit.order_requests": 5,
		"rate_limit.order_window":   "10m",

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"uploads.driver":     UploadDriverLocal,
		"uploads.dir":        "public/uploads",
		"uploads.url_prefix": "/uploads",
		"uploads.max_size":   10 << 20,
		"uploads.allowed_types": []string{
			"image/jpeg",
			"image/png",
			"image/webp",
			"image/gif",
		},
		"uploads.reconcile_schedule": "@daily",
		"uploads.orphan_grace":       "1h",
		"uploads.s3.region":          "us-east-1",
		"uploads.s3.prefix":          "uploads/",

		"orders.allow_status_rollback": false,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "wedding-backend",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":                 "database.url",
	"DB_HOST":                      "database.host",
	"DB_PORT":                      "database.port",
	"DB_USER":                      "database.user",
	"DB_PASS":                      "database.password",
	"DB_PASSWORD":                  "database.password",
	"DB_NAME":                      "database.name",
	"DB_SSL_MODE":                  "database.ssl_mode",
	"DB_AUTO_MIGRATE":              "database.auto_migrate",
	"REDIS_URL":                    "redis.url",
	"ENVIRONMENT":                  "app.environment",
	"HOST":                         "server.host",
	"PORT":                         "server.port",
	"PUBLIC_URL":                   "server.public_url",
	"STATIC_DIR":                   "server.static_dir",
	"TRUST_PROXY":                  "server.trust_proxy",
	"LOG_LEVEL":                    "log.level",
	"LOG_FORMAT":                   "log.format",
	"JWT_PRIVATE_KEY_PATH":         "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":          "jwt.public_key_path",
	"JWT_SESSION_EXPIRE":           "jwt.session_expire",
	"JWT_ISSUER":                   "jwt.issuer",
	"JWT_AUDIENCE":                 "jwt.audience",
	"SESSION_COOKIE_NAME":          "session.cookie_name",
	"RATE_LIMIT_REQUESTS":          "rate_limit.requests",
	"RATE_LIMIT_WINDOW":            "rate_limit.window",
	"RATE_LIMIT_BURST":             "rate_limit.burst",
	"UPLOAD_DRIVER":                "uploads.driver",
	"UPLOAD_DIR":                   "uploads.dir",
	"UPLOAD_PUBLIC_BASE_URL":       "uploads.public_base_url",
	"UPLOAD_MAX_SIZE":              "uploads.max_size",
	"UPLOAD_RECONCILE_SCHEDULE":    "uploads.reconcile_schedule",
	"S3_BUCKET":                    "uploads.s3.bucket",
	"S3_REGION":                    "uploads.s3.region",
	"S3_ENDPOINT":                  "uploads.s3.endpoint",
	"S3_ACCESS_KEY_ID":             "uploads.s3.access_key_id",
	"S3_SECRET_ACCESS_KEY":         "uploads.s3.secret_access_key",
	"S3_USE_PATH_STYLE":            "uploads.s3.use_path_style",
	"ORDERS_ALLOW_STATUS_ROLLBACK": "orders.allow_status_rollback",
	"OTEL_ENDPOINT":                "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT":  "otel.endpoint",
	"OTEL_SERVICE_NAME":            "otel.service_name",
	"OTEL_ENABLED":                 "otel.enabled",
	"OTEL_INSECURE":                "otel.insecure",
	"OTEL_SAMPLE_RATE":             "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" && (c.Database.User == "" || c.Database.Name == "") {
		return fmt.Errorf("DATABASE_URL or DB_USER and DB_NAME are required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.JWT.SessionExpire <= 0 {
		return fmt.Errorf("jwt.session_expire must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	switch c.Uploads.Driver {
	case UploadDriverLocal:
		if c.Uploads.Dir == "" {
			return fmt.Errorf("uploads.dir is required for the local driver")
		}
	case UploadDriverS3:
		if c.Uploads.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown upload driver %q", c.Uploads.Driver)
	}

	if !strings.HasPrefix(c.Uploads.URLPrefix, "/") ||
		strings.HasSuffix(c.Uploads.URLPrefix, "/") {
		return fmt.Errorf("uploads.url_prefix must start and not end with '/'")
	}

	if c.Uploads.MaxSize <= 0 {
		return fmt.Errorf("uploads.max_size must be positive")
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DSN returns URL when set, otherwise a pgx connection URL assembled from
// the discrete DB_* settings.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}

	return u.String()
}

// BaseURL is the absolute origin prepended to stored upload paths.
func (u *UploadsConfig) BaseURL(server ServerConfig) string {
	if u.PublicBaseURL != "" {
		return strings.TrimRight(u.PublicBaseURL, "/")
	}
	return strings.TrimRight(server.PublicURL, "/")
}
