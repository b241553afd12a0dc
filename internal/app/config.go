package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/personnel-backend/internal/data/db"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/envutil"
	"github.com/yungbote/personnel-backend/internal/services"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	minJWTSecretLength = 10
)

type Config struct {
	Env             string        `yaml:"env"`
	Port            int           `yaml:"port"`
	LogMode         string        `yaml:"logMode"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	SeedAdmin       bool          `yaml:"seedAdmin"`

	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Otel     OtelConfig     `yaml:"otel"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslMode"`
	SQLitePath      string        `yaml:"sqlitePath"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	SlowThreshold   time.Duration `yaml:"slowThreshold"`
}

type AuthConfig struct {
	Secret           string `yaml:"secret"`
	ExpiresInSeconds int    `yaml:"expiresIn"`
	Audience         string `yaml:"audience"`
	Issuer           string `yaml:"issuer"`
	BcryptCost       int    `yaml:"bcryptCost"`
}

type MetricsConfig struct {
	Enabled          bool          `yaml:"enabled"`
	Addr             string        `yaml:"addr"`
	RedisAddr        string        `yaml:"redisAddr"`
	ScrapeInterval   time.Duration `yaml:"scrapeInterval"`
	LatencyThreshold time.Duration `yaml:"latencyThreshold"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"serviceName"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	Headers     string  `yaml:"headers"`
	SampleRatio float64 `yaml:"sampleRatio"`
}

func defaultConfig() Config {
	return Config{
		Env:             EnvDevelopment,
		Port:            3000,
		LogMode:         EnvDevelopment,
		ShutdownTimeout: 10 * time.Second,
		Database: DatabaseConfig{
			Driver:        db.DriverPostgres,
			Host:          "localhost",
			Port:          5432,
			SSLMode:       "disable",
			SQLitePath:    "personnel.db",
			MaxOpenConns:  20,
			MaxIdleConns:  10,
			SlowThreshold: time.Second,
		},
		Auth: AuthConfig{
			ExpiresInSeconds: 3600,
			BcryptCost:       10,
		},
		Metrics: MetricsConfig{
			Addr:           ":9090",
			ScrapeInterval: 10 * time.Second,
		},
		Otel: OtelConfig{
			ServiceName: "personnel-backend",
			SampleRatio: 0.1,
		},
	}
}

// LoadConfig starts from defaults, applies the YAML file named by CONFIG_FILE
// when set, then lets environment variables override individual keys.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()
	if path, ok := envutil.Lookup("CONFIG_FILE"); ok {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Env = envutil.String("APP_ENV", c.Env)
	c.Port = envutil.Int("PORT", c.Port)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)
	if v, ok := envutil.Lookup("CORS_ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = splitList(v)
	}
	c.ShutdownTimeout = seconds("SHUTDOWN_TIMEOUT_SECONDS", c.ShutdownTimeout)
	c.SeedAdmin = envutil.Bool("SEED_ADMIN", c.SeedAdmin)

	d := &c.Database
	d.Driver = envutil.String("DB_DRIVER", d.Driver)
	d.Host = envutil.String("POSTGRES_HOST", d.Host)
	d.Port = envutil.Int("POSTGRES_PORT", d.Port)
	d.User = envutil.String("POSTGRES_USER", d.User)
	d.Password = envutil.String("POSTGRES_PASSWORD", d.Password)
	d.Name = envutil.String("POSTGRES_NAME", d.Name)
	d.SSLMode = envutil.String("POSTGRES_SSLMODE", d.SSLMode)
	d.SQLitePath = envutil.String("SQLITE_PATH", d.SQLitePath)
	d.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", d.MaxOpenConns)
	d.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", d.MaxIdleConns)
	d.ConnMaxLifetime = seconds("DB_CONN_MAX_LIFETIME_SECONDS", d.ConnMaxLifetime)

	a := &c.Auth
	a.Secret = envutil.String("JWT_TOKEN_SECRET", a.Secret)
	a.ExpiresInSeconds = envutil.Int("JWT_TOKEN_EXPIRESIN", a.ExpiresInSeconds)
	a.Audience = envutil.String("JWT_TOKEN_AUDIENCE", a.Audience)
	a.Issuer = envutil.String("JWT_TOKEN_ISSUER", a.Issuer)
	a.BcryptCost = envutil.Int("BCRYPT_COST", a.BcryptCost)

	m := &c.Metrics
	m.Enabled = envutil.Bool("METRICS_ENABLED", m.Enabled)
	m.Addr = envutil.String("METRICS_ADDR", m.Addr)
	m.RedisAddr = envutil.String("REDIS_ADDR", m.RedisAddr)
	m.ScrapeInterval = seconds("METRICS_SCRAPE_INTERVAL_SECONDS", m.ScrapeInterval)

	o := &c.Otel
	o.Enabled = envutil.Bool("OTEL_ENABLED", o.Enabled)
	o.ServiceName = envutil.String("OTEL_SERVICE_NAME", o.ServiceName)
	o.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", o.Endpoint)
	o.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", o.Insecure)
	o.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", o.Headers)
	if v, ok := envutil.Lookup("OTEL_SAMPLER_RATIO"); ok {
		if ratio, err := strconv.ParseFloat(v, 64); err == nil {
			o.SampleRatio = ratio
		}
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be one of development, production, test (got %q)", c.Env))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535 (got %d)", c.Port))
	}
	switch strings.ToLower(c.Database.Driver) {
	case db.DriverPostgres:
		if strings.TrimSpace(c.Database.Host) == "" {
			errs = append(errs, errors.New("POSTGRES_HOST is required"))
		}
		if strings.TrimSpace(c.Database.User) == "" {
			errs = append(errs, errors.New("POSTGRES_USER is required"))
		}
		if strings.TrimSpace(c.Database.Name) == "" {
			errs = append(errs, errors.New("POSTGRES_NAME is required"))
		}
	case db.DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite (got %q)", c.Database.Driver))
	}
	if len(c.Auth.Secret) < minJWTSecretLength {
		errs = append(errs, fmt.Errorf("JWT_TOKEN_SECRET must be at least %d characters", minJWTSecretLength))
	}
	if c.Auth.ExpiresInSeconds <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TOKEN_EXPIRESIN must be positive (got %d)", c.Auth.ExpiresInSeconds))
	}
	if c.Env == EnvProduction && c.SeedAdmin {
		errs = append(errs, errors.New("SEED_ADMIN must not be enabled in production"))
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		errs = append(errs, errors.New("METRICS_ADDR is required when metrics are enabled"))
	}
	return errors.Join(errs...)
}

func (c Config) DB() db.Config {
	d := c.Database
	return db.Config{
		Driver:           strings.ToLower(d.Driver),
		PostgresHost:     d.Host,
		PostgresPort:     d.Port,
		PostgresUser:     d.User,
		PostgresPassword: d.Password,
		PostgresName:     d.Name,
		PostgresSSLMode:  d.SSLMode,
		SQLitePath:       d.SQLitePath,
		MaxOpenConns:     d.MaxOpenConns,
		MaxIdleConns:     d.MaxIdleConns,
		ConnMaxLifetime:  d.ConnMaxLifetime,
		SlowThreshold:    d.SlowThreshold,
	}
}

func (c Config) AuthService() services.AuthConfig {
	return services.AuthConfig{
		Secret:   c.Auth.Secret,
		TTL:      time.Duration(c.Auth.ExpiresInSeconds) * time.Second,
		Issuer:   c.Auth.Issuer,
		Audience: c.Auth.Audience,
	}
}

func (c Config) MetricsService() observability.MetricsConfig {
	return observability.MetricsConfig{
		Enabled:          c.Metrics.Enabled,
		Addr:             c.Metrics.Addr,
		ScrapeInterval:   c.Metrics.ScrapeInterval,
		LatencyThreshold: c.Metrics.LatencyThreshold,
	}
}

func (c Config) OtelService() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Env,
		Endpoint:    c.Otel.Endpoint,
		Insecure:    c.Otel.Insecure,
		Headers:     observability.ParseOTLPHeaders(c.Otel.Headers),
		SampleRatio: c.Otel.SampleRatio,
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func seconds(name string, def time.Duration) time.Duration {
	if _, ok := envutil.Lookup(name); !ok {
		return def
	}
	n := envutil.Int(name, -1)
	if n < 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
