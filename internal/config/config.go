package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxRetries  int
	AutoMigrate bool
	SlowQuery   time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type JWTConfig struct {
	Secret       string
	AccessExpiry time.Duration
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type OutboxConfig struct {
	PollInterval time.Duration
	BatchSize    int
	Retention    time.Duration
}

type Config struct {
	AppEnv       string
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	KafkaBroker  string
	JWT          JWTConfig
	AdminEmails  []string
	EnforceAdmin bool
	CORSOrigins  []string
	SentryDSN    string
	Outbox       OutboxConfig
}

// Load reads the process environment. Call godotenv.Load first when a .env
// file should be honoured.
func Load() Config {
	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Port:         getEnv("PORT", "5000"),
			ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		DB: DBConfig{
			Host:        getEnv("DB_HOST", getEnv("PGHOST", "localhost")),
			Port:        getEnv("DB_PORT", getEnv("PGPORT", "5432")),
			User:        getEnv("DB_USER", getEnv("PGUSER", "postgres")),
			Password:    getEnv("DB_PASSWORD", getEnv("PGPASSWORD", "")),
			Name:        getEnv("DB_NAME", getEnv("PGDATABASE", "hr_portal")),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxRetries:  getEnvInt("DB_MAX_RETRIES", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
			SlowQuery:   getEnvDuration("DB_SLOW_QUERY", time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		JWT: JWTConfig{
			Secret:       getEnv("JWT_SECRET", "change-me"),
			AccessExpiry: getEnvDuration("JWT_ACCESS_EXPIRY", 24*time.Hour),
		},
		AdminEmails:  splitList(getEnv("ADMIN_EMAILS", "")),
		EnforceAdmin: getEnvBool("ENFORCE_ADMIN", false),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),
		SentryDSN:    getEnv("SENTRY_DSN", ""),
		Outbox: OutboxConfig{
			PollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
			BatchSize:    getEnvInt("OUTBOX_BATCH_SIZE", 50),
			Retention:    getEnvDuration("OUTBOX_RETENTION", 7*24*time.Hour),
		},
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// IsAdminEmail matches case-insensitively against ADMIN_EMAILS.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails {
		if strings.ToLower(e) == email {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
