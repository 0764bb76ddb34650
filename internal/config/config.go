package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server       ServerConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Verification VerificationConfig
	Mail         MailConfig
	Jobs         JobsConfig
	RateLimit    RateLimitConfig
	Catalog      CatalogConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	Timezone       string
	AllowedOrigins []string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       string
	PoolSize string
}

// AuthConfig 값은 문자열 그대로 두고 사용하는 서비스 생성자에서 검증한다.
type AuthConfig struct {
	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessTTL     string
	JWTRefreshTTL    string
	BcryptCost       string
}

type VerificationConfig struct {
	CodeTTL    string
	CodeLength string
}

type MailConfig struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type JobsConfig struct {
	EnrollmentSweepSchedule string
}

type RateLimitConfig struct {
	MailPerMinute string
	MailBurst     string
}

type CatalogConfig struct {
	File string
}

// Load - .env 파일(있으면)을 읽은 뒤 환경변수로 Config를 채운다.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: ServerConfig{
			Port:           getenv("PORT", "8080"),
			Mode:           getenv("GIN_MODE", "release"),
			Timezone:       getenv("APP_TIMEZONE", "Asia/Seoul"),
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Username: os.Getenv("REDIS_USERNAME"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getenv("REDIS_DB", "0"),
			PoolSize: getenv("REDIS_POOL_SIZE", "10"),
		},
		Auth: AuthConfig{
			JWTSecret:        os.Getenv("JWT_SECRET"),
			JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
			JWTAccessTTL:     getenv("JWT_ACCESS_TTL", "2h"),
			JWTRefreshTTL:    getenv("JWT_REFRESH_TTL", "336h"),
			BcryptCost:       getenv("BCRYPT_COST", "10"),
		},
		Verification: VerificationConfig{
			CodeTTL:    getenv("VERIFY_CODE_TTL", "5m"),
			CodeLength: getenv("VERIFY_CODE_LENGTH", "6"),
		},
		Mail: MailConfig{
			Host: getenv("SMTP_HOST", "smtp.gmail.com"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			From: os.Getenv("SMTP_FROM"),
		},
		Jobs: JobsConfig{
			EnrollmentSweepSchedule: getenv("ENROLLMENT_SWEEP_SCHEDULE", "0 0 * * *"),
		},
		RateLimit: RateLimitConfig{
			MailPerMinute: getenv("MAIL_RATE_PER_MINUTE", "5"),
			MailBurst:     getenv("MAIL_RATE_BURST", "3"),
		},
		Catalog: CatalogConfig{
			File: os.Getenv("CATALOG_FILE"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
