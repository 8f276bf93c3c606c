package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		ENV string
	}

	Log LogConfig

	DB struct {
		Driver   string
		DSN      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	GRPC struct {
		Host string
		Port string
	}

	Metrics struct {
		Addr string
	}

	Auth struct {
		JWTSecret string
		Issuer    string
	}

	Storage struct {
		Endpoint  string
		AccessKey string
		SecretKey string
		Bucket    string
		Region    string
		PublicURL string
		UseSSL    bool
	}

	Push struct {
		Endpoint string
		Timeout  time.Duration
	}

	Catalog struct {
		TMDBKey  string
		TMDBURL  string
		BooksKey string
		BooksURL string
	}

	Recap struct {
		CacheTTL time.Duration
	}
}

// LogConfig is the logger section, split out so tests can build it directly.
type LogConfig struct {
	Level     string
	Format    string
	Component string
	Source    bool
}

// New builds the config from the environment. A .env file in the working
// directory is loaded first when present; real env vars win over it.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.App.ENV = getEnvDefault("APP_ENV", "development")

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", "info")
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", "text")
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", "grpc_server")
	cfg.Log.Source = isTruthy(os.Getenv("LOG_SOURCE"))

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", "postgres"))
	cfg.DB.DSN = os.Getenv("DB_DSN")
	if cfg.DB.DSN == "" {
		cfg.DB.Host = getEnvDefault("DB_HOST", "localhost")
		cfg.DB.User = getEnvDefault("DB_USER", "postgres")
		cfg.DB.Password = getEnvDefault("DB_PASSWORD", "postgres")
		cfg.DB.Name = getEnvDefault("DB_NAME", "reelread")

		switch cfg.DB.Driver {
		case "mysql":
			cfg.DB.Port = getEnvDefault("DB_PORT", "3306")
			cfg.DB.DSN = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
				cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name,
			)
		case "sqlite":
			cfg.DB.DSN = getEnvDefault("DB_PATH", "reelread.db")
		default:
			cfg.DB.Port = getEnvDefault("DB_PORT", "5432")
			cfg.DB.DSN = fmt.Sprintf(
				"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
				cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name,
				getEnvDefault("DB_SSLMODE", "disable"),
			)
		}
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", "")
	if dbStr := getEnvDefault("REDIS_DB", "0"); dbStr != "" {
		if dbInt, err := strconv.Atoi(dbStr); err == nil {
			cfg.Redis.DB = dbInt
		}
	}

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", "127.0.0.1")
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", "50051")

	cfg.Metrics.Addr = getEnvDefault("METRICS_ADDR", ":9090")

	// Auth: tokens are issued by the hosted auth provider, we only verify them.
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.Auth.Issuer = getEnvDefault("JWT_ISSUER", "")

	// Avatar storage
	cfg.Storage.Endpoint = getEnvDefault("STORAGE_ENDPOINT", "localhost:9000")
	cfg.Storage.AccessKey = getEnvDefault("STORAGE_ACCESS_KEY", "minioadmin")
	cfg.Storage.SecretKey = getEnvDefault("STORAGE_SECRET_KEY", "minioadmin")
	cfg.Storage.Bucket = getEnvDefault("STORAGE_BUCKET", "avatars")
	cfg.Storage.Region = getEnvDefault("STORAGE_REGION", "us-east-1")
	cfg.Storage.PublicURL = getEnvDefault("STORAGE_PUBLIC_URL", "")
	cfg.Storage.UseSSL = isTruthy(os.Getenv("STORAGE_USE_SSL"))

	// Push
	cfg.Push.Endpoint = getEnvDefault("PUSH_ENDPOINT", "https://exp.host/--/api/v2/push/send")
	cfg.Push.Timeout = getDurationDefault("PUSH_TIMEOUT", 5*time.Second)

	// Catalog population scripts
	cfg.Catalog.TMDBKey = os.Getenv("TMDB_API_KEY")
	cfg.Catalog.TMDBURL = getEnvDefault("TMDB_URL", "https://api.themoviedb.org")
	cfg.Catalog.BooksKey = os.Getenv("GOOGLE_BOOKS_API_KEY")
	cfg.Catalog.BooksURL = getEnvDefault("GOOGLE_BOOKS_URL", "https://www.googleapis.com")

	cfg.Recap.CacheTTL = getDurationDefault("RECAP_CACHE_TTL", 6*time.Hour)

	return cfg
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getDurationDefault(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
