package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DevJWTSecret is the fallback signing secret; it must not reach production.
const DevJWTSecret = "dev_secret"

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Features  FeatureConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig is optional; an empty Host disables Redis-backed features.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// FeatureConfig toggles the three route groups served by the binary.
type FeatureConfig struct {
	Store   bool
	Quizzes bool
	Jobs    bool
}

// UploadsConfig controls profile/resume/logo storage and signed download links.
type UploadsConfig struct {
	Dir             string
	SignedURLSecret string
	SignedURLTTL    time.Duration
	MaxImageBytes   int64
	MaxResumeBytes  int64
}

// RateLimitConfig bounds login/register attempts per client IP.
type RateLimitConfig struct {
	AuthLimit  int
	AuthWindow time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 7*24*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Features = FeatureConfig{
		Store:   v.GetBool("ENABLE_STORE"),
		Quizzes: v.GetBool("ENABLE_QUIZZES"),
		Jobs:    v.GetBool("ENABLE_JOBS"),
	}

	maxImage := v.GetInt64("UPLOADS_MAX_IMAGE_SIZE")
	if maxImage <= 0 {
		maxImage = 5 * 1024 * 1024
	}
	maxResume := v.GetInt64("UPLOADS_MAX_RESUME_SIZE")
	if maxResume <= 0 {
		maxResume = 10 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:             v.GetString("UPLOADS_DIR"),
		SignedURLSecret: v.GetString("UPLOADS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("UPLOADS_SIGNED_URL_TTL"), 15*time.Minute),
		MaxImageBytes:   maxImage,
		MaxResumeBytes:  maxResume,
	}

	cfg.RateLimit = RateLimitConfig{
		AuthLimit:  v.GetInt("AUTH_RATE_LIMIT"),
		AuthWindow: parseDuration(v.GetString("AUTH_RATE_WINDOW"), time.Minute),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 5000)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "portal")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", DevJWTSecret)
	v.SetDefault("JWT_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "portal-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_STORE", true)
	v.SetDefault("ENABLE_QUIZZES", true)
	v.SetDefault("ENABLE_JOBS", true)

	v.SetDefault("UPLOADS_DIR", "./uploads")
	v.SetDefault("UPLOADS_SIGNED_URL_SECRET", "dev_uploads_secret")
	v.SetDefault("UPLOADS_SIGNED_URL_TTL", "15m")
	v.SetDefault("UPLOADS_MAX_IMAGE_SIZE", 5*1024*1024)
	v.SetDefault("UPLOADS_MAX_RESUME_SIZE", 10*1024*1024)

	v.SetDefault("AUTH_RATE_LIMIT", 10)
	v.SetDefault("AUTH_RATE_WINDOW", "1m")

	v.SetDefault("ENABLE_METRICS", true)
}

// viper reports a missing explicit config file as an fs error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
