package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	TokenExpiry time.Duration
	OTPTTL      time.Duration
	SwaggerHost string

	// External identity provider (best-effort account mirroring).
	IdentityAPIURL string
	IdentityAPIKey string

	// Object storage for uploaded assets.
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3BaseEndpoint string
	S3PublicURL    string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   getEnv("JWT_SECRET", "change-me"),
		TokenExpiry: getEnvDuration("TOKEN_EXPIRY", 90*24*time.Hour),
		OTPTTL:      getEnvDuration("OTP_TTL", 5*time.Minute),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),

		IdentityAPIURL: os.Getenv("IDENTITY_API_URL"),
		IdentityAPIKey: os.Getenv("IDENTITY_API_KEY"),

		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", "company-assets"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3BaseEndpoint: os.Getenv("S3_BASE_ENDPOINT"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
