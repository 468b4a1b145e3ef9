package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	MediaProviderCloudinary = "cloudinary"
	MediaProviderS3         = "s3"
)

type Config struct {
	APIPort       string
	AllowedOrigin string
	LogLevel      string

	JWTKey []byte

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string

	MediaProvider   string
	CloudName       string
	CloudAPIKey     string
	CloudAPISecret  string
	S3Bucket        string
	S3PublicBaseURL string

	SelfURL      string
	PingSchedule string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads an optional .env file and then the process environment.
// The boolean reports whether a .env file was found.
func Load() (*Config, bool) {
	foundDotEnv := godotenv.Load() == nil

	cfg := &Config{
		APIPort:         getEnv("PORT", "4000"),
		AllowedOrigin:   getEnv("REQ_URL", "http://localhost:3000"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		JWTKey:          []byte(getEnv("HASH_SECRET", "defaultsecret")),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "user"),
		DBPassword:      getEnv("DB_PASSWORD", "password"),
		DBName:          getEnv("DB_NAME", "blog_db"),
		DBSslMode:       getEnv("DB_SSLMODE", "disable"),
		DBConnStr:       getEnv("DATABASE", ""),
		MediaProvider:   strings.ToLower(getEnv("MEDIA_PROVIDER", MediaProviderCloudinary)),
		CloudName:       getEnv("CLOUD_NAME", ""),
		CloudAPIKey:     getEnv("API_KEY", ""),
		CloudAPISecret:  getEnv("API_SECRET", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3PublicBaseURL: strings.TrimRight(getEnv("S3_PUBLIC_BASE_URL", ""), "/"),
		SelfURL:         getEnv("SELF_URL", ""),
		PingSchedule:    getEnv("PING_SCHEDULE", "*/10 * * * *"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
	}

	if cfg.DBConnStr == "" {
		cfg.DBConnStr = "postgres://" + url.QueryEscape(cfg.DBUser) + ":" + url.QueryEscape(cfg.DBPassword) +
			"@" + cfg.DBHost + ":" + cfg.DBPort + "/" + cfg.DBName +
			"?sslmode=" + cfg.DBSslMode
	}
	if cfg.S3PublicBaseURL == "" && cfg.S3Bucket != "" {
		cfg.S3PublicBaseURL = "https://" + cfg.S3Bucket + ".s3.amazonaws.com"
	}

	return cfg, foundDotEnv
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
