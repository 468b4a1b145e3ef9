package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadComposesConnectionString(t *testing.T) {
	t.Setenv("DATABASE", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "blog")
	t.Setenv("DB_PASSWORD", "p@ss")
	t.Setenv("DB_NAME", "blog_db")
	t.Setenv("DB_SSLMODE", "require")

	cfg, _ := Load()
	assert.Equal(t, "postgres://blog:p%40ss@db:5433/blog_db?sslmode=require", cfg.DBConnStr)
}

func TestLoadExplicitValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE", "postgres://u:p@h/db")
	t.Setenv("HASH_SECRET", "s3cret")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("MEDIA_PROVIDER", "S3")
	t.Setenv("S3_BUCKET", "covers")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg, _ := Load()
	assert.Equal(t, "9000", cfg.APIPort)
	assert.Equal(t, "postgres://u:p@h/db", cfg.DBConnStr)
	assert.Equal(t, []byte("s3cret"), cfg.JWTKey)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, MediaProviderS3, cfg.MediaProvider)
	assert.Equal(t, "https://cdn.example.com", cfg.S3PublicBaseURL)
}

func TestLoadDerivesS3BaseURL(t *testing.T) {
	t.Setenv("S3_BUCKET", "covers")
	t.Setenv("S3_PUBLIC_BASE_URL", "")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, _ := Load()
	assert.Equal(t, "https://covers.s3.amazonaws.com", cfg.S3PublicBaseURL)
	assert.Equal(t, 0, cfg.RedisDB)
}
