// Package media forwards uploaded cover images to an external store and
// hands back the public URL. Nothing is kept on local disk.
package media

import (
	"context"
	"encoding/base64"
	"fmt"

	"blog_backend/internal/platform/config"
)

// File is an upload held in memory.
type File struct {
	Data        []byte
	ContentType string
	Filename    string
}

// Uploader stores a file and returns a durable public URL. hint is a
// human readable name (the post title) some providers use for the key.
type Uploader interface {
	Upload(ctx context.Context, file File, hint string) (string, error)
}

// DataURI encodes the file the way browsers inline it: data:<mime>;base64,<payload>.
func DataURI(file File) string {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(file.Data)
}

// New builds the uploader selected by cfg.MediaProvider.
func New(ctx context.Context, cfg *config.Config) (Uploader, error) {
	switch cfg.MediaProvider {
	case config.MediaProviderCloudinary:
		return NewCloudinaryUploaderFromParams(cfg.CloudName, cfg.CloudAPIKey, cfg.CloudAPISecret)
	case config.MediaProviderS3:
		return NewS3UploaderFromEnv(ctx, cfg.S3Bucket, cfg.S3PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown media provider %q", cfg.MediaProvider)
	}
}
