package media

import (
	"context"
	"fmt"

	"blog_backend/internal/common"
	"blog_backend/internal/platform/logger"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploadAPI is the part of the SDK upload client the uploader needs.
type CloudinaryUploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
}

// CloudinaryUploader sends covers to Cloudinary as data URI uploads.
type CloudinaryUploader struct {
	client CloudinaryUploadAPI
}

func NewCloudinaryUploader(client CloudinaryUploadAPI) *CloudinaryUploader {
	return &CloudinaryUploader{client: client}
}

// NewCloudinaryUploaderFromParams configures the SDK with account credentials.
func NewCloudinaryUploaderFromParams(cloudName, apiKey, apiSecret string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return NewCloudinaryUploader(&cld.Upload), nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file File, _ string) (string, error) {
	resp, err := u.client.Upload(ctx, DataURI(file), uploader.UploadParams{})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %v: %w", err, common.ErrUpload)
	}
	if resp == nil {
		return "", fmt.Errorf("cloudinary upload: empty response: %w", common.ErrUpload)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary rejected upload: %s: %w", resp.Error.Message, common.ErrUpload)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload: no secure_url in response: %w", common.ErrUpload)
	}

	logger.Debugf("stored cover %s on cloudinary", resp.PublicID)
	return resp.SecureURL, nil
}
