package libs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrCloudinaryNotConfigured = errors.New("cloudinary credentials not configured")

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryService accepts either a CLOUDINARY_URL or the three separate
// credentials.
func NewCloudinaryService(cloudinaryURL, cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	if cloudName != "" && apiKey != "" && apiSecret != "" {
		cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
		if err != nil {
			return nil, fmt.Errorf("cloudinary init from params fail: %w", err)
		}
		return &CloudinaryService{cld: cld}, nil
	}

	if cloudinaryURL == "" {
		return nil, ErrCloudinaryNotConfigured
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init from URL fail: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) UploadBytes(ctx context.Context, data []byte, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:     fmt.Sprintf("result_%d", time.Now().UnixNano()),
		Folder:       folder,
		ResourceType: "image",
	})
	if err != nil {
		log.Printf("[Cloudinary] Upload error: %v", err)
		return "", fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if resp == nil {
		return "", errors.New("cloudinary response is nil")
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	if resp.URL != "" {
		return resp.URL, nil
	}
	return "", errors.New("both SecureURL and URL are empty")
}
