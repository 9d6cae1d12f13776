// Package cloudinary stores certificate scans on Cloudinary and hands back
// their secure delivery URLs.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Uploader pushes certificate scans into a single Cloudinary folder.
type Uploader struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// NewUploader connects to Cloudinary with the given credentials. All scans
// this deployment writes land under folder.
func NewUploader(cloudName, apiKey, apiSecret, folder string, logger zerolog.Logger) (*Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	client, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Uploader{
		client: client,
		folder: strings.Trim(folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload stores the scan and returns its secure URL.
func (u *Uploader) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	result, err := u.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       u.folder,
		PublicID:     scanPublicID(name),
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload certificate scan: %w", err)
	}

	u.logger.Info().Str("public_id", result.PublicID).Msg("certificate scan uploaded")

	return result.SecureURL, nil
}

// scanPublicID keeps the original base name for traceability and appends a
// random suffix so repeated uploads of the same file never collide.
func scanPublicID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	base = strings.Trim(b.String(), "-")
	if base == "" {
		base = "scan"
	}

	return base + "-" + uuid.NewString()[:8]
}
