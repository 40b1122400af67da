// Package delivery pushes rendered videos to the configured storage backend
// after a render completes. Uploads are best effort; the local copy under the
// output directory remains the source of truth for downloads.
package delivery

import (
	"context"
	"fmt"
	"io"
)

// Upload writes the reader's content to the backend named by backendType.
// accessInfo carries the backend's credentials and target location; the
// "object" key names the destination file.
func Upload(ctx context.Context, accessInfo map[string]string, reader io.Reader, backendType string) error {
	switch backendType {
	case "local":
		if err := uploadToLocal(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to copy to local serve dir: %w", err)
		}
	case "s3":
		if err := uploadToS3(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to S3: %w", err)
		}
	case "gcs":
		if err := uploadToGCS(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to GCS: %w", err)
		}
	case "sftp":
		if err := uploadToSFTP(ctx, accessInfo, reader); err != nil {
			return fmt.Errorf("failed to upload to SFTP: %w", err)
		}
	default:
		return fmt.Errorf("unknown delivery backend: %s", backendType)
	}
	return nil
}
