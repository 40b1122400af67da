package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"scenecast/logger"
)

// uploadToLocal copies the video into the locally served directory. The HTTP
// server exposes that directory directly, so "upload" is just a file copy.
func uploadToLocal(_ context.Context, accessInfo map[string]string, reader io.Reader) error {
	baseDir := accessInfo["baseDir"]
	object := accessInfo["object"]

	fullPath := filepath.Join(baseDir, object)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", fullPath, err)
	}

	logger.Infof("Video copied to serve directory: %s", fullPath)
	return nil
}
