package delivery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestUploadToLocal(t *testing.T) {
	dir := t.TempDir()
	access := map[string]string{
		"baseDir": dir,
		"object":  "abc123.mp4",
	}

	if err := Upload(context.Background(), access, strings.NewReader("video bytes"), "local"); err != nil {
		t.Fatalf("upload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc123.mp4"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "video bytes" {
		t.Errorf("content mismatch: %q", data)
	}
}

func TestUploadUnknownBackend(t *testing.T) {
	err := Upload(context.Background(), nil, strings.NewReader(""), "carrier-pigeon")
	if err == nil || !strings.Contains(err.Error(), "unknown delivery backend") {
		t.Errorf("expected unknown backend error, got %v", err)
	}
}
