package ffmpeg

import (
	"strings"

	"scenecast/logger"
)

// ResolveURL rewrites Google Drive share links into their direct-download
// form so ffprobe and ffmpeg can fetch them. Every other locator passes
// through unchanged, as does a Drive link whose file id cannot be extracted.
func ResolveURL(raw string) string {
	if !strings.Contains(raw, "drive.google.com") {
		return raw
	}

	var id string
	if i := strings.Index(raw, "id="); i >= 0 {
		id = raw[i+len("id="):]
		if j := strings.IndexByte(id, '&'); j >= 0 {
			id = id[:j]
		}
	} else if i := strings.Index(raw, "/file/d/"); i >= 0 {
		id = raw[i+len("/file/d/"):]
		if j := strings.IndexByte(id, '/'); j >= 0 {
			id = id[:j]
		}
	}
	if id == "" {
		return raw
	}
	if !validDriveFileID(id) {
		logger.Warnf("Invalid Google Drive file id in %s", raw)
		return raw
	}

	resolved := "https://drive.google.com/uc?export=download&id=" + id
	logger.Debugf("Resolved Google Drive URL: %s -> %s", raw, resolved)
	return resolved
}

// validDriveFileID accepts the id shape Drive uses: longer than 20
// characters, alphanumeric aside from '-' and '_'.
func validDriveFileID(id string) bool {
	if len(id) <= 20 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
