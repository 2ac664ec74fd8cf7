package media

import (
	"path/filepath"
	"strings"
)

const FallbackContentType = "application/octet-stream"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".mp4":  "video/mp4",
	".mp3":  "audio/mpeg",
	".webm": "video/webm",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".svg":  "image/svg+xml",
}

func ContentType(filename string) string {
	if contentType, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return contentType
	}
	return FallbackContentType
}
