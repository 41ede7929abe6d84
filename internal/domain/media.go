package domain

import (
	"net/url"
	"path"
	"strings"
)

var (
	videoHosts      = []string{"youtube.com", "youtu.be", "vimeo.com"}
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".svg": true, ".bmp": true}
	videoExtensions = map[string]bool{".mp4": true, ".webm": true, ".ogg": true, ".mov": true}
)

// DetectMediaType guesses whether a media URL points at a video or an image.
// Known video hosts and video file extensions yield MediaTypeVideo; anything
// else is treated as an image.
func DetectMediaType(raw string) MediaType {
	lower := strings.ToLower(raw)
	for _, host := range videoHosts {
		if strings.Contains(lower, host) {
			return MediaTypeVideo
		}
	}

	p := lower
	if u, err := url.Parse(lower); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := path.Ext(p)
	switch {
	case videoExtensions[ext]:
		return MediaTypeVideo
	case imageExtensions[ext]:
		return MediaTypeImage
	}
	return MediaTypeImage
}
