package media

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/aretw0/conform/pkg/domain"
	"github.com/aretw0/conform/pkg/ports"
)

// defaultTypes covers common dataset extensions that the platform MIME table
// may not know about (e.g. video containers on minimal images).
var defaultTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".mpg":  "video/mpeg",
	".mpeg": "video/mpeg",
}

// Classifier guesses the media kind of a file from its extension's MIME type.
// It never opens the file.
type Classifier struct {
	types map[string]string
}

var _ ports.MediaClassifier = (*Classifier)(nil)

// Option configures a Classifier.
type Option func(*Classifier)

// WithExtension maps an extension (with or without the leading dot) to a MIME type.
func WithExtension(ext, mimeType string) Option {
	return func(c *Classifier) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.types[strings.ToLower(ext)] = mimeType
	}
}

// NewClassifier creates a classifier with the default extension table.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{types: make(map[string]string, len(defaultTypes))}
	for ext, typ := range defaultTypes {
		c.types[ext] = typ
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MIMEType returns the guessed MIME type of path, or "" when unknown.
func (c *Classifier) MIMEType(path string) string {
	// Strip query strings from remote paths
	if i := strings.IndexAny(path, "?#"); i >= 0 && strings.Contains(path, "://") {
		path = path[:i]
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if typ, ok := c.types[ext]; ok {
		return typ
	}
	return mime.TypeByExtension(ext)
}

// Classify implements ports.MediaClassifier.
func (c *Classifier) Classify(ctx context.Context, path string) (domain.MediaType, error) {
	typ := c.MIMEType(path)
	switch {
	case strings.HasPrefix(typ, "image/"):
		return domain.MediaImage, nil
	case strings.HasPrefix(typ, "video/"):
		return domain.MediaVideo, nil
	default:
		return domain.MediaUnknown, nil
	}
}
